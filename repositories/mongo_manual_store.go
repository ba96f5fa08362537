package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adnankas/coinrush_backend/models"
	"github.com/google/uuid"
)

// MongoManualPaymentStore keeps claims in a manual_payments collection.
// A counters document hands out the list index so claims stay addressable
// the same way as the in-memory slice.
type MongoManualPaymentStore struct {
	claims   *mongo.Collection
	counters *mongo.Collection
}

// NewMongoManualPaymentStore creates a store over the given database
func NewMongoManualPaymentStore(db *mongo.Database) *MongoManualPaymentStore {
	return &MongoManualPaymentStore{
		claims:   db.Collection("manual_payments"),
		counters: db.Collection("counters"),
	}
}

func (s *MongoManualPaymentStore) nextSeq(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"value"`
	}
	err := s.counters.FindOneAndUpdate(ctx, bson.M{"_id": "manual_payments"},
		bson.M{"$inc": bson.M{"value": 1}}, opts).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Value - 1, nil
}

func (s *MongoManualPaymentStore) Append(ctx context.Context, claim models.ManualPayment) (models.ManualPayment, error) {
	seq, err := s.nextSeq(ctx)
	if err != nil {
		return models.ManualPayment{}, err
	}

	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = time.Now()
	}
	claim.Seq = seq
	claim.Status = models.ManualPaymentStatusPending

	if _, err := s.claims.InsertOne(ctx, claim); err != nil {
		return models.ManualPayment{}, err
	}
	return claim, nil
}

func (s *MongoManualPaymentStore) List(ctx context.Context) ([]models.ManualPayment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := s.claims.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	claims := make([]models.ManualPayment, 0)
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *MongoManualPaymentStore) Decide(ctx context.Context, index int, status, note string) (models.ManualPayment, error) {
	set := bson.M{"status": status}
	if note != "" {
		set["note"] = note
	}

	// Filtering on Pending makes the decision a one-shot transition.
	filter := bson.M{"seq": int64(index), "status": models.ManualPaymentStatusPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var claim models.ManualPayment
	err := s.claims.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&claim)
	if err == nil {
		return claim, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.ManualPayment{}, err
	}

	// Distinguish a missing claim from one that was already decided.
	err = s.claims.FindOne(ctx, bson.M{"seq": int64(index)}).Decode(&claim)
	if err == mongo.ErrNoDocuments {
		return models.ManualPayment{}, ErrNotFound
	}
	if err != nil {
		return models.ManualPayment{}, err
	}
	return models.ManualPayment{}, ErrAlreadyProcessed
}

func (s *MongoManualPaymentStore) Reopen(ctx context.Context, index int) error {
	res, err := s.claims.UpdateOne(ctx, bson.M{"seq": int64(index)},
		bson.M{"$set": bson.M{"status": models.ManualPaymentStatusPending}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
