package repositories

import (
	"context"
	"sort"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adnankas/coinrush_backend/models"
)

// playerDoc is the players collection document; the name doubles as _id
type playerDoc struct {
	ID          string                    `bson:"_id"`
	Balance     int64                     `bson:"balance"`
	Withdrawals []models.WithdrawalRecord `bson:"withdrawals"`
	CreatedAt   time.Time                 `bson:"createdAt"`
}

func (d playerDoc) toPlayer() models.Player {
	w := d.Withdrawals
	if w == nil {
		w = []models.WithdrawalRecord{}
	}
	return models.Player{
		Name:        d.ID,
		Balance:     d.Balance,
		Withdrawals: w,
		CreatedAt:   d.CreatedAt,
	}
}

// MongoPlayerStore is the persistent PlayerStore backend. Single-document
// updates keep debit/credit atomic per player.
type MongoPlayerStore struct {
	players *mongo.Collection
}

// NewMongoPlayerStore creates a store over the given database
func NewMongoPlayerStore(db *mongo.Database) *MongoPlayerStore {
	return &MongoPlayerStore{players: db.Collection("players")}
}

// ensure upserts the player with the starting balance and returns the document
func (s *MongoPlayerStore) ensure(ctx context.Context, name string) (playerDoc, error) {
	name = models.NormalizePlayerName(name)

	update := bson.M{"$setOnInsert": bson.M{
		"balance":     models.StartingBalance,
		"withdrawals": []models.WithdrawalRecord{},
		"createdAt":   time.Now(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc playerDoc
	err := s.players.FindOneAndUpdate(ctx, bson.M{"_id": name}, update, opts).Decode(&doc)
	return doc, err
}

func (s *MongoPlayerStore) Resolve(ctx context.Context, name string) (models.Player, error) {
	doc, err := s.ensure(ctx, name)
	if err != nil {
		return models.Player{}, err
	}
	return doc.toPlayer(), nil
}

func (s *MongoPlayerStore) SetBalance(ctx context.Context, name string, balance int64) (int64, error) {
	if _, err := s.ensure(ctx, name); err != nil {
		return 0, err
	}
	name = models.NormalizePlayerName(name)
	_, err := s.players.UpdateOne(ctx, bson.M{"_id": name}, bson.M{"$set": bson.M{"balance": balance}})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *MongoPlayerStore) Credit(ctx context.Context, name string, coins int64) (int64, error) {
	if _, err := s.ensure(ctx, name); err != nil {
		return 0, err
	}
	name = models.NormalizePlayerName(name)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc playerDoc
	err := s.players.FindOneAndUpdate(ctx, bson.M{"_id": name},
		bson.M{"$inc": bson.M{"balance": coins}}, opts).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Balance, nil
}

func (s *MongoPlayerStore) Withdraw(ctx context.Context, name string, rec models.WithdrawalRecord) (int64, []models.WithdrawalRecord, error) {
	if _, err := s.ensure(ctx, name); err != nil {
		return 0, nil, err
	}
	name = models.NormalizePlayerName(name)

	// The balance guard in the filter makes debit-and-append atomic.
	filter := bson.M{"_id": name, "balance": bson.M{"$gte": rec.Coins}}
	update := bson.M{
		"$inc":  bson.M{"balance": -rec.Coins},
		"$push": bson.M{"withdrawals": rec},
	}
	res, err := s.players.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, nil, err
	}
	if res.MatchedCount == 0 {
		return 0, nil, ErrInsufficientBalance
	}

	doc, err := s.ensure(ctx, name)
	if err != nil {
		return 0, nil, err
	}
	p := doc.toPlayer()
	return p.Balance, p.Withdrawals, nil
}

func (s *MongoPlayerStore) History(ctx context.Context, name string) ([]models.WithdrawalRecord, error) {
	doc, err := s.ensure(ctx, name)
	if err != nil {
		return nil, err
	}
	return doc.toPlayer().Withdrawals, nil
}

func (s *MongoPlayerStore) UpdateWithdrawal(ctx context.Context, name string, index int, status, txnID, note string) ([]models.WithdrawalRecord, error) {
	doc, err := s.ensure(ctx, name)
	if err != nil {
		return nil, err
	}
	name = models.NormalizePlayerName(name)
	if index < 0 || index >= len(doc.Withdrawals) {
		return nil, ErrNotFound
	}
	prev := doc.Withdrawals[index]
	// Approved and Rejected are terminal; only txnId/note may still change.
	// Letting a decided record go back to Pending would arm the refund again.
	if prev.Status != models.WithdrawalStatusPending && status != prev.Status {
		return nil, ErrAlreadyProcessed
	}

	field := func(suffix string) string {
		return "withdrawals." + strconv.Itoa(index) + "." + suffix
	}

	set := bson.M{field("status"): status}
	if txnID != "" {
		set[field("txnId")] = txnID
	}
	if note != "" {
		set[field("note")] = note
	}
	update := bson.M{"$set": set}
	if prev.Status == models.WithdrawalStatusPending && status == models.WithdrawalStatusRejected {
		update["$inc"] = bson.M{"balance": prev.Coins}
	}

	// Gate on the previous status so a concurrent update cannot refund twice.
	filter := bson.M{"_id": name, field("status"): prev.Status}
	if _, err := s.players.UpdateOne(ctx, filter, update); err != nil {
		return nil, err
	}

	doc, err = s.ensure(ctx, name)
	if err != nil {
		return nil, err
	}
	return doc.toPlayer().Withdrawals, nil
}

func (s *MongoPlayerStore) AllWithdrawals(ctx context.Context) ([]models.AdminWithdrawal, error) {
	cursor, err := s.players.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	all := make([]models.AdminWithdrawal, 0)
	for cursor.Next(ctx) {
		var doc playerDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		for i, rec := range doc.Withdrawals {
			all = append(all, models.AdminWithdrawal{
				Player:           doc.ID,
				Index:            i,
				WithdrawalRecord: rec,
			})
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}
