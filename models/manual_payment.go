package models

import "time"

// Manual payment status values
const (
	ManualPaymentStatusPending  = "Pending"
	ManualPaymentStatusApproved = "Approved"
	ManualPaymentStatusRejected = "Rejected"
)

// ManualPayment is a player-reported bank transfer awaiting admin verification.
// Claims live in a single global list and are addressed by their index.
type ManualPayment struct {
	ID        string    `bson:"_id" json:"id"`
	Seq       int64     `bson:"seq" json:"-"`
	Player    string    `bson:"player" json:"player"`
	Amount    float64   `bson:"amount" json:"amount"`
	TxnID     string    `bson:"txnId" json:"txnId"`
	Status    string    `bson:"status" json:"status"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
