package models

// SetBalanceRequest overwrites a player's balance
type SetBalanceRequest struct {
	Player  string   `json:"player"`
	Balance *float64 `json:"balance"`
}

// CreateOrderRequest asks the gateway for a coin purchase order
type CreateOrderRequest struct {
	Player string `json:"player"`
	Coins  int64  `json:"coins"`
}

// VerifyPaymentRequest carries the gateway checkout result back to us.
// Coins is left untyped because clients send it as either a number or a string.
type VerifyPaymentRequest struct {
	OrderID   string      `json:"orderId"`
	PaymentID string      `json:"paymentId"`
	Signature string      `json:"signature"`
	Player    string      `json:"player"`
	Coins     interface{} `json:"coins"`
}

// WithdrawRequest is a player payout request
type WithdrawRequest struct {
	Player string `json:"player"`
	UpiID  string `json:"upiId" validate:"required,contains=@"`
	Coins  int64  `json:"coins"`
}

// UpdateWithdrawalRequest is the admin status update for one record
type UpdateWithdrawalRequest struct {
	Player string `json:"player" validate:"required"`
	Index  *int   `json:"index" validate:"required"`
	Status string `json:"status" validate:"required"`
	TxnID  string `json:"txnId"`
	Note   string `json:"note"`
}

// ManualAddRequest is a player-submitted manual transfer claim
type ManualAddRequest struct {
	Player string  `json:"player" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	TxnID  string  `json:"txnId" validate:"required"`
}

// ManualDecisionRequest addresses one claim in the global list
type ManualDecisionRequest struct {
	Index *int   `json:"index" validate:"required"`
	Note  string `json:"note"`
}

// AdminLoginRequest exchanges the shared secret for a signed token
type AdminLoginRequest struct {
	Secret string `json:"secret" validate:"required"`
}
