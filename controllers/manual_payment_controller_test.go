package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adnankas/coinrush_backend/repositories"
)

func TestSubmitClaimFilesPendingClaim(t *testing.T) {
	e := newTestEcho()
	mc := NewManualPaymentController(repositories.NewMemoryManualPaymentStore())

	rec, envelope := invoke(t, e, mc.SubmitClaim, http.MethodPost, "/api/manual-add",
		`{"player":"Bob","amount":50,"txnId":"UTR123"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Payment claim submitted for review", envelope["message"])

	claim, ok := envelope["claim"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Bob", claim["player"])
	assert.Equal(t, float64(50), claim["amount"])
	assert.Equal(t, "UTR123", claim["txnId"])
	assert.Equal(t, "Pending", claim["status"])
	assert.NotEmpty(t, claim["id"])
}

func TestSubmitClaimValidation(t *testing.T) {
	e := newTestEcho()
	mc := NewManualPaymentController(repositories.NewMemoryManualPaymentStore())

	for _, body := range []string{
		`{"amount":50,"txnId":"UTR123"}`,
		`{"player":"Bob","txnId":"UTR123"}`,
		`{"player":"Bob","amount":0,"txnId":"UTR123"}`,
		`{"player":"Bob","amount":-5,"txnId":"UTR123"}`,
		`{"player":"Bob","amount":50}`,
		`{"player":"   ","amount":50,"txnId":"UTR123"}`,
	} {
		rec, envelope := invoke(t, e, mc.SubmitClaim, http.MethodPost, "/api/manual-add", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
		assert.Equal(t, "Player, amount and txnId are required", envelope["message"])
	}
}

func TestSubmitClaimRejectsOversizedAmount(t *testing.T) {
	e := newTestEcho()
	mc := NewManualPaymentController(repositories.NewMemoryManualPaymentStore())

	// Amounts this large would overflow the rupee-to-coin conversion when the
	// claim gets approved.
	rec, envelope := invoke(t, e, mc.SubmitClaim, http.MethodPost, "/api/manual-add",
		`{"player":"Bob","amount":1e308,"txnId":"UTR123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Amount exceeds the maximum claim", envelope["message"])
}

func TestSubmitClaimDuplicateTxnIDsAccepted(t *testing.T) {
	e := newTestEcho()
	claims := repositories.NewMemoryManualPaymentStore()
	mc := NewManualPaymentController(claims)

	for i := 0; i < 2; i++ {
		rec, _ := invoke(t, e, mc.SubmitClaim, http.MethodPost, "/api/manual-add",
			`{"player":"Bob","amount":50,"txnId":"UTR123"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
