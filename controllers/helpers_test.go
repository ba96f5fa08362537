package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/adnankas/coinrush_backend/models"
	"github.com/adnankas/coinrush_backend/repositories"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.v.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

// invoke runs a handler against a JSON body (or a bare GET with query in path)
// and returns the recorder plus the decoded response envelope.
func invoke(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

// fakeGateway is a deterministic PaymentGateway for handler tests
type fakeGateway struct {
	secret    string
	orderErr  error
	lastNotes map[string]string
}

func (g *fakeGateway) CreateOrder(amountPaise int64, currency, receipt string, notes map[string]string) (*models.RazorpayOrder, error) {
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	g.lastNotes = notes
	return &models.RazorpayOrder{
		ID:       "order_test",
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.sign(orderID, paymentID) == signature
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}

func (g *fakeGateway) sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// flakyPlayerStore fails a set number of credits before recovering
type flakyPlayerStore struct {
	*repositories.MemoryPlayerStore
	creditFailures int
}

func (s *flakyPlayerStore) Credit(ctx context.Context, name string, coins int64) (int64, error) {
	if s.creditFailures > 0 {
		s.creditFailures--
		return 0, errors.New("store unavailable")
	}
	return s.MemoryPlayerStore.Credit(ctx, name, coins)
}
