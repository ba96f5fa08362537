package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/adnankas/coinrush_backend/models"
)

// PaymentGateway is the external order-creation and signature contract.
// The signature scheme (HMAC-SHA256 over "orderId|paymentId") is fixed by the
// gateway, not by us.
type PaymentGateway interface {
	CreateOrder(amountPaise int64, currency, receipt string, notes map[string]string) (*models.RazorpayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// RazorpayService handles interactions with the Razorpay API
type RazorpayService struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

// NewRazorpayService creates a new Razorpay service instance
func NewRazorpayService() *RazorpayService {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")

	if keyID == "" || keySecret == "" {
		log.Printf("WARNING: Razorpay credentials not fully configured:")
		if keyID == "" {
			log.Printf("  - RAZORPAY_KEY_ID is missing")
		}
		if keySecret == "" {
			log.Printf("  - RAZORPAY_KEY_SECRET is missing")
		}
		log.Printf("Please set these environment variables for coin purchases to work")
	}

	baseURL := os.Getenv("RAZORPAY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1/"
	}

	return &RazorpayService{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// KeyID returns the public key id handed to the checkout frontend
func (s *RazorpayService) KeyID() string {
	return s.keyID
}

// makeRequest performs an authenticated HTTP request against the Razorpay API
func (s *RazorpayService) makeRequest(method, endpoint string, payload interface{}, out interface{}) error {
	if s.keyID == "" || s.keySecret == "" {
		return fmt.Errorf("missing Razorpay credentials. Please set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET environment variables")
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, s.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.keyID, s.keySecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if os.Getenv("RAZORPAY_DEBUG") == "true" {
		log.Printf("Razorpay API %s %s -> %d: %s", method, endpoint, resp.StatusCode, string(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr models.RazorpayError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Description != "" {
			return fmt.Errorf("razorpay API error: %s - %s", apiErr.Error.Code, apiErr.Error.Description)
		}
		return fmt.Errorf("razorpay API error: status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// CreateOrder creates a payment order with the gateway. Single attempt, no retry.
func (s *RazorpayService) CreateOrder(amountPaise int64, currency, receipt string, notes map[string]string) (*models.RazorpayOrder, error) {
	payload := models.RazorpayOrderRequest{
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	}

	var order models.RazorpayOrder
	if err := s.makeRequest("POST", "orders", payload, &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, fmt.Errorf("failed to parse order id from response")
	}
	return &order, nil
}

// VerifySignature recomputes the checkout signature and compares it in
// constant time against the one the client supplied.
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
