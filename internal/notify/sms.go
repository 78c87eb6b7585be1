package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// smsTimeout bounds a single gateway call.
const smsTimeout = 10 * time.Second

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// GatewaySMSSender implements SMSSender against a JSON SMS gateway.
type GatewaySMSSender struct {
	gatewayURL string
	apiKey     string
	senderID   string
	httpClient *http.Client
}

// NewGatewaySMSSender creates an SMSSender for the configured gateway.
// Credentials are validated here so misconfiguration fails at startup.
func NewGatewaySMSSender(gatewayURL, apiKey, senderID string) (*GatewaySMSSender, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("notify: SMS gateway URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("notify: SMS API key is required")
	}
	return &GatewaySMSSender{
		gatewayURL: gatewayURL,
		apiKey:     apiKey,
		senderID:   senderID,
		httpClient: &http.Client{Timeout: smsTimeout},
	}, nil
}

// Send posts the message to the gateway.
func (s *GatewaySMSSender) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      phone,
		"from":    s.senderID,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("notify: marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notify: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("notify: http: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusAccepted {
		respBytes, _ := io.ReadAll(httpResp.Body)
		return fmt.Errorf("notify: status %d: %s", httpResp.StatusCode, string(respBytes))
	}
	return nil
}

// NoopSMSSender logs instead of sending. Used when SMS is disabled.
type NoopSMSSender struct {
	logger *zap.Logger
}

// NewNoopSMSSender creates a sender that only logs.
func NewNoopSMSSender(logger *zap.Logger) *NoopSMSSender {
	return &NoopSMSSender{logger: logger}
}

// Send logs the message and succeeds.
func (s *NoopSMSSender) Send(_ context.Context, phone, message string) error {
	s.logger.Debug("sms suppressed (disabled)",
		zap.String("phone", phone),
		zap.String("message", message),
	)
	return nil
}
