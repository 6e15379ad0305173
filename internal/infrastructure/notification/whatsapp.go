package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxWhatsAppResponseSize limits the response body read on errors
const maxWhatsAppResponseSize = 64 * 1024

// WhatsAppSender posts messages to a WhatsApp gateway API.
type WhatsAppSender struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewWhatsAppSender creates a gateway client.
func NewWhatsAppSender(endpoint, token string) *WhatsAppSender {
	return &WhatsAppSender{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type whatsAppMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Send posts one message to the gateway.
func (s *WhatsAppSender) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(whatsAppMessage{Phone: phone, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxWhatsAppResponseSize))
		return fmt.Errorf("whatsapp gateway returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
