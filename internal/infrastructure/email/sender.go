// Package email dispatches verification emails through the external
// email-sending endpoint.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Sender posts {email, fullname, verificationToken} to the configured
// endpoint with bearer authorization and expects {"success": bool} back.
type Sender struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewSender(endpoint, token string) *Sender {
	return &Sender{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

type sendRequest struct {
	Email             string `json:"email"`
	FullName          string `json:"fullname"`
	VerificationToken string `json:"verificationToken"`
}

type sendResponse struct {
	Success bool `json:"success"`
}

func (s *Sender) Send(ctx context.Context, email, fullname, token string) error {
	body, err := json.Marshal(sendRequest{
		Email:             email,
		FullName:          fullname,
		VerificationToken: token,
	})
	if err != nil {
		return fmt.Errorf("encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email endpoint returned %d", resp.StatusCode)
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode email response: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("email endpoint reported failure")
	}
	return nil
}
