package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSService sends one-time codes over SMS.
type SMSService interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// NoopSMSService is used when no SMS gateway is configured. Sends always fail
// so the issuer rolls back the record and reports the misconfiguration.
type NoopSMSService struct{}

func (s *NoopSMSService) SendOTP(ctx context.Context, phone, code string) error {
	log.Printf("[SMSService] noop: SMS gateway not configured, refusing send to=%s", phone)
	return fmt.Errorf("SMS service not configured")
}

// GatewaySMSService sends codes through a 2Factor-style HTTP SMS gateway:
// GET {base}/{apiKey}/SMS/{phone}/{code}/{senderID} returning a JSON status.
type GatewaySMSService struct {
	apiKey     string
	baseURL    string
	senderID   string
	httpClient *http.Client
}

func NewGatewaySMSService(apiKey, baseURL, senderID string) (*GatewaySMSService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sms api key is required")
	}
	if baseURL == "" {
		baseURL = "https://2factor.in/API/V1"
	}
	if senderID == "" {
		senderID = "JANSEV"
	}
	return &GatewaySMSService{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		senderID:   senderID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type smsGatewayResponse struct {
	Status  string `json:"Status"`
	Details string `json:"Details"`
}

func (s *GatewaySMSService) SendOTP(ctx context.Context, phone, code string) error {
	if phone == "" || code == "" {
		return fmt.Errorf("phone and code are required")
	}

	endpoint := fmt.Sprintf("%s/%s/SMS/%s/%s/%s",
		s.baseURL,
		url.PathEscape(s.apiKey),
		url.PathEscape(phone),
		url.PathEscape(code),
		url.PathEscape(s.senderID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("failed to read sms gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	var gw smsGatewayResponse
	if err := json.Unmarshal(body, &gw); err != nil {
		return fmt.Errorf("failed to decode sms gateway response: %w", err)
	}
	if !strings.EqualFold(gw.Status, "Success") {
		return fmt.Errorf("sms gateway rejected send: %s", gw.Details)
	}

	return nil
}
