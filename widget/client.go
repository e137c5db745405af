package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// businessSettings mirrors the chat endpoint's settings field.
type businessSettings struct {
	BusinessName string `json:"businessName"`
	BusinessInfo string `json:"businessInfo"`
	SalesRepName string `json:"salesRepName"`
}

type chatRequest struct {
	Messages  []Message         `json:"messages"`
	Settings  *businessSettings `json:"settings,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
}

type chatResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// gatewayClient talks to the relay gateway's chat endpoint. It performs no
// retries of its own: a failed relay surfaces as the runtime's fixed apology
// message instead.
type gatewayClient struct {
	baseURL   string
	client    *http.Client
	sessionID string
}

func newGatewayClient(baseURL, sessionID string, client *http.Client) *gatewayClient {
	return &gatewayClient{baseURL: baseURL, client: client, sessionID: sessionID}
}

func (g *gatewayClient) send(ctx context.Context, messages []Message, cfg Config) (string, error) {
	payload := chatRequest{
		Messages: messages,
		Settings: &businessSettings{
			BusinessName: cfg.BusinessName,
			BusinessInfo: cfg.BusinessInfo,
			SalesRepName: cfg.SalesRepName,
		},
		SessionID: g.sessionID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("malformed chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if decoded.Error != "" {
			return "", fmt.Errorf("chat request returned status %d: %s", resp.StatusCode, decoded.Error)
		}
		return "", fmt.Errorf("chat request returned status %d", resp.StatusCode)
	}

	return decoded.Response, nil
}
