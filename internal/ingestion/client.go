package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// InternalHeader mirrors the shared-secret header checked by the backend,
// so the ingestion side can authenticate callbacks the same way.
const InternalHeader = "x-internal-request"

// Client asks an external ingestion endpoint for a document's status.
type Client interface {
	Process(ctx context.Context, documentID string) (status string, err error)
}

type httpClient struct {
	baseURL    string
	secret     string
	httpClient *http.Client
}

// NewClient builds an HTTP ingestion client against the configured base URL.
func NewClient(baseURL, secret string) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Process posts the document id and returns the status reported back.
func (c *httpClient) Process(ctx context.Context, documentID string) (string, error) {
	payload, err := json.Marshal(map[string]string{"documentId": documentID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(InternalHeader, c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Error
		if msg == "" {
			msg = resp.Status
		}
		return "", fmt.Errorf("ingestion error: %s", msg)
	}

	// The in-repo ingestion endpoint answers in the standard response
	// envelope; external mocks may reply with a flat {status} body.
	var body struct {
		Status string `json:"status"`
		Data   struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode ingestion response: %w", err)
	}
	if body.Data.Status != "" {
		return body.Data.Status, nil
	}
	return body.Status, nil
}
