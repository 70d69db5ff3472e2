package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Thin adapter over the external signature-matching service. No comparison
// logic lives here; the service's verdict is passed through as-is.

type VerifyResult struct {
	Success          bool       `json:"success"`
	Match            bool       `json:"match"`
	PredictedStudent *uuid.UUID `json:"predicted_student,omitempty"`
	Score            float64    `json:"score"`
	Message          string     `json:"message"`
}

type CompareResult struct {
	Success bool    `json:"success"`
	Match   bool    `json:"match"`
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

type VerifierClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

var defaultVerifier *VerifierClient

// InitVerifier is called once from main. Empty baseURL disables verification.
func InitVerifier(baseURL, apiKey string) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		defaultVerifier = nil
		return
	}
	defaultVerifier = NewVerifierClient(baseURL, apiKey)
}

func Verifier() *VerifierClient { return defaultVerifier }

func NewVerifierClient(baseURL, apiKey string) *VerifierClient {
	return &VerifierClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Verify forwards a captured image (+ optional session id) and returns the
// best-matching student with a confidence score.
func (v *VerifierClient) Verify(ctx context.Context, image []byte, filename string, sessionID *uuid.UUID) (*VerifyResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(image); err != nil {
		return nil, err
	}
	if sessionID != nil {
		if err := w.WriteField("session_id", sessionID.String()); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	var out VerifyResult
	if err := v.post(ctx, "/verify", w.FormDataContentType(), &body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compare scores two stored signatures against each other by object key.
func (v *VerifierClient) Compare(ctx context.Context, keyA, keyB string) (*CompareResult, error) {
	payload, err := json.Marshal(map[string]string{
		"signature_a": keyA,
		"signature_b": keyB,
	})
	if err != nil {
		return nil, err
	}

	var out CompareResult
	if err := v.post(ctx, "/compare", "application/json", bytes.NewReader(payload), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (v *VerifierClient) post(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	if v.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.APIKey)
	}

	res, err := v.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return fmt.Errorf("verifier returned %d: %s", res.StatusCode, strings.TrimSpace(string(raw)))
	}
	return json.NewDecoder(res.Body).Decode(out)
}
