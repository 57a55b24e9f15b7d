// internal/domain/verification/verifier.go
package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
)

// Verdict is the quality label the inference service assigns to a seed image
type Verdict string

const (
	HighQuality   Verdict = "High Quality"
	MediumQuality Verdict = "Medium Quality"
	LowQuality    Verdict = "Low Quality"
)

var (
	ErrVerifierDisabled = errors.New("seed quality verification is not configured")
	ErrMissingImage     = errors.New("no image to verify")
	ErrUnknownVerdict   = errors.New("unknown quality verdict")
)

// ParseVerdict accepts the service's label case-insensitively
func ParseVerdict(label string) (Verdict, error) {
	for _, v := range []Verdict{HighQuality, MediumQuality, LowQuality} {
		if strings.EqualFold(strings.TrimSpace(label), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVerdict, label)
}

// Result is a completed verification
type Result struct {
	Verdict    Verdict `json:"quality"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Notice is the message shown to the seller
func (r Result) Notice() string {
	return fmt.Sprintf("AI Verification Complete: %s", r.Verdict)
}

// Image is the photo submitted for verification
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Verifier grades a seed image
type Verifier interface {
	Verify(ctx context.Context, img *Image) (*Result, error)
}

type inferenceResponse struct {
	Quality    string  `json:"quality"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
}

// HTTPVerifier calls an external inference service
type HTTPVerifier struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewHTTPVerifier creates a verifier for the configured endpoint
func NewHTTPVerifier(cfg *config.Config, logger *logrus.Logger) *HTTPVerifier {
	return &HTTPVerifier{
		endpoint: cfg.Verification.Endpoint,
		apiKey:   cfg.Verification.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Verification.Timeout,
		},
		logger: logger,
	}
}

// Verify uploads the image and returns the service's verdict
func (v *HTTPVerifier) Verify(ctx context.Context, img *Image) (*Result, error) {
	if v.endpoint == "" {
		return nil, ErrVerifierDisabled
	}
	if img == nil || img.Body == nil {
		return nil, ErrMissingImage
	}

	body, contentType, err := encodeImage(img)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if v.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.apiKey)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	var out inferenceResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && out.Error != "" {
			return nil, fmt.Errorf("verification service error (status %d): %s", resp.StatusCode, out.Error)
		}
		return nil, fmt.Errorf("verification service error (status %d)", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode verification response: %w", decodeErr)
	}

	verdict, err := ParseVerdict(out.Quality)
	if err != nil {
		return nil, err
	}

	v.logger.WithFields(logrus.Fields{
		"verdict":    verdict,
		"confidence": out.Confidence,
	}).Info("seed image verified")

	return &Result{Verdict: verdict, Confidence: out.Confidence}, nil
}

func encodeImage(img *Image) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := img.Filename
	if filename == "" {
		filename = "seed"
	}
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	if _, err := io.Copy(part, img.Body); err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
