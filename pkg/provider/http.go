package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/inkstudio/inkstudio/pkg/models"
)

// ErrNoImage is returned when the service answers without image data.
var ErrNoImage = errors.New("response contained no image")

// HTTPProvider calls a JSON image generation endpoint.
type HTTPProvider struct {
	Endpoint       string
	RefineEndpoint string
	APIKey         string
	Template       string
	Client         *http.Client
	Logger         *log.Logger
}

// NewHTTPProvider builds a provider from settings. apiKey may be empty.
func NewHTTPProvider(settings models.ProviderSettings, apiKey string) *HTTPProvider {
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPProvider{
		Endpoint:       settings.Endpoint,
		RefineEndpoint: settings.RefineEndpoint,
		APIKey:         apiKey,
		Template:       settings.ElementPrompt,
		Client:         &http.Client{Timeout: timeout},
		Logger:         log.New(io.Discard, "", 0),
	}
}

type generateRequest struct {
	Prompt         string `json:"prompt"`
	NumberOfImages int    `json:"number_of_images,omitempty"`
	MimeType       string `json:"mime_type,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	ImageBytes     string `json:"image_bytes,omitempty"`
}

type generateResponse struct {
	Image      string `json:"image"`
	ImageBytes string `json:"image_bytes"`
	MimeType   string `json:"mime_type"`
	Error      string `json:"error"`
}

// GenerateElement asks the service for one square PNG of the described element.
func (p *HTTPProvider) GenerateElement(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Prompt:         ElementPrompt(p.Template, prompt),
		NumberOfImages: 1,
		MimeType:       "image/png",
		AspectRatio:    "1:1",
	}
	p.logf("[PROVIDER] Generating element: %q", prompt)
	return p.post(ctx, p.Endpoint, req, "image/png")
}

// Refine sends image and instructions to the refine endpoint and returns the new image
// with the original MIME type.
func (p *HTTPProvider) Refine(ctx context.Context, image, prompt string) (string, error) {
	if p.RefineEndpoint == "" {
		return "", fmt.Errorf("no refine endpoint configured")
	}
	mimeType, data, err := ParseDataURI(image)
	if err != nil {
		return "", err
	}
	req := generateRequest{
		Prompt:     prompt,
		MimeType:   mimeType,
		ImageBytes: base64.StdEncoding.EncodeToString(data),
	}
	p.logf("[PROVIDER] Refining image (%s, %d bytes): %q", mimeType, len(data), prompt)
	return p.post(ctx, p.RefineEndpoint, req, mimeType)
}

func (p *HTTPProvider) post(ctx context.Context, endpoint string, body generateRequest, defaultMime string) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		p.logf("[PROVIDER] request error: %v", err)
		return "", fmt.Errorf("failed to reach generation service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var out generateResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode < 300 {
			return "", fmt.Errorf("invalid response format: %w", err)
		}
	}

	if resp.StatusCode >= 300 {
		msg := strings.TrimSpace(out.Error)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		p.logf("[PROVIDER] service returned %d: %s", resp.StatusCode, msg)
		return "", fmt.Errorf("generation service returned %d: %s", resp.StatusCode, msg)
	}

	switch {
	case out.Image != "":
		return out.Image, nil
	case out.ImageBytes != "":
		mimeType := out.MimeType
		if mimeType == "" {
			mimeType = defaultMime
		}
		return "data:" + mimeType + ";base64," + out.ImageBytes, nil
	}
	return "", ErrNoImage
}

func (p *HTTPProvider) logf(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}
