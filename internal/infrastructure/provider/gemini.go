// Package provider holds the client for the external image model. The
// service treats it as an opaque RPC: request in, PNG bytes out. Timeout and
// retry policy belong to the caller's context.
package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/uwgen/media-api/internal/core/ports"
)

// GeminiClient calls the Gemini image endpoints with a per-request API key.
// Implements ports.ImageProvider.
type GeminiClient struct {
	baseURL string
	client  *http.Client
}

func NewGeminiClient(baseURL string) *GeminiClient {
	return &GeminiClient{baseURL: baseURL, client: &http.Client{}}
}

type generateRequest struct {
	Prompt      string `json:"prompt"`
	Model       string `json:"model,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Size        string `json:"size,omitempty"`
	Count       int    `json:"count,omitempty"`
	SourceImage string `json:"source_image,omitempty"`
}

type generateResponse struct {
	Images []string `json:"images"`
}

// Generate requests images for the given parameters and decodes the
// returned base64 payloads.
func (g *GeminiClient) Generate(ctx context.Context, apiKey string, params ports.GenerateParams) ([][]byte, error) {
	return g.call(ctx, apiKey, "/v1beta/images:generate", generateRequest{
		Prompt:      params.Prompt,
		Model:       params.Model,
		AspectRatio: params.AspectRatio,
		Size:        params.Size,
		Count:       params.Count,
	})
}

// Edit requests an edit of the supplied source image.
func (g *GeminiClient) Edit(ctx context.Context, apiKey string, params ports.EditParams, source []byte) ([][]byte, error) {
	return g.call(ctx, apiKey, "/v1beta/images:edit", generateRequest{
		Prompt:      params.Prompt,
		Model:       params.Model,
		SourceImage: base64.StdEncoding.EncodeToString(source),
	})
}

func (g *GeminiClient) call(ctx context.Context, apiKey, path string, payload generateRequest) ([][]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("provider: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("provider: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider: call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider: unexpected status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("provider: decode response: %w", err)
	}

	images := make([][]byte, 0, len(decoded.Images))
	for _, img := range decoded.Images {
		raw, err := base64.StdEncoding.DecodeString(img)
		if err != nil {
			return nil, fmt.Errorf("provider: decode image payload: %w", err)
		}
		images = append(images, raw)
	}
	return images, nil
}
