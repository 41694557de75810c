package ports

import "context"

// GenerateParams carries the model parameters for an image generation call.
type GenerateParams struct {
	Prompt      string
	Model       string
	AspectRatio string
	Size        string
	Count       int
}

// EditParams carries the model parameters for an image edit call.
type EditParams struct {
	Prompt string
	Model  string
}

// ImageProvider is the external model provider, treated as an opaque RPC.
// The API key is supplied per call; latency and timeout policy belong to the
// caller's context.
type ImageProvider interface {
	Generate(ctx context.Context, apiKey string, params GenerateParams) ([][]byte, error)
	Edit(ctx context.Context, apiKey string, params EditParams, source []byte) ([][]byte, error)
}
