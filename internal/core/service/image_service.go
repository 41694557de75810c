package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/uwgen/media-api/internal/core/domain"
	"github.com/uwgen/media-api/internal/core/ports"
)

// ImageService orchestrates image generation and editing: it reads the
// caller's provider credential through the vault, invokes the external model,
// and persists every returned image to the caller's artifact tree.
type ImageService struct {
	vault    ports.VaultService
	provider ports.ImageProvider
	store    ports.ArtifactStore
	logger   zerolog.Logger
}

func NewImageService(vault ports.VaultService, provider ports.ImageProvider, store ports.ArtifactStore, logger zerolog.Logger) *ImageService {
	return &ImageService{vault: vault, provider: provider, store: store, logger: logger}
}

// Generate produces images for the prompt and stores them under the `gen`
// category, returning public gallery references in provider order.
func (s *ImageService) Generate(ctx context.Context, user *domain.User, params ports.GenerateParams) ([]string, error) {
	if params.Prompt == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.run(ctx, user, domain.CategoryGenerated, func(apiKey string) ([][]byte, error) {
		return s.provider.Generate(ctx, apiKey, params)
	})
}

// Edit transforms the uploaded source image and stores the results under the
// `edit` category.
func (s *ImageService) Edit(ctx context.Context, user *domain.User, params ports.EditParams, source []byte) ([]string, error) {
	if params.Prompt == "" || len(source) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	return s.run(ctx, user, domain.CategoryEdited, func(apiKey string) ([][]byte, error) {
		return s.provider.Edit(ctx, apiKey, params, source)
	})
}

func (s *ImageService) run(ctx context.Context, user *domain.User, category domain.Category, call func(apiKey string) ([][]byte, error)) ([]string, error) {
	apiKey, err := s.vault.ReadProviderKey(ctx, user)
	if err != nil {
		return nil, err
	}

	images, err := call(apiKey)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Str("category", string(category)).Msg("provider call failed")
		return nil, fmt.Errorf("image provider: %w", err)
	}

	refs := make([]string, 0, len(images))
	for _, img := range images {
		date, name, err := s.store.Write(category, user.ID, img)
		if err != nil {
			return nil, err
		}
		refs = append(refs, publicImagePath(category, date, name))
	}

	s.logger.Info().Str("user_id", user.ID).Str("category", string(category)).Int("count", len(refs)).Msg("images stored")
	return refs, nil
}
