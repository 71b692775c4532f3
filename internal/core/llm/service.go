package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
)

// Service wraps the LLM provider untuk dependency injection.
type Service struct {
	provider Provider
}

// NewService creates the intent service with the provider from environment.
func NewService() (*Service, error) {
	cfg, err := LoadProviderFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	log.Info().Str("provider", provider.GetProviderName()).Str("model", cfg.Model).Msg("🤖 LLM provider ready")

	return &Service{provider: provider}, nil
}

// NewServiceWithProvider creates the service with a custom provider (for testing).
func NewServiceWithProvider(provider Provider) *Service {
	return &Service{provider: provider}
}

// InterpretQuery asks the model to classify the user's question against the
// dataset schema. It never sends raw data, only column metadata and a few
// sample values. A parse failure degrades to the text fallback intent rather
// than failing the request.
func (s *Service) InterpretQuery(ctx context.Context, query string, table models.Table, types models.ColumnTypeMap) (*models.QueryIntent, error) {
	systemPrompt := BuildIntentPrompt(table, types)

	response, err := s.provider.GenerateResponse(ctx, systemPrompt, query)
	if err != nil {
		return nil, fmt.Errorf("intent interpretation failed: %w", err)
	}

	intent, err := ParseIntent(response)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Intent parse failed, using text fallback")
		return FallbackIntent(), nil
	}

	return intent, nil
}

// GetProviderName returns the active provider name.
func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
