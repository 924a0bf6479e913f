// Package providers builds the live ScoreProvider selected by configuration.
package providers

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/chorale/internal/adapters/cpdl"
	"github.com/ewilliams-labs/chorale/internal/adapters/openai"
	"github.com/ewilliams-labs/chorale/internal/adapters/websearch"
	"github.com/ewilliams-labs/chorale/internal/config"
	"github.com/ewilliams-labs/chorale/internal/core/ports"
)

// ForConfig returns the live provider for cfg.APIType. A nil provider with
// a nil error means the capability is deliberately absent (mock mode, or
// credentials missing for a keyed backend) and every search should use the
// fallback path.
func ForConfig(cfg config.Config, logger *zap.Logger) (ports.ScoreProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.APIType {
	case config.APITypeCPDL, "":
		client := cpdl.NewClient(nil, cfg.CPDLBaseURL, logger)
		return cpdl.NewProvider(client, cfg.CPDLBaseURL), nil

	case config.APITypeMock:
		return nil, nil

	case config.APITypeWebSearch:
		if cfg.SearchClientID == "" || cfg.SearchClientSecret == "" || cfg.SearchBaseURL == "" {
			logger.Warn("web_search selected but credentials missing, catalog only")
			return nil, nil
		}
		return websearch.NewClient(cfg.SearchClientID, cfg.SearchClientSecret, cfg.SearchBaseURL), nil

	case config.APITypeOpenAI:
		if cfg.APIKey == "" {
			logger.Warn("openai selected but no API key, catalog only")
			return nil, nil
		}
		return openai.NewProvider(cfg.APIKey, cfg.OpenAIModel), nil

	default:
		return nil, fmt.Errorf("unknown api type: %s (allowed: cpdl, mock, web_search, openai)", cfg.APIType)
	}
}
