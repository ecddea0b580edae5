package llm

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"github.com/ternarybob/reperio/internal/interfaces"
)

// NewService creates an LLM service for the configured default provider,
// falling back to whichever provider has an API key. A nil service with a
// nil error means no provider is configured; callers degrade to heuristic
// output in that case.
func NewService(config *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	hasGemini := config.Gemini.APIKey != ""
	hasClaude := config.Claude.APIKey != ""

	if !hasGemini && !hasClaude {
		logger.Warn().Msg("No LLM provider configured - AI structuring disabled")
		return nil, nil
	}

	preferred := config.LLM.DefaultProvider
	if preferred == common.LLMProviderGemini && !hasGemini {
		preferred = common.LLMProviderClaude
	}
	if preferred == common.LLMProviderClaude && !hasClaude {
		preferred = common.LLMProviderGemini
	}

	switch preferred {
	case common.LLMProviderClaude:
		return NewClaudeService(&config.Claude, logger)
	default:
		return NewGeminiService(&config.Gemini, logger)
	}
}
