package providers

import (
	"github.com/samber/do/v2"

	"github.com/pinstackapp/pinstack-server/internal/config"
	"github.com/pinstackapp/pinstack-server/internal/logger"
	"github.com/pinstackapp/pinstack-server/internal/suggest"
)

// SuggesterHandle carries the optional suggestion backend. Suggester is nil
// when AI suggestions are disabled; the categorization service treats nil as
// "always unfiled".
type SuggesterHandle struct {
	Suggester suggest.Suggester
}

// ProvideSuggester provides the AI suggestion client.
func ProvideSuggester(i do.Injector) (SuggesterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Suggest.Enabled {
		log.Info("AI suggestions disabled - unmatched items will stay unfiled")
		return SuggesterHandle{}, nil
	}

	client := suggest.NewClient(suggest.Config{
		BaseURL: cfg.Suggest.BaseURL,
		APIKey:  cfg.Suggest.APIKey,
		Model:   cfg.Suggest.Model,
		Timeout: cfg.Suggest.Timeout,
		RPS:     cfg.Suggest.RPS,
		Burst:   cfg.Suggest.Burst,
	}, log.Logger)

	log.Info("Suggestion backend configured",
		"model", cfg.Suggest.Model,
		"base_url", cfg.Suggest.BaseURL,
	)

	return SuggesterHandle{Suggester: client}, nil
}
