package llm

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mlindemann/menucard-importer/internal/common"
)

// NewClient resolves a provider identifier to a concrete backend.
// Resolution happens once per processing session; a missing credential or an
// unknown identifier is a configuration error, never retried.
func NewClient(cfg Config, logger *slog.Logger) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenAI:
		c, err := NewOpenAIClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderReserved:
		return &reservedClient{}, nil
	default:
		return nil, common.NewAppError("CONFIG_ERROR",
			fmt.Sprintf("unsupported llm provider %q", cfg.Provider), common.ErrConfiguration)
	}
}
