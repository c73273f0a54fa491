package llm

import (
	"context"

	"github.com/mlindemann/menucard-importer/internal/common"
)

// reservedClient is the placeholder backend for future providers.
type reservedClient struct{}

func (reservedClient) GenerateText(_ context.Context, _ string, _ Options) (string, error) {
	return "", common.NewAppError("NOT_IMPLEMENTED", "reserved llm provider is not implemented yet", common.ErrCompletion)
}
