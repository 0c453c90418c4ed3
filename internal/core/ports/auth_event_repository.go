package ports

import (
	"context"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

// AuthEventRepository persists the authentication audit trail.
type AuthEventRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
