package ports

import (
	"context"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
)

// ProfileRepository persists one UserRecord per user.
// Load returns an empty record for users never seen before.
type ProfileRepository interface {
	Load(ctx context.Context, userID string) (*domain.UserRecord, error)
	Save(ctx context.Context, userID string, rec *domain.UserRecord) error
}
