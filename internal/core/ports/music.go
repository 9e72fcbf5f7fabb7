package ports

import (
	"context"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
)

// MusicAPI is the remote music-control API, bound to one user's access token.
type MusicAPI interface {
	Playback(ctx context.Context) (domain.Playback, error)
	Devices(ctx context.Context) ([]domain.Device, error)
	// PlayBlend starts a blend and returns the attributes the remote applied.
	PlayBlend(ctx context.Context, play domain.BlendPlay) (map[string]float64, error)
	PlayRadio(ctx context.Context, play domain.RadioPlay) error
	// Dislike bans one or more artists from future recommendations.
	Dislike(ctx context.Context, artistIDs []string) error
	SaveTrack(ctx context.Context) error
	Fade(ctx context.Context, cmd domain.FadeCommand) error
}

// MusicConnector opens a MusicAPI for the access token of a turn.
type MusicConnector interface {
	Connect(accessToken string) MusicAPI
}
