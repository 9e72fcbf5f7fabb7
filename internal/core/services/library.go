package services

import (
	"context"
	"fmt"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/core/fuzzy"
)

func (s *Skill) dislike(ctx context.Context, t *turn) (domain.Response, error) {
	playback, err := t.api.Playback(ctx)
	if err != nil {
		return domain.Response{}, err
	}
	artists := playback.Artists
	if len(artists) == 0 {
		return domain.Speak(domain.SpeechNothingPlaying), nil
	}

	var disliked []domain.Artist
	if slot, ok := t.req.Slot("artist"); ok {
		best, _ := fuzzy.BestMatch(slot.Value, artists, func(a domain.Artist) string { return a.Name })
		disliked = []domain.Artist{best}
	} else {
		disliked = artists
	}

	ids := make([]string, len(disliked))
	names := make([]string, len(disliked))
	for i, a := range disliked {
		ids[i] = a.ID
		names[i] = a.Name
	}
	if err := t.api.Dislike(ctx, ids); err != nil {
		return domain.Response{}, err
	}
	if err := s.replay(ctx, t); err != nil {
		return domain.Response{}, err
	}
	return domain.Speak(fmt.Sprintf(domain.SpeechDislikedArtist, domain.Listify(names))), nil
}

func (s *Skill) like(ctx context.Context, t *turn) (domain.Response, error) {
	if err := t.api.SaveTrack(ctx); err != nil {
		return domain.Response{}, err
	}
	return domain.Speak(domain.SpeechSavingTrack), nil
}
