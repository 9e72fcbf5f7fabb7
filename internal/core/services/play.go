package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
)

func (s *Skill) playBlend(ctx context.Context, t *turn) (domain.Response, error) {
	value, err := t.resolve("blend")
	if err != nil {
		return domain.Response{}, err
	}
	if prompt, ok := s.resolveDevice(ctx, t); ok {
		return prompt, nil
	}

	blend := domain.Blend{ID: value.ID, Name: value.Name}
	t.record.SetBlend(blend)
	if err := s.startBlend(ctx, t, blend, volume(t.req), true); err != nil {
		return domain.Response{}, err
	}

	return domain.Response{
		Speech: blendSpeech(blend),
		Card:   domain.SimpleCard("Playing Blend", titleCase(blend.Name)),
	}, nil
}

func (s *Skill) playRandom(ctx context.Context, t *turn) (domain.Response, error) {
	if prompt, ok := s.resolveDevice(ctx, t); ok {
		return prompt, nil
	}

	t.record.SetRandom()
	if err := s.startBlend(ctx, t, domain.Random{}.Blend(), volume(t.req), true); err != nil {
		return domain.Response{}, err
	}

	return domain.Response{
		Speech: domain.SpeechPlayingRandom,
		Card:   domain.SimpleCard("Playing a fresh playlist", "The music will be based on your listening history"),
	}, nil
}

// radioHandler plays a radio station seeded from the named slot.
func radioHandler(slot string, kind domain.SeedKind) handlerFunc {
	return func(s *Skill, ctx context.Context, t *turn) (domain.Response, error) {
		value, ok := t.req.Slot(slot)
		if !ok {
			return domain.Response{}, &domain.UnresolvedSlotError{Slot: slot}
		}
		seeds := domain.RadioSeeds{Kind: kind, Names: domain.SplitSeeds(value.Value)}
		if len(seeds.Names) == 0 {
			return domain.Response{}, &domain.UnresolvedSlotError{Slot: slot}
		}

		if prompt, ok := s.resolveDevice(ctx, t); ok {
			return prompt, nil
		}

		t.record.SetRadioSeeds(seeds)
		if err := s.startRadio(ctx, t, seeds, volume(t.req)); err != nil {
			return domain.Response{}, err
		}
		return domain.Speak(domain.SpeechPlayingRadio), nil
	}
}

// startBlend plays a blend with the thing's stored tuning. When cache is set and
// the thing has no tuning yet, the attributes the remote chose become its tuning.
func (s *Skill) startBlend(ctx context.Context, t *turn, blend domain.Blend, vol *int, cache bool) error {
	thing := blend.Thing()
	stored := t.record.Attributes.Snapshot(thing)

	applied, err := t.api.PlayBlend(ctx, domain.BlendPlay{
		BlendID:    blend.ID,
		Device:     t.device(),
		Attributes: stored,
		Volume:     vol,
	})
	if err != nil {
		return err
	}
	if cache && stored == nil {
		t.record.CacheAttributes(thing, applied)
	}
	return nil
}

func (s *Skill) startRadio(ctx context.Context, t *turn, seeds domain.RadioSeeds, vol *int) error {
	return t.api.PlayRadio(ctx, domain.RadioPlay{
		Seeds:      seeds,
		Device:     t.device(),
		Attributes: t.record.Attributes.Snapshot(domain.ThingRadio),
		Volume:     vol,
	})
}

// replay silently restarts the last played thing so new tuning takes effect.
// With nothing played yet it starts the random blend. Replays never cache the
// remote's attributes.
func (s *Skill) replay(ctx context.Context, t *turn) error {
	cur, ok := t.record.Current()
	if !ok {
		return s.startBlend(ctx, t, domain.Random{}.Blend(), nil, false)
	}
	switch v := cur.(type) {
	case domain.Blend:
		return s.startBlend(ctx, t, v, nil, false)
	case domain.RadioSeeds:
		return s.startRadio(ctx, t, v, nil)
	default:
		return s.startBlend(ctx, t, domain.Random{}.Blend(), nil, false)
	}
}

// volume reads the requested playback volume in percent. volume_percent wins
// over the 0..10 volume slot.
func volume(req domain.Request) *int {
	var v int
	if slot, ok := req.Slot("volume_percent"); ok {
		n, err := strconv.Atoi(slot.Value)
		if err != nil {
			return nil
		}
		v = n
	} else if slot, ok := req.Slot("volume"); ok {
		n, err := strconv.Atoi(slot.Value)
		if err != nil {
			return nil
		}
		v = n * 10
	} else {
		return nil
	}
	v = min(max(v, 0), 100)
	return &v
}

func blendSpeech(b domain.Blend) string {
	if b.ID == domain.RandomBlendID {
		return domain.SpeechPlayingRandom
	}
	return fmt.Sprintf(domain.SpeechPlayingBlend, b.Name)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
