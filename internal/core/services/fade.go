package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
)

// fadeDefaults are the values used when the user leaves a slot empty.
// A nil volume means "depends on direction".
type fadeDefaults struct {
	minutes int
	volume  *int
}

func intPtr(v int) *int { return &v }

var (
	fadeIntentDefaults = fadeDefaults{minutes: 5}
	fadeUpDefaults     = fadeDefaults{minutes: 2, volume: intPtr(70)}
	fadeDownDefaults   = fadeDefaults{minutes: 20, volume: intPtr(0)}
)

// fadeVolumeByDirection applies when neither the user nor the intent sets a volume.
var fadeVolumeByDirection = map[domain.FadeDirection]int{
	domain.FadeUp:   60,
	domain.FadeDown: 0,
}

// fadeSlots reads duration and volume. ok is false when the duration is
// outside 1..FadeLimitMinutes.
func fadeSlots(t *turn, def fadeDefaults) (minutes int, vol *int, ok bool, err error) {
	minutes, vol = def.minutes, def.volume

	if slot, present := t.req.Slot("duration"); present {
		n, err := strconv.Atoi(slot.Value)
		if err != nil {
			return 0, nil, false, &domain.UnresolvedSlotError{Slot: "duration"}
		}
		minutes = n
	}
	if slot, present := t.req.Slot("volume"); present {
		n, err := strconv.Atoi(slot.Value)
		if err != nil {
			return 0, nil, false, &domain.UnresolvedSlotError{Slot: "volume"}
		}
		vol = &n
	}

	if minutes < 1 || minutes > domain.FadeLimitMinutes {
		return minutes, vol, false, nil
	}
	if vol != nil {
		clamped := min(max(*vol, 0), 100)
		vol = &clamped
	}
	return minutes, vol, true, nil
}

func (s *Skill) fade(ctx context.Context, t *turn) (domain.Response, error) {
	minutes, vol, ok, err := fadeSlots(t, fadeIntentDefaults)
	if err != nil {
		return domain.Response{}, err
	}
	if !ok {
		return domain.Speak(domain.SpeechFadeLimitExceeded), nil
	}

	value, err := t.resolve("direction")
	if err != nil {
		return domain.Response{}, err
	}
	direction := domain.FadeUp
	if value.ID == "down" {
		direction = domain.FadeDown
	}

	var speech string
	if vol != nil {
		speech = fmt.Sprintf("Fading volume %s to %d percent in %d minutes", direction, *vol, minutes)
	} else {
		speech = fmt.Sprintf("Fading volume %s in %d minutes", direction, minutes)
		vol = intPtr(fadeVolumeByDirection[direction])
	}

	if err := t.api.Fade(ctx, domain.FadeCommand{Direction: direction, StopVolume: *vol, Minutes: minutes}); err != nil {
		return domain.Response{}, err
	}
	return domain.Response{
		Speech: speech,
		Card:   domain.SimpleCard("Volume fade", fmt.Sprintf("Fading volume %s to %d%% in %d minutes", direction, *vol, minutes)),
	}, nil
}

func (s *Skill) fadeUp(ctx context.Context, t *turn) (domain.Response, error) {
	return s.fixedFade(ctx, t, domain.FadeUp, fadeUpDefaults, "Fading up")
}

func (s *Skill) fadeDown(ctx context.Context, t *turn) (domain.Response, error) {
	return s.fixedFade(ctx, t, domain.FadeDown, fadeDownDefaults, "Sleep timer")
}

func (s *Skill) fixedFade(ctx context.Context, t *turn, direction domain.FadeDirection, def fadeDefaults, cardTitle string) (domain.Response, error) {
	minutes, vol, ok, err := fadeSlots(t, def)
	if err != nil {
		return domain.Response{}, err
	}
	if !ok {
		return domain.Speak(domain.SpeechFadeLimitExceeded), nil
	}

	if err := t.api.Fade(ctx, domain.FadeCommand{Direction: direction, StopVolume: *vol, Minutes: minutes}); err != nil {
		return domain.Response{}, err
	}
	return domain.Response{
		Speech: fmt.Sprintf("Fading volume %s in %d minutes", direction, minutes),
		Card:   domain.SimpleCard(cardTitle, fmt.Sprintf("00:%02d:00", minutes)),
	}, nil
}
