package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/core/fuzzy"
	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
)

// resolveDevice picks the playback device for this voice device and remembers it
// in the session. It returns a prompt, and true, only when the user must choose
// between several speakers.
func (s *Skill) resolveDevice(ctx context.Context, t *turn) (domain.Response, bool) {
	devices, err := t.api.Devices(ctx)
	if err != nil {
		t.log.Warn("listing devices failed, playing on the default device", zap.Error(err))
		t.sink.Capture(ctx, ports.Event{
			Kind:      ports.EventError,
			TurnID:    t.id,
			UserID:    t.req.UserID,
			Intent:    intentLabel(t.req),
			RawIntent: t.req.Intent.Name,
			Outcome:   ports.OutcomeRemoteFailure,
			Err:       fmt.Errorf("%w: %w", domain.ErrDeviceFetch, err),
		})
		delete(t.session, t.req.DeviceID)
		return domain.Response{}, false
	}

	var speakers, others []domain.Device
	for _, d := range devices {
		if d.IsSpeaker() {
			speakers = append(speakers, d)
		} else {
			others = append(others, d)
		}
	}

	switch {
	case len(speakers) == 1:
		t.session[t.req.DeviceID] = speakers[0].Name
	case len(speakers) > 1:
		return s.chooseDevice(t, speakers, devices, true)
	case len(others) == 1:
		t.session[t.req.DeviceID] = others[0].Name
	case len(others) > 1:
		if _, ok := t.req.Slot("device"); ok {
			return s.chooseDevice(t, others, devices, false)
		}
	}
	return domain.Response{}, false
}

// chooseDevice applies the selection policy among several candidates.
func (s *Skill) chooseDevice(t *turn, candidates, all []domain.Device, mayPrompt bool) (domain.Response, bool) {
	anchor := t.req.DeviceID
	saved, hasSaved := t.session[anchor]

	if !hasSaved || saved == "" {
		if slot, ok := t.req.Slot("device"); ok {
			best, _ := fuzzy.BestMatch(slot.Value, candidates, deviceName)
			t.session[anchor] = best.Name
			return domain.Response{}, false
		}
		if mayPrompt {
			return devicePrompt(candidates), true
		}
		return domain.Response{}, false
	}

	for _, d := range all {
		if d.Name == saved {
			return domain.Response{}, false
		}
	}

	// The remembered device is gone: fall back to the candidate that is playing,
	// then to one that accepts remote control.
	t.log.Info("remembered device unavailable", zap.String("device", saved))
	if d, ok := firstDevice(candidates, func(d domain.Device) bool { return d.IsActive }); ok {
		t.session[anchor] = d.Name
	} else if d, ok := firstDevice(candidates, func(d domain.Device) bool { return !d.IsRestricted }); ok {
		t.session[anchor] = d.Name
	} else {
		delete(t.session, anchor)
	}
	return domain.Response{}, false
}

func devicePrompt(speakers []domain.Device) domain.Response {
	names := make([]string, len(speakers))
	for i, d := range speakers {
		names[i] = d.Name
	}
	choose := fmt.Sprintf(domain.SpeechChooseDevice, domain.Listify(names))

	resp := domain.Ask(domain.SpeechWhatDevice+" "+choose, choose)
	resp.ElicitSlot = "device"
	return resp
}

func firstDevice(devices []domain.Device, match func(domain.Device) bool) (domain.Device, bool) {
	for _, d := range devices {
		if match(d) {
			return d, true
		}
	}
	return domain.Device{}, false
}

func deviceName(d domain.Device) string { return d.Name }
