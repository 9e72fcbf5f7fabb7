package services

import (
	"context"
	"strconv"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
)

// tuneOp mutates the tuning of thing for the attribute named by the "tuneable" slot.
type tuneOp func(p domain.TuningProfile, thing domain.ThingID, spec domain.AttributeSpec, reversed bool)

// tuningHandler resolves the tuneable, applies op, replays the last thing and
// announces the attribute's new state.
func tuningHandler(op tuneOp) handlerFunc {
	return func(s *Skill, ctx context.Context, t *turn) (domain.Response, error) {
		cur, ok := t.record.Current()
		if !ok {
			return domain.Speak(domain.SpeechNothingPlaying), nil
		}
		spec, reversed, err := resolveTuneable(t)
		if err != nil {
			return domain.Response{}, err
		}

		thing := cur.Thing()
		op(t.record.Attributes, thing, spec, reversed)
		t.record.MarkDirty()

		if err := s.replay(ctx, t); err != nil {
			return domain.Response{}, err
		}
		return domain.Speak(t.record.Attributes.Announce(thing, spec)), nil
	}
}

func resolveTuneable(t *turn) (domain.AttributeSpec, bool, error) {
	value, err := t.resolve("tuneable")
	if err != nil {
		return domain.AttributeSpec{}, false, err
	}
	spec, reversed, ok := domain.LookupAttribute(value.ID)
	if !ok {
		return domain.AttributeSpec{}, false, &domain.UnresolvedSlotError{Slot: "tuneable"}
	}
	return spec, reversed, nil
}

func (s *Skill) increaseAttribute(ctx context.Context, t *turn) (domain.Response, error) {
	return tuningHandler(func(p domain.TuningProfile, thing domain.ThingID, spec domain.AttributeSpec, reversed bool) {
		if reversed {
			p.Decrease(thing, spec)
			return
		}
		p.Increase(thing, spec)
	})(s, ctx, t)
}

func (s *Skill) decreaseAttribute(ctx context.Context, t *turn) (domain.Response, error) {
	return tuningHandler(func(p domain.TuningProfile, thing domain.ThingID, spec domain.AttributeSpec, reversed bool) {
		if reversed {
			p.Increase(thing, spec)
			return
		}
		p.Decrease(thing, spec)
	})(s, ctx, t)
}

func (s *Skill) maxAttribute(ctx context.Context, t *turn) (domain.Response, error) {
	return tuningHandler(func(p domain.TuningProfile, thing domain.ThingID, spec domain.AttributeSpec, reversed bool) {
		if reversed {
			p.SetAbsolute(thing, spec, spec.Min)
			return
		}
		p.SetAbsolute(thing, spec, spec.Max)
	})(s, ctx, t)
}

func (s *Skill) minAttribute(ctx context.Context, t *turn) (domain.Response, error) {
	return tuningHandler(func(p domain.TuningProfile, thing domain.ThingID, spec domain.AttributeSpec, reversed bool) {
		if reversed {
			p.SetAbsolute(thing, spec, spec.Max)
			return
		}
		p.SetAbsolute(thing, spec, spec.Min)
	})(s, ctx, t)
}

func (s *Skill) resetAttribute(ctx context.Context, t *turn) (domain.Response, error) {
	return tuningHandler(func(p domain.TuningProfile, thing domain.ThingID, spec domain.AttributeSpec, _ bool) {
		p.Reset(thing, spec.ID)
	})(s, ctx, t)
}

func (s *Skill) tuneAttribute(ctx context.Context, t *turn) (domain.Response, error) {
	slot, ok := t.req.Slot("tuneableValue")
	if !ok {
		return domain.Response{}, &domain.UnresolvedSlotError{Slot: "tuneableValue"}
	}
	display, err := strconv.Atoi(slot.Value)
	if err != nil {
		return domain.Response{}, &domain.UnresolvedSlotError{Slot: "tuneableValue"}
	}
	return tuningHandler(func(p domain.TuningProfile, thing domain.ThingID, spec domain.AttributeSpec, reversed bool) {
		p.SetAbsolute(thing, spec, domain.Denormalize(spec, display, reversed))
	})(s, ctx, t)
}

func (s *Skill) resetAllAttributes(ctx context.Context, t *turn) (domain.Response, error) {
	cur, ok := t.record.Current()
	if !ok {
		return domain.Speak(domain.SpeechNothingPlaying), nil
	}
	t.record.Attributes.ResetAll(cur.Thing())
	t.record.MarkDirty()

	if err := s.replay(ctx, t); err != nil {
		return domain.Response{}, err
	}
	return domain.Speak(domain.SpeechResetTuning), nil
}

func (s *Skill) listTuning(_ context.Context, t *turn) (domain.Response, error) {
	cur, ok := t.record.Current()
	if !ok {
		return domain.Speak(domain.SpeechNothingPlaying), nil
	}
	described := t.record.Attributes.Describe(cur.Thing())
	if described == "" {
		return domain.Speak(domain.SpeechEmptyTuning), nil
	}
	return domain.Ask(described, ""), nil
}

func (s *Skill) listTuneables(context.Context, *turn) (domain.Response, error) {
	return domain.Speak(domain.SpeechTuneableList), nil
}
