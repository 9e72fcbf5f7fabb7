package domain

import (
	"fmt"
	"strings"
)

// ThingID identifies what a tuning belongs to: "blend:<id>", "radio" or "random".
type ThingID string

const (
	ThingRadio  ThingID = "radio"
	ThingRandom ThingID = "random"
)

// BlendThing returns the tuning key of a named blend.
func BlendThing(blendID string) ThingID {
	return ThingID("blend:" + blendID)
}

// Tuning maps attribute ids to raw values. Absent ids mean "use the default".
type Tuning map[string]float64

// TuningProfile holds one Tuning per thing the listener has played.
type TuningProfile map[ThingID]Tuning

func (p TuningProfile) tuning(thing ThingID) Tuning {
	t, ok := p[thing]
	if !ok {
		t = Tuning{}
		p[thing] = t
	}
	return t
}

// Value reports the stored raw value of an attribute for a thing.
func (p TuningProfile) Value(thing ThingID, attributeID string) (float64, bool) {
	v, ok := p[thing][attributeID]
	return v, ok
}

// Snapshot returns a copy of the thing's tuning, or nil when nothing is stored.
func (p TuningProfile) Snapshot(thing ThingID) Tuning {
	t := p[thing]
	if len(t) == 0 {
		return nil
	}
	out := make(Tuning, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// Increase moves the attribute up by one step. An unset attribute starts from its default.
// Returns false when the attribute already sits at its maximum.
func (p TuningProfile) Increase(thing ThingID, spec AttributeSpec) bool {
	t := p.tuning(thing)
	cur, ok := t[spec.ID]
	if !ok {
		t[spec.ID] = quantize(clamp(spec.Default+spec.Step, spec.Min, spec.Max))
		return true
	}
	if cur >= spec.Max {
		return false
	}
	t[spec.ID] = quantize(clamp(cur+spec.Step, spec.Min, spec.Max))
	return true
}

// Decrease moves the attribute down by one step. An unset attribute starts from its default.
// Returns false when the attribute already sits at its minimum.
func (p TuningProfile) Decrease(thing ThingID, spec AttributeSpec) bool {
	t := p.tuning(thing)
	cur, ok := t[spec.ID]
	if !ok {
		t[spec.ID] = quantize(clamp(spec.Default-spec.Step, spec.Min, spec.Max))
		return true
	}
	if cur <= spec.Min {
		return false
	}
	t[spec.ID] = quantize(clamp(cur-spec.Step, spec.Min, spec.Max))
	return true
}

// SetAbsolute stores raw clamped to the attribute's range.
func (p TuningProfile) SetAbsolute(thing ThingID, spec AttributeSpec, raw float64) {
	p.tuning(thing)[spec.ID] = quantize(clamp(raw, spec.Min, spec.Max))
}

// Reset removes the attribute so the default applies again.
func (p TuningProfile) Reset(thing ThingID, attributeID string) {
	if t, ok := p[thing]; ok {
		delete(t, attributeID)
	}
}

// ResetAll drops every attribute stored for the thing.
func (p TuningProfile) ResetAll(thing ThingID) {
	delete(p, thing)
}

// Announce describes the attribute's current state for speech.
func (p TuningProfile) Announce(thing ThingID, spec AttributeSpec) string {
	v, ok := p.Value(thing, spec.ID)
	if !ok {
		return fmt.Sprintf(SpeechResetTuneableAnnounce, spec.DisplayName)
	}
	return fmt.Sprintf(SpeechSetTuneableAnnounce, spec.DisplayName, Normalize(spec, v))
}

// Describe lists every stored attribute of the thing as "X is at N", in table order.
// Returns "" when nothing is tuned.
func (p TuningProfile) Describe(thing ThingID) string {
	t := p[thing]
	parts := make([]string, 0, len(t))
	for _, spec := range Attributes {
		if v, ok := t[spec.ID]; ok {
			parts = append(parts, fmt.Sprintf("%s is at %d", spec.DisplayName, Normalize(spec, v)))
		}
	}
	return strings.Join(parts, ", ")
}
