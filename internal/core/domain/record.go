package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RandomBlendID is the blend id the remote API plays as "something you might like".
const RandomBlendID = "random"

// LastThing is the most recently played thing: a Blend, RadioSeeds or Random.
type LastThing interface {
	Thing() ThingID
}

// Blend is a named recommendation preset.
type Blend struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Thing returns the tuning key of the blend.
func (b Blend) Thing() ThingID {
	if b.ID == RandomBlendID {
		return ThingRandom
	}
	return BlendThing(b.ID)
}

// Random is the history-based blend.
type Random struct{}

// Thing returns ThingRandom.
func (Random) Thing() ThingID { return ThingRandom }

// Blend returns the blend reference the remote API expects for random playback.
func (Random) Blend() Blend {
	return Blend{ID: RandomBlendID, Name: "Random"}
}

// SeedKind is the kind of radio seed.
type SeedKind string

const (
	SeedArtist SeedKind = "artist"
	SeedTrack  SeedKind = "track"
	SeedGenre  SeedKind = "genre"
)

// RadioSeeds is a radio station seeded by artist, track or genre names.
type RadioSeeds struct {
	Kind  SeedKind
	Names []string
}

// Thing returns ThingRadio.
func (RadioSeeds) Thing() ThingID { return ThingRadio }

// Field is the request and persistence key of the seeds, e.g. "artist_names".
func (s RadioSeeds) Field() string {
	return string(s.Kind) + "_names"
}

// MarshalJSON encodes the seeds as {"<kind>_names": [...]}.
func (s RadioSeeds) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{s.Field(): s.Names})
}

// UnmarshalJSON decodes the {"<kind>_names": [...]} form.
func (s *RadioSeeds) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, kind := range []SeedKind{SeedArtist, SeedTrack, SeedGenre} {
		if names, ok := raw[string(kind)+"_names"]; ok {
			s.Kind = kind
			s.Names = names
			return nil
		}
	}
	return fmt.Errorf("radio seeds: no known seed field in %s", data)
}

// SplitSeeds turns "a, b and c" into ["a", "b", "c"]. Only the final " and " splits.
func SplitSeeds(value string) []string {
	parts := strings.Split(value, ",")
	last := parts[len(parts)-1]
	parts = parts[:len(parts)-1]
	parts = append(parts, strings.SplitN(last, " and ", 2)...)

	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// UserRecord is the persisted per-user state: the last played thing and its tunings.
// At most one of LastBlend and LastRadio is set.
type UserRecord struct {
	LastBlend  *Blend
	LastRadio  *RadioSeeds
	Attributes TuningProfile

	dirty bool
}

// NewUserRecord returns an empty record.
func NewUserRecord() *UserRecord {
	return &UserRecord{Attributes: TuningProfile{}}
}

// Dirty reports whether the record changed since it was loaded.
func (r *UserRecord) Dirty() bool { return r.dirty }

// MarkDirty flags the record for saving at the end of the turn.
func (r *UserRecord) MarkDirty() { r.dirty = true }

// Current returns the last played thing, or false when nothing was played yet.
func (r *UserRecord) Current() (LastThing, bool) {
	switch {
	case r.LastBlend != nil && r.LastBlend.ID == RandomBlendID:
		return Random{}, true
	case r.LastBlend != nil:
		return *r.LastBlend, true
	case r.LastRadio != nil:
		return *r.LastRadio, true
	}
	return nil, false
}

// SetBlend records b as last played and drops any tuning cached for it.
func (r *UserRecord) SetBlend(b Blend) {
	r.LastBlend = &b
	r.LastRadio = nil
	r.Attributes.ResetAll(b.Thing())
	r.dirty = true
}

// SetRandom records the random blend as last played.
func (r *UserRecord) SetRandom() {
	r.SetBlend(Random{}.Blend())
}

// SetRadioSeeds records a radio station as last played.
func (r *UserRecord) SetRadioSeeds(s RadioSeeds) {
	r.LastRadio = &s
	r.LastBlend = nil
	r.Attributes.ResetAll(ThingRadio)
	r.dirty = true
}

// CacheAttributes stores the attributes the remote applied to a thing's first play.
func (r *UserRecord) CacheAttributes(thing ThingID, applied map[string]float64) {
	if len(applied) == 0 {
		return
	}
	t := make(Tuning, len(applied))
	for k, v := range applied {
		t[k] = quantize(v)
	}
	r.Attributes[thing] = t
	r.dirty = true
}

type recordJSON struct {
	LastBlend  *Blend                       `json:"last_blend,omitempty"`
	LastRadio  *RadioSeeds                  `json:"last_radio,omitempty"`
	Attributes map[string]map[string]string `json:"attributes,omitempty"`
}

// MarshalJSON stores attribute values as fixed two-decimal strings.
func (r *UserRecord) MarshalJSON() ([]byte, error) {
	out := recordJSON{LastBlend: r.LastBlend, LastRadio: r.LastRadio}
	if len(r.Attributes) > 0 {
		out.Attributes = make(map[string]map[string]string, len(r.Attributes))
		for thing, t := range r.Attributes {
			if len(t) == 0 {
				continue
			}
			values := make(map[string]string, len(t))
			for id, v := range t {
				values[id] = strconv.FormatFloat(v, 'f', 2, 64)
			}
			out.Attributes[string(thing)] = values
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the two-decimal strings back into floats.
func (r *UserRecord) UnmarshalJSON(data []byte) error {
	var in recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.LastBlend = in.LastBlend
	r.LastRadio = in.LastRadio
	r.Attributes = make(TuningProfile, len(in.Attributes))
	for thing, values := range in.Attributes {
		t := make(Tuning, len(values))
		for id, s := range values {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("user record: attribute %s of %s: %w", id, thing, err)
			}
			t[id] = v
		}
		r.Attributes[ThingID(thing)] = t
	}
	r.dirty = false
	return nil
}
