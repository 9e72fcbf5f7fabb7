package domain

import (
	"math"
	"strings"
)

// reversePrefix marks a tuneable whose "increase" moves the underlying attribute down,
// e.g. "reverse_energy" is what a listener asks for when they want calmer music.
const reversePrefix = "reverse_"

// AttributeSpec describes one tunable audio attribute of the remote recommender.
type AttributeSpec struct {
	ID          string
	DisplayName string
	Default     float64
	Min         float64
	Max         float64
	Step        float64
}

// Attributes lists every tunable attribute in announcement order.
var Attributes = []AttributeSpec{
	{ID: "acousticness", DisplayName: "Acousticness", Default: 0.5, Min: 0, Max: 1, Step: 0.2},
	{ID: "danceability", DisplayName: "Danceability", Default: 0.5, Min: 0, Max: 1, Step: 0.2},
	{ID: "energy", DisplayName: "Energy", Default: 0.5, Min: 0, Max: 1, Step: 0.2},
	{ID: "instrumentalness", DisplayName: "Instrumentalness", Default: 0.5, Min: 0, Max: 1, Step: 0.2},
	{ID: "liveness", DisplayName: "Liveness", Default: 0.5, Min: 0, Max: 1, Step: 0.2},
	{ID: "loudness", DisplayName: "Loudness", Default: -30, Min: -60, Max: 0, Step: 10},
	{ID: "popularity", DisplayName: "Popularity", Default: 50, Min: 0, Max: 100, Step: 20},
	{ID: "speechiness", DisplayName: "Speechiness", Default: 0.5, Min: 0, Max: 1, Step: 0.2},
	{ID: "tempo", DisplayName: "Tempo", Default: 120, Min: 0, Max: 320, Step: 60},
	{ID: "valence", DisplayName: "Happiness", Default: 0.5, Min: 0, Max: 1, Step: 0.2},
	{ID: "duration_ms", DisplayName: "Duration", Default: 3, Min: 0, Max: 10, Step: 2},
}

var attributeIndex = func() map[string]int {
	idx := make(map[string]int, len(Attributes))
	for i, a := range Attributes {
		idx[a.ID] = i
	}
	return idx
}()

// LookupAttribute resolves a tuneable id to its spec. Ids carrying the reverse
// prefix resolve to the underlying attribute with reversed set to true.
func LookupAttribute(id string) (spec AttributeSpec, reversed bool, ok bool) {
	if strings.HasPrefix(id, reversePrefix) {
		id = strings.TrimPrefix(id, reversePrefix)
		reversed = true
	}
	i, ok := attributeIndex[id]
	if !ok {
		return AttributeSpec{}, false, false
	}
	return Attributes[i], reversed, true
}

// Normalize maps a raw attribute value onto the 0..10 scale used in speech.
// The position is taken relative to the attribute's range so that attributes
// with a negative minimum (loudness) land inside the scale. For attributes
// whose minimum is zero this equals raw/max.
func Normalize(spec AttributeSpec, raw float64) int {
	span := spec.Max - spec.Min
	if span <= 0 {
		return 0
	}
	scaled := math.RoundToEven((raw - spec.Min) / span * 10)
	return int(clamp(scaled, 0, 10))
}

// Denormalize converts a spoken 0..10 value into a raw attribute value.
// Reversed attributes invert the spoken value before scaling.
func Denormalize(spec AttributeSpec, display int, reversed bool) float64 {
	d := clamp(float64(display), 0, 10)
	if reversed {
		d = 10 - d
	}
	raw := d/10*(spec.Max-spec.Min) + spec.Min
	return quantize(clamp(raw, spec.Min, spec.Max))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// quantize keeps values at the two decimals they are persisted with.
func quantize(v float64) float64 {
	return math.Round(v*100) / 100
}
