package domain

// ResolutionStatus is the entity-resolution outcome reported by one authority.
type ResolutionStatus string

const (
	StatusSuccessMatch ResolutionStatus = "ER_SUCCESS_MATCH"
	StatusNoMatch      ResolutionStatus = "ER_SUCCESS_NO_MATCH"
)

// ResolvedValue is a canonical catalogue entry a slot resolved to.
type ResolvedValue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Resolution is one authority's resolution result for a slot.
type Resolution struct {
	Authority string           `json:"authority"`
	Status    ResolutionStatus `json:"status"`
	Values    []ResolvedValue  `json:"values,omitempty"`
}

// Slot is a named parameter extracted from the user's utterance.
type Slot struct {
	Name        string       `json:"name"`
	Value       string       `json:"value,omitempty"`
	Resolutions []Resolution `json:"resolutions,omitempty"`
}

// Resolve returns the first value of the first authority reporting a match.
func (s Slot) Resolve() (ResolvedValue, error) {
	for _, r := range s.Resolutions {
		if r.Status == StatusSuccessMatch && len(r.Values) > 0 {
			return r.Values[0], nil
		}
	}
	return ResolvedValue{}, &UnresolvedSlotError{Slot: s.Name}
}
