package services

import "github.com/ewilliams-labs/blendvoice/internal/core/domain"

// slotPolicy lists how an intent treats each of its slots in a feasibility check.
type slotPolicy struct {
	// understood slots are fully supported.
	understood []string
	// resolved slots are supported only when they resolve to a catalogue value.
	resolved []string
	// maybe slots take free text the skill can act on but not validate.
	maybe []string
}

var feasibility = map[domain.IntentKind]slotPolicy{
	domain.IntentPlayRandom:         {understood: []string{"volume", "volume_percent"}},
	domain.IntentPlayBlend:          {understood: []string{"volume", "volume_percent"}, resolved: []string{"blend"}, maybe: []string{"device"}},
	domain.IntentPlayRadioArtist:    {understood: []string{"volume", "volume_percent"}, maybe: []string{"artists"}},
	domain.IntentPlayRadioTrack:     {understood: []string{"volume", "volume_percent"}, maybe: []string{"tracks"}},
	domain.IntentPlayRadioGenre:     {understood: []string{"volume", "volume_percent"}, maybe: []string{"genres"}},
	domain.IntentDislike:            {resolved: []string{"thing"}, maybe: []string{"artist"}},
	domain.IntentDecreaseAttribute:  {resolved: []string{"tuneable"}, understood: []string{"value"}},
	domain.IntentIncreaseAttribute:  {resolved: []string{"tuneable"}},
	domain.IntentMaxAttribute:       {resolved: []string{"tuneable"}},
	domain.IntentMinAttribute:       {resolved: []string{"tuneable"}},
	domain.IntentResetAttribute:     {resolved: []string{"tuneable"}},
	domain.IntentTuneAttribute:      {resolved: []string{"tuneable"}, understood: []string{"tuneableValue"}},
	domain.IntentFade:               {resolved: []string{"direction"}, understood: []string{"duration", "volume"}},
	domain.IntentFadeDown:           {understood: []string{"duration", "volume"}},
	domain.IntentFadeUp:             {understood: []string{"duration", "volume"}},
	domain.IntentLike:               {},
	domain.IntentResetAllAttributes: {},
	domain.IntentListTuneables:      {},
	domain.IntentListTuning:         {},
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// canFulfill answers whether the skill could serve the intent with the given slots.
// It never touches the remote API or the user's record.
func canFulfill(req domain.Request) domain.Response {
	policy, known := feasibility[req.Kind()]
	verdict := domain.FulfillYes
	if !known {
		verdict = domain.FulfillNo
	}

	slots := make(map[string]domain.SlotFulfillment, len(req.Intent.Slots))
	for name, slot := range req.Intent.Slots {
		if slot.Name == "" {
			slot.Name = name
		}
		switch {
		case !known:
			slots[name] = domain.SlotFulfillment{CanUnderstand: domain.FulfillNo, CanFulfill: domain.FulfillNo}
		case contains(policy.understood, name):
			slots[name] = domain.SlotFulfillment{CanUnderstand: domain.FulfillYes, CanFulfill: domain.FulfillYes}
		case contains(policy.resolved, name):
			if _, err := slot.Resolve(); err != nil {
				slots[name] = domain.SlotFulfillment{CanUnderstand: domain.FulfillNo, CanFulfill: domain.FulfillNo}
				verdict = domain.FulfillNo
				continue
			}
			slots[name] = domain.SlotFulfillment{CanUnderstand: domain.FulfillYes, CanFulfill: domain.FulfillYes}
		case contains(policy.maybe, name):
			slots[name] = domain.SlotFulfillment{CanUnderstand: domain.FulfillMaybe, CanFulfill: domain.FulfillYes}
			if slot.Value != "" && verdict == domain.FulfillYes {
				verdict = domain.FulfillMaybe
			}
		default:
			slots[name] = domain.SlotFulfillment{CanUnderstand: domain.FulfillNo, CanFulfill: domain.FulfillNo}
		}
	}

	return domain.Response{CanFulfill: &domain.CanFulfill{CanFulfill: verdict, Slots: slots}}
}
