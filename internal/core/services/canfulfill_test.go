package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
)

func TestSkill_CanFulfill(t *testing.T) {
	yes := domain.SlotFulfillment{CanUnderstand: domain.FulfillYes, CanFulfill: domain.FulfillYes}
	no := domain.SlotFulfillment{CanUnderstand: domain.FulfillNo, CanFulfill: domain.FulfillNo}
	maybe := domain.SlotFulfillment{CanUnderstand: domain.FulfillMaybe, CanFulfill: domain.FulfillYes}

	tests := []struct {
		name      string
		intent    string
		slots     []domain.Slot
		want      domain.Fulfillment
		wantSlots map[string]domain.SlotFulfillment
	}{
		{
			name:      "resolved blend",
			intent:    "PlayBlendIntent",
			slots:     []domain.Slot{resolvedSlot("blend", "chill", "chill"), textSlot("volume", "5")},
			want:      domain.FulfillYes,
			wantSlots: map[string]domain.SlotFulfillment{"blend": yes, "volume": yes},
		},
		{
			name:      "unresolved blend",
			intent:    "PlayBlendIntent",
			slots:     []domain.Slot{unresolvedSlot("blend", "nonsense")},
			want:      domain.FulfillNo,
			wantSlots: map[string]domain.SlotFulfillment{"blend": no},
		},
		{
			name:      "free text device is a maybe",
			intent:    "PlayBlendIntent",
			slots:     []domain.Slot{resolvedSlot("blend", "chill", "chill"), textSlot("device", "kitchen")},
			want:      domain.FulfillMaybe,
			wantSlots: map[string]domain.SlotFulfillment{"blend": yes, "device": maybe},
		},
		{
			name:      "radio seeds are a maybe",
			intent:    "PlayRadioArtistIntent",
			slots:     []domain.Slot{textSlot("artists", "Muse")},
			want:      domain.FulfillMaybe,
			wantSlots: map[string]domain.SlotFulfillment{"artists": maybe},
		},
		{
			name:      "no resolution beats maybe",
			intent:    "DislikeIntent",
			slots:     []domain.Slot{textSlot("artist", "Muse"), unresolvedSlot("thing", "song")},
			want:      domain.FulfillNo,
			wantSlots: map[string]domain.SlotFulfillment{"artist": maybe, "thing": no},
		},
		{
			name:      "slot the intent does not take",
			intent:    "LikeIntent",
			slots:     []domain.Slot{textSlot("color", "blue")},
			want:      domain.FulfillYes,
			wantSlots: map[string]domain.SlotFulfillment{"color": no},
		},
		{
			name:      "slotless intent",
			intent:    "ListTuningIntent",
			want:      domain.FulfillYes,
			wantSlots: map[string]domain.SlotFulfillment{},
		},
		{
			name:      "tune with value",
			intent:    "TuneAttributeIntent",
			slots:     []domain.Slot{resolvedSlot("tuneable", "energy", "energy"), textSlot("tuneableValue", "7")},
			want:      domain.FulfillYes,
			wantSlots: map[string]domain.SlotFulfillment{"tuneable": yes, "tuneableValue": yes},
		},
		{
			name:      "unknown intent",
			intent:    "OrderPizzaIntent",
			slots:     []domain.Slot{textSlot("topping", "ham")},
			want:      domain.FulfillNo,
			wantSlots: map[string]domain.SlotFulfillment{"topping": no},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(nil, nil)
			req := intentRequest(tt.intent, tt.slots...)
			req.Type = domain.RequestCanFulfill
			req.AccessToken = ""

			resp := h.handle(req)

			require.NotNil(t, resp.CanFulfill)
			assert.Equal(t, tt.want, resp.CanFulfill.CanFulfill)
			assert.Equal(t, tt.wantSlots, resp.CanFulfill.Slots)
			assert.Zero(t, h.music.connects, "feasibility never calls the remote")
			assert.Zero(t, h.repo.loads)
		})
	}
}
