package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		slot    Slot
		want    ResolvedValue
		wantErr bool
	}{
		{
			name: "first matching authority wins",
			slot: Slot{Name: "blend", Value: "morning", Resolutions: []Resolution{
				{Authority: "static", Status: StatusNoMatch},
				{Authority: "dynamic", Status: StatusSuccessMatch, Values: []ResolvedValue{
					{ID: "morning_coffee", Name: "Morning Coffee"},
					{ID: "morning_run", Name: "Morning Run"},
				}},
			}},
			want: ResolvedValue{ID: "morning_coffee", Name: "Morning Coffee"},
		},
		{
			name: "no match",
			slot: Slot{Name: "tuneable", Value: "groove", Resolutions: []Resolution{
				{Authority: "static", Status: StatusNoMatch},
			}},
			wantErr: true,
		},
		{
			name:    "no resolutions",
			slot:    Slot{Name: "tuneable", Value: "groove"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.slot.Resolve()
			if tt.wantErr {
				var unresolved *UnresolvedSlotError
				require.ErrorAs(t, err, &unresolved)
				assert.Equal(t, tt.slot.Name, unresolved.Slot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequest_Slot(t *testing.T) {
	req := Request{Intent: Intent{Name: "PlayBlendIntent", Slots: map[string]Slot{
		"blend":  {Value: "chill"},
		"device": {Name: "device"},
	}}}

	s, ok := req.Slot("blend")
	require.True(t, ok)
	assert.Equal(t, "blend", s.Name)

	_, ok = req.Slot("device")
	assert.False(t, ok, "slot without a value is absent")

	_, ok = req.Slot("volume")
	assert.False(t, ok)
	assert.Equal(t, IntentPlayBlend, req.Kind())
}

func TestParseIntentKind(t *testing.T) {
	assert.Equal(t, IntentResetAllAttributes, ParseIntentKind("ResetTuneableAttributesIntent"))
	assert.Equal(t, IntentHelp, ParseIntentKind("AMAZON.HelpIntent"))
	assert.Equal(t, IntentUnknown, ParseIntentKind("OrderPizzaIntent"))
	assert.Equal(t, "FadeDownIntent", IntentFadeDown.String())
	assert.Equal(t, "Unknown", IntentUnknown.String())
}

func TestRemoteError_Is(t *testing.T) {
	tests := []struct {
		status       int
		wantRejected bool
	}{
		{status: http.StatusUnauthorized, wantRejected: true},
		{status: http.StatusForbidden, wantRejected: true},
		{status: http.StatusInternalServerError},
		{status: http.StatusNotFound},
		{status: 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := fmt.Errorf("blend api: %w", &RemoteError{Method: "GET", Path: "playback", Status: tt.status})
			assert.Equal(t, tt.wantRejected, errors.Is(err, ErrAuthRejected))
			assert.Equal(t, !tt.wantRejected, errors.Is(err, ErrRemoteService))
		})
	}
}

func TestListify(t *testing.T) {
	assert.Equal(t, "", Listify(nil))
	assert.Equal(t, "Muse", Listify([]string{"Muse"}))
	assert.Equal(t, "Muse and Blur", Listify([]string{"Muse", "Blur"}))
	assert.Equal(t, "Queen, Muse and Blur", Listify([]string{"Queen", "Muse", "Blur"}))
}
