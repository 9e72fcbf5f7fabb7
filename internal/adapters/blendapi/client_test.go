package blendapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/blendvoice/internal/adapters/blendapi"
	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
)

type captured struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

// newServer replies with status and payload and records the last request.
func newServer(t *testing.T, status int, payload string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.auth = r.Header.Get("Authorization")
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			assert.NoError(t, json.Unmarshal(b, &got.body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, payload)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func connect(srv *httptest.Server) ports.MusicAPI {
	return blendapi.NewClient(srv.Client(), srv.URL+"/").Connect("tok-123")
}

func TestSession_Playback(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []domain.Artist
	}{
		{
			name:    "playing track",
			payload: `{"item": {"artists": [{"id": "a1", "name": "Muse"}, {"id": "a2", "name": "Queen"}]}}`,
			want:    []domain.Artist{{ID: "a1", Name: "Muse"}, {ID: "a2", Name: "Queen"}},
		},
		{
			name:    "nothing playing",
			payload: `{"item": null}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newServer(t, http.StatusOK, tt.payload)

			pb, err := connect(srv).Playback(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, pb.Artists)
			assert.Equal(t, http.MethodGet, got.method)
			assert.Equal(t, "/playback", got.path)
			assert.Equal(t, "Bearer tok-123", got.auth)
		})
	}
}

func TestSession_Devices(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `[
		{"name": "Kitchen Echo", "type": "Speaker", "is_active": true, "is_restricted": false},
		{"name": "TV", "type": "TV", "is_active": false, "is_restricted": true}
	]`)

	devices, err := connect(srv).Devices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Device{
		{Name: "Kitchen Echo", Type: "Speaker", IsActive: true},
		{Name: "TV", Type: "TV", IsRestricted: true},
	}, devices)
	assert.Equal(t, "/devices", got.path)
	assert.Equal(t, "playback=false", got.query)
}

func TestSession_PlayBlend(t *testing.T) {
	vol := 40

	t.Run("full request", func(t *testing.T) {
		srv, got := newServer(t, http.StatusOK, `{"energy": 0.6}`)

		applied, err := connect(srv).PlayBlend(context.Background(), domain.BlendPlay{
			BlendID:    "morning",
			Device:     "Kitchen Echo",
			Attributes: domain.Tuning{"energy": 0.7},
			Volume:     &vol,
		})

		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"energy": 0.6}, applied)
		assert.Equal(t, "/blend", got.path)
		assert.Equal(t, map[string]any{
			"blend":        "morning",
			"play":         true,
			"return_early": true,
			"device":       "Kitchen Echo",
			"attributes":   map[string]any{"energy": 0.7},
			"volume":       float64(40),
		}, got.body)
	})

	t.Run("optional fields omitted and null response", func(t *testing.T) {
		srv, got := newServer(t, http.StatusOK, `null`)

		applied, err := connect(srv).PlayBlend(context.Background(), domain.BlendPlay{BlendID: "random"})

		require.NoError(t, err)
		assert.Empty(t, applied)
		assert.NotNil(t, applied)
		assert.Equal(t, map[string]any{"blend": "random", "play": true, "return_early": true}, got.body)
	})
}

func TestSession_PlayRadio(t *testing.T) {
	srv, got := newServer(t, http.StatusNoContent, "")

	err := connect(srv).PlayRadio(context.Background(), domain.RadioPlay{
		Seeds:  domain.RadioSeeds{Kind: domain.SeedGenre, Names: []string{"jazz", "funk"}},
		Device: "Den",
	})

	require.NoError(t, err)
	assert.Equal(t, "/radio", got.path)
	assert.Equal(t, map[string]any{
		"return_early": true,
		"device":       "Den",
		"genre_names":  []any{"jazz", "funk"},
	}, got.body)
}

func TestSession_Dislike(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want map[string]any
	}{
		{name: "single artist", ids: []string{"a1"}, want: map[string]any{"artist": "a1"}},
		{name: "several artists", ids: []string{"a1", "a2"}, want: map[string]any{"artists": []any{"a1", "a2"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newServer(t, http.StatusOK, "{}")

			require.NoError(t, connect(srv).Dislike(context.Background(), tt.ids))
			assert.Equal(t, "/dislike", got.path)
			assert.Equal(t, tt.want, got.body)
		})
	}
}

func TestSession_SaveTrackAndFade(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "{}")
	api := connect(srv)

	require.NoError(t, api.SaveTrack(context.Background()))
	assert.Equal(t, "/save-track", got.path)
	assert.Equal(t, http.MethodPost, got.method)

	require.NoError(t, api.Fade(context.Background(), domain.FadeCommand{Direction: domain.FadeDown, StopVolume: 0, Minutes: 20}))
	assert.Equal(t, "/fade", got.path)
	assert.Equal(t, map[string]any{"direction": float64(-1), "stop_volume": float64(0), "time_minutes": float64(20)}, got.body)
}

func TestSession_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		wantRejected bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantRejected: true},
		{name: "forbidden", status: http.StatusForbidden, wantRejected: true},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "not found", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, tt.status, `{"error": "nope"}`)

			_, err := connect(srv).Devices(context.Background())

			require.Error(t, err)
			var remote *domain.RemoteError
			require.True(t, errors.As(err, &remote))
			assert.Equal(t, tt.status, remote.Status)
			assert.Equal(t, tt.wantRejected, errors.Is(err, domain.ErrAuthRejected))
			assert.Equal(t, !tt.wantRejected, errors.Is(err, domain.ErrRemoteService))
		})
	}
}

func TestSession_TransportFailure(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "{}")
	api := connect(srv)
	srv.Close()

	err := api.SaveTrack(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteService))
	assert.False(t, errors.Is(err, domain.ErrAuthRejected))
}
