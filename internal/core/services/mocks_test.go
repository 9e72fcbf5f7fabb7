package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
	"github.com/ewilliams-labs/blendvoice/internal/telemetry"
)

// mockMusic is both the connector and the per-token API.
type mockMusic struct {
	token string

	devices    []domain.Device
	devicesErr error
	playback   domain.Playback
	applied    map[string]float64
	playErr    error
	err        error
	panicMsg   string

	blendPlays  []domain.BlendPlay
	radioPlays  []domain.RadioPlay
	dislikes    [][]string
	fades       []domain.FadeCommand
	savedTracks int
	deviceCalls int
	connects    int
}

func (m *mockMusic) Connect(token string) ports.MusicAPI {
	m.connects++
	m.token = token
	return m
}

func (m *mockMusic) Playback(context.Context) (domain.Playback, error) {
	return m.playback, m.err
}

func (m *mockMusic) Devices(context.Context) ([]domain.Device, error) {
	m.deviceCalls++
	return m.devices, m.devicesErr
}

func (m *mockMusic) PlayBlend(_ context.Context, play domain.BlendPlay) (map[string]float64, error) {
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	m.blendPlays = append(m.blendPlays, play)
	return m.applied, m.playErr
}

func (m *mockMusic) PlayRadio(_ context.Context, play domain.RadioPlay) error {
	m.radioPlays = append(m.radioPlays, play)
	return m.playErr
}

func (m *mockMusic) Dislike(_ context.Context, ids []string) error {
	m.dislikes = append(m.dislikes, ids)
	return m.err
}

func (m *mockMusic) SaveTrack(context.Context) error {
	m.savedTracks++
	return m.err
}

func (m *mockMusic) Fade(_ context.Context, cmd domain.FadeCommand) error {
	m.fades = append(m.fades, cmd)
	return m.err
}

// mockRepo stores records as their persisted JSON.
type mockRepo struct {
	records map[string]string
	loadErr error
	saveErr error
	saves   int
	loads   int
}

func (r *mockRepo) Load(_ context.Context, userID string) (*domain.UserRecord, error) {
	r.loads++
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	data, ok := r.records[userID]
	if !ok {
		return domain.NewUserRecord(), nil
	}
	rec := &domain.UserRecord{}
	if err := json.Unmarshal([]byte(data), rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *mockRepo) Save(_ context.Context, userID string, rec *domain.UserRecord) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if r.records == nil {
		r.records = map[string]string{}
	}
	r.records[userID] = string(data)
	return nil
}

type harness struct {
	skill *Skill
	music *mockMusic
	repo  *mockRepo
	sink  *telemetry.Recorder
}

func newHarness(music *mockMusic, repo *mockRepo) *harness {
	if music == nil {
		music = &mockMusic{}
	}
	if repo == nil {
		repo = &mockRepo{}
	}
	skill := NewSkill(music, repo, zap.NewNop())
	skill.newID = func() string { return "turn-1" }
	return &harness{skill: skill, music: music, repo: repo, sink: &telemetry.Recorder{}}
}

func (h *harness) handle(req domain.Request) domain.Response {
	ctx := telemetry.WithSink(context.Background(), h.sink)
	return h.skill.Handle(ctx, req)
}

// record loads what the repository holds for the test user.
func (h *harness) record(t *testing.T) *domain.UserRecord {
	t.Helper()
	rec, err := h.repo.Load(context.Background(), testUser)
	require.NoError(t, err)
	return rec
}

func (h *harness) lastTurn(t *testing.T) ports.Event {
	t.Helper()
	var turns []ports.Event
	for _, e := range h.sink.Events() {
		if e.Kind == ports.EventTurn {
			turns = append(turns, e)
		}
	}
	require.NotEmpty(t, turns)
	return turns[len(turns)-1]
}

const (
	testUser   = "user-1"
	testToken  = "token-1"
	testDevice = "echo-1"
)

func intentRequest(name string, slots ...domain.Slot) domain.Request {
	m := make(map[string]domain.Slot, len(slots))
	for _, s := range slots {
		m[s.Name] = s
	}
	return domain.Request{
		Type:        domain.RequestIntent,
		Intent:      domain.Intent{Name: name, Slots: m},
		UserID:      testUser,
		AccessToken: testToken,
		DeviceID:    testDevice,
	}
}

func textSlot(name, value string) domain.Slot {
	return domain.Slot{Name: name, Value: value}
}

func resolvedSlot(name, value, id string) domain.Slot {
	return domain.Slot{Name: name, Value: value, Resolutions: []domain.Resolution{{
		Authority: "catalogue",
		Status:    domain.StatusSuccessMatch,
		Values:    []domain.ResolvedValue{{ID: id, Name: value}},
	}}}
}

func unresolvedSlot(name, value string) domain.Slot {
	return domain.Slot{Name: name, Value: value, Resolutions: []domain.Resolution{{
		Authority: "catalogue",
		Status:    domain.StatusNoMatch,
	}}}
}

func endsSession(resp domain.Response) bool {
	return resp.EndSession != nil && *resp.EndSession
}
