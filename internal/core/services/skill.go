package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
	"github.com/ewilliams-labs/blendvoice/internal/telemetry"
)

// Skill turns platform requests into remote music API calls and spoken responses.
type Skill struct {
	music  ports.MusicConnector
	repo   ports.ProfileRepository
	logger *zap.Logger
	newID  func() string
}

// NewSkill wires the skill to its driven ports.
func NewSkill(music ports.MusicConnector, repo ports.ProfileRepository, logger *zap.Logger) *Skill {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Skill{
		music:  music,
		repo:   repo,
		logger: logger.Named("skill"),
		newID:  uuid.NewString,
	}
}

// turn is the per-request state handed to every handler. req is never modified.
type turn struct {
	id      string
	req     domain.Request
	api     ports.MusicAPI
	record  *domain.UserRecord
	session map[string]string
	log     *zap.Logger
	sink    ports.Telemetry
}

// resolve returns the canonical value of a required slot.
func (t *turn) resolve(name string) (domain.ResolvedValue, error) {
	slot, ok := t.req.Slot(name)
	if !ok {
		return domain.ResolvedValue{}, &domain.UnresolvedSlotError{Slot: name}
	}
	return slot.Resolve()
}

// device is the remembered playback device of this voice device, or "".
func (t *turn) device() string {
	return t.session[t.req.DeviceID]
}

type handlerFunc func(s *Skill, ctx context.Context, t *turn) (domain.Response, error)

type route struct {
	handle handlerFunc
	// linked handlers need the user's access token and record.
	linked bool
}

var routes = map[domain.IntentKind]route{
	domain.IntentPlayBlend:          {handle: (*Skill).playBlend, linked: true},
	domain.IntentPlayRandom:         {handle: (*Skill).playRandom, linked: true},
	domain.IntentPlayRadioArtist:    {handle: radioHandler("artists", domain.SeedArtist), linked: true},
	domain.IntentPlayRadioTrack:     {handle: radioHandler("tracks", domain.SeedTrack), linked: true},
	domain.IntentPlayRadioGenre:     {handle: radioHandler("genres", domain.SeedGenre), linked: true},
	domain.IntentDislike:            {handle: (*Skill).dislike, linked: true},
	domain.IntentLike:               {handle: (*Skill).like, linked: true},
	domain.IntentFade:               {handle: (*Skill).fade, linked: true},
	domain.IntentFadeUp:             {handle: (*Skill).fadeUp, linked: true},
	domain.IntentFadeDown:           {handle: (*Skill).fadeDown, linked: true},
	domain.IntentListTuneables:      {handle: (*Skill).listTuneables, linked: true},
	domain.IntentListTuning:         {handle: (*Skill).listTuning, linked: true},
	domain.IntentTuneAttribute:      {handle: (*Skill).tuneAttribute, linked: true},
	domain.IntentIncreaseAttribute:  {handle: (*Skill).increaseAttribute, linked: true},
	domain.IntentDecreaseAttribute:  {handle: (*Skill).decreaseAttribute, linked: true},
	domain.IntentMaxAttribute:       {handle: (*Skill).maxAttribute, linked: true},
	domain.IntentMinAttribute:       {handle: (*Skill).minAttribute, linked: true},
	domain.IntentResetAttribute:     {handle: (*Skill).resetAttribute, linked: true},
	domain.IntentResetAllAttributes: {handle: (*Skill).resetAllAttributes, linked: true},
	domain.IntentHelp:               {handle: (*Skill).help},
	domain.IntentCancel:             {handle: (*Skill).goodbye},
	domain.IntentStop:               {handle: (*Skill).goodbye},
	domain.IntentFallback:           {handle: (*Skill).unhandled},
}

// Handle runs one turn. It never fails: every error becomes speech.
// The user's record is saved once, after the handler succeeds, and only if it changed.
func (s *Skill) Handle(ctx context.Context, req domain.Request) (resp domain.Response) {
	t := &turn{
		id:      req.ID,
		req:     req,
		session: copySession(req.SessionAttributes),
		sink:    telemetry.FromContext(ctx),
	}
	if t.id == "" {
		t.id = s.newID()
	}
	t.log = s.logger.With(zap.String("turn_id", t.id), zap.String("intent", req.Intent.Name))

	start := time.Now()
	outcome := ports.OutcomeOK
	defer func() {
		if r := recover(); r != nil {
			resp, outcome = s.fail(ctx, t, fmt.Errorf("panic: %v", r))
		}
		if len(t.session) > 0 {
			resp.SessionAttributes = t.session
		}
		t.sink.Capture(ctx, ports.Event{
			Kind:      ports.EventTurn,
			TurnID:    t.id,
			UserID:    req.UserID,
			Intent:    intentLabel(req),
			RawIntent: req.Intent.Name,
			Outcome:   outcome,
			Duration:  time.Since(start),
		})
	}()

	resp, outcome = s.dispatch(ctx, t)
	return resp
}

func (s *Skill) dispatch(ctx context.Context, t *turn) (domain.Response, ports.Outcome) {
	switch t.req.Type {
	case domain.RequestLaunch:
		return domain.Ask(domain.SpeechWelcome, domain.SpeechAfterHelpQuestion), ports.OutcomeOK
	case domain.RequestSessionEnded:
		return domain.Response{}, ports.OutcomeOK
	case domain.RequestCanFulfill:
		return canFulfill(t.req), ports.OutcomeOK
	case domain.RequestIntent:
	default:
		return domain.Ask(domain.SpeechUnhandled, domain.SpeechAfterHelpQuestion), ports.OutcomeOK
	}

	r, ok := routes[t.req.Kind()]
	if !ok {
		return domain.Ask(domain.SpeechUnhandled, domain.SpeechAfterHelpQuestion), ports.OutcomeOK
	}

	if r.linked {
		if t.req.AccessToken == "" {
			return s.fail(ctx, t, domain.ErrUnauthenticated)
		}
		rec, err := s.repo.Load(ctx, t.req.UserID)
		if err != nil {
			return s.fail(ctx, t, fmt.Errorf("load user record: %w", err))
		}
		t.record = rec
		t.api = s.music.Connect(t.req.AccessToken)
	}

	resp, err := r.handle(s, ctx, t)
	if err != nil {
		return s.fail(ctx, t, err)
	}

	if t.record != nil && t.record.Dirty() {
		if err := s.repo.Save(ctx, t.req.UserID, t.record); err != nil {
			t.log.Error("saving user record", zap.Error(err))
			s.report(ctx, t, ports.OutcomeStoreFailure, err)
			return domain.Speak(domain.SpeechApology), ports.OutcomeStoreFailure
		}
	}

	if resp.ElicitSlot != "" {
		return resp, ports.OutcomePrompt
	}
	return resp, ports.OutcomeOK
}

// fail converts a handler error into the response the user hears.
func (s *Skill) fail(ctx context.Context, t *turn, err error) (domain.Response, ports.Outcome) {
	var unresolved *domain.UnresolvedSlotError
	switch {
	case errors.As(err, &unresolved):
		s.report(ctx, t, ports.OutcomeUnresolvedSlot, err)
		return domain.Speak(fmt.Sprintf(domain.SpeechUnknownSlot, unresolved.Slot)), ports.OutcomeUnresolvedSlot

	case errors.Is(err, domain.ErrUnauthenticated):
		resp := domain.Speak(domain.SpeechLinkAccount)
		resp.Card = domain.LinkAccountCard()
		return resp, ports.OutcomeUnauthenticated

	case errors.Is(err, domain.ErrAuthRejected):
		t.log.Warn("remote rejected access token", zap.Error(err))
		s.report(ctx, t, ports.OutcomeAuthRejected, err)
		resp := domain.Speak(domain.SpeechRelinkAccount)
		resp.Card = domain.LinkAccountCard()
		return resp, ports.OutcomeAuthRejected

	case errors.Is(err, domain.ErrRemoteService):
		t.log.Warn("remote call failed", zap.Error(err))
		s.report(ctx, t, ports.OutcomeRemoteFailure, err)
		return domain.Speak(domain.SpeechBlendFailure), ports.OutcomeRemoteFailure
	}

	t.log.Error("turn failed", zap.Error(err))
	s.report(ctx, t, ports.OutcomeError, err)
	return domain.Speak(domain.SpeechApology), ports.OutcomeError
}

func (s *Skill) report(ctx context.Context, t *turn, outcome ports.Outcome, err error) {
	t.sink.Capture(ctx, ports.Event{
		Kind:      ports.EventError,
		TurnID:    t.id,
		UserID:    t.req.UserID,
		Intent:    intentLabel(t.req),
		RawIntent: t.req.Intent.Name,
		Outcome:   outcome,
		Err:       err,
	})
}

// intentLabel names the turn for metrics. Unrecognized intents and request
// types collapse to "Unknown" so clients cannot mint new series.
func intentLabel(req domain.Request) string {
	switch req.Type {
	case domain.RequestIntent, domain.RequestCanFulfill:
		return req.Kind().String()
	case domain.RequestLaunch, domain.RequestSessionEnded:
		return string(req.Type)
	}
	return domain.IntentUnknown.String()
}

func copySession(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
