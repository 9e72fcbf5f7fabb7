// Package blendapi is the HTTP adapter for the remote blend music API.
package blendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
)

// Client connects turns to the blend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// compile-time interface assertions
var (
	_ ports.MusicConnector = (*Client)(nil)
	_ ports.MusicAPI       = (*Session)(nil)
)

// NewClient constructs a new blend API client.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Connect returns a session that authenticates every call with the bearer token.
func (c *Client) Connect(accessToken string) ports.MusicAPI {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	return &Session{
		httpClient: oauth2.NewClient(ctx, src),
		baseURL:    c.baseURL,
	}
}

// Session is the blend API bound to one user's access token.
type Session struct {
	httpClient *http.Client
	baseURL    string
}

// Playback returns the artists of the current track.
func (s *Session) Playback(ctx context.Context) (domain.Playback, error) {
	var pr playbackResponse
	if err := s.do(ctx, http.MethodGet, "playback", nil, &pr); err != nil {
		return domain.Playback{}, err
	}
	return pr.toDomain(), nil
}

// Devices lists the user's playback devices.
func (s *Session) Devices(ctx context.Context) ([]domain.Device, error) {
	var devices []domain.Device
	if err := s.do(ctx, http.MethodGet, "devices?playback=false", nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// PlayBlend starts a blend and returns the attributes the API applied.
func (s *Session) PlayBlend(ctx context.Context, play domain.BlendPlay) (map[string]float64, error) {
	body := blendRequest{
		Blend:       play.BlendID,
		Play:        true,
		ReturnEarly: true,
		Device:      play.Device,
		Attributes:  play.Attributes,
		Volume:      play.Volume,
	}
	var applied map[string]float64
	if err := s.do(ctx, http.MethodPost, "blend", body, &applied); err != nil {
		return nil, err
	}
	if applied == nil {
		applied = map[string]float64{}
	}
	return applied, nil
}

func (s *Session) PlayRadio(ctx context.Context, play domain.RadioPlay) error {
	return s.do(ctx, http.MethodPost, "radio", radioRequest(play), nil)
}

func (s *Session) Dislike(ctx context.Context, artistIDs []string) error {
	return s.do(ctx, http.MethodPost, "dislike", newDislikeRequest(artistIDs), nil)
}

// SaveTrack saves the playing track to the user's library.
func (s *Session) SaveTrack(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "save-track", struct{}{}, nil)
}

func (s *Session) Fade(ctx context.Context, cmd domain.FadeCommand) error {
	body := fadeRequest{
		Direction:   int(cmd.Direction),
		StopVolume:  cmd.StopVolume,
		TimeMinutes: cmd.Minutes,
	}
	return s.do(ctx, http.MethodPost, "fade", body, nil)
}

// do sends body as JSON and decodes a successful response into out when out is non-nil.
func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("blend api: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+"/"+path, reader)
	if err != nil {
		return fmt.Errorf("blend api: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("blend api: %w", &domain.RemoteError{Method: method, Path: path, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("blend api: %w", &domain.RemoteError{Method: method, Path: path, Status: resp.StatusCode})
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("blend api: %w", &domain.RemoteError{Method: method, Path: path, Err: err})
	}
	return nil
}
