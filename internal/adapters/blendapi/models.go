package blendapi

import "github.com/ewilliams-labs/blendvoice/internal/core/domain"

// playbackResponse is the body of GET playback. Item is null when nothing plays.
type playbackResponse struct {
	Item *struct {
		Artists []wireArtist `json:"artists"`
	} `json:"item"`
}

type wireArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (p playbackResponse) toDomain() domain.Playback {
	if p.Item == nil {
		return domain.Playback{}
	}
	artists := make([]domain.Artist, len(p.Item.Artists))
	for i, a := range p.Item.Artists {
		artists[i] = domain.Artist{ID: a.ID, Name: a.Name}
	}
	return domain.Playback{Artists: artists}
}

type blendRequest struct {
	Blend       string             `json:"blend"`
	Play        bool               `json:"play"`
	ReturnEarly bool               `json:"return_early"`
	Device      string             `json:"device,omitempty"`
	Attributes  map[string]float64 `json:"attributes,omitempty"`
	Volume      *int               `json:"volume,omitempty"`
}

// radioRequest is flattened into a map so the seed list lands under its own key.
func radioRequest(play domain.RadioPlay) map[string]any {
	body := map[string]any{
		"return_early":    true,
		play.Seeds.Field(): play.Seeds.Names,
	}
	if play.Device != "" {
		body["device"] = play.Device
	}
	if len(play.Attributes) > 0 {
		body["attributes"] = map[string]float64(play.Attributes)
	}
	if play.Volume != nil {
		body["volume"] = *play.Volume
	}
	return body
}

// dislikeRequest carries a single artist, or a list when more than one is banned.
type dislikeRequest struct {
	Artist  string   `json:"artist,omitempty"`
	Artists []string `json:"artists,omitempty"`
}

func newDislikeRequest(ids []string) dislikeRequest {
	if len(ids) == 1 {
		return dislikeRequest{Artist: ids[0]}
	}
	return dislikeRequest{Artists: ids}
}

type fadeRequest struct {
	Direction   int `json:"direction"`
	StopVolume  int `json:"stop_volume"`
	TimeMinutes int `json:"time_minutes"`
}
