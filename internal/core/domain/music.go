package domain

// Device is a playback target known to the remote API.
type Device struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsActive     bool   `json:"is_active"`
	IsRestricted bool   `json:"is_restricted"`
}

// IsSpeaker reports whether the device is a smart speaker.
func (d Device) IsSpeaker() bool {
	return d.Type == "Speaker"
}

// Artist is a performer of the currently playing track.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Playback is the remote playback state.
type Playback struct {
	Artists []Artist
}

// BlendPlay asks the remote to start a blend. Device, Attributes and Volume are optional.
type BlendPlay struct {
	BlendID    string
	Device     string
	Attributes Tuning
	Volume     *int
}

// RadioPlay asks the remote to start a seeded radio station.
type RadioPlay struct {
	Seeds      RadioSeeds
	Device     string
	Attributes Tuning
	Volume     *int
}

// FadeDirection is -1 for down and 1 for up.
type FadeDirection int

const (
	FadeDown FadeDirection = -1
	FadeUp   FadeDirection = 1
)

func (d FadeDirection) String() string {
	if d == FadeDown {
		return "down"
	}
	return "up"
}

// FadeCommand asks the remote to move the volume to StopVolume over Minutes.
type FadeCommand struct {
	Direction  FadeDirection
	StopVolume int
	Minutes    int
}
