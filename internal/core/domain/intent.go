package domain

// IntentKind enumerates the intents the skill understands.
type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentPlayBlend
	IntentPlayRandom
	IntentPlayRadioArtist
	IntentPlayRadioTrack
	IntentPlayRadioGenre
	IntentDislike
	IntentLike
	IntentFade
	IntentFadeUp
	IntentFadeDown
	IntentListTuneables
	IntentListTuning
	IntentTuneAttribute
	IntentIncreaseAttribute
	IntentDecreaseAttribute
	IntentMaxAttribute
	IntentMinAttribute
	IntentResetAttribute
	IntentResetAllAttributes
	IntentHelp
	IntentCancel
	IntentStop
	IntentFallback
)

var intentNames = map[IntentKind]string{
	IntentPlayBlend:          "PlayBlendIntent",
	IntentPlayRandom:         "PlayRandomIntent",
	IntentPlayRadioArtist:    "PlayRadioArtistIntent",
	IntentPlayRadioTrack:     "PlayRadioTrackIntent",
	IntentPlayRadioGenre:     "PlayRadioGenreIntent",
	IntentDislike:            "DislikeIntent",
	IntentLike:               "LikeIntent",
	IntentFade:               "FadeIntent",
	IntentFadeUp:             "FadeUpIntent",
	IntentFadeDown:           "FadeDownIntent",
	IntentListTuneables:      "ListTuneablesIntent",
	IntentListTuning:         "ListTuningIntent",
	IntentTuneAttribute:      "TuneAttributeIntent",
	IntentIncreaseAttribute:  "IncreaseTuneableAttributeIntent",
	IntentDecreaseAttribute:  "DecreaseTuneableAttributeIntent",
	IntentMaxAttribute:       "MaxTuneableAttributeIntent",
	IntentMinAttribute:       "MinTuneableAttributeIntent",
	IntentResetAttribute:     "ResetTuneableAttributeIntent",
	IntentResetAllAttributes: "ResetTuneableAttributesIntent",
	IntentHelp:               "AMAZON.HelpIntent",
	IntentCancel:             "AMAZON.CancelIntent",
	IntentStop:               "AMAZON.StopIntent",
	IntentFallback:           "AMAZON.FallbackIntent",
}

var intentKinds = func() map[string]IntentKind {
	kinds := make(map[string]IntentKind, len(intentNames))
	for k, name := range intentNames {
		kinds[name] = k
	}
	return kinds
}()

// ParseIntentKind maps a platform intent name to its kind, or IntentUnknown.
func ParseIntentKind(name string) IntentKind {
	return intentKinds[name]
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "Unknown"
}

// RequestType is the kind of turn the platform delivered.
type RequestType string

const (
	RequestLaunch       RequestType = "LaunchRequest"
	RequestIntent       RequestType = "IntentRequest"
	RequestSessionEnded RequestType = "SessionEndedRequest"
	RequestCanFulfill   RequestType = "CanFulfillIntentRequest"
)

// Intent is the recognized intent with its slots keyed by slot name.
type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

// Request is one platform turn. Handlers treat it as read-only.
type Request struct {
	ID          string      `json:"id,omitempty"`
	Type        RequestType `json:"type"`
	Intent      Intent      `json:"intent"`
	UserID      string      `json:"user_id"`
	AccessToken string      `json:"access_token,omitempty"`
	// DeviceID identifies the voice device the turn came from. It keys the
	// remembered playback device in the session attributes.
	DeviceID          string            `json:"device_id"`
	Locale            string            `json:"locale,omitempty"`
	SessionAttributes map[string]string `json:"session_attributes,omitempty"`
}

// Kind returns the parsed intent kind.
func (r Request) Kind() IntentKind {
	return ParseIntentKind(r.Intent.Name)
}

// Slot returns the named slot when the user actually filled it.
func (r Request) Slot(name string) (Slot, bool) {
	s, ok := r.Intent.Slots[name]
	if !ok || s.Value == "" {
		return Slot{}, false
	}
	if s.Name == "" {
		s.Name = name
	}
	return s, true
}

// CardType distinguishes the companion-app cards.
type CardType string

const (
	CardSimple      CardType = "Simple"
	CardLinkAccount CardType = "LinkAccount"
)

// Card is shown in the companion app next to the spoken response.
type Card struct {
	Type  CardType `json:"type"`
	Title string   `json:"title,omitempty"`
	Text  string   `json:"text,omitempty"`
}

// SimpleCard builds a titled text card.
func SimpleCard(title, text string) *Card {
	return &Card{Type: CardSimple, Title: title, Text: text}
}

// LinkAccountCard asks the user to link their account.
func LinkAccountCard() *Card {
	return &Card{Type: CardLinkAccount}
}

// Fulfillment is the YES/NO/MAYBE vocabulary of the feasibility check.
type Fulfillment string

const (
	FulfillYes   Fulfillment = "YES"
	FulfillNo    Fulfillment = "NO"
	FulfillMaybe Fulfillment = "MAYBE"
)

// SlotFulfillment reports whether one slot can be understood and fulfilled.
type SlotFulfillment struct {
	CanUnderstand Fulfillment `json:"can_understand"`
	CanFulfill    Fulfillment `json:"can_fulfill"`
}

// CanFulfill is the answer to a feasibility check.
type CanFulfill struct {
	CanFulfill Fulfillment                `json:"can_fulfill"`
	Slots      map[string]SlotFulfillment `json:"slots,omitempty"`
}

// Response is what the skill says and shows for a turn.
type Response struct {
	Speech   string `json:"speech,omitempty"`
	Reprompt string `json:"reprompt,omitempty"`
	// EndSession is nil when the platform default applies.
	EndSession *bool  `json:"end_session,omitempty"`
	Card       *Card  `json:"card,omitempty"`
	ElicitSlot string `json:"elicit_slot,omitempty"`

	CanFulfill        *CanFulfill       `json:"can_fulfill,omitempty"`
	SessionAttributes map[string]string `json:"session_attributes,omitempty"`
}

// Speak builds a response that ends the session after the speech.
func Speak(text string) Response {
	end := true
	return Response{Speech: text, EndSession: &end}
}

// Ask builds a response that keeps the session open for a follow-up.
func Ask(text, reprompt string) Response {
	end := false
	return Response{Speech: text, Reprompt: reprompt, EndSession: &end}
}
