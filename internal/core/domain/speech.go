package domain

import (
	"fmt"
	"strings"
)

// Speech templates. Placeholders are filled with fmt verbs.
const (
	SpeechWelcome           = "Welcome to Blend! If you want to hear some instructions, ask, how do I use this."
	SpeechPlayingRandom     = "Playing something you might like."
	SpeechPlayingRadio      = "Playing Spotify radio."
	SpeechPlayingBlend      = "Playing your %s blend."
	SpeechLinkAccount       = "Please link your Blend account in the Alexa app."
	SpeechRelinkAccount     = "There was an authentication issue. Please unlink and relink your Blend account in the Alexa app."
	SpeechBlendFailure      = "Something's wrong with this blend. Please try again in a few minutes."
	SpeechGoodbye           = "Thanks for using Blend!"
	SpeechUnhandled         = "Blend doesn't support that. Please ask something else"
	SpeechAfterHelpQuestion = "So, what would you like to play?"
	SpeechWhatDevice        = "What device should I play on?"
	SpeechChooseDevice      = "Choose one of: %s"
	SpeechDislikedArtist    = "I added %s to your dislikes. A new playlist will begin playing shortly."
	SpeechSavingTrack       = "Saving currently playing track."
	SpeechNothingPlaying    = "There's nothing playing at the moment."
	SpeechResetTuning       = "I've reset your tuning."
	SpeechUnknownSlot       = "I don't know that %s."
	SpeechEmptyTuning       = "You haven't tuned anything yet."
	SpeechApology           = "Sorry, there was some problem. Please try again in a few minutes!"

	SpeechResetTuneableAnnounce = "%s has been reset to its default value. A new playlist will begin playing shortly."
	SpeechSetTuneableAnnounce   = "%s is at %d now. A new playlist will begin playing shortly."

	SpeechTuneableList = "You can change attributes like Acousticness, Danceability, Energy, Instrumentalness, " +
		"liveness, Loudness, Popularity, Speechiness, Tempo, Happiness and Duration."

	SpeechHelp = "You can play any music blend by saying things like: play my morning blend, or, play some workout music. " +
		"You can also ask Blend to just play something, and let Blend find the music you'll like. " +
		"If the music is not really what you'd like to hear, adjust your music by saying things like, add more acousticness, or, I need some groovy music. " +
		"You can also dislike artists and never hear from them again by saying, I don't like this artist."
)

// FadeLimitMinutes is the longest fade the remote accepts.
const FadeLimitMinutes = 60

// SpeechFadeLimitExceeded is spoken when a fade duration is outside 1..FadeLimitMinutes.
var SpeechFadeLimitExceeded = fmt.Sprintf("Fading has a limit of %d minutes.", FadeLimitMinutes)

// Listify joins names as "a, b and c".
func Listify(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
