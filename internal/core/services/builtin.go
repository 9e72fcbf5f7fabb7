package services

import (
	"context"

	"github.com/ewilliams-labs/blendvoice/internal/core/domain"
)

func (s *Skill) help(context.Context, *turn) (domain.Response, error) {
	return domain.Ask(domain.SpeechHelp+" "+domain.SpeechAfterHelpQuestion, domain.SpeechAfterHelpQuestion), nil
}

func (s *Skill) goodbye(context.Context, *turn) (domain.Response, error) {
	return domain.Speak(domain.SpeechGoodbye), nil
}

func (s *Skill) unhandled(context.Context, *turn) (domain.Response, error) {
	return domain.Ask(domain.SpeechUnhandled, domain.SpeechAfterHelpQuestion), nil
}
