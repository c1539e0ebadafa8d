package prompt

import (
	"context"
	"fmt"
)

// Script is a Driver that replays canned answers in order. Input takes a
// string, Confirm a bool, Select an option label and MultiSelect a []string
// of labels.
type Script struct {
	answers []any
	pos     int
	Infos   []string
}

var _ Driver = (*Script)(nil)

func NewScript(answers ...any) *Script {
	return &Script{answers: answers}
}

// Remaining reports how many answers were not consumed.
func (s *Script) Remaining() int {
	return len(s.answers) - s.pos
}

func (s *Script) next(message string) (any, error) {
	if s.pos >= len(s.answers) {
		return nil, fmt.Errorf("prompt: script exhausted at %q", message)
	}
	answer := s.answers[s.pos]
	s.pos++
	return answer, nil
}

func (s *Script) Input(ctx context.Context, cfg InputConfig) (string, error) {
	answer, err := s.next(cfg.Message)
	if err != nil {
		return "", err
	}
	text, ok := answer.(string)
	if !ok {
		return "", fmt.Errorf("prompt: %q wants a string, script has %T", cfg.Message, answer)
	}
	if text == "" {
		text = cfg.Default
	}
	if cfg.Validator != nil {
		if err := cfg.Validator(text); err != nil {
			return "", err
		}
	}
	return text, nil
}

func (s *Script) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	answer, err := s.next(cfg.Message)
	if err != nil {
		return false, err
	}
	yes, ok := answer.(bool)
	if !ok {
		return false, fmt.Errorf("prompt: %q wants a bool, script has %T", cfg.Message, answer)
	}
	return yes, nil
}

func (s *Script) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	answer, err := s.next(cfg.Message)
	if err != nil {
		return 0, err
	}
	label, ok := answer.(string)
	if !ok {
		return 0, fmt.Errorf("prompt: %q wants an option label, script has %T", cfg.Message, answer)
	}
	idx := IndexOf(cfg.Options, label)
	if idx < 0 {
		return 0, fmt.Errorf("prompt: %q has no option %q", cfg.Message, label)
	}
	return idx, nil
}

func (s *Script) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	answer, err := s.next(cfg.Message)
	if err != nil {
		return nil, err
	}
	labels, ok := answer.([]string)
	if !ok {
		return nil, fmt.Errorf("prompt: %q wants option labels, script has %T", cfg.Message, answer)
	}
	return indicesOf(cfg.Options, labels), nil
}

func (s *Script) Info(ctx context.Context, msg string) error {
	s.Infos = append(s.Infos, msg)
	return nil
}
