package command

import (
	"context"
	"strings"
)

const (
	StartButton  = "Сформувати рахунок📋"
	CancelButton = "Скасувати🔸"
)

// LocalCommandParser recognizes commands by keyword. Exact tokens must match the
// trimmed input byte for byte; keywords are compared case-insensitively.
type LocalCommandParser struct {
	GreetKeywords  []string
	StartTokens    []string
	StartKeywords  []string
	CancelTokens   []string
	CancelKeywords []string
}

func NewLocalCommandParser() *LocalCommandParser {
	return &LocalCommandParser{
		GreetKeywords:  []string{"/start"},
		StartTokens:    []string{StartButton},
		StartKeywords:  []string{"/form"},
		CancelTokens:   []string{CancelButton},
		CancelKeywords: []string{"/cancel", "скасувати", "вийти", "cancel", "stop"},
	}
}

func (p *LocalCommandParser) ParseCommand(ctx context.Context, input string) (Command, error) {
	trimmed := strings.TrimSpace(input)
	normalized := strings.ToLower(trimmed)
	switch {
	case p.IsCancel(trimmed):
		return Cancel, nil
	case matchExact(trimmed, p.StartTokens) || matchKeyword(normalized, p.StartKeywords):
		return Start, nil
	case matchKeyword(normalized, p.GreetKeywords):
		return Greet, nil
	}
	return None, nil
}

// IsCancel reports whether input asks to abandon the form.
func (p *LocalCommandParser) IsCancel(input string) bool {
	trimmed := strings.TrimSpace(input)
	return matchExact(trimmed, p.CancelTokens) || matchKeyword(strings.ToLower(trimmed), p.CancelKeywords)
}

func matchExact(input string, tokens []string) bool {
	for _, token := range tokens {
		if input == token {
			return true
		}
	}
	return false
}

func matchKeyword(normalized string, keywords []string) bool {
	for _, keyword := range keywords {
		if normalized == strings.ToLower(keyword) {
			return true
		}
	}
	return false
}
