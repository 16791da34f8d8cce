// Package conversation provides prompt command parsing and user notification
// implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// SearchPrefix starts a live search at the prompt, e.g. "/pasta".
const SearchPrefix = "/"

// KeywordParser matches prompt input to intents using keywords and simple
// patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(list|home|recipes|refresh|all)$`), domain.IntentShowList},
		{regexp.MustCompile(`(?i)^(add|new|create|add recipe)$`), domain.IntentShowAddForm},
		{regexp.MustCompile(`(?i)^(back|b|close|back to list)$`), domain.IntentBack},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(search|find|clear)$`), domain.IntentSearch},
	}
	return p
}

// viewPattern matches "view 2", "open 2", "details 2", "show #2".
var viewPattern = regexp.MustCompile(`(?i)^(?:view|open|details|show)\s+#?(\d+)$`)

// searchPattern matches "search <term>" and "find <term>".
var searchPattern = regexp.MustCompile(`(?i)^(?:search|find)\s+(.+)$`)

// Parse converts prompt input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	if term, ok := SearchTerm(input); ok {
		return &domain.Intent{Type: domain.IntentSearch, Payload: term}, nil
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare number picks a rendered item by position.
	if isDigits(trimmed) {
		return &domain.Intent{Type: domain.IntentViewDetails, Payload: trimmed}, nil
	}
	if m := viewPattern.FindStringSubmatch(trimmed); m != nil {
		return &domain.Intent{Type: domain.IntentViewDetails, Payload: m[1]}, nil
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return &domain.Intent{Type: rule.intent}, nil
		}
	}

	if m := searchPattern.FindStringSubmatch(trimmed); m != nil {
		return &domain.Intent{Type: domain.IntentSearch, Payload: strings.TrimSpace(m[1])}, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// SearchTerm reports whether input is a live search ("/term") and returns
// the term. Leading whitespace before the prefix is ignored; the term
// itself is kept verbatim so the list follows every keystroke.
func SearchTerm(input string) (string, bool) {
	s := strings.TrimLeft(input, " \t")
	if !strings.HasPrefix(s, SearchPrefix) {
		return "", false
	}
	return strings.TrimPrefix(s, SearchPrefix), true
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
