package recipe

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

// Fields holds the raw values of the add-recipe form.
type Fields struct {
	Title       string
	Description string
	Ingredients string // comma separated
	Steps       string // one step per line
}

// IsZero reports whether every field is empty.
func (f Fields) IsZero() bool {
	return f == Fields{}
}

// ParseDraft builds a draft from raw form values. It does not validate.
func ParseDraft(f Fields) domain.Draft {
	return domain.Draft{
		Title:       f.Title,
		Description: f.Description,
		Ingredients: SplitIngredients(f.Ingredients),
		Steps:       SplitSteps(f.Steps),
	}
}

// SplitIngredients splits a comma separated field and trims each entry.
// An empty field yields an empty slice.
func SplitIngredients(raw string) []string {
	return splitTrim(raw, ",")
}

// SplitSteps splits a field on line breaks and trims each entry.
// An empty field yields an empty slice.
func SplitSteps(raw string) []string {
	return splitTrim(raw, "\n")
}

func splitTrim(raw, sep string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Validate checks that a draft can be submitted. The returned error wraps
// domain.ErrValidation and names the first missing field.
func Validate(d domain.Draft) error {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	case strings.TrimSpace(d.Description) == "":
		return fmt.Errorf("description is required: %w", domain.ErrValidation)
	case len(d.Ingredients) == 0:
		return fmt.Errorf("at least one ingredient is required: %w", domain.ErrValidation)
	case len(d.Steps) == 0:
		return fmt.Errorf("at least one step is required: %w", domain.ErrValidation)
	}
	return nil
}
