package display

import (
	"github.com/charmbracelet/huh"

	"github.com/hammamikhairi/recipebox/internal/recipe"
)

// newRecipeForm builds the add-recipe form bound to v. Field values are
// written straight into v, so a form rebuilt from the same v comes back
// populated. Required fields are checked by the controller on submit, not
// by the form.
func newRecipeForm(v *recipe.Fields, width int) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("e.g., Tomato soup").
				CharLimit(200).
				Value(&v.Title),

			huh.NewText().
				Title("Description").
				Placeholder("A short description of the dish").
				CharLimit(2000).
				Lines(3).
				Value(&v.Description),

			huh.NewInput().
				Title("Ingredients").
				Description("Comma-separated").
				Placeholder("e.g., tomatoes, onion, olive oil").
				Value(&v.Ingredients),

			huh.NewText().
				Title("Steps").
				Description("One step per line (alt+enter for a new line)").
				Placeholder("Chop the onion\nSimmer the tomatoes").
				CharLimit(5000).
				Lines(6).
				Value(&v.Steps),
		),
	).WithTheme(huh.ThemeCharm()).
		WithShowHelp(true)

	if width > 0 {
		form = form.WithWidth(width)
	}
	return form
}
