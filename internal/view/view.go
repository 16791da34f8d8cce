// Package view turns recipe data into structured view descriptions.
//
// Render functions are pure: they take data and return values describing
// what a screen shows and which actions it offers. The display package
// binds these descriptions to the terminal and re-subscribes its key
// bindings from Screen.Actions after every render.
package view

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/recipe"
)

// Fixed user-facing messages.
const (
	MsgLoadFailed     = "Failed to load recipes. Please try again later."
	MsgMissingFields  = "Please fill in all required fields."
	MsgAddFailed      = "Failed to add recipe. Please try again."
	MsgNoRecipesFound = "No recipes found."
)

// ActionKind identifies what an action does when triggered.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionViewDetails
	ActionBack
)

// String returns a human-readable action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionViewDetails:
		return "view_details"
	case ActionBack:
		return "back"
	default:
		return "none"
	}
}

// Action is something the user can trigger from a rendered view.
type Action struct {
	Kind     ActionKind
	RecipeID int // set for ActionViewDetails
	Label    string
}

// Item is one rendered recipe card in the list container.
type Item struct {
	Position    int // 1-based, in render order
	Title       string
	Description string
	Action      Action
}

// ListContent is the full content of the list container. When Message is
// set it replaces the list entirely.
type ListContent struct {
	Items   []Item
	Message string
}

// RenderList renders recipes as cards, preserving order. Each card offers
// a view-details action for its own recipe ID.
func RenderList(recipes []domain.Recipe) ListContent {
	items := make([]Item, len(recipes))
	for i, r := range recipes {
		items[i] = Item{
			Position:    i + 1,
			Title:       r.Title,
			Description: r.Description,
			Action: Action{
				Kind:     ActionViewDetails,
				RecipeID: r.ID,
				Label:    "View Details",
			},
		}
	}
	return ListContent{Items: items}
}

// RenderFailure renders a fixed message in place of the list.
func RenderFailure(msg string) ListContent {
	return ListContent{Message: msg}
}

// ItemAt returns the item at a 1-based position.
func (l ListContent) ItemAt(pos int) (Item, bool) {
	if pos < 1 || pos > len(l.Items) {
		return Item{}, false
	}
	return l.Items[pos-1], true
}

// DetailContent is the full content of the detail region.
type DetailContent struct {
	RecipeID    int
	Title       string
	Description string
	Ingredients []string
	Steps       []string
	Back        Action
}

// RenderDetail renders a single recipe with a back action.
func RenderDetail(r domain.Recipe) DetailContent {
	return DetailContent{
		RecipeID:    r.ID,
		Title:       r.Title,
		Description: r.Description,
		Ingredients: append([]string(nil), r.Ingredients...),
		Steps:       append([]string(nil), r.Steps...),
		Back:        Action{Kind: ActionBack, Label: "Back to List"},
	}
}

// Markdown returns the detail as a markdown document: title, description,
// a bulleted ingredient list and a numbered step list.
func (d DetailContent) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", d.Title, d.Description)

	b.WriteString("## Ingredients\n\n")
	for _, ing := range d.Ingredients {
		fmt.Fprintf(&b, "- %s\n", ing)
	}

	b.WriteString("\n## Steps\n\n")
	for i, step := range d.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String()
}

// Screen describes everything currently presented. Exactly one of the list
// region and the add-form region is visible; within the list region exactly
// one of the container and the detail sub-region is visible.
type Screen struct {
	ListVisible      bool
	FormVisible      bool
	ContainerVisible bool
	DetailVisible    bool

	Search  string
	List    ListContent
	Detail  DetailContent
	Form    recipe.Fields
	Notice  string // blocking; must be dismissed before anything else
	Loading bool
}

// Actions returns the actions offered by the visible regions, in display
// order. A pending notice blocks every other action.
func (s Screen) Actions() []Action {
	if s.Notice != "" || !s.ListVisible {
		return nil
	}
	if s.DetailVisible {
		return []Action{s.Detail.Back}
	}
	if !s.ContainerVisible {
		return nil
	}
	out := make([]Action, 0, len(s.List.Items))
	for _, it := range s.List.Items {
		out = append(out, it.Action)
	}
	return out
}
