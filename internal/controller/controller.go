// Package controller implements the view-state machine of the recipe client.
//
// The controller owns which view is presented (list, add form, detail) and
// turns user actions into store reads, store replacements and Recipe
// Service calls. It is driven from a single event loop: every method must
// be called from that loop. Network work is returned as tea.Cmd values that
// run elsewhere and report back through Update.
package controller

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/recipe"
	"github.com/hammamikhairi/recipebox/internal/view"
)

// State is the currently presented view.
type State int

const (
	StateList State = iota
	StateAddForm
	StateDetail
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case StateList:
		return "list"
	case StateAddForm:
		return "add_form"
	case StateDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// FetchedMsg reports the outcome of a recipe collection fetch.
type FetchedMsg struct {
	Seq     uint64
	Recipes []domain.Recipe
	Err     error
}

// SubmittedMsg reports the outcome of a recipe creation request.
type SubmittedMsg struct {
	Draft domain.Draft
	Err   error
}

// Option configures the controller.
type Option func(*Controller)

// WithDropStaleFetches makes the controller ignore a fetch response when a
// newer fetch has been issued since. Without it the last response to
// arrive wins.
func WithDropStaleFetches() Option {
	return func(c *Controller) {
		c.dropStale = true
	}
}

// WithNotifier also delivers every notice through n.
func WithNotifier(n domain.Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// Controller is the view-state machine.
type Controller struct {
	store     *recipe.Store
	svc       domain.RecipeService
	log       *logger.Logger
	notifier  domain.Notifier
	dropStale bool

	state    State
	detailID int
	screen   view.Screen
	fetchSeq uint64 // last issued fetch
	inFlight int
}

// New creates a controller in the list state with an empty list.
func New(store *recipe.Store, svc domain.RecipeService, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		svc:   svc,
		log:   log,
		state: StateList,
		screen: view.Screen{
			ListVisible:      true,
			ContainerVisible: true,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init returns the initial fetch. The state is not changed.
func (c *Controller) Init(ctx context.Context) tea.Cmd {
	return c.fetch(ctx)
}

// State returns the current view state.
func (c *Controller) State() State { return c.state }

// DetailID returns the recipe shown in the detail view, if any.
func (c *Controller) DetailID() (int, bool) {
	return c.detailID, c.state == StateDetail
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool { return c.inFlight > 0 }

// Screen returns a description of everything currently presented.
func (c *Controller) Screen() view.Screen {
	s := c.screen
	s.Loading = c.Loading()
	return s
}

// ShowList switches to the list view and starts a refetch.
func (c *Controller) ShowList(ctx context.Context) tea.Cmd {
	c.log.Debug("show list (from %s)", c.state)
	c.state = StateList
	c.screen.ListVisible = true
	c.screen.FormVisible = false
	c.screen.ContainerVisible = true
	c.screen.DetailVisible = false
	return c.fetch(ctx)
}

// ShowAddForm switches to the add-recipe form. Field values are kept.
func (c *Controller) ShowAddForm() {
	c.log.Debug("show add form (from %s)", c.state)
	c.state = StateAddForm
	c.screen.ListVisible = false
	c.screen.FormVisible = true
}

// Search re-renders the list container with the recipes matching term.
func (c *Controller) Search(term string) {
	c.screen.Search = term
	c.screen.List = view.RenderList(c.store.Search(term))
}

// ViewDetails shows the detail of the recipe with the given ID. Returns
// false, leaving everything unchanged, when the recipe is not in the store
// or the list is not the current view.
func (c *Controller) ViewDetails(id int) bool {
	if c.state != StateList {
		c.log.Debug("view details %d ignored in %s", id, c.state)
		return false
	}

	r, err := c.store.Find(id)
	if err != nil {
		c.log.Warn("view details %d: %v", id, err)
		return false
	}

	c.screen.Detail = view.RenderDetail(r)
	c.screen.ContainerVisible = false
	c.screen.DetailVisible = true
	c.state = StateDetail
	c.detailID = id
	return true
}

// Back leaves the detail view and shows the list container again.
func (c *Controller) Back() {
	if c.state != StateDetail {
		return
	}
	c.screen.ContainerVisible = true
	c.screen.DetailVisible = false
	c.state = StateList
	c.detailID = 0
}

// Submit validates the form and, when valid, returns the creation request.
// The fields stay on the form until the service accepts the recipe.
func (c *Controller) Submit(ctx context.Context, f recipe.Fields) tea.Cmd {
	if c.state != StateAddForm {
		c.log.Debug("submit ignored in %s", c.state)
		return nil
	}
	c.screen.Form = f

	draft := recipe.ParseDraft(f)
	if err := recipe.Validate(draft); err != nil {
		c.log.Info("submit rejected: %v", err)
		c.raise(ctx, view.MsgMissingFields)
		return nil
	}

	svc := c.svc
	return func() tea.Msg {
		return SubmittedMsg{Draft: draft, Err: svc.Create(ctx, draft)}
	}
}

// DismissNotice clears the pending notice.
func (c *Controller) DismissNotice() {
	c.screen.Notice = ""
}

// Update applies the result of a command returned earlier. Messages of
// other types are ignored.
func (c *Controller) Update(ctx context.Context, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FetchedMsg:
		c.fetched(msg)
	case SubmittedMsg:
		return c.submitted(ctx, msg)
	}
	return nil
}

// Settle runs cmd and every command that follows from it synchronously,
// feeding each message back through Update.
func (c *Controller) Settle(ctx context.Context, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, c.Update(ctx, msg))
		}
	}
}

func (c *Controller) fetch(ctx context.Context) tea.Cmd {
	c.fetchSeq++
	c.inFlight++
	seq := c.fetchSeq
	svc := c.svc
	return func() tea.Msg {
		recipes, err := svc.List(ctx)
		return FetchedMsg{Seq: seq, Recipes: recipes, Err: err}
	}
}

func (c *Controller) fetched(msg FetchedMsg) {
	if c.inFlight > 0 {
		c.inFlight--
	}
	if c.dropStale && msg.Seq < c.fetchSeq {
		c.log.Debug("dropping stale fetch #%d (latest #%d)", msg.Seq, c.fetchSeq)
		return
	}

	if msg.Err != nil {
		c.log.Error("fetching recipes: %v", msg.Err)
		c.screen.List = view.RenderFailure(view.MsgLoadFailed)
		return
	}

	c.store.ReplaceAll(msg.Recipes)
	c.screen.List = view.RenderList(c.store.All())
	c.log.Info("loaded %d recipes (fetch #%d)", c.store.Len(), msg.Seq)
}

func (c *Controller) submitted(ctx context.Context, msg SubmittedMsg) tea.Cmd {
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, domain.ErrTransport):
			c.log.Error("adding recipe %q: service unreachable: %v", msg.Draft.Title, msg.Err)
		default:
			c.log.Error("adding recipe %q: %v", msg.Draft.Title, msg.Err)
		}
		c.raise(ctx, view.MsgAddFailed)
		return nil
	}

	c.log.Info("recipe %q added", msg.Draft.Title)
	c.screen.Form = recipe.Fields{}
	return c.ShowList(ctx)
}

func (c *Controller) raise(ctx context.Context, notice string) {
	c.screen.Notice = notice
	if c.notifier != nil {
		if err := c.notifier.NotifyUrgent(ctx, notice); err != nil {
			c.log.Error("notify: %v", err)
		}
	}
}
