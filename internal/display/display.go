// Package display provides the terminal UI using Bubble Tea.
//
// The Bubble Tea event loop is the only goroutine that touches the
// controller. Network work returned by the controller runs as tea.Cmd and
// comes back as a message; the model hands it to the controller, then
// re-subscribes its bindings from the actions on the new screen and
// renders it.
package display

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipebox/internal/controller"
	"github.com/hammamikhairi/recipebox/internal/conversation"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/recipe"
	"github.com/hammamikhairi/recipebox/internal/view"
)

// ── UI ───────────────────────────────────────────────────────────

// UI runs the interactive client.
//
// Call [NewUI] then [UI.Run] (blocking). Cancelling the context passed to
// Run stops the program.
type UI struct {
	program *tea.Program
	ctl     *controller.Controller
	parser  domain.CommandParser
	log     *logger.Logger
	style   string
}

// NewUI creates the display. Call Run() to start.
func NewUI(ctl *controller.Controller, parser domain.CommandParser, log *logger.Logger) *UI {
	return &UI{
		ctl:    ctl,
		parser: parser,
		log:    log,
		style:  detectStyle(),
	}
}

// Run starts the Bubble Tea event loop and the initial fetch. Blocks until
// the user quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	m := newModel(ctx, u.ctl, u.parser, u.log, u.style)

	u.program = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := u.program.Run()
	return err
}

// detectStyle picks the glamour style once, before Bubble Tea takes over
// the terminal and background queries stop working.
func detectStyle() string {
	if lipgloss.HasDarkBackground() {
		return StyleDark
	}
	return StyleLight
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ctx     context.Context
	ctl     *controller.Controller
	parser  domain.CommandParser
	log     *logger.Logger
	style   string
	input   textinput.Model
	spinner spinner.Model

	form       *huh.Form
	values     *recipe.Fields // bound to form, survives form rebuilds
	submitting bool

	bindings []view.Action // subscribed from the current screen
	detail   *detailCache
	hint     string
	showHelp bool
	width    int
	height   int
}

// detailCache memoizes the glamour output for the detail being shown.
type detailCache struct {
	markdown string
	width    int
	out      string
}

func newModel(ctx context.Context, ctl *controller.Controller, parser domain.CommandParser, log *logger.Logger, style string) model {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math correct.
	ti.Prompt = "recipes> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Placeholder = "type 'help', a number, or /search"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60 // updated on first WindowSizeMsg

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(chatStyle),
	)

	m := model{
		ctx:     ctx,
		ctl:     ctl,
		parser:  parser,
		log:     log,
		style:   style,
		input:   ti,
		spinner: sp,
		values:  &recipe.Fields{},
		detail:  &detailCache{},
	}
	m.subscribe()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		tea.SetWindowTitle("RecipeBox"),
		m.ctl.Init(m.ctx),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.subscribe()
	return m, cmd
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if promptLen := len(m.input.Prompt); msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen - 1
		}
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case controller.FetchedMsg:
		return m.ctl.Update(m.ctx, msg)

	case controller.SubmittedMsg:
		m.submitting = false
		cmd := m.ctl.Update(m.ctx, msg)
		if msg.Err == nil {
			*m.values = recipe.Fields{}
			m.form = nil
		}
		return cmd
	}

	// Everything else belongs to the active widget (cursor blinks, the
	// form's internal field navigation, ...).
	if m.formActive() {
		return m.updateForm(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	// A notice blocks everything until dismissed.
	if m.ctl.Screen().Notice != "" {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			m.ctl.DismissNotice()
			if m.ctl.State() == controller.StateAddForm {
				return m.openForm()
			}
		}
		return nil
	}

	if m.ctl.State() == controller.StateAddForm {
		if msg.Type == tea.KeyEsc {
			m.form = nil
			return m.ctl.ShowList(m.ctx)
		}
		if !m.formActive() {
			return nil
		}
		return m.updateForm(msg)
	}

	switch msg.Type {
	case tea.KeyEnter:
		v := m.input.Value()
		m.input.Reset()
		return m.dispatch(v)
	case tea.KeyEsc:
		if m.ctl.State() == controller.StateDetail {
			m.ctl.Back()
			return nil
		}
		if m.input.Value() != "" {
			m.input.Reset()
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Live search follows every change of a "/term" prompt.
	if term, ok := conversation.SearchTerm(m.input.Value()); ok && term != m.ctl.Screen().Search {
		m.ctl.Search(term)
	}
	return cmd
}

// dispatch performs a command typed at the prompt.
func (m *model) dispatch(input string) tea.Cmd {
	m.hint = ""
	intent, err := m.parser.Parse(m.ctx, input)
	if err != nil {
		m.log.Error("parsing input: %v", err)
		return nil
	}
	m.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)

	switch intent.Type {
	case domain.IntentShowList:
		return m.ctl.ShowList(m.ctx)

	case domain.IntentShowAddForm:
		m.ctl.ShowAddForm()
		return m.openForm()

	case domain.IntentSearch:
		m.ctl.Search(intent.Payload)

	case domain.IntentViewDetails:
		pos, _ := strconv.Atoi(intent.Payload)
		act, ok := m.binding(view.ActionViewDetails, pos)
		if !ok {
			m.hint = fmt.Sprintf("No recipe [%s] on screen.", intent.Payload)
			return nil
		}
		m.ctl.ViewDetails(act.RecipeID)

	case domain.IntentBack:
		if _, ok := m.binding(view.ActionBack, 0); ok {
			m.ctl.Back()
		}

	case domain.IntentHelp:
		m.showHelp = !m.showHelp

	case domain.IntentQuit:
		return tea.Quit

	case domain.IntentUnknown:
		if intent.Payload != "" {
			m.hint = fmt.Sprintf("Unknown command %q. Type 'help' for commands.", intent.Payload)
		}
	}
	return nil
}

// subscribe replaces the bindings with the actions of the current screen.
func (m *model) subscribe() {
	m.bindings = m.ctl.Screen().Actions()
}

// binding looks up a subscribed action. For view-details the 1-based
// position in the rendered list selects the action.
func (m *model) binding(kind view.ActionKind, pos int) (view.Action, bool) {
	if kind == view.ActionViewDetails {
		if pos < 1 || pos > len(m.bindings) || m.bindings[pos-1].Kind != kind {
			return view.Action{}, false
		}
		return m.bindings[pos-1], true
	}
	for _, a := range m.bindings {
		if a.Kind == kind {
			return a, true
		}
	}
	return view.Action{}, false
}

func (m *model) openForm() tea.Cmd {
	m.submitting = false
	m.form = newRecipeForm(m.values, m.width)
	return m.form.Init()
}

// formActive reports whether the add form is open and still editable.
func (m *model) formActive() bool {
	return m.ctl.State() == controller.StateAddForm &&
		m.form != nil && m.form.State == huh.StateNormal && !m.submitting
}

func (m *model) updateForm(msg tea.Msg) tea.Cmd {
	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		// A finished form is dropped so it is submitted exactly once. The
		// values stay in m.values and openForm rebuilds it after a notice.
		m.form = nil
		submit := m.ctl.Submit(m.ctx, *m.values)
		if submit == nil {
			return cmd
		}
		m.submitting = true
		return tea.Batch(cmd, submit)
	case huh.StateAborted:
		m.form = nil
		return tea.Batch(cmd, m.ctl.ShowList(m.ctx))
	}
	return cmd
}

// ── View ─────────────────────────────────────────────────────────

// The banner is only drawn when at least this many rows remain for the list.
const minListRows = 20

func (m model) View() string {
	s := m.ctl.Screen()

	var b strings.Builder
	active := "list"
	if s.FormVisible {
		active = "add"
	}
	b.WriteString(renderNav(active, m.width))
	b.WriteString("\n\n")

	if s.Notice != "" {
		b.WriteString(RenderNotice(s.Notice))
		b.WriteByte('\n')
		return b.String()
	}

	if m.height >= bannerHeight+minListRows && s.ListVisible && s.ContainerVisible {
		b.WriteString(RenderBanner(m.width))
		b.WriteString("\n\n")
	}

	switch {
	case s.FormVisible:
		b.WriteString(m.viewForm())
	case s.ListVisible:
		b.WriteString(m.viewList(s))
	}

	if m.showHelp && !s.FormVisible {
		b.WriteByte('\n')
		b.WriteString(helpText())
	}

	if m.hint != "" {
		b.WriteByte('\n')
		b.WriteString(secondaryStyle.Render("  " + m.hint))
	}

	if !s.FormVisible {
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
	}
	return b.String()
}

func (m model) viewList(s view.Screen) string {
	var b strings.Builder

	if s.Search != "" {
		b.WriteString(chatStyle.Render(fmt.Sprintf("  Search: %q", s.Search)))
		b.WriteString("\n\n")
	}
	if s.Loading {
		b.WriteString("  " + m.spinner.View() + chatStyle.Render(" Loading recipes..."))
		b.WriteString("\n\n")
	}

	switch {
	case s.DetailVisible:
		b.WriteString(m.renderDetail(s.Detail))
	case s.ContainerVisible:
		b.WriteString(RenderList(s.List))
	}
	return b.String()
}

func (m model) viewForm() string {
	if m.submitting {
		return "  " + m.spinner.View() + chatStyle.Render(" Submitting recipe...")
	}
	if m.form == nil {
		return ""
	}
	return m.form.View() + "\n" + secondaryStyle.Render("  esc: back to recipes")
}

func (m model) renderDetail(d view.DetailContent) string {
	md := d.Markdown()
	if m.detail.markdown != md || m.detail.width != m.width || m.detail.out == "" {
		m.detail.markdown = md
		m.detail.width = m.width
		m.detail.out = RenderDetail(d, m.style, m.width)
	}
	return m.detail.out
}

func helpText() string {
	lines := []string{
		"Commands:",
		"  list / home      Show all recipes (refetch)",
		"  add / new        Add a recipe",
		"  1, 2, 3...       View details of a listed recipe",
		"  /term            Search titles and descriptions as you type",
		"  search <term>    Search once",
		"  back / esc       Return to the list from a recipe",
		"  help             Toggle this message",
		"  quit / ctrl+c    Exit",
	}
	return primaryStyle.Render(strings.Join(lines, "\n"))
}
