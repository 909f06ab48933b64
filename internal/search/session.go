package search

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/interpretive-systems/imagetool/internal/catalog"
	"github.com/interpretive-systems/imagetool/internal/logger"
	"github.com/interpretive-systems/imagetool/internal/tui/ansi"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// search is issued.
const DefaultDebounce = time.Second

// State is the phase of a search session.
type State int

const (
	Idle State = iota
	Debouncing
	Loading
	Loaded
	EmptyResult
	Failed
)

func (s State) String() string {
	switch s {
	case Debouncing:
		return "debouncing"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case EmptyResult:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// DebounceMsg fires when a debounce timer expires.
type DebounceMsg struct {
	Session string
	Gen     int
}

// ResultMsg carries a catalog response back to its session.
type ResultMsg struct {
	Session string
	Gen     int
	Page    catalog.Page
	Err     error
}

// Options configures a Session.
type Options struct {
	Context     context.Context
	Debounce    time.Duration
	Placeholder string
	Logger      *logger.Logger
	// OnSelect is called when a result is chosen. It runs on the event
	// loop and its command is returned from Update.
	OnSelect func(catalog.Result) tea.Cmd
}

// Session is one open search modal: its input, the debounce timer and the
// page currently shown. Timer and request results are tagged with the
// generation they were started under; anything from an older generation
// is dropped, so a replaced timer never acts and a stale response never
// renders.
type Session struct {
	id       string
	ctx      context.Context
	searcher catalog.Searcher
	debounce time.Duration
	onSelect func(catalog.Result) tea.Cmd
	log      *logger.Logger

	input  textinput.Model
	state  State
	gen    int
	page   catalog.Page
	cursor int
	hits   []hit
}

// NewSession creates an idle session with a focused input.
func NewSession(searcher catalog.Searcher, opts Options) *Session {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Placeholder == "" {
		opts.Placeholder = "Search keyword on Unsplash"
	}
	l := opts.Logger
	if l == nil {
		l = logger.Discard()
	}
	id := uuid.NewString()

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	return &Session{
		id:       id,
		ctx:      opts.Context,
		searcher: searcher,
		debounce: opts.Debounce,
		onSelect: opts.OnSelect,
		log:      l.Component("search").WithField(logger.FieldSessionID, id),
		input:    ti,
	}
}

// ID returns the session id carried by its messages.
func (s *Session) ID() string { return s.id }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Page returns the last rendered page.
func (s *Session) Page() catalog.Page { return s.page }

// Input returns the live input text.
func (s *Session) Input() string { return s.input.Value() }

// Cursor returns the highlighted result offset.
func (s *Session) Cursor() int { return s.cursor }

// Title implements modal.Content.
func (s *Session) Title() string { return "Unsplash" }

// Type replaces the input text as if typed and restarts the debounce.
func (s *Session) Type(text string) tea.Cmd {
	s.input.SetValue(text)
	return s.restartDebounce()
}

// restartDebounce supersedes the pending timer and any in-flight request,
// shows the placeholder and schedules a new timer.
func (s *Session) restartDebounce() tea.Cmd {
	s.gen++
	s.state = Debouncing
	gen, id := s.gen, s.id
	return tea.Tick(s.debounce, func(time.Time) tea.Msg {
		return DebounceMsg{Session: id, Gen: gen}
	})
}

// GoTo requests page of the query stored on the current page, without
// debounce.
func (s *Session) GoTo(page int) tea.Cmd {
	if s.page.Page == 0 {
		return nil
	}
	s.gen++
	return s.issue(s.page.Query, page)
}

// Next requests the next page if there is one.
func (s *Session) Next() tea.Cmd {
	if s.state != Loaded || !s.page.HasNext() {
		return nil
	}
	return s.GoTo(s.page.NextPage)
}

// Previous requests the previous page if there is one.
func (s *Session) Previous() tea.Cmd {
	if s.state != Loaded || !s.page.HasPrevious() {
		return nil
	}
	return s.GoTo(s.page.PreviousPage)
}

func (s *Session) issue(query string, page int) tea.Cmd {
	s.state = Loading
	gen, id, ctx, searcher := s.gen, s.id, s.ctx, s.searcher
	s.log.WithFields(logger.Fields{logger.FieldQuery: query, logger.FieldPage: page}).Info("search issued")
	return func() tea.Msg {
		p, err := searcher.Search(ctx, query, page)
		return ResultMsg{Session: id, Gen: gen, Page: p, Err: err}
	}
}

// Select chooses result i of the current page.
func (s *Session) Select(i int) tea.Cmd {
	if s.state != Loaded || i < 0 || i >= len(s.page.Results) {
		return nil
	}
	s.cursor = i
	if s.onSelect == nil {
		return nil
	}
	return s.onSelect(s.page.Results[i])
}

// Update implements modal.Content.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DebounceMsg:
		if msg.Session != s.id || msg.Gen != s.gen {
			return nil
		}
		return s.issue(s.input.Value(), 1)
	case ResultMsg:
		return s.apply(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *Session) apply(msg ResultMsg) tea.Cmd {
	if msg.Session != s.id {
		return nil
	}
	if msg.Gen != s.gen {
		s.log.WithField("gen", msg.Gen).Debug("dropping stale response")
		return nil
	}
	s.cursor = 0
	switch {
	case msg.Err != nil:
		s.log.WithError(msg.Err).Warn("search failed")
		s.state = Failed
		s.page = catalog.Page{}
	case msg.Page.Empty():
		s.state = EmptyResult
		s.page = msg.Page
	default:
		s.state = Loaded
		s.page = msg.Page
	}
	s.log.WithFields(logger.Fields{
		logger.FieldStatus: s.state.String(),
		logger.FieldCount:  len(s.page.Results),
	}).Debug("search rendered")
	return nil
}

func (s *Session) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "pgdown", "ctrl+n":
		return s.Next()
	case "pgup", "ctrl+p":
		return s.Previous()
	case "enter":
		return s.Select(s.cursor)
	case "tab":
		s.moveCursor(1)
		return nil
	case "shift+tab":
		s.moveCursor(-1)
		return nil
	case "down":
		s.moveCursor(Columns)
		return nil
	case "up":
		s.moveCursor(-Columns)
		return nil
	}
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, s.restartDebounce())
}

func (s *Session) moveCursor(delta int) {
	n := len(s.page.Results)
	if s.state != Loaded || n == 0 {
		return
	}
	c := s.cursor + delta
	if c < 0 || c >= n {
		return
	}
	s.cursor = c
}

// Click handles a press at (x, y) relative to the top-left of View output.
func (s *Session) Click(x, y int) tea.Cmd {
	for _, h := range s.hits {
		if !h.rect.Contains(x, y) {
			continue
		}
		switch h.kind {
		case hitPrevious:
			return s.Previous()
		case hitNext:
			return s.Next()
		case hitTile:
			return s.Select(h.index)
		}
	}
	return nil
}

// View implements modal.Content. The result area is a function of State
// only.
func (s *Session) View(width int) string {
	lines := []string{ansi.PadExact(s.input.View(), width)}
	s.hits = nil

	switch s.state {
	case Debouncing, Loading:
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Render(loadingLabel))
	case EmptyResult, Failed:
		lines = append(lines, noResults)
	case Loaded:
		bar, barHits := paginationBar(s.page, width, len(lines))
		lines = append(lines, bar)
		s.hits = append(s.hits, barHits...)
		tiles, tileHits := gallery(s.page.Results, s.cursor, width, len(lines))
		lines = append(lines, tiles...)
		s.hits = append(s.hits, tileHits...)
	}
	return strings.Join(lines, "\n")
}

// ResultArea renders only the area below the input.
func (s *Session) ResultArea(width int) string {
	v := s.View(width)
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		return v[i+1:]
	}
	return ""
}
