package widget

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/interpretive-systems/imagetool/internal/block"
	"github.com/interpretive-systems/imagetool/internal/catalog"
	"github.com/interpretive-systems/imagetool/internal/logger"
	"github.com/interpretive-systems/imagetool/internal/media"
	"github.com/interpretive-systems/imagetool/internal/modal"
	"github.com/interpretive-systems/imagetool/internal/search"
	"github.com/interpretive-systems/imagetool/internal/status"
	"github.com/interpretive-systems/imagetool/internal/theme"
)

// Host is the editor side of the widget. Its callbacks run on user
// gestures; results come back through the Fill* messages.
type Host interface {
	SelectFile() tea.Cmd
	EmbedURL(url string) tea.Cmd
	SetLink(url string) tea.Cmd
}

// Prober produces the ready signal for a mounted source.
type Prober interface {
	Probe(ctx context.Context, m media.Media) (media.Info, error)
}

// Config holds the user-facing options of the widget.
type Config struct {
	CaptionPlaceholder  string
	AltPlaceholder      string
	UploadButtonContent string
	EmbedButtonContent  string
	Catalog             CatalogConfig
	ReadOnly            bool
}

// CatalogConfig holds the catalog-search options of the widget.
type CatalogConfig struct {
	ButtonContent    string
	InputPlaceholder string
	Debounce         time.Duration
}

// Deps are the collaborators of the widget.
type Deps struct {
	Host     Host
	Searcher catalog.Searcher
	Notifier catalog.Notifier
	Prober   Prober
	Logger   *logger.Logger
	Theme    theme.Theme
	Context  context.Context
}

type field int

const (
	fieldNone field = iota
	fieldCaption
	fieldAlt
)

// Widget is the image block controller.
type Widget struct {
	cfg      Config
	host     Host
	searcher catalog.Searcher
	notifier catalog.Notifier
	prober   Prober
	log      *logger.Logger
	theme    theme.Theme
	ctx      context.Context

	status  *status.Machine
	modals  *modal.Manager
	active  *modal.Handle
	slot    media.Slot
	preview string

	caption textinput.Model
	alt     textinput.Model
	editing field
	showAlt bool
	link    string
	tunes   map[string]bool
	lastErr string

	width  int
	height int
}

// New creates a widget in the Empty state. Call Mount with persisted data.
func New(cfg Config, deps Deps) *Widget {
	if cfg.CaptionPlaceholder == "" {
		cfg.CaptionPlaceholder = "Caption"
	}
	if cfg.AltPlaceholder == "" {
		cfg.AltPlaceholder = "Alt text"
	}
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Theme == (theme.Theme{}) {
		deps.Theme = theme.Default()
	}
	if deps.Prober == nil {
		deps.Prober = media.NewProber(nil)
	}

	caption := textinput.New()
	caption.Placeholder = cfg.CaptionPlaceholder
	caption.Prompt = ""
	caption.CharLimit = 0
	alt := textinput.New()
	alt.Placeholder = cfg.AltPlaceholder
	alt.Prompt = ""

	m := modal.NewManager()
	m.BorderColor = deps.Theme.AccentColor

	return &Widget{
		cfg:      cfg,
		host:     deps.Host,
		searcher: deps.Searcher,
		notifier: deps.Notifier,
		prober:   deps.Prober,
		log:      deps.Logger.Component("widget"),
		theme:    deps.Theme,
		ctx:      deps.Context,
		status:   status.NewMachine(false),
		modals:   m,
		caption:  caption,
		alt:      alt,
		tunes:    map[string]bool{},
	}
}

// Mount restores persisted data. A saved source starts Uploading until its
// ready signal arrives.
func (w *Widget) Mount(d block.Data) tea.Cmd {
	w.status = status.NewMachine(d.HasSource())
	w.FillCaption(d.Caption)
	w.FillAlt(d.Alt)
	w.FillLink(d.Link)
	for _, name := range block.Tunes {
		w.ApplyTune(name, d.Tune(name))
	}
	if !d.HasSource() {
		return nil
	}
	return w.FillImage(d.File.URL)
}

// Data returns the block as it should be persisted.
func (w *Widget) Data() block.Data {
	d := block.Data{
		Caption: w.caption.Value(),
		Alt:     w.alt.Value(),
		Link:    w.link,
	}
	if el := w.slot.Current(); el != nil {
		d.File.URL = el.Src
	}
	for _, name := range block.Tunes {
		d.SetTune(name, w.tunes[name])
	}
	return d
}

// Status returns the visual status.
func (w *Widget) Status() status.Status { return w.status.Current() }

// StatusFlags returns the per-status visual flags.
func (w *Widget) StatusFlags() map[status.Status]bool { return w.status.Flags() }

// Caption returns the caption markup.
func (w *Widget) Caption() string { return w.caption.Value() }

// Alt returns the alt text.
func (w *Widget) Alt() string { return w.alt.Value() }

// Link returns the stored link.
func (w *Widget) Link() string { return w.link }

// Tune reports whether a tune is on.
func (w *Widget) Tune(name string) bool { return w.tunes[name] }

// ShowingAlt reports whether the alt field is shown instead of the caption.
func (w *Widget) ShowingAlt() bool { return w.showAlt }

// Media returns the mounted element or nil.
func (w *Widget) Media() *media.Element { return w.slot.Current() }

// Preview returns the preloader source, if any.
func (w *Widget) Preview() string { return w.preview }

// ActiveModal returns the open modal handle or nil.
func (w *Widget) ActiveModal() *modal.Handle {
	if w.active != nil && w.active.Closed() {
		w.active = nil
	}
	return w.active
}

// Theme returns the colors the widget renders with.
func (w *Widget) Theme() theme.Theme { return w.theme }

// Modals exposes the manager for hit testing and tests.
func (w *Widget) Modals() *modal.Manager { return w.modals }

// Capturing reports whether keystrokes belong to the widget.
func (w *Widget) Capturing() bool {
	return w.ActiveModal() != nil || w.editing != fieldNone
}

// SetSize records the available area.
func (w *Widget) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// FillImage mounts url as the media element, replacing any previous one,
// and starts waiting for its ready signal.
func (w *Widget) FillImage(url string) tea.Cmd {
	m := media.Classify(url)
	el, detached := w.slot.Mount(m)
	if detached != nil {
		w.log.WithField(logger.FieldURL, detached.Src).Debug("detached previous media")
	}
	w.status.Fire(status.Begin)
	w.lastErr = ""
	w.log.WithFields(logger.Fields{logger.FieldURL: url, "kind": m.Kind.String()}).Info("mounting media")

	id, ctx, prober := el.ID, w.ctx, w.prober
	return func() tea.Msg {
		info, err := prober.Probe(ctx, m)
		return readyMsg{elementID: id, info: info, err: err}
	}
}

// FillCaption replaces the caption markup.
func (w *Widget) FillCaption(text string) {
	w.caption.SetValue(text)
}

// FillAlt replaces the alt text.
func (w *Widget) FillAlt(text string) {
	w.alt.SetValue(text)
}

// FillLink stores url as the link; an empty url clears it.
func (w *Widget) FillLink(url string) {
	w.link = url
}

// ApplyTune sets the visual representation of a tune.
func (w *Widget) ApplyTune(name string, on bool) {
	w.tunes[name] = on
}

// ShowPreloader shows src as a preview and enters Uploading.
func (w *Widget) ShowPreloader(src string) {
	w.preview = src
	w.lastErr = ""
	w.status.Fire(status.Begin)
}

// HidePreloader drops the preview and returns to Empty.
func (w *Widget) HidePreloader() {
	w.preview = ""
	w.reset(status.Fail)
}

// reset fires e and, once Empty is reached, detaches the media so the
// persisted block carries no source.
func (w *Widget) reset(e status.Event) {
	if !w.status.Fire(e) {
		return
	}
	w.preview = ""
	if detached := w.slot.Unmount(); detached != nil {
		w.log.WithField(logger.FieldURL, detached.Src).Debug("unmounted media")
	}
}

// ToggleCaptionAlt swaps the caption and alt fields.
func (w *Widget) ToggleCaptionAlt() {
	w.showAlt = !w.showAlt
}

func (w *Widget) openModal(c modal.Content) *modal.Handle {
	if prev := w.ActiveModal(); prev != nil {
		w.modals.Close(prev)
	}
	w.active = w.modals.Open(c)
	return w.active
}

func (w *Widget) closeModal() {
	if w.active != nil {
		w.modals.Close(w.active)
		w.active = nil
	}
}

// OpenLinkModal opens the link editor pre-filled with the stored link.
func (w *Widget) OpenLinkModal() tea.Cmd {
	lm := newLinkModal(w)
	w.openModal(lm)
	return lm.input.Focus()
}

// OpenEmbedModal opens the URL embed dialog.
func (w *Widget) OpenEmbedModal() tea.Cmd {
	em := newEmbedModal(w)
	w.openModal(em)
	return em.input.Focus()
}

// OpenSearchModal starts a new catalog search session.
func (w *Widget) OpenSearchModal() tea.Cmd {
	s := search.NewSession(w.searcher, search.Options{
		Context:     w.ctx,
		Debounce:    w.cfg.Catalog.Debounce,
		Placeholder: w.cfg.Catalog.InputPlaceholder,
		Logger:      w.log,
		OnSelect:    w.selectResult,
	})
	w.openModal(s)
	return textinput.Blink
}

// selectResult records the download, hands the image to the host, credits
// the author and ends the session.
func (w *Widget) selectResult(r catalog.Result) tea.Cmd {
	if w.notifier != nil {
		w.notifier.NotifyDownloadAsync(r.DownloadLocation)
	}
	var cmd tea.Cmd
	if w.host != nil {
		cmd = w.host.EmbedURL(r.URL)
	}
	w.FillCaption(r.Attribution)
	w.closeModal()
	return cmd
}

// clearLink empties the stored link and resets the visual state.
func (w *Widget) clearLink() tea.Cmd {
	w.link = ""
	w.reset(status.Clear)
	if w.host == nil {
		return nil
	}
	return w.host.SetLink("")
}

// Update routes a message to the modal, the fields or the widget actions.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.SetSize(msg.Width, msg.Height)
		return nil
	case FillImageMsg:
		return w.FillImage(msg.URL)
	case FillCaptionMsg:
		w.FillCaption(msg.Text)
		return nil
	case FillAltMsg:
		w.FillAlt(msg.Text)
		return nil
	case FillLinkMsg:
		w.FillLink(msg.URL)
		return nil
	case ApplyTuneMsg:
		w.ApplyTune(msg.Name, msg.On)
		return nil
	case ShowPreloaderMsg:
		w.ShowPreloader(msg.Src)
		return nil
	case HidePreloaderMsg:
		w.HidePreloader()
		return nil
	case UploadFailedMsg:
		w.preview = ""
		w.reset(status.Fail)
		if msg.Err != nil {
			w.lastErr = msg.Err.Error()
			w.log.WithError(msg.Err).Warn("upload failed")
		}
		return nil
	case readyMsg:
		w.handleReady(msg)
		return nil
	case tea.MouseMsg:
		return w.handleMouse(msg)
	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	if h := w.ActiveModal(); h != nil {
		return h.Content().Update(msg)
	}
	switch msg.(type) {
	case search.DebounceMsg, search.ResultMsg:
		// session already discarded
		return nil
	}
	return w.updateFields(msg)
}

func (w *Widget) handleReady(msg readyMsg) {
	if msg.err != nil {
		w.log.WithError(msg.err).Warn("media did not load")
		return
	}
	if !w.slot.MarkReady(msg.elementID, msg.info) {
		return
	}
	if w.status.Fire(status.Ready) {
		w.preview = ""
	}
}

func (w *Widget) handleMouse(msg tea.MouseMsg) tea.Cmd {
	h := w.ActiveModal()
	if h == nil {
		return nil
	}
	if w.modals.HandleMouse(msg) {
		w.active = nil
		return nil
	}
	c, ok := h.Content().(clicker)
	if !ok || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	// panel border and padding, then the title row
	p := w.modals.Panel()
	return c.Click(msg.X-p.X-2, msg.Y-p.Y-2)
}

type clicker interface {
	Click(x, y int) tea.Cmd
}

func (w *Widget) handleKey(msg tea.KeyMsg) tea.Cmd {
	if h := w.ActiveModal(); h != nil {
		if msg.Type == tea.KeyEsc {
			w.closeModal()
			return nil
		}
		return h.Content().Update(msg)
	}
	if w.editing != fieldNone {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			w.stopEditing()
			return nil
		}
		return w.updateFields(msg)
	}
	if w.cfg.ReadOnly {
		return nil
	}

	switch msg.String() {
	case "f":
		if w.host == nil {
			return nil
		}
		return w.host.SelectFile()
	case "e":
		return w.OpenEmbedModal()
	case "s":
		return w.OpenSearchModal()
	case "l":
		return w.OpenLinkModal()
	case "t":
		w.ToggleCaptionAlt()
	case "c", "enter":
		return w.startEditing()
	case "a":
		w.showAlt = true
		return w.startEditing()
	case "1":
		w.ApplyTune(block.TuneWithBorder, !w.tunes[block.TuneWithBorder])
	case "2":
		w.ApplyTune(block.TuneWithBackground, !w.tunes[block.TuneWithBackground])
	case "3":
		w.ApplyTune(block.TuneStretched, !w.tunes[block.TuneStretched])
	}
	return nil
}

func (w *Widget) startEditing() tea.Cmd {
	if w.showAlt {
		w.editing = fieldAlt
		return w.alt.Focus()
	}
	w.editing = fieldCaption
	return w.caption.Focus()
}

func (w *Widget) stopEditing() {
	w.editing = fieldNone
	w.caption.Blur()
	w.alt.Blur()
}

func (w *Widget) updateFields(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch w.editing {
	case fieldCaption:
		w.caption, cmd = w.caption.Update(msg)
	case fieldAlt:
		w.alt, cmd = w.alt.Update(msg)
	}
	return cmd
}
