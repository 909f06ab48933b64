package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/imagetool/internal/block"
	"github.com/interpretive-systems/imagetool/internal/catalog"
	"github.com/interpretive-systems/imagetool/internal/media"
	"github.com/interpretive-systems/imagetool/internal/search"
	"github.com/interpretive-systems/imagetool/internal/status"
)

// recorder collects host and notifier calls in the order they happen.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeHost struct{ rec *recorder }

func (h fakeHost) SelectFile() tea.Cmd         { h.rec.add("select"); return nil }
func (h fakeHost) EmbedURL(url string) tea.Cmd { h.rec.add("embed " + url); return nil }
func (h fakeHost) SetLink(url string) tea.Cmd  { h.rec.add("link " + url); return nil }

type fakeNotifier struct{ rec *recorder }

func (n fakeNotifier) NotifyDownloadAsync(location string) { n.rec.add("notify " + location) }

type fakeProber struct {
	info media.Info
	err  error
}

func (p fakeProber) Probe(ctx context.Context, m media.Media) (media.Info, error) {
	return p.info, p.err
}

type fakeSearcher struct{ page catalog.Page }

func (f fakeSearcher) Search(ctx context.Context, query string, page int) (catalog.Page, error) {
	p := f.page
	p.Query = query
	return p, nil
}

func newTestWidget(rec *recorder, cfg Config) *Widget {
	cfg.Catalog.Debounce = time.Millisecond
	return New(cfg, Deps{
		Host:     fakeHost{rec},
		Notifier: fakeNotifier{rec},
		Prober:   fakeProber{info: media.Info{Format: "png", Width: 4, Height: 3}},
		Searcher: fakeSearcher{page: catalog.Page{Page: 1, TotalPages: 1, Results: []catalog.Result{{
			URL:              "https://images.example/full.jpg",
			DownloadLocation: "https://api.example/dl/1",
			Attribution:      `Photo by <a href="https://unsplash.com/@jo?utm_source=app&utm_medium=referral">Jo</a> on <a href="https://unsplash.com/?utm_source=app&utm_medium=referral">Unsplash</a>`,
			Author:           "Jo",
		}}}},
	})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run feeds a command's message back into the widget.
func run(w *Widget, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(w, c)
		}
		return
	}
	w.Update(msg)
}

func TestFillImage_ReadyMovesToFilled(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{})
	if w.Status() != status.Empty {
		t.Fatalf("expected empty, got %s", w.Status())
	}
	cmd := w.FillImage("https://images.example/a.png")
	if w.Status() != status.Uploading {
		t.Fatalf("expected uploading, got %s", w.Status())
	}
	run(w, cmd)
	if w.Status() != status.Filled {
		t.Fatalf("expected filled, got %s", w.Status())
	}
	flags := w.StatusFlags()
	if !flags[status.Filled] || flags[status.Empty] || flags[status.Uploading] {
		t.Fatalf("exactly one flag must be set: %v", flags)
	}
	if el := w.Media(); el == nil || el.Info.Width != 4 {
		t.Fatalf("unexpected media %+v", el)
	}
}

func TestFillImage_ReplacesElementAndIgnoresStaleReady(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{})
	first := w.FillImage("https://images.example/a.png")
	second := w.FillImage("https://images.example/b.mp4")

	run(w, first)
	if w.Status() != status.Uploading {
		t.Fatalf("ready from a detached element must be ignored, got %s", w.Status())
	}
	run(w, second)
	if w.Status() != status.Filled {
		t.Fatalf("expected filled, got %s", w.Status())
	}
	if el := w.Media(); el.Kind != media.KindVideo {
		t.Fatalf("expected the video to be mounted, got %s", el.Kind)
	}
}

func TestProbeFailure_StaysUploading(t *testing.T) {
	w := New(Config{}, Deps{Prober: fakeProber{err: errors.New("boom")}})
	run(w, w.FillImage("https://images.example/broken.png"))
	if w.Status() != status.Uploading {
		t.Fatalf("expected uploading, got %s", w.Status())
	}
}

func TestUploadFailed_ForcesEmpty(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{})
	w.ShowPreloader("/tmp/a.png")
	if w.Status() != status.Uploading || w.Preview() != "/tmp/a.png" {
		t.Fatalf("preloader not shown: %s %q", w.Status(), w.Preview())
	}
	w.Update(UploadFailedMsg{Err: errors.New("disk full")})
	if w.Status() != status.Empty || w.Preview() != "" {
		t.Fatalf("expected empty without preview, got %s %q", w.Status(), w.Preview())
	}
	if !strings.Contains(ansi.Strip(w.View(80)), "disk full") {
		t.Fatalf("expected error in view")
	}
}

func TestMount_RestoresData(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{})
	d := block.Data{
		File:       block.File{URL: "https://images.example/a.png"},
		Caption:    "hello",
		Alt:        "alt",
		WithBorder: true,
		Link:       "https://example.com",
	}
	cmd := w.Mount(d)
	if w.Status() != status.Uploading {
		t.Fatalf("persisted source must start uploading, got %s", w.Status())
	}
	run(w, cmd)
	if got := w.Data(); got != d {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, d)
	}
}

func TestModals_AtMostOneOpen(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{})
	w.Update(key("l"))
	first := w.ActiveModal()
	if first == nil {
		t.Fatalf("expected link modal")
	}
	w.OpenEmbedModal()
	if !first.Closed() {
		t.Fatalf("previous modal must be closed")
	}
	if w.Modals().OpenCount() != 1 {
		t.Fatalf("expected one open modal, got %d", w.Modals().OpenCount())
	}
	w.OpenSearchModal()
	if w.Modals().OpenCount() != 1 {
		t.Fatalf("expected one open modal, got %d", w.Modals().OpenCount())
	}
	w.Update(key("esc"))
	if w.ActiveModal() != nil || w.Modals().OpenCount() != 0 {
		t.Fatalf("esc must close the modal")
	}
}

func TestModal_ClickOutsideCloses(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{})
	w.OpenEmbedModal()
	w.Modals().Render(80, 24)
	w.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if w.ActiveModal() != nil {
		t.Fatalf("click on the dismiss layer must close the modal")
	}
}

func TestSelect_NotifyThenEmbedThenClose(t *testing.T) {
	rec := &recorder{}
	w := newTestWidget(rec, Config{})
	w.OpenSearchModal()
	s := w.ActiveModal().Content().(*search.Session)

	tick := s.Type("cat")
	fetch := w.Update(tick())
	w.Update(fetch())
	if s.State() != search.Loaded {
		t.Fatalf("expected loaded, got %s", s.State())
	}

	w.Update(key("enter"))
	want := []string{"notify https://api.example/dl/1", "embed https://images.example/full.jpg"}
	got := rec.list()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected order %v", got)
	}
	if w.ActiveModal() != nil {
		t.Fatalf("modal must be closed after selecting")
	}
	if !strings.HasPrefix(w.Caption(), "Photo by <a href=") {
		t.Fatalf("caption must carry the attribution markup, got %q", w.Caption())
	}
	if plain := PlainText(w.Caption()); plain != "Photo by Jo on Unsplash" {
		t.Fatalf("unexpected plain caption %q", plain)
	}
}

func TestLink_RoundTrip(t *testing.T) {
	rec := &recorder{}
	w := newTestWidget(rec, Config{})
	w.FillLink("https://a.example")
	w.Update(key("l"))

	lm := w.ActiveModal().Content().(*linkModal)
	if lm.input.Value() != "https://a.example" {
		t.Fatalf("link modal must be pre-filled, got %q", lm.input.Value())
	}
	lm.input.SetValue("https://b.example")
	w.Update(key("enter"))
	if w.Link() != "https://b.example" || w.ActiveModal() != nil {
		t.Fatalf("enter must store and close: %q", w.Link())
	}
	if got := rec.list(); len(got) != 1 || got[0] != "link https://b.example" {
		t.Fatalf("unexpected host calls %v", got)
	}
}

func TestLink_CrossClearsAndResetsStatus(t *testing.T) {
	rec := &recorder{}
	w := newTestWidget(rec, Config{})
	run(w, w.FillImage("https://images.example/a.png"))
	w.FillLink("https://a.example")
	w.Update(key("l"))
	w.Update(key("ctrl+x"))

	if w.Link() != "" {
		t.Fatalf("expected link cleared, got %q", w.Link())
	}
	if w.Status() != status.Empty {
		t.Fatalf("expected empty status, got %s", w.Status())
	}
	if got := rec.list(); len(got) != 1 || got[0] != "link " {
		t.Fatalf("expected SetLink(\"\"), got %v", got)
	}
	if w.Media() != nil || w.Data().File.URL != "" {
		t.Fatalf("clear must detach the media, got %+v", w.Data().File)
	}
	if w.ActiveModal() == nil {
		t.Fatalf("the link dialog stays open after the cross")
	}
}

func TestLink_EmptyEnterKeepsMedia(t *testing.T) {
	rec := &recorder{}
	w := newTestWidget(rec, Config{})
	run(w, w.FillImage("https://images.example/a.png"))
	w.FillLink("https://a.example")
	w.Update(key("l"))

	lm := w.ActiveModal().Content().(*linkModal)
	lm.input.SetValue("")
	w.Update(key("enter"))

	if w.Status() != status.Filled {
		t.Fatalf("saving an empty link must not clear the media, got %s", w.Status())
	}
	if w.Link() != "" || w.ActiveModal() != nil {
		t.Fatalf("enter must store the empty link and close: %q", w.Link())
	}
	if got := w.Data().File.URL; got != "https://images.example/a.png" {
		t.Fatalf("unexpected source %q", got)
	}
	if got := rec.list(); len(got) != 1 || got[0] != "link " {
		t.Fatalf("expected SetLink(\"\"), got %v", got)
	}
}

func TestUploadFailed_DetachesMountedMedia(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{})
	run(w, w.FillImage("https://images.example/a.png"))
	w.ShowPreloader("/tmp/b.png")
	w.Update(UploadFailedMsg{Err: errors.New("denied")})

	if w.Status() != status.Empty {
		t.Fatalf("expected empty, got %s", w.Status())
	}
	if w.Media() != nil || w.Data().File.URL != "" {
		t.Fatalf("failed upload must leave no source, got %+v", w.Data().File)
	}
}

func TestEmbedModal_CallsHost(t *testing.T) {
	rec := &recorder{}
	w := newTestWidget(rec, Config{})
	w.Update(key("e"))
	em := w.ActiveModal().Content().(*embedModal)
	em.input.SetValue("https://images.example/x.gif")
	w.Update(key("enter"))
	if got := rec.list(); len(got) != 1 || got[0] != "embed https://images.example/x.gif" {
		t.Fatalf("unexpected host calls %v", got)
	}
	if w.ActiveModal() != nil {
		t.Fatalf("embed modal must close")
	}
}

func TestReadOnly_IgnoresActions(t *testing.T) {
	rec := &recorder{}
	w := newTestWidget(rec, Config{ReadOnly: true})
	for _, k := range []string{"f", "e", "s", "l", "c", "a"} {
		w.Update(key(k))
	}
	if w.ActiveModal() != nil || w.Capturing() || len(rec.list()) != 0 {
		t.Fatalf("read-only widget must not respond")
	}
}

func TestEditCaption(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{})
	w.Update(key("c"))
	if !w.Capturing() {
		t.Fatalf("expected caption editing")
	}
	w.Update(key("h"))
	w.Update(key("i"))
	w.Update(key("enter"))
	if w.Caption() != "hi" || w.Capturing() {
		t.Fatalf("unexpected caption %q", w.Caption())
	}

	w.Update(key("t"))
	if !w.ShowingAlt() {
		t.Fatalf("expected alt field after toggle")
	}
	w.Update(key("c"))
	w.Update(key("x"))
	w.Update(key("esc"))
	if w.Alt() != "x" || w.Caption() != "hi" {
		t.Fatalf("expected alt edited, got alt=%q caption=%q", w.Alt(), w.Caption())
	}
}

func TestView_ByStatusAndKind(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{UploadButtonContent: "Pick"})
	if v := ansi.Strip(w.View(100)); !strings.Contains(v, "Pick") || !strings.Contains(v, "Caption") {
		t.Fatalf("empty view must show buttons and placeholder:\n%s", v)
	}

	cmd := w.FillImage("https://images.example/clip.mp4")
	if v := ansi.Strip(w.View(100)); !strings.Contains(v, "Loading") {
		t.Fatalf("expected loading view:\n%s", v)
	}
	run(w, cmd)
	v := ansi.Strip(w.View(100))
	if !strings.Contains(v, "video") || !strings.Contains(v, "autoplay loop muted playsinline") {
		t.Fatalf("expected video view:\n%s", v)
	}

	run(w, w.FillImage("https://images.example/a.png"))
	v = ansi.Strip(w.View(100))
	if !strings.Contains(v, "image") || strings.Contains(v, "video") {
		t.Fatalf("expected image view only:\n%s", v)
	}
}

func TestApplyTune(t *testing.T) {
	w := newTestWidget(&recorder{}, Config{})
	w.Update(ApplyTuneMsg{Name: block.TuneStretched, On: true})
	w.Update(key("1"))
	d := w.Data()
	if !d.Stretched || !d.WithBorder || d.WithBackground {
		t.Fatalf("unexpected tunes %+v", d)
	}
}
