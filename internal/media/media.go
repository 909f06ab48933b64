package media

import "strings"

// Kind selects how a source is rendered.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

func (k Kind) String() string {
	if k == KindVideo {
		return "video"
	}
	return "image"
}

// Attributes are the element attributes applied when mounting a source.
type Attributes struct {
	Autoplay    bool
	Loop        bool
	Muted       bool
	PlaysInline bool
}

// Media is a source URL tagged with its kind. Build it with Classify.
type Media struct {
	Kind Kind
	Src  string
}

// Classify picks the kind for src once. Sources ending in .mp4 are played
// as a muted looping video in place of an animated image.
func Classify(src string) Media {
	if strings.HasSuffix(src, ".mp4") {
		return Media{Kind: KindVideo, Src: src}
	}
	return Media{Kind: KindImage, Src: src}
}

// ReadyEvent is the element event that signals the source has loaded.
func (m Media) ReadyEvent() string {
	if m.Kind == KindVideo {
		return "loadeddata"
	}
	return "load"
}

// Attributes returns the attribute set for the kind.
func (m Media) Attributes() Attributes {
	if m.Kind == KindVideo {
		return Attributes{Autoplay: true, Loop: true, Muted: true, PlaysInline: true}
	}
	return Attributes{}
}

// Element is a mounted media element.
type Element struct {
	Media
	ID    int
	Ready bool
	Info  Info
}

// Slot holds at most one mounted element.
type Slot struct {
	current *Element
	seq     int
}

// Mount detaches the current element, if any, and mounts m in its place.
// The detached element is returned so callers can drop anything bound to it.
func (s *Slot) Mount(m Media) (mounted, detached *Element) {
	detached = s.current
	s.current = nil
	s.seq++
	s.current = &Element{Media: m, ID: s.seq}
	return s.current, detached
}

// Unmount detaches the current element.
func (s *Slot) Unmount() *Element {
	e := s.current
	s.current = nil
	return e
}

// Current returns the mounted element or nil.
func (s *Slot) Current() *Element {
	return s.current
}

// MarkReady records the ready signal for element id. Signals for detached
// elements are ignored.
func (s *Slot) MarkReady(id int, info Info) bool {
	if s.current == nil || s.current.ID != id {
		return false
	}
	s.current.Ready = true
	s.current.Info = info
	return true
}
