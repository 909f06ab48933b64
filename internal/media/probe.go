package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"os"

	"github.com/go-resty/resty/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes a loaded source.
type Info struct {
	Format string
	Width  int
	Height int
}

// Prober fetches a source far enough to produce its ready signal: the
// decoded header for images, the container header for video.
type Prober struct {
	client *resty.Client
}

// NewProber creates a prober using client, or a default resty client.
func NewProber(client *resty.Client) *Prober {
	if client == nil {
		client = resty.New()
	}
	return &Prober{client: client}
}

// Probe opens m.Src and reports its Info once the ready condition is met.
func (p *Prober) Probe(ctx context.Context, m Media) (Info, error) {
	body, err := p.open(ctx, m.Src)
	if err != nil {
		return Info{}, err
	}
	defer body.Close()

	if m.Kind == KindVideo {
		return probeVideo(body)
	}
	cfg, format, err := image.DecodeConfig(body)
	if err != nil {
		return Info{}, fmt.Errorf("decode %s: %w", m.Src, err)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

func (p *Prober) open(ctx context.Context, src string) (io.ReadCloser, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	switch u.Scheme {
	case "file":
		return os.Open(u.Path)
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
	resp, err := p.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(src)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	if resp.StatusCode() >= 400 {
		resp.RawBody().Close()
		return nil, fmt.Errorf("fetch %s: status %d", src, resp.StatusCode())
	}
	return resp.RawBody(), nil
}

// probeVideo waits for the first container box, which is where an
// inline player would have its first frame metadata.
func probeVideo(r io.Reader) (Info, error) {
	head := make([]byte, 12)
	if _, err := io.ReadFull(r, head); err != nil {
		return Info{}, fmt.Errorf("read video header: %w", err)
	}
	if !bytes.Equal(head[4:8], []byte("ftyp")) {
		return Info{}, fmt.Errorf("not an mp4 container")
	}
	return Info{Format: "mp4"}, nil
}
