package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/go-resty/resty/v2"
	"github.com/interpretive-systems/imagetool/internal/catalog"
	"github.com/interpretive-systems/imagetool/internal/config"
	"github.com/interpretive-systems/imagetool/internal/logger"
	"github.com/interpretive-systems/imagetool/internal/media"
	"github.com/interpretive-systems/imagetool/internal/theme"
	"github.com/spf13/cobra"
)

// app holds the collaborators shared by the commands.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	catalog *catalog.Client
	prober  *media.Prober
	theme   theme.Theme
	ctx     context.Context
	closers []io.Closer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(mustGetStringFlag(cmd.Root(), "config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	a := &app{cfg: cfg}
	out := io.Discard
	if cfg.Log.File != "" {
		f, err := logger.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
		out = f
	}
	a.log = logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      out,
		ServiceName: "imagetool",
	})
	logger.SetDefaultLogger(a.log)
	a.ctx = a.log.WithContext(cmd.Context())

	opts := []catalog.Option{catalog.WithLogger(a.log)}
	if cfg.Cache.Path != "" {
		cache, err := catalog.OpenSQLiteCache(cfg.Cache.Path, cfg.Cache.TTL)
		if err != nil {
			a.log.WithError(err).Warn("page cache disabled")
		} else {
			a.closers = append(a.closers, cache)
			opts = append(opts, catalog.WithCache(cache))
		}
	}
	a.catalog = catalog.New(catalog.Config{
		APIURL:     cfg.Catalog.APIURL,
		ClientID:   cfg.Catalog.ClientID,
		MaxResults: cfg.Catalog.MaxResults,
		AppName:    cfg.Catalog.AppName,
		Timeout:    cfg.Catalog.Timeout,
	}, opts...)
	if cfg.Catalog.ClientID == "" {
		a.log.Warn("no catalog client id configured; searches will return no results")
	}

	a.prober = media.NewProber(resty.New().SetTimeout(cfg.Catalog.Timeout))
	a.theme = theme.Load(cfg.Theme.Dir, cfg.Theme.Base)
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}
