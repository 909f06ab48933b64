package cli

import (
	"fmt"

	"github.com/interpretive-systems/imagetool/internal/block"
	"github.com/interpretive-systems/imagetool/internal/logger"
	"github.com/interpretive-systems/imagetool/internal/storage"
	"github.com/interpretive-systems/imagetool/internal/tui"
	"github.com/interpretive-systems/imagetool/internal/widget"
	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <block.json>",
		Short: "Open the image block editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			readOnly, _ := cmd.Flags().GetBool("read-only")
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			path := args[0]
			data, err := block.Load(path)
			if err != nil {
				return err
			}

			up, err := storage.NewUploader(a.cfg.Storage)
			if err != nil {
				// uploads fail into the empty state; the rest of the widget works
				a.log.WithError(err).Warn("upload storage unavailable")
			}

			ctx := logger.WithField(a.ctx, "block", path)
			log := logger.FromContext(ctx)
			log.Info("editing block")
			final, err := tui.Run(tui.Options{
				Context:   ctx,
				BlockPath: path,
				Data:      data,
				Widget: widget.Config{
					CaptionPlaceholder:  a.cfg.Widget.CaptionPlaceholder,
					AltPlaceholder:      a.cfg.Widget.AltPlaceholder,
					UploadButtonContent: a.cfg.Widget.UploadButtonContent,
					EmbedButtonContent:  a.cfg.Widget.EmbedButtonContent,
					Catalog: widget.CatalogConfig{
						ButtonContent:    a.cfg.Catalog.ButtonContent,
						InputPlaceholder: a.cfg.Catalog.InputPlaceholder,
						Debounce:         a.cfg.Catalog.Debounce,
					},
					ReadOnly: readOnly,
				},
				Deps: widget.Deps{
					Searcher: a.catalog,
					Notifier: a.catalog,
					Prober:   a.prober,
					Logger:   a.log,
					Theme:    a.theme,
				},
				Uploader: up,
			})
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			if readOnly {
				return nil
			}
			if err := block.Save(path, final); err != nil {
				return err
			}
			log.WithField(logger.FieldStatus, "saved").Info("block written")
			return nil
		},
	}
	cmd.Flags().Bool("read-only", false, "Disable editing and do not write the block file")
	return cmd
}
