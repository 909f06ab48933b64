package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/interpretive-systems/imagetool/internal/catalog"
	"github.com/interpretive-systems/imagetool/internal/search"
	"github.com/interpretive-systems/imagetool/internal/widget"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the image catalog once and print the page",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.catalog.Search(a.ctx, strings.Join(args, " "), page)
			if err != nil {
				return err
			}
			printPage(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().Int("page", 1, "Page number to fetch")
	return cmd
}

// printPage writes the page summary, then each gallery column with the
// attribution of its results.
func printPage(w io.Writer, p catalog.Page) {
	if p.Empty() {
		fmt.Fprintln(w, "No images found")
		return
	}
	nav := p.Label()
	if p.HasPrevious() {
		nav = fmt.Sprintf("‹ %d  %s", p.PreviousPage, nav)
	}
	if p.HasNext() {
		nav = fmt.Sprintf("%s  %d ›", nav, p.NextPage)
	}
	fmt.Fprintf(w, "%q: %d results  %s\n", p.Query, p.Total, nav)
	for c, offsets := range search.Distribute(len(p.Results)) {
		fmt.Fprintf(w, "\ncolumn %d\n", c+1)
		for _, i := range offsets {
			r := p.Results[i]
			fmt.Fprintf(w, "  %2d  %s\n      %s\n", i, r.URL, widget.PlainText(r.Attribution))
		}
	}
}
