package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"embedkit/internal/config"
	"embedkit/internal/embed"
	"embedkit/internal/history"
	"embedkit/internal/ui"
)

var renderCmd = &cobra.Command{
	Use:   "render <service> <id>",
	Short: "Render embed markup for a service and media identifier",
	Args:  cobra.ExactArgs(2),
	RunE:  renderRun,
}

func init() {
	renderCmd.Flags().StringVarP(&flagWidth, "width", "w", "", "Embed width in pixels (default: service default)")
	renderCmd.Flags().StringVarP(&flagAlign, "align", "a", "", "Alignment: left | right | center | auto")
	renderCmd.Flags().StringVarP(&flagCaption, "caption", "c", "", "Caption text (rendered only with alignment)")
}

func renderRun(cmd *cobra.Command, args []string) error {
	rd, err := newRenderer()
	if err != nil {
		return err
	}

	req := embed.Request{
		Service:     args[0],
		ID:          args[1],
		Width:       flagWidth,
		Align:       flagAlign,
		Description: flagCaption,
	}

	html, res, err := rd.ResolveDetails(req)
	if err != nil {
		// The library contract is inline failure markup; on the CLI the
		// failure also sets the exit status so scripts can detect it.
		m := rd.Render(req)
		if flagJSON {
			return printJSON(m)
		}
		fmt.Fprintln(os.Stderr, ui.Error.Render(m.HTML))
		return err
	}

	recordRender(req, res)

	if flagJSON {
		return printJSON(embed.Markup{HTML: html, NoParse: true, Raw: true})
	}
	fmt.Println(html)
	return nil
}

func printJSON(m embed.Markup) error {
	out, err := json.MarshalIndent(map[string]any{
		"html":    m.HTML,
		"noparse": m.NoParse,
		"raw":     m.Raw,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// recordRender appends the render to history. Best-effort: failures are
// logged in debug mode and otherwise ignored.
func recordRender(req embed.Request, res embed.Resolved) {
	if !cfg.History {
		return
	}

	path, err := config.HistoryPath()
	if err != nil {
		debugf("history path: %v", err)
		return
	}
	store, err := history.Open(path)
	if err != nil {
		debugf("opening history: %v", err)
		return
	}
	defer store.Close()

	err = store.Record(history.Entry{
		Service: req.Service,
		MediaID: req.ID,
		Width:   res.Width,
		Height:  res.Height,
	})
	if err != nil {
		debugf("recording history: %v", err)
	}
}
