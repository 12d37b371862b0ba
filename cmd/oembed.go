package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"embedkit/internal/oembed"
	"embedkit/internal/ui"
)

var flagDOMNarrow bool

var oembedCmd = &cobra.Command{
	Use:   "oembed <url>",
	Short: "Fetch a remote embed descriptor and extract its fragment",
	Args:  cobra.ExactArgs(1),
	RunE:  oembedRun,
}

func init() {
	oembedCmd.Flags().BoolVar(&flagDOMNarrow, "dom", false, "Use DOM parsing to extract the fragment")
}

func oembedRun(cmd *cobra.Command, args []string) error {
	c := oembed.NewClient(cfg.Hostname)
	if flagDOMNarrow {
		c.Narrower = oembed.DOMNarrower{}
	}

	info, err := c.Fetch(args[0])
	if err != nil {
		fmt.Println(ui.Error.Render("unavailable: " + err.Error()))
		return nil
	}

	title, _ := info.Title()
	author, _ := info.AuthorName()
	provider, _ := info.ProviderName()
	w, _ := info.Width()
	h, _ := info.Height()
	html, _ := info.HTML()

	if flagJSON {
		out, err := json.MarshalIndent(map[string]any{
			"title":    title,
			"author":   author,
			"provider": provider,
			"width":    w,
			"height":   h,
			"html":     html,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	printIfSet := func(label, value string) {
		if value != "" {
			fmt.Println(ui.Field(label, value))
		}
	}
	printIfSet("title", title)
	printIfSet("author", author)
	printIfSet("provider", provider)
	if w > 0 && h > 0 {
		fmt.Println(ui.Field("dimensions", fmt.Sprintf("%dx%d", w, h)))
	}
	printIfSet("html", html)
	return nil
}
