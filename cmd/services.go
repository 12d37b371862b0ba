package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"embedkit/internal/tui"
	"embedkit/internal/ui"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List enabled embed services",
	RunE:  servicesRun,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse services interactively with a markup preview",
	RunE:  browseRun,
}

func servicesRun(cmd *cobra.Command, args []string) error {
	rd, err := newRenderer()
	if err != nil {
		return err
	}

	if flagJSON {
		out, err := json.MarshalIndent(rd.Registry.Names(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(ui.Title.Render(fmt.Sprintf("Services (%d)", rd.Registry.Len())))
	maxDetail := ui.TermWidth() - 16
	for _, name := range rd.Registry.Names() {
		p, ok := rd.Registry.Lookup(name)
		if !ok {
			continue
		}
		detail := p.URLTemplate
		if p.Extern != "" {
			detail = "extern clause"
		}
		if maxDetail > 3 && len(detail) > maxDetail {
			detail = detail[:maxDetail-3] + "..."
		}
		fmt.Println(ui.Field(name, detail))
		fmt.Println(ui.Faint.Render(fmt.Sprintf("%*sdefault width %d, ratio %s", 15, "", p.DefaultWidth, p.Ratio())))
	}
	return nil
}

func browseRun(cmd *cobra.Command, args []string) error {
	rd, err := newRenderer()
	if err != nil {
		return err
	}
	debugf("browsing %d services", rd.Registry.Len())
	return tui.Run(rd)
}
