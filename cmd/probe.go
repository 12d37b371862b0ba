package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"embedkit/internal/probe"
	"embedkit/internal/ui"
)

var flagSelect string

var probeCmd = &cobra.Command{
	Use:   "probe <file>",
	Short: "Inspect a local media file's container and streams",
	Args:  cobra.ExactArgs(1),
	RunE:  probeRun,
}

func init() {
	probeCmd.Flags().StringVarP(&flagSelect, "select", "s", "", "Stream selector, e.g. v:0, a:1, any:2")
}

func probeRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	p := probe.New(cfg.ProbeBin, args[0])

	status := p.Status(ctx)
	debugf("probe status: %s", status)

	if flagSelect != "" {
		return printStream(ctx, p, flagSelect)
	}

	if flagJSON {
		f, _ := p.Format(ctx)
		out, err := json.MarshalIndent(map[string]any{
			"status":  status.String(),
			"format":  f,
			"streams": p.Streams(ctx),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	f, ok := p.Format(ctx)
	if !ok {
		fmt.Println(ui.Error.Render("no metadata available (" + status.String() + ")"))
		w, h := p.Dimensions(ctx)
		fmt.Println(ui.Field("dimensions", fmt.Sprintf("%dx%d (fallback)", w, h)))
		return nil
	}

	fmt.Println(ui.Title.Render(args[0]))
	fmt.Println(ui.Field("container", f.FormatName))
	fmt.Println(ui.Field("duration", fmt.Sprintf("%.1fs", f.Duration())))
	fmt.Println(ui.Field("size", fmt.Sprintf("%d bytes", f.Size())))
	fmt.Println(ui.Field("bit rate", fmt.Sprintf("%d b/s", f.BitRate())))

	for _, s := range p.Streams(ctx) {
		detail := s.CodecName
		switch s.CodecType {
		case "video":
			detail = fmt.Sprintf("%s %dx%d", s.CodecName, s.Width, s.Height)
			if depth := s.BitDepth(); depth > 0 {
				detail += fmt.Sprintf(" %d-bit", depth)
			}
		case "audio":
			detail = fmt.Sprintf("%s %dch %dHz", s.CodecName, s.Channels, s.SampleRate())
		}
		fmt.Println(ui.Field(fmt.Sprintf("stream #%d", s.Index), s.CodecType+" "+detail))
	}
	return nil
}

func printStream(ctx context.Context, p *probe.Probe, selector string) error {
	s, ok := p.Stream(ctx, selector)
	if !ok {
		fmt.Println(ui.Error.Render("stream " + selector + ": not found"))
		return nil
	}

	if flagJSON {
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(ui.Field("index", fmt.Sprintf("%d", s.Index)))
	fmt.Println(ui.Field("type", s.CodecType))
	fmt.Println(ui.Field("codec", s.CodecName))
	if s.CodecType == "video" {
		fmt.Println(ui.Field("dimensions", fmt.Sprintf("%dx%d", s.Width, s.Height)))
	}
	return nil
}
