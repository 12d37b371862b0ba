package embed

import (
	"fmt"
	"strconv"
	"strings"

	"embedkit/internal/config"
	"embedkit/internal/httputil"
	"embedkit/internal/registry"
)

// Expander performs the host's inline-markup expansion on caption text.
// The default escapes the text; a wiki host wires in its own renderer.
type Expander func(text string) string

// Resolved carries fully normalized embed parameters. Width and height are
// always concrete positive integers; no placeholder reaches the generator.
type Resolved struct {
	Width      int
	Height     int
	AlignClass string
	Caption    string
}

// Aligned reports whether an alignment was requested.
func (r Resolved) Aligned() bool {
	return r.AlignClass != ""
}

var alignClasses = map[string]string{
	"left":   "tleft",
	"right":  "tright",
	"center": "center",
	"auto":   "auto",
}

// normalize validates and fills in width, height, alignment and caption for
// a profile. It is a pure function of its inputs; the config snapshot
// supplies the width bounds and global default.
func normalize(cfg *config.Config, p *registry.Profile, rawWidth, rawAlign, rawDesc string, expand Expander) (Resolved, error) {
	var res Resolved

	width, err := resolveWidth(cfg, p, rawWidth)
	if err != nil {
		return res, err
	}
	res.Width = width
	res.Height = p.Ratio().Height(width)

	align := strings.ToLower(strings.TrimSpace(rawAlign))
	if align != "" {
		class, ok := alignClasses[align]
		if !ok {
			return res, fmt.Errorf("%w: %q", ErrInvalidAlignment, rawAlign)
		}
		res.AlignClass = class
	}

	// The caption belongs to the floating container; unaligned embeds
	// render none.
	if desc := strings.TrimSpace(rawDesc); desc != "" && res.Aligned() {
		if expand == nil {
			expand = httputil.EscapeText
		}
		res.Caption = `<p class="embed-caption">` + expand(desc) + `</p>`
	}

	return res, nil
}

// resolveWidth turns raw width input into a concrete value. Blank and
// wildcard input fall back to the profile's default, then the global one.
func resolveWidth(cfg *config.Config, p *registry.Profile, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		if p.DefaultWidth > 0 {
			return clampDefault(cfg, p.DefaultWidth), nil
		}
		return cfg.DefaultWidth, nil
	}

	width, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidWidth, raw)
	}
	if width < cfg.MinWidth || width > cfg.MaxWidth {
		return 0, fmt.Errorf("%w: %d outside [%d,%d]", ErrInvalidWidth, width, cfg.MinWidth, cfg.MaxWidth)
	}
	return width, nil
}

// clampDefault keeps a profile default inside the configured bounds.
// Profile defaults are shipped data, so out-of-range values are corrected
// rather than rejected.
func clampDefault(cfg *config.Config, width int) int {
	if width < cfg.MinWidth {
		return cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		return cfg.MaxWidth
	}
	return width
}
