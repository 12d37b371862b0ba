package embed

import (
	"fmt"
	"strings"
)

// substitute fills template placeholders. Values are expected to be
// escaped or numeric already; the generator does no validation.
func substitute(template string, pairs map[string]string) string {
	repl := make([]string, 0, len(pairs)*2)
	for k, v := range pairs {
		repl = append(repl, "{"+k+"}", v)
	}
	return strings.NewReplacer(repl...).Replace(template)
}

// playerElement renders the plain variant: a single playback element sized
// to the resolved dimensions.
func playerElement(url string, width, height int) string {
	return fmt.Sprintf(
		`<iframe src="%s" width="%d" height="%d" frameborder="0" allowfullscreen></iframe>`,
		url, width, height)
}

// alignedContainer renders the aligned and aligned-extern variants: the
// inner markup wrapped in a floatable container carrying the alignment
// class, followed by the caption block when present.
func alignedContainer(inner, alignClass, caption string) string {
	var b strings.Builder
	b.WriteString(`<div class="embed ` + alignClass + `">`)
	b.WriteString(inner)
	b.WriteString(caption)
	b.WriteString(`</div>`)
	return b.String()
}

// finalize applies the wrapper when alignment was requested and returns
// the inner markup untouched otherwise.
func finalize(inner string, res Resolved) string {
	if res.Aligned() {
		return alignedContainer(inner, res.AlignClass, res.Caption)
	}
	return inner
}
