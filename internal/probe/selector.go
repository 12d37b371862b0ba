package probe

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a stream type for selection.
type Kind string

const (
	KindVideo      Kind = "video"
	KindAudio      Kind = "audio"
	KindSubtitle   Kind = "subtitle"
	KindData       Kind = "data"
	KindAttachment Kind = "attachment"
	KindAny        Kind = "any"
)

// kindAliases maps ffprobe-style single-letter specifiers onto kinds.
var kindAliases = map[string]Kind{
	"v": KindVideo, "video": KindVideo,
	"a": KindAudio, "audio": KindAudio,
	"s": KindSubtitle, "subtitle": KindSubtitle,
	"d": KindData, "data": KindData,
	"t": KindAttachment, "attachment": KindAttachment,
	"any": KindAny, "*": KindAny,
}

// Selector addresses one stream within a file's metadata as {kind}:{ordinal},
// where the ordinal counts zero-based among streams of the matching kind only.
type Selector struct {
	Kind    Kind
	Ordinal int
}

// ParseSelector parses a selector such as "v:0", "audio:1" or "any:2".
// A bare kind selects the first matching stream.
func ParseSelector(s string) (Selector, error) {
	kindPart, ordPart, found := strings.Cut(strings.TrimSpace(s), ":")

	kind, ok := kindAliases[strings.ToLower(kindPart)]
	if !ok {
		return Selector{}, fmt.Errorf("unknown stream kind %q", kindPart)
	}

	ordinal := 0
	if found {
		n, err := strconv.Atoi(ordPart)
		if err != nil || n < 0 {
			return Selector{}, fmt.Errorf("invalid stream ordinal %q", ordPart)
		}
		ordinal = n
	}

	return Selector{Kind: kind, Ordinal: ordinal}, nil
}

// Matches reports whether the stream is of the selector's kind.
func (sel Selector) Matches(s Stream) bool {
	return sel.Kind == KindAny || string(sel.Kind) == s.CodecType
}

// pick scans streams in original order, counting only matches, and returns
// the ordinal-th match.
func (sel Selector) pick(streams []Stream) (Stream, bool) {
	seen := 0
	for _, s := range streams {
		if !sel.Matches(s) {
			continue
		}
		if seen == sel.Ordinal {
			return s, true
		}
		seen++
	}
	return Stream{}, false
}
