package probe

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// Fallback dimensions used when a file carries no usable video stream.
const (
	FallbackWidth  = 640
	FallbackHeight = 360
)

// Status records the outcome of the one-shot probe invocation.
type Status int

const (
	// StatusUnprobed means the external tool has not been invoked yet.
	StatusUnprobed Status = iota
	// StatusOK means metadata was extracted successfully.
	StatusOK
	// StatusNoTool means the probe binary was not found; metadata is empty.
	StatusNoTool
	// StatusBadOutput means the tool ran but its output was not valid
	// probe JSON (or the run itself failed); metadata is empty.
	StatusBadOutput
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoTool:
		return "tool missing"
	case StatusBadOutput:
		return "bad output"
	default:
		return "unprobed"
	}
}

// CommandRunner executes an external command and returns its stdout.
type CommandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).Output()
}

// probeArgs is the fixed ffprobe argument set: quiet, JSON output, with
// container and per-stream reporting enabled.
var probeArgs = []string{"-v", "quiet", "-print_format", "json", "-show_format", "-show_streams"}

// Probe inspects one media file. The external tool runs at most once, on
// first metadata access; all later queries reuse the cached result. A Probe
// is not safe for concurrent use; the execution model is one probe per file
// per request.
type Probe struct {
	Path    string
	Bin     string
	Run     CommandRunner
	Timeout time.Duration

	status  Status
	format  Format
	streams []Stream
}

// New creates a probe for the given file using the configured binary.
func New(bin, path string) *Probe {
	if strings.TrimSpace(bin) == "" {
		bin = "ffprobe"
	}
	return &Probe{
		Path:    path,
		Bin:     bin,
		Run:     defaultRunner,
		Timeout: 30 * time.Second,
	}
}

// ensure performs the lazy one-shot invocation.
func (p *Probe) ensure(ctx context.Context) {
	if p.status != StatusUnprobed {
		return
	}
	if p.Run == nil {
		p.Run = defaultRunner
	}

	execCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	args := append(append([]string{}, probeArgs...), p.Path)
	out, err := p.Run(execCtx, p.Bin, args...)
	if err != nil {
		if isToolMissing(err) {
			p.status = StatusNoTool
		} else {
			p.status = StatusBadOutput
		}
		return
	}

	var doc output
	if err := json.Unmarshal(out, &doc); err != nil {
		p.status = StatusBadOutput
		return
	}

	p.format = doc.Format
	p.streams = doc.Streams
	p.status = StatusOK
}

// isToolMissing distinguishes an absent binary from a failed run.
func isToolMissing(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// Status triggers the probe if needed and reports its outcome.
func (p *Probe) Status(ctx context.Context) Status {
	p.ensure(ctx)
	return p.status
}

// Format returns the container descriptor, or false when unavailable.
func (p *Probe) Format(ctx context.Context) (Format, bool) {
	p.ensure(ctx)
	if p.status != StatusOK {
		return Format{}, false
	}
	return p.format, true
}

// Streams returns all stream descriptors in original order.
func (p *Probe) Streams(ctx context.Context) []Stream {
	p.ensure(ctx)
	return p.streams
}

// Stream resolves a {kind}:{ordinal} selector against the file's streams,
// returning false when no stream matches or the selector is malformed.
func (p *Probe) Stream(ctx context.Context, selector string) (Stream, bool) {
	p.ensure(ctx)
	if p.status != StatusOK {
		return Stream{}, false
	}
	sel, err := ParseSelector(selector)
	if err != nil {
		return Stream{}, false
	}
	return sel.pick(p.streams)
}

// Dimensions returns the first video stream's width and height, falling
// back to 640x360 when the file has no usable video stream.
func (p *Probe) Dimensions(ctx context.Context) (width, height int) {
	if s, ok := p.Stream(ctx, "v:0"); ok && s.Width > 0 && s.Height > 0 {
		return s.Width, s.Height
	}
	return FallbackWidth, FallbackHeight
}
