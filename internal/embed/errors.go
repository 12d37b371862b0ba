package embed

import (
	"errors"
	"fmt"

	"embedkit/internal/httputil"
)

// Resolution failures surfaced to the author. Each renders as inline
// failure markup in place of the embed; none is fatal to the host.
var (
	ErrMissingParameters  = errors.New("service and id are required")
	ErrUnknownService     = errors.New("unknown service")
	ErrInvalidWidth       = errors.New("invalid width")
	ErrInvalidAlignment   = errors.New("invalid alignment")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrInvalidServiceID   = errors.New("malformed service identifier")
	ErrUnresolvedPlayback = errors.New("playback URL could not be resolved")
)

// MessageFunc maps a resolution failure to user-facing text. The default
// catalog is English; hosts plug in their own catalog for localization.
type MessageFunc func(err error, service string) string

// DefaultMessages is the built-in English catalog.
func DefaultMessages(err error, service string) string {
	switch {
	case errors.Is(err, ErrMissingParameters):
		return "embed: service and media id are required"
	case errors.Is(err, ErrUnknownService):
		return fmt.Sprintf("embed: unknown service %q", service)
	case errors.Is(err, ErrInvalidWidth):
		return "embed: width must be a number within the configured range"
	case errors.Is(err, ErrInvalidAlignment):
		return "embed: alignment must be left, right, center or auto"
	case errors.Is(err, ErrInvalidIdentifier):
		return "embed: media identifier is empty or invalid"
	case errors.Is(err, ErrInvalidServiceID):
		return fmt.Sprintf("embed: identifier is malformed for service %q", service)
	case errors.Is(err, ErrUnresolvedPlayback):
		return fmt.Sprintf("embed: could not resolve a playback URL for service %q", service)
	default:
		return "embed: " + err.Error()
	}
}

// failureMarkup renders a resolution failure as inline markup the host can
// place where the embed would have gone.
func failureMarkup(msg string) string {
	return `<div class="embed-error">` + httputil.EscapeText(msg) + `</div>`
}
