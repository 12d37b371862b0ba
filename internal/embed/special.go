package embed

import (
	"fmt"
	"strconv"
	"strings"

	"embedkit/internal/httputil"
	"embedkit/internal/registry"
)

// metacafeLookup is the provider page scanned for the playback URL.
const metacafeLookup = "https://www.metacafe.com/watch/{id}/"

// peertubeHandler decomposes the structured peertube identifier
// "host/uuid" into its components before substitution. Malformed input
// aborts the whole embed; there is no fallback to generic substitution.
func peertubeHandler(rd *Renderer, p *registry.Profile, id string, res Resolved) (string, error) {
	host, uuid, found := strings.Cut(id, "/")
	if !found || host == "" || uuid == "" || strings.Contains(uuid, "/") {
		return "", fmt.Errorf("%w: want host/uuid, got %q", ErrInvalidServiceID, id)
	}
	if !strings.Contains(host, ".") {
		return "", fmt.Errorf("%w: %q is not an instance host", ErrInvalidServiceID, host)
	}

	url := substitute(p.URLTemplate, map[string]string{
		"host":   host,
		"uuid":   uuid,
		"width":  strconv.Itoa(res.Width),
		"height": strconv.Itoa(res.Height),
	})
	return playerElement(url, res.Width, res.Height), nil
}

// playbackLookupHandler builds a handler for services whose id must first
// be resolved to a real playback URL via a one-shot fetch against the
// given lookup endpoint. The resolved URL feeds the profile's extern
// clause when present, or a plain player element otherwise.
func playbackLookupHandler(lookupTemplate string) Handler {
	return func(rd *Renderer, p *registry.Profile, id string, res Resolved) (string, error) {
		lookupURL := substitute(lookupTemplate, map[string]string{"id": id})

		playback := rd.resolvePlaybackURL(lookupURL)
		if playback == "" {
			return "", fmt.Errorf("%w: lookup at %s", ErrUnresolvedPlayback, lookupURL)
		}

		if p.Extern != "" {
			return rd.externClause(p, id, res, playback), nil
		}
		return playerElement(playback, res.Width, res.Height), nil
	}
}

// resolvePlaybackURL fetches the lookup document and extracts the embed
// URL between the first `value="` attribute and the following quote.
// Any fetch or scan failure yields an empty URL; the caller turns that
// into the unresolved-playback failure. The request always runs on the
// renderer's configured client.
func (rd *Renderer) resolvePlaybackURL(lookupURL string) string {
	body, err := httputil.GetBody(rd.HTTP, lookupURL, rd.Config.Hostname)
	if err != nil {
		return ""
	}

	const marker = `value="`
	start := strings.Index(string(body), marker)
	if start < 0 {
		return ""
	}
	rest := string(body[start+len(marker):])

	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return rest[:end]
}
