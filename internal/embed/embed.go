// Package embed turns short service/identifier references into embeddable
// markup. The Renderer looks up the service profile, normalizes the
// user-supplied parameters, branches into service-specific handlers where
// registered, and renders one of three markup variants. User input errors
// become inline failure markup; they never abort the host's rendering.
package embed

import (
	"net/http"
	"strconv"
	"strings"

	"embedkit/internal/config"
	"embedkit/internal/httputil"
	"embedkit/internal/registry"
)

// Request is one authoring call. Service and ID are required; Width, Align
// and Description are raw optional user input.
type Request struct {
	Service     string
	ID          string
	Width       string
	Align       string
	Description string
}

// Markup is the rendered result. NoParse and Raw tell the host pipeline
// the fragment is pre-rendered, trusted HTML that must not be re-escaped
// or re-parsed.
type Markup struct {
	HTML    string
	NoParse bool
	Raw     bool
}

// Handler resolves a service-specific identifier into the inner embed
// markup, before any alignment wrapper is applied. The id is already
// escaped and the parameters normalized.
type Handler func(rd *Renderer, p *registry.Profile, id string, res Resolved) (string, error)

// Renderer orchestrates embed resolution. It holds no per-request state
// and is safe for concurrent use once configured.
type Renderer struct {
	Registry *registry.Registry
	Config   *config.Config
	HTTP     *http.Client

	// Base is the deployment's script root, substituted for {base} in
	// extern clauses.
	Base string

	// Expand is the host's inline-markup expansion for captions.
	Expand Expander

	// Messages localizes failure text for inline error markup.
	Messages MessageFunc

	handlers map[string]Handler
}

// New creates a renderer with the default service handlers registered.
func New(reg *registry.Registry, cfg *config.Config) *Renderer {
	rd := &Renderer{
		Registry: reg,
		Config:   cfg,
		HTTP:     httputil.NewClient(),
		Base:     "https://" + cfg.Hostname,
		Messages: DefaultMessages,
		handlers: make(map[string]Handler),
	}
	rd.Handle("peertube", peertubeHandler)
	rd.Handle("metacafe", playbackLookupHandler(metacafeLookup))
	return rd
}

// Handle registers (or replaces) the handler for a service. Handlers take
// precedence over both the extern clause and default URL substitution.
func (rd *Renderer) Handle(service string, h Handler) {
	rd.handlers[service] = h
}

// Resolve produces the embed markup for a request, or a typed failure.
func (rd *Renderer) Resolve(req Request) (string, error) {
	html, _, err := rd.ResolveDetails(req)
	return html, err
}

// ResolveDetails is Resolve plus the normalized parameters, for callers
// that need the concrete dimensions of a successful embed.
func (rd *Renderer) ResolveDetails(req Request) (string, Resolved, error) {
	service := strings.ToLower(strings.TrimSpace(req.Service))
	if service == "" || req.ID == "" {
		return "", Resolved{}, ErrMissingParameters
	}

	profile, ok := rd.Registry.Lookup(service)
	if !ok {
		return "", Resolved{}, ErrUnknownService
	}

	id, err := httputil.EscapeID(req.ID)
	if err != nil {
		return "", Resolved{}, ErrInvalidIdentifier
	}

	res, err := normalize(rd.Config, profile, req.Width, req.Align, req.Description, rd.Expand)
	if err != nil {
		return "", Resolved{}, err
	}

	inner, err := rd.inner(profile, id, res)
	if err != nil {
		return "", Resolved{}, err
	}

	return finalize(inner, res), res, nil
}

// inner selects the generation strategy: custom handler, then extern
// clause, then default URL-template substitution.
func (rd *Renderer) inner(p *registry.Profile, id string, res Resolved) (string, error) {
	if h, ok := rd.handlers[p.Name]; ok {
		return h(rd, p, id, res)
	}
	if p.Extern != "" {
		return rd.externClause(p, id, res, ""), nil
	}
	url := substitute(p.URLTemplate, map[string]string{
		"id":     id,
		"width":  strconv.Itoa(res.Width),
		"height": strconv.Itoa(res.Height),
	})
	return playerElement(url, res.Width, res.Height), nil
}

// externClause substitutes the profile's full-markup override template.
func (rd *Renderer) externClause(p *registry.Profile, id string, res Resolved, playbackURL string) string {
	return substitute(p.Extern, map[string]string{
		"base":   rd.Base,
		"id":     id,
		"width":  strconv.Itoa(res.Width),
		"height": strconv.Itoa(res.Height),
		"url":    playbackURL,
	})
}

// Render resolves a request, converting any failure into inline localized
// failure markup. The returned fragment is always final: the host must
// treat it as raw, pre-rendered HTML.
func (rd *Renderer) Render(req Request) Markup {
	html, err := rd.Resolve(req)
	if err != nil {
		msgs := rd.Messages
		if msgs == nil {
			msgs = DefaultMessages
		}
		html = failureMarkup(msgs(err, strings.ToLower(strings.TrimSpace(req.Service))))
	}
	return Markup{HTML: html, NoParse: true, Raw: true}
}

// RenderLegacy preserves the historical call shape with its different
// parameter order. Semantics are identical to Render.
func (rd *Renderer) RenderLegacy(service, id, description, align, width string) Markup {
	return rd.Render(Request{
		Service:     service,
		ID:          id,
		Width:       width,
		Align:       align,
		Description: description,
	})
}
