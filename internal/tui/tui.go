// Package tui implements the interactive service browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"embedkit/internal/embed"
	"embedkit/internal/registry"
)

var previewStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1).
	MarginTop(1)

// item adapts a service profile to the bubbles list.
type item struct {
	profile *registry.Profile
}

func (i item) Title() string { return i.profile.Name }

func (i item) Description() string {
	if i.profile.Extern != "" {
		return fmt.Sprintf("extern clause, default width %d", i.profile.DefaultWidth)
	}
	return fmt.Sprintf("%s, ratio %s", i.profile.URLTemplate, i.profile.Ratio())
}

func (i item) FilterValue() string { return i.profile.Name }

// model drives the browser: a service list plus a live markup preview for
// a sample identifier.
type model struct {
	list     list.Model
	renderer *embed.Renderer
	preview  string
	width    int
}

// New builds the browser over the renderer's registry.
func New(rd *embed.Renderer) tea.Model {
	names := rd.Registry.Names()
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		if p, ok := rd.Registry.Lookup(name); ok {
			items = append(items, item{profile: p})
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Services"
	l.SetShowStatusBar(false)

	m := model{list: l, renderer: rd}
	m.updatePreview()
	return m
}

// Run starts the browser loop.
func Run(rd *embed.Renderer) error {
	_, err := tea.NewProgram(New(rd), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width, msg.Height/2)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.updatePreview()
	return m, cmd
}

// updatePreview renders sample markup for the selected service. Services
// needing network resolution preview their template instead.
func (m *model) updatePreview() {
	sel, ok := m.list.SelectedItem().(item)
	if !ok {
		m.preview = ""
		return
	}
	p := sel.profile

	sampleID := "sample-id"
	if p.Name == "peertube" {
		sampleID = "tube.example.org/sample-id"
	}
	if p.Name == "metacafe" {
		m.preview = "resolves playback URL at render time\n" + p.Extern
		return
	}

	markup, err := m.renderer.Resolve(embed.Request{Service: p.Name, ID: sampleID})
	if err != nil {
		m.preview = "preview unavailable: " + err.Error()
		return
	}
	m.preview = markup
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	if m.preview != "" {
		w := m.width - 4
		if w < 20 {
			w = 76
		}
		b.WriteString(previewStyle.Width(w).Render(m.preview))
	}
	return b.String()
}
