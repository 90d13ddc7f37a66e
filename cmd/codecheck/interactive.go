package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unbound-force/codecheck/internal/report"
	"github.com/unbound-force/codecheck/internal/scan"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	sectionRule = statusStyle.Render(strings.Repeat("-", 60))
)

// reportModel is the Bubble Tea model for browsing a rendered report.
type reportModel struct {
	title    string
	content  string
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
}

func newReportModel(title, content string) reportModel {
	return reportModel{
		title:   title,
		content: content,
		help:    help.New(),
		keys:    defaultKeyMap,
	}
}

// renderDirectoryContent renders the directory summary followed by
// the full report of every analyzed file, in ranked order.
func renderDirectoryContent(sum *scan.Summary, top int) string {
	styles := report.DefaultStyles()

	var sb strings.Builder
	// Writes to a strings.Builder cannot fail.
	_ = report.WriteDirectoryText(&sb, sum, top, styles)

	for _, r := range sum.Results {
		sb.WriteString("\n")
		sb.WriteString(sectionRule)
		sb.WriteString("\n\n")
		sb.WriteString(report.RenderText(r.Report, styles))
	}
	if len(sum.Failures) > 0 {
		sb.WriteString("\n")
		sb.WriteString(sectionRule)
		sb.WriteString("\n\n")
		sb.WriteString(styles.Section.Render("Skipped files:"))
		sb.WriteString("\n")
		for _, f := range sum.Failures {
			sb.WriteString(styles.Muted.Render(fmt.Sprintf("  - %s: %s", f.Path, f.Message)))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m reportModel) Init() tea.Cmd {
	return nil
}

func (m reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 1
		footerHeight := 2
		verticalMargin := headerHeight + footerHeight

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-verticalMargin)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - verticalMargin
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m reportModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := titleStyle.Render("codecheck: " + m.title)
	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return header + "\n" + m.viewport.View() + "\n" + footer
}

// runInteractive launches the Bubble Tea TUI for browsing rendered
// report content.
func runInteractive(title, content string) error {
	model := newReportModel(title, content)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
