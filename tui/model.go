// Package tui is the interactive terminal front end: category and unit
// selectors, a value field that converts on every edit, and the session
// history.
package tui

import (
	"fmt"
	"strings"
	"unitconverter"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field int

const (
	fieldCategory field = iota
	fieldSource
	fieldDest
	fieldValue
	fieldCount
)

// chromeLines is the number of rows the view uses outside the history list.
const chromeLines = 14

type Model struct {
	session    *unitconverter.Session
	categories []unitconverter.Category
	units      []unitconverter.Unit

	category int
	source   int
	dest     int
	focus    field

	input     textinput.Model
	lastValue string
	result    string
	counts    map[unitconverter.Category]int

	width  int
	height int
	styles Styles
}

func New(session *unitconverter.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "enter a value"
	ti.CharLimit = 64
	ti.Width = 32
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(TextPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	ti.Focus()

	categories := unitconverter.Categories()
	m := Model{
		session:    session,
		categories: categories,
		units:      unitconverter.UnitsOf(categories[0]),
		focus:      fieldValue,
		input:      ti,
		styles:     DefaultStyles(),
	}
	m.refreshCounts()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Category() unitconverter.Category {
	return m.categories[m.category]
}

func (m Model) SourceUnit() unitconverter.Unit {
	return m.units[m.source]
}

func (m Model) DestUnit() unitconverter.Unit {
	return m.units[m.dest]
}

// Result is the text of the last accepted conversion shown to the user.
func (m Model) Result() string {
	return m.result
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "q":
			if m.focus != fieldValue {
				return m, tea.Quit
			}
		case "tab":
			return m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "left", "up":
			if m.focus != fieldValue {
				m.cycle(-1)
				return m, nil
			}
		case "right", "down":
			if m.focus != fieldValue {
				m.cycle(1)
				return m, nil
			}
		}
	}

	if m.focus != fieldValue {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.lastValue {
		m.lastValue = v
		m.convert()
	}
	return m, cmd
}

func (m Model) setFocus(f field) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == fieldValue {
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}

func (m *Model) cycle(step int) {
	wrap := func(i, n int) int { return (i + step + n) % n }
	switch m.focus {
	case fieldCategory:
		m.category = wrap(m.category, len(m.categories))
		m.units = unitconverter.UnitsOf(m.Category())
		m.source, m.dest = 0, 0
		m.result = ""
	case fieldSource:
		m.source = wrap(m.source, len(m.units))
	case fieldDest:
		m.dest = wrap(m.dest, len(m.units))
	}
}

// convert leaves the previous result on screen when the input is rejected.
func (m *Model) convert() {
	rec, ok := m.session.HandleInput(m.Category(), m.lastValue, m.SourceUnit(), m.DestUnit())
	if !ok {
		return
	}
	m.result = rec.Text
	m.refreshCounts()
}

func (m *Model) refreshCounts() {
	counts, err := m.session.History().CountByCategory()
	if err != nil {
		return
	}
	m.counts = counts
}

func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	b.WriteString(s.Title.Render("Unit Converter"))
	b.WriteString("\n")
	b.WriteString(m.selectorRow("Category", string(m.Category()), fieldCategory))
	b.WriteString(m.selectorRow("From", string(m.SourceUnit()), fieldSource))
	b.WriteString(m.selectorRow("To", string(m.DestUnit()), fieldDest))
	b.WriteString(s.Label.Render("Value") + m.input.View() + "\n")
	b.WriteString(s.Label.Render("Result") + s.Result.Render(m.result) + "\n")

	b.WriteString(s.SectionHeader.Render("History"))
	b.WriteString("\n")
	for _, rec := range m.session.History().Tail(m.historyRows()) {
		b.WriteString(s.HistoryItem.Render(rec.Text))
		b.WriteString("\n")
	}

	b.WriteString(s.Status.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(s.Help.Render("tab/shift+tab: field · ←/→: change selection · q: quit"))
	return b.String()
}

func (m Model) selectorRow(label, value string, f field) string {
	style := m.styles.Selector
	text := "  " + value + "  "
	if m.focus == f {
		style = m.styles.SelectorFocus
		text = "‹ " + value + " ›"
	}
	return m.styles.Label.Render(label) + style.Render(text) + "\n"
}

// historyRows is the number of history lines that fit; 0 means unbounded.
func (m Model) historyRows() int {
	if m.height == 0 {
		return 0
	}
	if rows := m.height - chromeLines; rows > 1 {
		return rows
	}
	return 1
}

func (m Model) statusLine() string {
	parts := make([]string, 0, len(m.categories))
	for _, c := range m.categories {
		parts = append(parts, fmt.Sprintf("%s %d", c, m.counts[c]))
	}
	return strings.Join(parts, " · ")
}
