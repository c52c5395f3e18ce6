package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"lukechampine.com/uint128"

	"github.com/bitweave/bitweave/engine"
	"github.com/bitweave/bitweave/layout"
	"github.com/bitweave/bitweave/template"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	bitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	literalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// explorerModel is a live template explorer: type a template and a
// value, see the extracted fields update on every keystroke.
type explorerModel struct {
	template textinput.Model
	value    textinput.Model
	focusIdx int
	hex      bool
}

func newExplorerModel(tmpl, value string, hexBase bool) *explorerModel {
	ti := textinput.New()
	ti.Prompt = "template: "
	ti.Placeholder = "aaab bbcc"
	ti.Width = 60
	ti.SetValue(tmpl)
	ti.Focus()

	vi := textinput.New()
	vi.Prompt = "value:    "
	vi.Placeholder = "0b10110101 or 0xB5 or 181"
	vi.Width = 60
	vi.SetValue(value)

	return &explorerModel{template: ti, value: vi, hex: hexBase}
}

func (m *explorerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "enter":
			if m.focusIdx == 0 {
				m.template.Blur()
				m.value.Focus()
				m.focusIdx = 1
			} else {
				m.value.Blur()
				m.template.Focus()
				m.focusIdx = 0
			}
			return m, nil

		case "ctrl+x":
			m.hex = !m.hex
			return m, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.template, cmd = m.template.Update(msg)
	cmds = append(cmds, cmd)
	m.value, cmd = m.value.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *explorerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("bitweave explorer"))
	if m.hex {
		b.WriteString(" " + typeStyle.Render("[hex]"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.template.View())
	b.WriteString("\n")
	b.WriteString(m.value.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderResult())

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab switch field • ctrl+x toggle hex • esc quit"))
	return b.String()
}

// renderResult parses the current inputs and renders the extracted
// fields, or the first error hit along the way.
func (m *explorerModel) renderResult() string {
	text := m.template.Value()
	if strings.TrimSpace(text) == "" {
		return helpStyle.Render("enter a template to explore")
	}

	base := template.Binary
	if m.hex {
		base = template.Hex
	}

	// Replace accepts every cell kind, so any valid template renders.
	t, err := template.Parse(text, base, template.Replace)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	l := layout.Build(t, layout.Config{})

	var b strings.Builder
	fmt.Fprintf(&b, "width: %s\n", typeStyle.Render(l.Input.String()))
	fmt.Fprintf(&b, "bits:  %s\n", m.renderBits(t))

	value, verr := parseExplorerValue(m.value.Value())
	if verr != nil {
		b.WriteString(errorStyle.Render(verr.Error()))
		return b.String()
	}

	if len(l.Fields) == 0 {
		b.WriteString(helpStyle.Render("no fields in template"))
		return b.String()
	}

	b.WriteString("\n")
	for _, fv := range engine.Extract(l, value) {
		name := fieldStyle.Render(string(fv.Name))
		typ := typeStyle.Render(fv.Type.String())
		if fv.Type.IsBool() {
			fmt.Fprintf(&b, "  %s: %s = %v\n", name, typ, fv.Bool())
			continue
		}
		big := fv.Value.Big()
		fmt.Fprintf(&b, "  %s: %s = %s\n", name, typ,
			bitStyle.Render(fmt.Sprintf("0b%0*s (0x%s, %s)",
				int(fv.Width), big.Text(2), big.Text(16), big.Text(10))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderBits shows the expanded cell row with literals highlighted.
func (m *explorerModel) renderBits(t *template.Template) string {
	var b strings.Builder
	for i, c := range t.Cells {
		if i > 0 && i%4 == 0 {
			b.WriteString(" ")
		}
		s := string(c.Rune())
		switch c.Kind {
		case template.CellZero, template.CellOne:
			b.WriteString(literalStyle.Render(s))
		case template.CellField:
			b.WriteString(fieldStyle.Render(s))
		default:
			b.WriteString(helpStyle.Render(s))
		}
	}
	return b.String()
}

func parseExplorerValue(s string) (uint128.Uint128, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return uint128.Uint128{}, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return uint128.Uint128{}, fmt.Errorf("value: %v", err)
	}
	return uint128.From64(v), nil
}

func runExplorer(tmpl, value string, hexBase bool) error {
	p := tea.NewProgram(newExplorerModel(tmpl, value, hexBase), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
