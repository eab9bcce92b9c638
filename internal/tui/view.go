package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wisdomarc/internal/conversation"
	"wisdomarc/internal/stages"
	"wisdomarc/internal/wisdom"
)

type theme struct {
	root       lipgloss.Style
	header     lipgloss.Style
	panel      lipgloss.Style
	panelTitle lipgloss.Style
	inputPanel lipgloss.Style
	footer     lipgloss.Style

	userLabel lipgloss.Style
	botLabel  lipgloss.Style

	status      lipgloss.Style
	errorStatus lipgloss.Style
	errorText   lipgloss.Style
	muted       lipgloss.Style

	stageDone    lipgloss.Style
	stageActive  lipgloss.Style
	stagePending lipgloss.Style
}

func newTheme() theme {
	gold := lipgloss.Color("#ffd166")
	blue := lipgloss.Color("#01cdfe")
	mint := lipgloss.Color("#05ffa1")
	rose := lipgloss.Color("#ff71ce")
	bg := lipgloss.Color("#120924")
	panelBg := lipgloss.Color("#1b0f35")
	text := lipgloss.Color("#f3f3ff")
	dim := lipgloss.Color("#9ca3d8")

	return theme{
		root: lipgloss.NewStyle().
			Background(bg).
			Foreground(text).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(text).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(gold).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(blue).
			Padding(0, 1),
		panelTitle: lipgloss.NewStyle().Foreground(mint).Bold(true),
		inputPanel: lipgloss.NewStyle().
			Background(panelBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mint).
			Padding(0, 1),
		footer: lipgloss.NewStyle().
			Background(panelBg).
			Foreground(dim).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(rose).
			Padding(0, 1),
		userLabel:    lipgloss.NewStyle().Foreground(mint).Bold(true),
		botLabel:     lipgloss.NewStyle().Foreground(gold).Bold(true),
		status:       lipgloss.NewStyle().Foreground(blue).Bold(true),
		errorStatus:  lipgloss.NewStyle().Foreground(rose).Bold(true),
		errorText:    lipgloss.NewStyle().Foreground(rose),
		muted:        lipgloss.NewStyle().Foreground(dim),
		stageDone:    lipgloss.NewStyle().Foreground(mint),
		stageActive:  lipgloss.NewStyle().Foreground(gold).Bold(true),
		stagePending: lipgloss.NewStyle().Foreground(dim),
	}
}

func (m Model) View() string {
	header := m.renderHeader()
	transcript := m.panelWidth(m.theme.panel).Render(m.transcript.View())
	sections := []string{header, transcript}
	if m.typing && len(m.stages) > 0 {
		sections = append(sections, m.renderStages())
	}
	sections = append(sections, m.renderInput(), m.renderFooter())
	return m.theme.root.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	title := m.theme.panelTitle.Render("WisdomArc Council")
	roster := m.theme.muted.Render("council: " + strings.Join(m.roster, " · "))
	return m.panelWidth(m.theme.header).Render(title + "  " + roster)
}

func (m Model) renderStages() string {
	var b strings.Builder
	b.WriteString(m.theme.panelTitle.Render("Deliberation"))
	for _, stage := range m.stages {
		b.WriteString("\n")
		switch stage.Status {
		case stages.StatusDone:
			b.WriteString(m.theme.stageDone.Render("✓ " + stage.Title))
		case stages.StatusActive:
			b.WriteString(m.theme.stageActive.Render(m.spinner.View() + " " + stage.Title))
			b.WriteString("\n")
			b.WriteString(m.theme.muted.Render("  " + stage.Description))
		default:
			b.WriteString(m.theme.stagePending.Render("· " + stage.Title))
		}
	}
	return m.panelWidth(m.theme.panel).Render(b.String())
}

func (m Model) renderInput() string {
	view := m.input.View()
	if m.typing {
		view = m.spinner.View() + " " + m.theme.muted.Render("the council is deliberating...")
	}
	return m.panelWidth(m.theme.inputPanel).Render(view)
}

func (m Model) renderFooter() string {
	style := m.theme.status
	lowered := strings.ToLower(m.statusLine)
	if strings.Contains(lowered, "failed") || strings.Contains(lowered, "unreachable") {
		style = m.theme.errorStatus
	}
	line := style.Render(compactSingleLine(m.statusLine, 160))
	hints := m.theme.muted.Render("Enter send · PgUp/PgDn scroll · Esc or Ctrl+C quit")
	return m.panelWidth(m.theme.footer).Render(line + "\n" + hints)
}

func (m Model) panelWidth(style lipgloss.Style) lipgloss.Style {
	return style.Width(maxInt(40, m.width-4))
}

func (m *Model) resize() {
	contentWidth := maxInt(40, m.width-4)
	m.input.Width = maxInt(20, contentWidth-6)
	m.transcript.Width = contentWidth
	m.transcript.Height = clampInt(m.height-14, 5, 40)
}

// renderTranscript rebuilds the viewport content from the store snapshot.
func (m *Model) renderTranscript() {
	all := m.store.All()
	if len(all) == 0 {
		m.transcript.SetContent(m.theme.muted.Render("No messages yet. Ask the council a question to begin."))
		return
	}
	width := maxInt(24, m.transcript.Width-2)
	var b strings.Builder
	for _, msg := range all {
		label := m.theme.userLabel
		if msg.Sender == conversation.SenderBot {
			label = m.theme.botLabel
		}
		header := fmt.Sprintf("%s [%s]", msg.Timestamp.Format("15:04:05"), msg.Sender)
		b.WriteString(label.Render(header))
		b.WriteString("\n")
		b.WriteString(wrapText(m.renderBody(msg), width))
		b.WriteString("\n\n")
	}
	m.transcript.SetContent(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderBody(msg conversation.Message) string {
	if msg.Sender == conversation.SenderUser {
		return msg.Text
	}
	return m.renderVariant(msg.Variant)
}

// renderVariant switches exhaustively over the closed variant set.
func (m *Model) renderVariant(v wisdom.Variant) string {
	switch v := v.(type) {
	case wisdom.Philosophical:
		var b strings.Builder
		for _, perspective := range v.Perspectives {
			b.WriteString(m.theme.panelTitle.Render("— " + perspective.Name + " —"))
			b.WriteString("\n")
			b.WriteString(perspective.Text)
			b.WriteString("\n\n")
		}
		b.WriteString(m.theme.panelTitle.Render("— Synthesis —"))
		b.WriteString("\n")
		b.WriteString(v.Synthesis)
		return b.String()
	case wisdom.Synthesis:
		return v.Text + "\n" + m.theme.muted.Render("consulted: "+strings.Join(v.Sources, ", "))
	case wisdom.ErrorReply:
		out := m.theme.errorText.Render(v.UserMessage)
		if strings.TrimSpace(v.Detail) != "" {
			out += "\n" + m.theme.muted.Render("detail: "+compactSingleLine(v.Detail, 200))
		}
		return out
	case wisdom.RawFallback:
		return m.theme.muted.Render("The council replied in an unfamiliar form:") + "\n" + v.Payload
	}
	return ""
}
