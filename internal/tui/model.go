// Package tui drives the chat interface: a bubbletea model owning the
// request lifecycle, the simulated progress timeline, and the transcript
// rendering.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"wisdomarc/internal/conversation"
	"wisdomarc/internal/stages"
	"wisdomarc/internal/wisdom"
)

// phase is the request lifecycle. Input is accepted only while idle; a
// submit walks through submitting (synchronous bookkeeping) into awaiting,
// and the reply message returns the model to idle.
type phase int

const (
	phaseIdle phase = iota
	phaseSubmitting
	phaseAwaiting
)

const startupProbeTimeout = 5 * time.Second

// asker is the single outbound dependency. The wisdom.Client satisfies it;
// tests substitute canned implementations.
type asker interface {
	Ask(ctx context.Context, query string) (map[string]any, error)
	Health(ctx context.Context) (wisdom.HealthStatus, error)
	Agents(ctx context.Context) ([]string, error)
}

type Model struct {
	client asker
	store  *conversation.Store
	logger *zap.Logger

	phase  phase
	typing bool
	// generation stamps stage tick messages; bumping it abandons timers
	// scheduled for a request that has already resolved.
	generation int
	stages     []stages.Stage

	roster     []string
	statusLine string
	ready      bool

	stageInterval time.Duration

	width  int
	height int

	input      textinput.Model
	transcript viewport.Model
	spinner    spinner.Model

	theme theme
}

type initDoneMsg struct {
	status wisdom.HealthStatus
	roster []string
	err    error
}

type replyMsg struct {
	raw map[string]any
	err error
}

type stageTickMsg struct {
	generation int
}

func New(client asker, store *conversation.Store, logger *zap.Logger, stageInterval time.Duration) Model {
	input := textinput.New()
	input.Prompt = "❯ "
	input.CharLimit = 2000
	input.Placeholder = "Ask the council anything"
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#05ffa1"))

	transcript := viewport.New(0, 0)
	transcript.MouseWheelEnabled = true
	transcript.MouseWheelDelta = 4

	if stageInterval <= 0 {
		stageInterval = 800 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return Model{
		client:        client,
		store:         store,
		logger:        logger,
		roster:        append([]string(nil), wisdom.DefaultCouncil...),
		statusLine:    "starting...",
		stageInterval: stageInterval,
		input:         input,
		transcript:    transcript,
		spinner:       sp,
		theme:         newTheme(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.initCmd())
}

func (m Model) initCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), startupProbeTimeout)
		defer cancel()
		status, err := m.client.Health(ctx)
		roster, rosterErr := m.client.Agents(ctx)
		if rosterErr != nil {
			roster = nil
		}
		return initDoneMsg{status: status, roster: roster, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case initDoneMsg:
		m.ready = true
		if len(msg.roster) > 0 {
			m.roster = msg.roster
		}
		if msg.err != nil {
			// A failed probe is not fatal: submissions stay enabled and
			// each request reports its own failure.
			m.statusLine = "council unreachable · " + compactSingleLine(msg.err.Error(), 120)
			m.logger.Warn("startup probe failed", zap.Error(msg.err))
		} else {
			m.statusLine = "council online · " + nullCoalesce(msg.status.Version, "unknown version")
			m.logger.Info("startup probe ok",
				zap.String("status", msg.status.Status),
				zap.String("version", msg.status.Version))
		}
		m.renderTranscript()

	case stageTickMsg:
		if msg.generation != m.generation || len(m.stages) == 0 {
			break
		}
		if advanceStages(m.stages) {
			cmds = append(cmds, m.stageTickCmd(m.generation))
		}

	case replyMsg:
		m.finishRequest(msg)
		m.renderTranscript()
		m.transcript.GotoBottom()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.renderTranscript()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if cmd := m.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			cmds = append(cmds, cmd)
		default:
			if m.phase == phaseIdle {
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// submit runs the Idle -> Submitting -> Awaiting transition. Empty input
// and non-idle phases are no-ops; on success the user message is committed
// synchronously and the simulator plus network call start together.
func (m *Model) submit() tea.Cmd {
	if m.phase != phaseIdle {
		return nil
	}
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return nil
	}

	m.phase = phaseSubmitting
	m.store.AppendUser(query)
	m.input.Reset()
	m.stages = stages.Catalog(query)
	m.generation++
	m.statusLine = "consulting the council..."
	m.logger.Info("query submitted", zap.String("query", query))
	m.renderTranscript()
	m.transcript.GotoBottom()

	m.phase = phaseAwaiting
	m.typing = true
	return tea.Batch(m.stageTickCmd(m.generation), m.askCmd(query))
}

func (m Model) askCmd(query string) tea.Cmd {
	return func() tea.Msg {
		raw, err := m.client.Ask(context.Background(), query)
		return replyMsg{raw: raw, err: err}
	}
}

// finishRequest is the single exit path from awaiting: it stops the
// simulator, appends exactly one bot message, and returns to idle.
func (m *Model) finishRequest(msg replyMsg) {
	m.generation++
	m.stages = nil
	m.typing = false
	m.phase = phaseIdle

	if msg.err != nil {
		m.store.AppendBot(wisdom.ErrorReply{UserMessage: wisdom.Apology, Detail: msg.err.Error()})
		m.statusLine = "request failed"
		m.logger.Warn("request failed", zap.Error(msg.err))
		return
	}
	variant := wisdom.Normalize(msg.raw)
	m.store.AppendBot(variant)
	m.statusLine = "reply received"
	m.logger.Info("reply normalized", zap.String("variant", variantKind(variant)))
}

func variantKind(v wisdom.Variant) string {
	switch v.(type) {
	case wisdom.Philosophical:
		return "philosophical"
	case wisdom.Synthesis:
		return "synthesis"
	case wisdom.ErrorReply:
		return "error"
	case wisdom.RawFallback:
		return "raw_fallback"
	}
	return "unknown"
}
