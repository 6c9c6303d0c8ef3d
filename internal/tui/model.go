// Package tui implements the interactive convergence dashboard. Estimations
// run in the background through the orchestrator; the dashboard replays the
// convergence one index at a time alongside live process and system metrics.
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/phicalc/internal/config"
	apperrors "github.com/agbru/phicalc/internal/errors"
	"github.com/agbru/phicalc/internal/estimator"
	"github.com/agbru/phicalc/internal/format"
	"github.com/agbru/phicalc/internal/metrics"
	"github.com/agbru/phicalc/internal/sequence"
	"github.com/agbru/phicalc/internal/sysmon"
)

const (
	// tickInterval drives both the convergence replay and stat sampling.
	tickInterval = 250 * time.Millisecond
	// maxVisibleRows bounds the convergence rows shown at once.
	maxVisibleRows = 14
	// sparklineWidth bounds the error trail length.
	sparklineWidth = 40
)

// TickMsg advances the replay and triggers stat sampling.
type TickMsg time.Time

// EstimationCompleteMsg carries the finished runs into the model.
type EstimationCompleteMsg struct {
	Results    []estimator.Result
	ExitCode   int
	Generation uint64
}

// SysStatsMsg carries a system-wide resource sample.
type SysStatsMsg sysmon.Stats

// MemStatsMsg carries a process memory sample.
type MemStatsMsg metrics.MemorySnapshot

// ContextCancelledMsg signals that the parent context ended.
type ContextCancelledMsg struct {
	Generation uint64
}

// silentPresenter satisfies the orchestrator interfaces without writing
// anything; the dashboard renders the results itself.
type silentPresenter struct{}

func (silentPresenter) PresentComparisonTable([]estimator.Result, io.Writer) {}
func (silentPresenter) PresentResult(estimator.Result, estimator.PresentationOptions, io.Writer) {
}
func (silentPresenter) HandleError(error, time.Duration, io.Writer) int {
	return apperrors.ExitErrorGeneric
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	keymap     KeyMap
	config     config.AppConfig
	estimators []estimator.Estimator

	parentCtx  context.Context
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64

	results  []estimator.Result
	best     *estimator.Result
	exitCode int

	revealed int
	scroll   int
	errTrail []float64

	mem metrics.MemorySnapshot
	sys sysmon.Stats

	startTime time.Time
	width     int
	height    int
	done      bool
	paused    bool
}

// NewModel creates a dashboard model for the given estimators.
func NewModel(parentCtx context.Context, estimators []estimator.Estimator, cfg config.AppConfig) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		keymap:     DefaultKeyMap(),
		config:     cfg,
		estimators: estimators,
		parentCtx:  parentCtx,
		ctx:        ctx,
		cancel:     cancel,
		exitCode:   apperrors.ExitSuccess,
		startTime:  time.Now(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startEstimationCmd(m.ctx, m.estimators, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case EstimationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.results = msg.Results
		m.exitCode = msg.ExitCode
		for i := range m.results {
			r := &m.results[i]
			if r.Err == nil && !r.Estimation.Overflowed {
				m.best = r
				break
			}
		}
		if m.best == nil {
			// No trustworthy run; replay the first one anyway so the wrap
			// is visible on screen.
			for i := range m.results {
				if m.results[i].Err == nil {
					m.best = &m.results[i]
					break
				}
			}
		}
		if m.best == nil {
			m.done = true
		}
		return m, nil

	case TickMsg:
		if m.paused || m.done {
			return m, tickCmd()
		}
		m.advanceReplay()
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.mem = metrics.MemorySnapshot(msg)
		return m, nil

	case SysStatsMsg:
		m.sys = sysmon.Stats(msg)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// advanceReplay reveals the next convergence row and extends the error trail.
func (m *Model) advanceReplay() {
	if m.best == nil || m.best.Estimation == nil {
		return
	}
	ratios := m.best.Estimation.Ratios
	if m.revealed >= len(ratios) {
		m.done = true
		return
	}
	r := ratios[m.revealed]
	absErr := r - sequence.GoldenRatio
	if absErr < 0 {
		absErr = -absErr
	}
	m.errTrail = append(m.errTrail, absErr)
	if len(m.errTrail) > sparklineWidth {
		m.errTrail = m.errTrail[len(m.errTrail)-sparklineWidth:]
	}
	m.revealed++
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		if m.scroll < m.revealed-maxVisibleRows {
			m.scroll++
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}
		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel
		m.results = nil
		m.best = nil
		m.revealed = 0
		m.scroll = 0
		m.errTrail = nil
		m.done = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess
		m.startTime = time.Now()
		return m, tea.Batch(
			tickCmd(),
			startEstimationCmd(m.ctx, m.estimators, m.config, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.renderHeader()
	body := panelStyle.Width(m.width - 2).Render(m.renderBody())
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	status := statusRunningStyle.Render("RUNNING")
	if m.paused {
		status = statusPausedStyle.Render("PAUSED")
	}
	if m.done {
		status = statusDoneStyle.Render("DONE")
	}
	return headerStyle.Render(fmt.Sprintf("phicalc · golden ratio convergence · %s · %s",
		status, format.FormatExecutionDuration(time.Since(m.startTime))))
}

func (m Model) renderBody() string {
	if m.best == nil || m.best.Estimation == nil {
		return "Estimating..."
	}

	est := m.best.Estimation
	lines := make([]string, 0, maxVisibleRows+6)

	lines = append(lines, titleStyle.Render(fmt.Sprintf("Representation %s, %d terms", m.best.Name, m.config.N)))

	// Scrollback shifts the visible window towards earlier rows.
	last := m.revealed - m.scroll
	first := last - maxVisibleRows
	if first < 0 {
		first = 0
	}
	for k := first; k < last; k++ {
		i := k + 2
		r := est.Ratios[k]
		absErr := r - sequence.GoldenRatio
		if absErr < 0 {
			absErr = -absErr
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			rowIndexStyle.Render(fmt.Sprintf("i=%-4d", i)),
			rowRatioStyle.Render(format.FormatRatio(r)),
			rowErrorStyle.Render(fmt.Sprintf("|error|=%.3e", absErr))))
	}

	lines = append(lines, "")
	lines = append(lines, metricLabelStyle.Render("error trail  ")+sparklineStyle.Render(ErrorSparkline(m.errTrail)))

	if m.revealed == len(est.Ratios) {
		ind := metrics.Compute(est.Final, m.config.N, m.best.Duration)
		lines = append(lines, referenceStyle.Render(
			fmt.Sprintf("φ estimate %s (reference %s)",
				format.FormatRatio(est.Final), format.FormatRatio(sequence.GoldenRatio))))
		lines = append(lines, fmt.Sprintf("%s %s   %s %s   %s %s",
			metricLabelStyle.Render("matched digits"),
			metricValueStyle.Render(fmt.Sprintf("%d", ind.MatchedDigits)),
			metricLabelStyle.Render("|error|"),
			metricValueStyle.Render(fmt.Sprintf("%.3e", ind.AbsError)),
			metricLabelStyle.Render("throughput"),
			metricValueStyle.Render(fmt.Sprintf("%.0f terms/s", ind.TermsPerSecond))))
		if est.Overflowed {
			lines = append(lines, overflowStyle.Render("⚠ representation wrapped; estimates past the safe index are garbage"))
		}
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		metricLabelStyle.Render("heap"),
		metricValueStyle.Render(format.FormatBytes(m.mem.HeapAlloc)),
		metricLabelStyle.Render("goroutines"),
		metricValueStyle.Render(fmt.Sprintf("%d", m.mem.NumGoroutine)),
		metricLabelStyle.Render("cpu"),
		metricValueStyle.Render(fmt.Sprintf("%.1f%%", m.sys.CPUPercent)),
		metricLabelStyle.Render("sys mem"),
		metricValueStyle.Render(fmt.Sprintf("%s/%s (%.1f%%)",
			format.FormatBytes(m.sys.MemUsedBytes), format.FormatBytes(m.sys.MemTotal), m.sys.MemPercent))))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFooter() string {
	return footerKeyStyle.Render("q") + footerDescStyle.Render(" quit  ") +
		footerKeyStyle.Render("p") + footerDescStyle.Render(" pause  ") +
		footerKeyStyle.Render("r") + footerDescStyle.Render(" restart  ") +
		footerKeyStyle.Render("↑/↓") + footerDescStyle.Render(" scroll")
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, estimators []estimator.Estimator, cfg config.AppConfig) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, estimators, cfg)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startEstimationCmd returns a tea.Cmd that launches the orchestration.
func startEstimationCmd(ctx context.Context, estimators []estimator.Estimator, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		opts := estimator.Options{
			Capacity:      cfg.Capacity,
			AllowOverflow: cfg.AllowOverflow,
			Broken:        cfg.Broken,
		}
		results := estimator.ExecuteEstimations(ctx, estimators, cfg.N, opts,
			estimator.NullProgressReporter{}, io.Discard)
		presOpts := estimator.PresentationOptions{N: cfg.N, Verbose: cfg.Verbose}
		exitCode := estimator.AnalyzeComparisonResults(results, presOpts,
			silentPresenter{}, silentPresenter{}, io.Discard)

		return EstimationCompleteMsg{Results: results, ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads process memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg(metrics.SampleMemory())
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sysmon.Sample())
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Generation: gen}
	}
}
