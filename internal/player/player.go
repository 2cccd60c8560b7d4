// Package player drives the interactive dashboard. The model owns the only
// mutable playhead; everything on screen is derived from it per frame through
// the dataset's interpolation and window lookups.
package player

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"alphaviz/internal/chart"
	"alphaviz/internal/config"
	"alphaviz/internal/dataset"
)

const (
	minSpeed     = 0.25
	maxSpeed     = 4.0
	minTick      = 100 * time.Millisecond
	progressCols = 36
)

type focusTarget struct {
	field string
	title string
}

var focusRing = []focusTarget{
	{dataset.FieldExchangeRate, "exchange rate"},
	{dataset.FieldTxCost, "transaction cost usd"},
	{dataset.FieldTokenPrice, "token price"},
	{dataset.FieldNetFlow, "net alpha flow"},
}

type model struct {
	ds  *dataset.Dataset
	cfg *config.Config

	position float64
	speed    float64
	playing  bool
	finished bool
	focus    int

	interval time.Duration
	width    int
	height   int
}

func New(ds *dataset.Dataset, cfg *config.Config) *model {
	interval := minTick
	if cfg.Animation.FPS > 0 {
		interval = time.Second / time.Duration(cfg.Animation.FPS)
	}
	if interval < minTick {
		interval = minTick
	}
	return &model{
		ds:       ds,
		cfg:      cfg,
		position: ds.MinBlock(),
		speed:    clampSpeed(cfg.Animation.Speed),
		playing:  true,
		interval: interval,
		width:    120,
		height:   32,
	}
}

func (m model) Init() tea.Cmd { return m.tick() }

type tickMsg time.Time

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.playing {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case " ", "p":
		if m.finished {
			m.rewind()
		}
		m.playing = !m.playing
	case "r":
		m.rewind()
		m.playing = false
	case "+", "=":
		m.speed = clampSpeed(m.speed * 2)
	case "-", "_":
		m.speed = clampSpeed(m.speed / 2)
	case "tab":
		m.focus = (m.focus + 1) % len(focusRing)
	}
	return m, nil
}

func (m *model) advance() {
	m.position += m.stepSize()
	if m.position >= m.ds.MaxBlock() {
		m.position = m.ds.MaxBlock()
		m.playing = false
		m.finished = true
	}
}

func (m *model) rewind() {
	m.position = m.ds.MinBlock()
	m.finished = false
}

// stepSize spreads the block span over the configured wall-clock duration,
// scaled by the speed factor and capped so a single frame never jumps past
// whole regions of the log.
func (m model) stepSize() float64 {
	span := m.ds.MaxBlock() - m.ds.MinBlock()
	if span <= 0 {
		return 0
	}
	step := m.cfg.Animation.MaxBlocksPerFrame
	if frames := m.cfg.Animation.Duration * float64(m.cfg.Animation.FPS); frames > 0 {
		step = span / frames * m.speed
	}
	return math.Min(step, m.cfg.Animation.MaxBlocksPerFrame)
}

func clampSpeed(s float64) float64 {
	return math.Min(maxSpeed, math.Max(minSpeed, s))
}

func (m model) View() string {
	if m.ds.Len() == 0 {
		return "\n   " + yellow.Render("no records to animate") + "\n" +
			dim.Render("   check the log path and column headers") + "\n"
	}

	row, _ := m.ds.At(m.position)
	focused := focusRing[m.focus]
	wide, half, ch := m.chartSizes()

	win := m.ds.Window(focused.field, m.position, m.cfg.Chart.WindowSize, m.cfg.Chart.MaxPoints)

	var b strings.Builder
	b.WriteString(m.header(row))

	b.WriteString(indent(chart.Line(win, focused.field, focused.title, wide, ch)) + "\n\n")

	duo := lipgloss.JoinHorizontal(lipgloss.Top,
		chart.Pair(win, dataset.FieldNetworkRate, dataset.FieldGenerationRate, "network / generation", half, ch),
		"    ",
		chart.Flow(win, half, ch))
	b.WriteString(indent(duo) + "\n\n")

	spark := chart.Sparkline(win.Series(dataset.FieldNetFlow), 32)
	b.WriteString("   " + dim.Render("net flow ") + cyan.Render(spark) + "\n")

	warehouse := math.NaN()
	if v, ok := row.Value(dataset.FieldWarehouseCapacity); ok {
		warehouse = v
	}
	b.WriteString("   " + chart.Gauge(warehouse, m.cfg.Chart.WarehouseLimit, 24) + "\n")

	b.WriteString("\n" + dim.Render("   space play/pause  tab focus  ± speed  r reset  q quit") + "\n")
	return b.String()
}

func (m model) header(row dataset.Row) string {
	statusIcon := green.Render("●")
	statusText := green.Render("playing")
	switch {
	case m.finished:
		statusIcon = magenta.Render("◆")
		statusText = magenta.Render("finished")
	case !m.playing:
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s %s  %s %s  %s\n",
		statusIcon, cyan.Render("alphaviz"), statusText,
		dim.Render("day"), white.Render(fmt.Sprintf("%d", row.Day())),
		dim.Render("block"), white.Render(fmt.Sprintf("%.0f", m.position)),
		dim.Render(fmt.Sprintf("%gx", m.speed))))

	span := m.ds.MaxBlock() - m.ds.MinBlock()
	progress := 0.0
	if span > 0 {
		progress = (m.position - m.ds.MinBlock()) / span
	}
	progress = math.Min(1, math.Max(0, progress))
	filled := int(progress * float64(progressCols))
	bar := cyan.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", progressCols-filled))
	b.WriteString(fmt.Sprintf("   %s %s\n\n", bar, dim.Render(fmt.Sprintf("%3.0f%%", progress*100))))
	return b.String()
}

// chartSizes fits the configured panel geometry into the terminal. asciigraph
// adds roughly ten columns of axis labels on top of the plot width.
func (m model) chartSizes() (wide, half, height int) {
	wide = m.cfg.Chart.Width
	if avail := m.width - 16; avail > 0 && avail < wide {
		wide = avail
	}
	if wide < 24 {
		wide = 24
	}
	half = wide/2 - 8
	if half < 16 {
		half = 16
	}
	height = m.cfg.Chart.Height
	if height < 3 {
		height = 3
	}
	return wide, half, height
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "   " + line
		}
	}
	return strings.Join(lines, "\n")
}

// Run starts the dashboard on the alternate screen and blocks until quit.
func Run(ds *dataset.Dataset, cfg *config.Config) error {
	p := tea.NewProgram(New(ds, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
