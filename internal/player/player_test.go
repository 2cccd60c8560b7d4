package player

import (
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"alphaviz/internal/config"
	"alphaviz/internal/dataset"
)

func testDataset(t *testing.T, blocks []float64) *dataset.Dataset {
	t.Helper()
	cols := []string{
		dataset.FieldBlock, dataset.FieldExchangeRate, dataset.FieldNetworkRate,
		dataset.FieldGenerationRate, dataset.FieldAlphaIn, dataset.FieldAlphaOut,
		dataset.FieldWarehouseCapacity,
	}
	recs := make([]dataset.Record, len(blocks))
	for i, b := range blocks {
		recs[i] = dataset.Record{
			dataset.FieldBlock:             strconv.FormatFloat(b, 'f', -1, 64),
			dataset.FieldExchangeRate:      strconv.Itoa(i + 1),
			dataset.FieldNetworkRate:       "100",
			dataset.FieldGenerationRate:    "90",
			dataset.FieldAlphaIn:           "10",
			dataset.FieldAlphaOut:          "4",
			dataset.FieldWarehouseCapacity: "50",
		}
	}
	return dataset.Build(dataset.Table{Columns: cols, Records: recs},
		dataset.Options{Logger: zap.NewNop()})
}

func key(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewStartsAtFirstBlock(t *testing.T) {
	ds := testDataset(t, []float64{500, 1500, 2500})
	m := New(ds, config.DefaultConfig())

	if m.position != 500 {
		t.Errorf("position = %v, want 500", m.position)
	}
	if !m.playing || m.finished {
		t.Error("new player should start playing")
	}
	if m.interval != 200*time.Millisecond {
		t.Errorf("interval = %v, want 200ms at 5 fps", m.interval)
	}
}

func TestTickIntervalFloor(t *testing.T) {
	ds := testDataset(t, []float64{0, 1000})
	cfg := config.DefaultConfig()
	cfg.Animation.FPS = 60

	if m := New(ds, cfg); m.interval != minTick {
		t.Errorf("interval = %v, want floor %v", m.interval, minTick)
	}
}

func TestStepSize(t *testing.T) {
	ds := testDataset(t, []float64{0, 100000})
	cfg := config.DefaultConfig()
	cfg.Animation.Duration = 100
	cfg.Animation.FPS = 10
	m := New(ds, cfg)

	if got := m.stepSize(); got != 100 {
		t.Errorf("stepSize = %v, want 100000/(100*10) = 100", got)
	}

	m.speed = 2
	if got := m.stepSize(); got != 150 {
		t.Errorf("stepSize at 2x = %v, want cap 150", got)
	}

	cfg.Animation.MaxBlocksPerFrame = 500
	if got := m.stepSize(); got != 200 {
		t.Errorf("stepSize at 2x uncapped = %v, want 200", got)
	}
}

func TestAdvanceFinishesAtSpanEnd(t *testing.T) {
	ds := testDataset(t, []float64{0, 1000})
	cfg := config.DefaultConfig()
	cfg.Animation.Duration = 1
	cfg.Animation.FPS = 5
	m := New(ds, cfg)

	for i := 0; i < 20 && !m.finished; i++ {
		m.advance()
	}
	if !m.finished {
		t.Fatal("player never reached the end of the span")
	}
	if m.position != 1000 {
		t.Errorf("position = %v, want clamp at 1000", m.position)
	}
	if m.playing {
		t.Error("finishing should pause playback")
	}
}

func TestTickOnlyAdvancesWhilePlaying(t *testing.T) {
	ds := testDataset(t, []float64{0, 100000})
	m := New(ds, config.DefaultConfig())
	m.playing = false

	next, cmd := m.Update(tickMsg(time.Now()))
	got := next.(model)
	if got.position != 0 {
		t.Errorf("paused tick moved position to %v", got.position)
	}
	if cmd == nil {
		t.Error("tick should re-arm even while paused")
	}

	got.playing = true
	next, _ = got.Update(tickMsg(time.Now()))
	if got = next.(model); got.position == 0 {
		t.Error("playing tick should advance the position")
	}
}

func TestSpaceTogglesPlayback(t *testing.T) {
	ds := testDataset(t, []float64{0, 1000})
	m := New(ds, config.DefaultConfig())

	got, _ := m.handleKey(key(" "))
	if got.playing {
		t.Error("space should pause")
	}
	got, _ = got.handleKey(key("p"))
	if !got.playing {
		t.Error("p should resume")
	}
}

func TestSpaceReplaysAfterFinish(t *testing.T) {
	ds := testDataset(t, []float64{0, 1000})
	m := New(ds, config.DefaultConfig())
	m.position = 1000
	m.playing = false
	m.finished = true

	got, _ := m.handleKey(key(" "))
	if got.position != 0 || got.finished {
		t.Errorf("space after finish should rewind, got position %v", got.position)
	}
	if !got.playing {
		t.Error("space after finish should resume playback")
	}
}

func TestResetRewindsPaused(t *testing.T) {
	ds := testDataset(t, []float64{500, 2500})
	m := New(ds, config.DefaultConfig())
	m.position = 1800
	m.finished = true

	got, _ := m.handleKey(key("r"))
	if got.position != 500 {
		t.Errorf("position = %v, want rewind to 500", got.position)
	}
	if got.playing || got.finished {
		t.Error("reset should leave the player paused at the start")
	}
}

func TestSpeedKeysClamp(t *testing.T) {
	ds := testDataset(t, []float64{0, 1000})
	m := *New(ds, config.DefaultConfig())

	for i := 0; i < 6; i++ {
		m, _ = m.handleKey(key("+"))
	}
	if m.speed != maxSpeed {
		t.Errorf("speed = %v, want cap %v", m.speed, maxSpeed)
	}

	for i := 0; i < 10; i++ {
		m, _ = m.handleKey(key("-"))
	}
	if m.speed != minSpeed {
		t.Errorf("speed = %v, want floor %v", m.speed, minSpeed)
	}
}

func TestTabCyclesFocus(t *testing.T) {
	ds := testDataset(t, []float64{0, 1000})
	m := *New(ds, config.DefaultConfig())

	for i := 0; i < len(focusRing); i++ {
		if m.focus != i {
			t.Fatalf("focus = %d after %d tabs", m.focus, i)
		}
		m, _ = m.handleKey(key("tab"))
	}
	if m.focus != 0 {
		t.Errorf("focus = %d, want wrap to 0", m.focus)
	}
}

func TestQuitKeys(t *testing.T) {
	ds := testDataset(t, []float64{0, 1000})
	m := New(ds, config.DefaultConfig())

	for _, k := range []string{"q", "esc", "ctrl+c"} {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = key(k)
		}
		if _, cmd := m.handleKey(msg); cmd == nil {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestViewShowsHeaderAndHints(t *testing.T) {
	ds := testDataset(t, []float64{0, 1000, 2000, 3000})
	m := New(ds, config.DefaultConfig())
	m.position = 1500

	out := m.View()
	if !strings.Contains(out, "alphaviz") {
		t.Error("view missing title")
	}
	if !strings.Contains(out, "block") || !strings.Contains(out, "1500") {
		t.Error("view missing playhead position")
	}
	if !strings.Contains(out, "space play/pause") {
		t.Error("view missing key hints")
	}
	if !strings.Contains(out, "warehouse") {
		t.Error("view missing warehouse gauge")
	}
}

func TestViewEmptyDataset(t *testing.T) {
	ds := dataset.Build(dataset.Table{Columns: []string{dataset.FieldBlock}},
		dataset.Options{Logger: zap.NewNop()})
	m := New(ds, config.DefaultConfig())

	if out := m.View(); !strings.Contains(out, "no records") {
		t.Errorf("empty dataset view = %q", out)
	}
}
