// Package recorder renders the animation offline into recording sessions on
// disk. A session is one directory holding the looping GIF and a metadata
// document, so past recordings can be listed without decoding any frames.
package recorder

import (
	"errors"
	"fmt"
	"image"
	"math"

	"go.uber.org/zap"

	"alphaviz/internal/config"
	"alphaviz/internal/dataset"
	"alphaviz/internal/render"
)

// Options control one recording session. Zero values fall back to the
// animation settings in the config.
type Options struct {
	Name     string
	Source   string
	Field    string
	FPS      int
	Speed    float64
	Duration float64
}

func (o Options) withDefaults(cfg *config.Config) Options {
	if o.Name == "" {
		o.Name = "recording"
	}
	if o.Field == "" {
		o.Field = dataset.FieldExchangeRate
	}
	if o.FPS <= 0 {
		o.FPS = cfg.Animation.FPS
	}
	if o.FPS <= 0 {
		o.FPS = config.DefaultFPS
	}
	if o.Speed <= 0 {
		o.Speed = cfg.Animation.RecordSpeed
	}
	if o.Duration <= 0 {
		o.Duration = cfg.Animation.Duration
	}
	return o
}

// Frames renders the growing-chart animation. Every frame draws the charted
// metric from the first block up to the frame's playhead, with a dashed
// marker column at the playhead itself; axes stay fixed across frames so the
// motion reads as progress through the log. The frame budget is the wall
// clock duration at the recording speed; the per-frame block step is capped
// so a fast recording still cannot skip whole regions.
func Frames(ds *dataset.Dataset, cfg *config.Config, opts Options) []*image.Paletted {
	opts = opts.withDefaults(cfg)
	if ds.Len() == 0 {
		return nil
	}

	blocks := make([]float64, ds.Len())
	values := make([]float64, ds.Len())
	for i := range blocks {
		row := ds.Row(i)
		blocks[i] = row.Block
		values[i] = math.NaN()
		if v, ok := row.Value(opts.Field); ok {
			values[i] = v
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !math.IsNaN(v) {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	minB := ds.MinBlock()
	span := ds.MaxBlock() - minB

	budget := int(opts.Duration * float64(opts.FPS) / opts.Speed)
	if budget < 1 {
		budget = 1
	}
	// budget-1 steps between budget frames, so an uncapped recording ends on
	// the completed chart
	step := span
	if budget > 1 {
		step = span / float64(budget-1)
	}
	if limit := cfg.Animation.MaxBlocksPerFrame * opts.Speed; limit > 0 && step > limit {
		step = limit
	}

	w, h := cfg.Chart.Width, cfg.Chart.Height*2
	if w < 8 {
		w = 8
	}
	if h < 4 {
		h = 4
	}

	var frames []*image.Paletted
	pos := minB
	for i := 0; i < budget; i++ {
		if pos > minB+span {
			pos = minB + span
		}
		frames = append(frames, render.Rasterize(frameCanvas(blocks, values, lo, hi, minB, span, pos, w, h)))
		if pos >= minB+span {
			break
		}
		pos += step
	}
	return frames
}

func frameCanvas(blocks, values []float64, lo, hi, minB, span, pos float64, w, h int) *render.Canvas {
	c := render.NewCanvas(w, h)
	c.Border()
	pw, ph := w*2, h*4

	scaleX := func(b float64) int {
		if span <= 0 {
			return 0
		}
		return int((b - minB) / span * float64(pw-1))
	}
	scaleY := func(v float64) int {
		if hi <= lo {
			return (ph - 1) / 2
		}
		return ph - 1 - int((v-lo)/(hi-lo)*float64(ph-1))
	}

	px, py := 0, 0
	pen := false
	for i := range blocks {
		if blocks[i] > pos {
			break
		}
		if math.IsNaN(values[i]) {
			pen = false
			continue
		}
		x, y := scaleX(blocks[i]), scaleY(values[i])
		if pen {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, pen = x, y, true
	}

	for y := 0; y < ph; y += 2 {
		c.Set(scaleX(pos), y)
	}
	return c
}

// Record renders a session and persists it through the store.
func Record(ds *dataset.Dataset, cfg *config.Config, st *Store, opts Options, log *zap.Logger) (*Metadata, error) {
	opts = opts.withDefaults(cfg)
	if ds.Len() == 0 {
		return nil, errors.New("record: no records to animate")
	}

	frames := Frames(ds, cfg, opts)
	delay := 100 / opts.FPS
	if delay < 1 {
		delay = 1
	}

	meta, err := st.Save(opts.Name, Metadata{
		Source:     opts.Source,
		Field:      opts.Field,
		FPS:        opts.FPS,
		Speed:      opts.Speed,
		Duration:   float64(len(frames)) / float64(opts.FPS),
		FirstBlock: ds.MinBlock(),
		LastBlock:  ds.MaxBlock(),
	}, frames, delay)
	if err != nil {
		return nil, fmt.Errorf("save recording: %w", err)
	}

	log.Info("recording saved",
		zap.String("id", meta.ID),
		zap.Int("frames", meta.Frames),
		zap.Int("fps", meta.FPS),
		zap.Float64("speed", meta.Speed))
	return meta, nil
}
