package config

import "sort"

// Presets are named playback profiles. The data path is left empty so the
// configured or flagged log file stays in effect.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"smooth": {
		BlocksPerDay:     DefaultBlocksPerDay,
		IntervalFallback: DefaultIntervalFallback,
		Animation: AnimationConfig{
			Duration:          DefaultDuration,
			FPS:               15,
			MaxBlocksPerFrame: DefaultMaxBlocksPerFrame,
			Speed:             DefaultSpeed,
			RecordSpeed:       DefaultRecordSpeed,
		},
		Chart: ChartConfig{
			WindowSize:     10000,
			MaxPoints:      60,
			Width:          DefaultChartWidth,
			Height:         DefaultChartHeight,
			WarehouseLimit: DefaultWarehouseLimit,
		},
	},
	"turbo": {
		BlocksPerDay:     DefaultBlocksPerDay,
		IntervalFallback: DefaultIntervalFallback,
		Animation: AnimationConfig{
			Duration:          600,
			FPS:               DefaultFPS,
			MaxBlocksPerFrame: 400,
			Speed:             4,
			RecordSpeed:       4,
		},
		Chart: ChartConfig{
			WindowSize:     30000,
			MaxPoints:      DefaultMaxPoints,
			Width:          DefaultChartWidth,
			Height:         DefaultChartHeight,
			WarehouseLimit: DefaultWarehouseLimit,
		},
	},
	"archival": {
		BlocksPerDay:     DefaultBlocksPerDay,
		IntervalFallback: DefaultIntervalFallback,
		Animation: AnimationConfig{
			Duration:          3600,
			FPS:               10,
			MaxBlocksPerFrame: 75,
			Speed:             DefaultSpeed,
			RecordSpeed:       1,
		},
		Chart: ChartConfig{
			WindowSize:     DefaultWindowSize,
			MaxPoints:      80,
			Width:          72,
			Height:         9,
			WarehouseLimit: DefaultWarehouseLimit,
		},
	},
}

func GetPreset(name string) *Config {
	if cfg, ok := Presets[name]; ok {
		return cfg
	}
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
