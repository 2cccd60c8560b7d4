package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultData              = "Sim_Results.csv"
	DefaultBlocksPerDay      = 14400.0
	DefaultIntervalFallback  = 1000.0
	DefaultDuration          = 1800.0
	DefaultFPS               = 5
	DefaultMaxBlocksPerFrame = 150.0
	DefaultSpeed             = 1.0
	DefaultRecordSpeed       = 2.0
	DefaultWindowSize        = 15000.0
	DefaultMaxPoints         = 40
	DefaultChartWidth        = 56
	DefaultChartHeight       = 7
	DefaultWarehouseLimit    = 95.0
)

type Config struct {
	Data             string          `yaml:"data"`
	BlocksPerDay     float64         `yaml:"blocks_per_day"`
	IntervalFallback float64         `yaml:"interval_fallback"`
	Animation        AnimationConfig `yaml:"animation"`
	Chart            ChartConfig     `yaml:"chart"`
}

type AnimationConfig struct {
	Duration          float64 `yaml:"duration"`
	FPS               int     `yaml:"fps"`
	MaxBlocksPerFrame float64 `yaml:"max_blocks_per_frame"`
	Speed             float64 `yaml:"speed"`
	RecordSpeed       float64 `yaml:"record_speed"`
}

type ChartConfig struct {
	WindowSize     float64 `yaml:"window_size"`
	MaxPoints      int     `yaml:"max_points"`
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	WarehouseLimit float64 `yaml:"warehouse_limit"`
}

func DefaultConfig() *Config {
	return &Config{
		Data:             DefaultData,
		BlocksPerDay:     DefaultBlocksPerDay,
		IntervalFallback: DefaultIntervalFallback,
		Animation: AnimationConfig{
			Duration:          DefaultDuration,
			FPS:               DefaultFPS,
			MaxBlocksPerFrame: DefaultMaxBlocksPerFrame,
			Speed:             DefaultSpeed,
			RecordSpeed:       DefaultRecordSpeed,
		},
		Chart: ChartConfig{
			WindowSize:     DefaultWindowSize,
			MaxPoints:      DefaultMaxPoints,
			Width:          DefaultChartWidth,
			Height:         DefaultChartHeight,
			WarehouseLimit: DefaultWarehouseLimit,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
