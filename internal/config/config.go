package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIntensity   = 1.0
	DefaultCurvePoints = 360
	DefaultStageAngle  = 45.0
)

type Config struct {
	Intensity   float64   `yaml:"intensity"`
	Angles      []float64 `yaml:"angles"`
	CurvePoints int       `yaml:"curve_points"`
	Label       string    `yaml:"label"`
}

// ReferenceFile is the on-disk shape consumed by the validate command:
// a set of angle → expected-intensity pairs.
type ReferenceFile struct {
	Intensity float64             `yaml:"intensity"`
	Reference map[float64]float64 `yaml:"reference"`
}

func DefaultConfig() *Config {
	return &Config{
		Intensity:   DefaultIntensity,
		Angles:      []float64{DefaultStageAngle},
		CurvePoints: DefaultCurvePoints,
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

func LoadReference(path string) (*ReferenceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ref := &ReferenceFile{Intensity: DefaultIntensity}
	if err := yaml.Unmarshal(data, ref); err != nil {
		return nil, err
	}
	return ref, nil
}
