// Package config loads the YAML description of a training run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FlavioCFOliveira/feedforward/internal/activations"
	"github.com/FlavioCFOliveira/feedforward/internal/dataset"
	"github.com/FlavioCFOliveira/feedforward/internal/model"
)

// Dataset names accepted by the dataset key.
const (
	DatasetXOR    = "xor"
	DatasetPoints = "points"
	DatasetDigits = "digits"
	DatasetCSV    = "csv"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Dataset      string  `yaml:"dataset"`
	DataPath     string  `yaml:"data_path"`
	LabelColumns []int   `yaml:"label_columns"`
	HasHeader    bool    `yaml:"has_header"`
	Normalize    bool    `yaml:"normalize"`
	Classes      int     `yaml:"classes"`
	PerClass     int     `yaml:"per_class"`
	Points       int     `yaml:"points"`
	TrainSplit   float64 `yaml:"train_split"`

	HiddenSize   int              `yaml:"hidden_size"`
	LearningRate float64          `yaml:"learning_rate"`
	Activation   activations.Kind `yaml:"activation"`
	InitRange    float64          `yaml:"init_range"`

	Steps      int            `yaml:"steps"`
	Sampling   dataset.Policy `yaml:"sampling"`
	Seed       int64          `yaml:"seed"`
	LogEvery   int            `yaml:"log_every"`
	CSVLog     string         `yaml:"csv_log"`
	TargetLoss float64        `yaml:"target_loss"`
	Patience   int            `yaml:"patience"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Dataset      string
	DataPath     string
	HiddenSize   int
	LearningRate float64
	Activation   string
	Steps        int
	Sampling     string
	Seed         int64
	LogEvery     int
	CSVLog       string
}

// Default returns the XOR demo run.
func Default() *Config {
	return &Config{
		Dataset:      DatasetXOR,
		Classes:      10,
		Points:       1000,
		TrainSplit:   1,
		HiddenSize:   3,
		LearningRate: 0.1,
		Activation:   activations.KindSigmoid,
		InitRange:    model.DefaultInitRange,
		Steps:        50000,
		Sampling:     dataset.PolicyUniform,
		LogEvery:     1000,
	}
}

// Load reads and validates a Config from YAML.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML from r on top of Default. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.Dataset != "" {
		c.Dataset = o.Dataset
	}
	if o.DataPath != "" {
		c.DataPath = o.DataPath
	}
	if o.HiddenSize > 0 {
		c.HiddenSize = o.HiddenSize
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Activation != "" {
		kind, err := activations.Parse(o.Activation)
		if err != nil {
			return err
		}
		c.Activation = kind
	}
	if o.Steps > 0 {
		c.Steps = o.Steps
	}
	if o.Sampling != "" {
		p, err := dataset.ParsePolicy(o.Sampling)
		if err != nil {
			return err
		}
		c.Sampling = p
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.CSVLog != "" {
		c.CSVLog = o.CSVLog
	}
	return nil
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.Dataset {
	case DatasetXOR:
	case DatasetPoints:
		if c.Points <= 0 {
			return fmt.Errorf("points must be > 0 (got %d)", c.Points)
		}
	case DatasetDigits:
		if c.DataPath == "" {
			return errors.New("data_path must be set for the digits dataset")
		}
		if c.Classes <= 0 {
			return fmt.Errorf("classes must be > 0 (got %d)", c.Classes)
		}
	case DatasetCSV:
		if c.DataPath == "" {
			return errors.New("data_path must be set for the csv dataset")
		}
		if len(c.LabelColumns) == 0 {
			return errors.New("label_columns must be set for the csv dataset")
		}
	default:
		return fmt.Errorf("unknown dataset %q", c.Dataset)
	}
	if c.TrainSplit <= 0 || c.TrainSplit > 1 {
		return fmt.Errorf("train_split must be in (0, 1] (got %g)", c.TrainSplit)
	}
	if c.HiddenSize <= 0 {
		return fmt.Errorf("hidden_size must be > 0 (got %d)", c.HiddenSize)
	}
	if !(c.LearningRate > 0) {
		return fmt.Errorf("learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if !c.Activation.Valid() {
		return fmt.Errorf("unknown activation %v", c.Activation)
	}
	if c.InitRange < 0 {
		return fmt.Errorf("init_range must be >= 0 (got %g)", c.InitRange)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be > 0 (got %d)", c.Steps)
	}
	p, err := dataset.ParsePolicy(string(c.Sampling))
	if err != nil {
		return err
	}
	c.Sampling = p
	if c.Patience < 0 {
		return fmt.Errorf("patience must be >= 0 (got %d)", c.Patience)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 1000
	}
	return nil
}

// LoadDataset builds the dataset named by c.
func (c *Config) LoadDataset() (*dataset.Dataset, error) {
	var (
		d   *dataset.Dataset
		err error
	)
	switch c.Dataset {
	case DatasetXOR:
		d = dataset.XOR()
	case DatasetPoints:
		d, err = dataset.Points(c.Points, c.Seed)
	case DatasetDigits:
		d, err = dataset.LoadDigits(c.DataPath, c.Classes, c.PerClass)
	case DatasetCSV:
		d, err = dataset.LoadCSV(c.DataPath, c.LabelColumns, c.HasHeader)
	default:
		return nil, fmt.Errorf("unknown dataset %q", c.Dataset)
	}
	if err != nil {
		return nil, err
	}
	if c.Normalize {
		d.Normalize()
	}
	return d, nil
}

// ModelConfig returns the model configuration for a dataset of the given shape.
func (c *Config) ModelConfig(inputSize, outputSize int) model.Config {
	return model.Config{
		InputSize:    inputSize,
		HiddenSize:   c.HiddenSize,
		OutputSize:   outputSize,
		LearningRate: c.LearningRate,
		Activation:   c.Activation,
		InitRange:    c.InitRange,
		Seed:         c.Seed,
	}
}
