// Package config loads the settings of the nsfg pipeline: where the
// survey files live, the codebook values the cleaning pass treats as
// missing, and how the report is rendered.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/dhunton/nsfg/internal/survey"
)

// EnvPrefix is the prefix of the environment variables read by Load,
// e.g. NSFG_DATA_DIR or NSFG_REPORT_HISTOGRAM_BINS.
const EnvPrefix = "NSFG"

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	Report   ReportConfig   `yaml:"report" envconfig:"REPORT"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// DataConfig names the dictionary and data files of the two tables.
// Relative file names are resolved against Dir.
type DataConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR" default:"." validate:"required"`
	RespDict string `yaml:"resp_dict" envconfig:"RESP_DICT" default:"2002FemResp.dct" validate:"required"`
	RespData string `yaml:"resp_data" envconfig:"RESP_DATA" default:"2002FemResp.dat.gz" validate:"required"`
	PregDict string `yaml:"preg_dict" envconfig:"PREG_DICT" default:"2002FemPreg.dct" validate:"required"`
	PregData string `yaml:"preg_data" envconfig:"PREG_DATA" default:"2002FemPreg.dat.gz" validate:"required"`

	// Maximum number of respondent records to read; -1 reads all.
	MaxRows int `yaml:"max_rows" envconfig:"MAX_ROWS" default:"-1" validate:"gte=-1"`
}

// CleaningConfig holds the codebook values used by the pregnancy
// cleaning pass.
type CleaningConfig struct {
	NASentinels      []float64 `yaml:"na_sentinels" envconfig:"NA_SENTINELS" default:"97,98,99"`
	MaxBirthWeightLb float64   `yaml:"max_birth_weight_lb" envconfig:"MAX_BIRTH_WEIGHT_LB" default:"20" validate:"gt=0"`
	BabySexInvalid   []float64 `yaml:"babysex_invalid" envconfig:"BABYSEX_INVALID" default:"7,9"`
	NbrnalivInvalid  []float64 `yaml:"nbrnaliv_invalid" envconfig:"NBRNALIV_INVALID" default:"9"`
	AgeScale         float64   `yaml:"age_scale" envconfig:"AGE_SCALE" default:"100" validate:"gt=0"`
	OuncesPerPound   float64   `yaml:"ounces_per_pound" envconfig:"OUNCES_PER_POUND" default:"16" validate:"gt=0"`
	ClippedColumn    string    `yaml:"clipped_column" envconfig:"CLIPPED_COLUMN" default:"cmintvw"`
}

// ReportConfig controls the console report.
type ReportConfig struct {
	HistogramBins int     `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS" default:"100" validate:"min=1,max=1000"`
	BarWidth      int     `yaml:"bar_width" envconfig:"BAR_WIDTH" default:"50" validate:"min=1,max=200"`
	Histograms    bool    `yaml:"histograms" envconfig:"HISTOGRAMS" default:"true"`
	Color         bool    `yaml:"color" envconfig:"COLOR" default:"true"`
	PoundsPerKg   float64 `yaml:"pounds_per_kg" envconfig:"POUNDS_PER_KG" default:"2.2046223" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// Load returns the configuration built from defaults and NSFG_*
// environment variables, overlaid with the YAML file at path if path
// is not empty.  Values present in the file take precedence.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration with every field at its default.
// Environment variables are ignored.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:      ".",
			RespDict: "2002FemResp.dct",
			RespData: "2002FemResp.dat.gz",
			PregDict: "2002FemPreg.dct",
			PregData: "2002FemPreg.dat.gz",
			MaxRows:  -1,
		},
		Cleaning: CleaningConfig{
			NASentinels:      []float64{97, 98, 99},
			MaxBirthWeightLb: 20,
			BabySexInvalid:   []float64{7, 9},
			NbrnalivInvalid:  []float64{9},
			AgeScale:         100,
			OuncesPerPound:   16,
			ClippedColumn:    "cmintvw",
		},
		Report: ReportConfig{
			HistogramBins: 100,
			BarWidth:      50,
			Histograms:    true,
			Color:         true,
			PoundsPerKg:   2.2046223,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// path resolves a file name against the data directory.
func (d DataConfig) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}

// RespDictPath returns the path of the respondent dictionary.
func (d DataConfig) RespDictPath() string { return d.path(d.RespDict) }

// RespDataPath returns the path of the respondent data file.
func (d DataConfig) RespDataPath() string { return d.path(d.RespData) }

// PregDictPath returns the path of the pregnancy dictionary.
func (d DataConfig) PregDictPath() string { return d.path(d.PregDict) }

// PregDataPath returns the path of the pregnancy data file.
func (d DataConfig) PregDataPath() string { return d.path(d.PregData) }

// PregRules returns the pregnancy cleaning rules.
func (c CleaningConfig) PregRules() survey.PregRules {
	return survey.PregRules{
		NASentinels:      c.NASentinels,
		MaxBirthWeightLb: c.MaxBirthWeightLb,
		BabySexInvalid:   c.BabySexInvalid,
		NbrnalivInvalid:  c.NbrnalivInvalid,
		AgeScale:         c.AgeScale,
		OuncesPerPound:   c.OuncesPerPound,
		ClippedColumn:    c.ClippedColumn,
	}
}
