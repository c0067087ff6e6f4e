// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package cmd

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/holtgrewe/cbqc/internal"
)

// EnvPrefix is the prefix of the environment variables read by
// LoadConfig, e.g. CBQC_RUN_DIR.
const EnvPrefix = "CBQC"

// Config holds the settings of a report run. Command line flags take
// precedence over the environment.
type Config struct {
	RunDir        string `envconfig:"RUN_DIR"`
	OutPrefix     string `envconfig:"OUT_PREFIX"`
	Sample        string `envconfig:"SAMPLE"`
	BlackAndWhite bool   `envconfig:"BLACK_AND_WHITE"`
	Thresholds    string `envconfig:"THRESHOLDS"`
	WorkDir       string `envconfig:"WORK_DIR"`
	HTML2PDF      string `envconfig:"HTML2PDF"`
	PDFMerge      string `envconfig:"PDFMERGE"`
	LogPath       string `envconfig:"LOG_PATH"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, &internal.ConfigurationError{Field: "environment", Reason: err.Error()}
	}
	return cfg, nil
}

// Validate checks the settings required by the report command.
func (cfg *Config) Validate() error {
	if cfg.RunDir == "" {
		return &internal.ConfigurationError{Field: "run directory", Reason: "not set (use --run-dir or " + EnvPrefix + "_RUN_DIR)"}
	}
	if cfg.OutPrefix == "" {
		return &internal.ConfigurationError{Field: "output prefix", Reason: "not set (use --out-prefix or " + EnvPrefix + "_OUT_PREFIX)"}
	}
	if err := checkExist("--run-dir", cfg.RunDir); err != nil {
		return err
	}
	if err := checkCreate("--out-prefix", cfg.OutPrefix+".pdf"); err != nil {
		return err
	}
	if cfg.Thresholds != "" {
		if err := checkExist("--thresholds", cfg.Thresholds); err != nil {
			return err
		}
	}
	return nil
}
