/*
 * config.go, part of minushalf.
 *
 * Copyright 2021 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * */

package minushalf

import (
	"os"

	"gopkg.in/yaml.v3"
)

//Correction codes accepted in minushalf.yaml: "v" corrects the valence band
//only, "vc" also corrects the conduction band, the "f" variants use the
//fractionary algorithm that searches one cut per (atom, orbital) pair.
var validCorrectionCodes = map[string]bool{
	"v":    true,
	"vf":   true,
	"vc":   true,
	"vfcf": true,
}

// VaspParams configures the invocation of the periodic DFT code.
type VaspParams struct {
	NumberOfCores int    `yaml:"number_of_cores"`
	Path          string `yaml:"path"`
}

// AtomicParams configures the input decks built for the atomic solver.
type AtomicParams struct {
	ExchangeCorrelationCode string `yaml:"exchange_correlation_code"`
	CalculationCode         string `yaml:"calculation_code"`
	MaxIterations           int    `yaml:"max_iterations"`
}

// CorrectionParams configures the correction runs.
type CorrectionParams struct {
	CorrectionCode string  `yaml:"correction_code"`
	PotfilesFolder string  `yaml:"potfiles_folder"`
	Amplitude      float64 `yaml:"amplitude"`
	Tolerance      float64 `yaml:"tolerance"`
	//CutMin and CutMax bound the cut-radius search, in a0.
	CutMin float64 `yaml:"cut_min"`
	CutMax float64 `yaml:"cut_max"`
}

// Config is the in-memory form of minushalf.yaml. Fields left out of the
// file keep their defaults; invalid values fail at load time, they are never
// silently replaced.
type Config struct {
	Software      string           `yaml:"software"`
	Vasp          VaspParams       `yaml:"vasp"`
	AtomicProgram AtomicParams     `yaml:"atomic_program"`
	Correction    CorrectionParams `yaml:"correction"`
}

// DefaultConfig returns the documented defaults for every section.
func DefaultConfig() *Config {
	return &Config{
		Software: string(VASP),
		Vasp: VaspParams{
			NumberOfCores: 4,
			Path:          "vasp",
		},
		AtomicProgram: AtomicParams{
			ExchangeCorrelationCode: "pb",
			CalculationCode:         "ae",
			MaxIterations:           100,
		},
		Correction: CorrectionParams{
			CorrectionCode: "v",
			PotfilesFolder: "minushalf_potfiles",
			Amplitude:      1.0,
			Tolerance:      DefaultSearchTolerance,
			CutMin:         0.0,
			CutMax:         15.0,
		},
	}
}

// ReadConfig loads minushalf.yaml from path. A missing file yields the
// defaults; a file that exists but cannot be parsed or validated is an error.
func ReadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, NewFormatError(path, "cannot read configuration: %v", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, NewFormatError(path, "malformed configuration: %v", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, ErrDecorate(err, "ReadConfig")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := NewSoftware(c.Software); err != nil {
		return err
	}
	if _, err := NewXCCode(c.AtomicProgram.ExchangeCorrelationCode); err != nil {
		return err
	}
	if _, err := NewCalcCode(c.AtomicProgram.CalculationCode); err != nil {
		return err
	}
	if c.AtomicProgram.MaxIterations <= 0 {
		return NewValidationError("max_iterations must be positive, got %d", c.AtomicProgram.MaxIterations)
	}
	if !validCorrectionCodes[c.Correction.CorrectionCode] {
		return NewValidationError("correction code %q is not valid", c.Correction.CorrectionCode)
	}
	if c.Correction.Amplitude <= 0 {
		return NewValidationError("amplitude must be positive, got %g", c.Correction.Amplitude)
	}
	if c.Correction.Tolerance <= 0 {
		return NewValidationError("tolerance must be positive, got %g", c.Correction.Tolerance)
	}
	if c.Correction.CutMin < 0 || c.Correction.CutMax <= c.Correction.CutMin {
		return NewValidationError("cut search window [%g, %g] is not valid",
			c.Correction.CutMin, c.Correction.CutMax)
	}
	return nil
}

// CorrectsConduction reports whether the configured correction code asks for
// a conduction correction on top of the valence one.
func (c *Config) CorrectsConduction() bool {
	return c.Correction.CorrectionCode == "vc" || c.Correction.CorrectionCode == "vfcf"
}

// Fractionary reports whether the fractionary per-orbital algorithm was
// requested.
func (c *Config) Fractionary() bool {
	return c.Correction.CorrectionCode == "vf" || c.Correction.CorrectionCode == "vfcf"
}
