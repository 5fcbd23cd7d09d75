// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/TFMV/addrmatch/internal/address"
)

// Config is the application configuration loaded from a YAML file.
type Config struct {
	DBCreds struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"db_creds"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	// Province whose name and code the parser normalizes; defaults to ON.
	Province string `yaml:"province"`

	// Matcher weights and thresholds; zero fields fall back to the tuned
	// defaults.
	Matcher address.MatcherConfig `yaml:"matcher"`
}

// LoadConfig loads the configuration from a YAML file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %v", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %v", err)
	}

	config.applyDefaults()
	return &config, nil
}

// MatcherConfig returns the matcher section with defaults filled in.
func (c *Config) MatcherConfig() address.MatcherConfig {
	m := c.Matcher
	fillMatcherDefaults(&m)
	return m
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Province == "" {
		c.Province = address.DefaultProvince
	}
	fillMatcherDefaults(&c.Matcher)
}

func fillMatcherDefaults(m *address.MatcherConfig) {
	defaults := address.DefaultMatcherConfig()
	for _, f := range []struct {
		field *float64
		def   float64
	}{
		{&m.StreetNumberWeight, defaults.StreetNumberWeight},
		{&m.StreetNameWeight, defaults.StreetNameWeight},
		{&m.StreetTypeWeight, defaults.StreetTypeWeight},
		{&m.StreetDirectionWeight, defaults.StreetDirectionWeight},
		{&m.UnitWeight, defaults.UnitWeight},
		{&m.CityWeight, defaults.CityWeight},
		{&m.PostalWeight, defaults.PostalWeight},
		{&m.OneSidedNumberCredit, defaults.OneSidedNumberCredit},
		{&m.OneSidedTypeCredit, defaults.OneSidedTypeCredit},
		{&m.OneSidedDirectionCredit, defaults.OneSidedDirectionCredit},
		{&m.OneSidedUnitCredit, defaults.OneSidedUnitCredit},
		{&m.FSACredit, defaults.FSACredit},
		{&m.ExactPostalCredit, defaults.ExactPostalCredit},
		{&m.MatchThreshold, defaults.MatchThreshold},
		{&m.FuzzyThreshold, defaults.FuzzyThreshold},
		{&m.NumberMismatchPenalty, defaults.NumberMismatchPenalty},
	} {
		if *f.field == 0 {
			*f.field = f.def
		}
	}
}
