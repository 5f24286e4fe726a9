// Package config defines the data structures describing an investment
// scenario and includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"time"

	"github.com/Rudyyyy/rentabimmo-engine/pkg/constants"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds a full simulation scenario: the properties, the
// optional corporate vehicles holding them, and run options.
type Configuration struct {
	Properties []Property
	SCIs       []SCI
	Target     *Target       `yaml:"target,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Target describes an optional goal-seeking run: find the earliest year at
// which the cumulative metric reaches Value.
type Target struct {
	Kind      string  `yaml:"kind"` // gain, cashflow
	Value     float64 `yaml:"value"`
	SCI       string  `yaml:"sci,omitempty"`      // SCI name; empty targets the property
	Property  string  `yaml:"property,omitempty"` // property name; defaults to the first
	Candidate string  `yaml:"candidate,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ParseDates parses every date string in the configuration into time.Time
// and assigns IDs to entities missing one. It must run before any
// computation.
func (conf *Configuration) ParseDates() error {
	for i := range conf.Properties {
		if err := conf.Properties[i].parseDates(); err != nil {
			return err
		}
	}
	for i := range conf.SCIs {
		if conf.SCIs[i].ID == "" {
			conf.SCIs[i].ID = uuid.NewString()
		}
	}
	return nil
}

// PropertyByName returns the named property, or the first one when name is
// empty.
func (conf *Configuration) PropertyByName(name string) (*Property, error) {
	if len(conf.Properties) == 0 {
		return nil, fmt.Errorf("configuration has no properties")
	}
	if name == "" {
		return &conf.Properties[0], nil
	}
	for i := range conf.Properties {
		if conf.Properties[i].Name == name {
			return &conf.Properties[i], nil
		}
	}
	return nil, fmt.Errorf("no property named %q", name)
}

// SCIByName returns the named corporate vehicle.
func (conf *Configuration) SCIByName(name string) (*SCI, error) {
	for i := range conf.SCIs {
		if conf.SCIs[i].Name == name {
			return &conf.SCIs[i], nil
		}
	}
	return nil, fmt.Errorf("no SCI named %q", name)
}

// MembersOf resolves the member property IDs of a corporate vehicle to the
// property records themselves.
func (conf *Configuration) MembersOf(sci *SCI) ([]*Property, error) {
	members := make([]*Property, 0, len(sci.MemberPropertyIDs))
	for _, id := range sci.MemberPropertyIDs {
		found := false
		for i := range conf.Properties {
			if conf.Properties[i].ID == id {
				members = append(members, &conf.Properties[i])
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("SCI %s references unknown property %s", sci.Name, id)
		}
	}
	return members, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return t, nil
}
