package simulator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/apppermission/internal/activity"
)

// Rationale dialog taps.
const (
	TapAllow  = "allow"
	TapCancel = "cancel"
)

// Scenario scripts a device and the user's answers.
type Scenario struct {
	// SDK is the Android API level of the device.
	SDK int `yaml:"sdk"`
	// Granted lists identifiers granted before the first press.
	Granted []string `yaml:"granted,omitempty"`
	// Rationale lists identifiers the platform wants explained.
	Rationale []string `yaml:"rationale,omitempty"`
	// Responses answer system dialogs in order. Missing identifiers are
	// denied, as is every dialog past the end of the list.
	Responses []map[string]bool `yaml:"responses,omitempty"`
	// RationaleTaps answer rationale dialogs in order. Dialogs past the end
	// are canceled.
	RationaleTaps []string `yaml:"rationaleTaps,omitempty"`
	// Actions are the buttons pressed, by name.
	Actions []string `yaml:"actions"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a YAML scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario can be run.
func (s *Scenario) Validate() error {
	if s.SDK <= 0 {
		return fmt.Errorf("scenario: sdk must be positive (got %d)", s.SDK)
	}
	if len(s.Actions) == 0 {
		return fmt.Errorf("scenario: no actions")
	}
	for _, name := range s.Actions {
		if _, err := activity.ParseAction(name); err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
	}
	for i, tap := range s.RationaleTaps {
		if tap != TapAllow && tap != TapCancel {
			return fmt.Errorf("scenario: rationaleTaps[%d]: want %q or %q, got %q", i, TapAllow, TapCancel, tap)
		}
	}
	return nil
}

// Device builds the scripted device for the scenario.
func (s *Scenario) Device() *Device {
	d := NewDevice(s.SDK)
	d.Grant(s.Granted...)
	d.SetRationale(s.Rationale...)
	for _, answer := range s.Responses {
		d.QueueResponse(answer)
	}
	return d
}
