package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Slot is a time of day (in the creator's timezone) that tends to perform well.
type Slot struct {
	Hour   int `yaml:"hour" json:"hour"`
	Minute int `yaml:"minute" json:"minute"`
}

// Slots maps a platform name to its optimal posting times.
type Slots map[string][]Slot

// DefaultSlots are general optimal times used until audience data exists.
func DefaultSlots() Slots {
	return Slots{
		"INSTAGRAM": {{9, 0}, {12, 30}, {18, 0}, {21, 0}},
		"FACEBOOK":  {{9, 0}, {15, 0}, {19, 0}},
	}
}

// LoadSlots reads a YAML file of the form
//
//	INSTAGRAM:
//	  - {hour: 9, minute: 0}
//
// Platform keys are case-insensitive. Platforms missing from the file keep
// their defaults.
func LoadSlots(path string) (Slots, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}

	var fileSlots Slots
	if err := yaml.Unmarshal(raw, &fileSlots); err != nil {
		return nil, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}

	slots := DefaultSlots()
	for platform, times := range fileSlots {
		if len(times) > 0 {
			slots[strings.ToUpper(strings.TrimSpace(platform))] = times
		}
	}
	return slots, nil
}

// For returns the slots of a platform, falling back to INSTAGRAM.
func (s Slots) For(platform string) []Slot {
	if times, ok := s[platform]; ok && len(times) > 0 {
		return times
	}
	return s["INSTAGRAM"]
}

func (s Slots) Validate() error {
	if len(s["INSTAGRAM"]) == 0 {
		return fmt.Errorf("config: INSTAGRAM posting slots must not be empty")
	}
	for platform, times := range s {
		for _, t := range times {
			if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
				return fmt.Errorf("config: invalid %s slot %02d:%02d", platform, t.Hour, t.Minute)
			}
		}
	}
	return nil
}
