package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConverter(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validateFilters(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConverter() error {
	if c.Converter.TimeoutSeconds <= 0 {
		return errors.New("converter.timeout_seconds must be positive")
	}
	if c.Converter.Memory != "" && !validMemory(c.Converter.Memory) {
		return fmt.Errorf("converter.memory %q must look like 800m or 2g", c.Converter.Memory)
	}
	return nil
}

func (c *Config) validateSplit() error {
	s := c.Split
	if err := ensurePositiveMap(map[string]int{
		"split.train_below": s.TrainBelow,
		"split.test_above":  s.TestAbove,
		"split.test_max":    s.TestMax,
		"split.dev_above":   s.DevAbove,
		"split.dev_max":     s.DevMax,
	}); err != nil {
		return err
	}
	if s.TestMax <= s.TestAbove {
		return errors.New("split.test_max must be greater than split.test_above")
	}
	if s.DevMax <= s.DevAbove {
		return errors.New("split.dev_max must be greater than split.dev_above")
	}
	if s.TestAbove < s.TrainBelow-1 {
		return errors.New("split.test_above overlaps the training range")
	}
	if s.DevAbove < s.TestMax && s.DevMax > s.TestAbove {
		return errors.New("split dev and test ranges overlap")
	}
	return nil
}

func (c *Config) validateFilters() error {
	for _, mwe := range c.Filters.MWEs {
		parts := strings.Split(mwe, "_")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("filters.mwes entry %q must join exactly two words with '_'", mwe)
		}
	}
	return nil
}

func validMemory(value string) bool {
	if len(value) < 2 {
		return false
	}
	switch value[len(value)-1] {
	case 'k', 'K', 'm', 'M', 'g', 'G':
	default:
		return false
	}
	for _, r := range value[:len(value)-1] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
