// Package base holds the decision hook contract and the shared baseline
// embedded by every strategy implementation
package base

import "fmt"

// Strategy is the base implementation of the Handler interface
type Strategy struct{}

// SetCustomSettings rejects every key. Strategies that accept settings
// override this
func (s *Strategy) SetCustomSettings(customSettings map[string]any) error {
	for k, v := range customSettings {
		return fmt.Errorf("%w unrecognised custom setting key %v with value %v. Cannot apply", ErrInvalidCustomSettings, k, v)
	}
	return nil
}

// Validate checks the tick context handed to a hook
func Validate(t *Tick) error {
	if t == nil || t.Data == nil || t.Portfolio == nil {
		return ErrNilTick
	}
	return nil
}
