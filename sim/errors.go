package sim

import "fmt"

// ValidationError reports a location feature that cannot be used by the voters.
type ValidationError struct {
	Location string
	Field    string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("location %q: invalid %s: %s", e.Location, e.Field, e.Reason)
}

// ConfigError reports a scenario or run configuration that cannot be simulated,
// such as a link to a location that does not exist.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}
