package spotify

import "errors"

// ConfigurationError indicates missing or unusable Spotify credentials.
// It is fatal for the attempted lookup and is never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "spotify not configured: " + e.Reason
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
