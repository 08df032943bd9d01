package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentKey is the field naming the part of reel that emitted an event.
const ComponentKey = "cmp"

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str(ComponentKey, name).Logger()
}

// Failure starts an error event for a failed call made by component. op
// names the call (e.g. "list reviews") and is recorded under "op".
func Failure(component, op string, err error) *zerolog.Event {
	logger := Component(component)
	return logger.Error().Err(err).Str("op", op)
}
