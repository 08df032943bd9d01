package commands

import (
	"errors"

	"github.com/hay-kot/criterio"
)

// fieldMessages flattens a config validation error into "key: reason"
// lines. Other errors yield their message.
func fieldMessages(err error) []string {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fe.Field+": "+fe.Err.Error())
	}
	return out
}
