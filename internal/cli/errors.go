package cli

import (
	"strings"

	"github.com/matzehuels/latgraph/pkg/errors"
)

// FormatError renders err as "KIND: message" for the terminal. Errors
// without a structured kind are reported as INVALID_INPUT when they come
// from argument parsing and INTERNAL_ERROR otherwise.
func FormatError(err error) string {
	code := errors.GetCode(err)
	msg := err.Error()
	if code == "" {
		code = errors.ErrCodeInternal
		if isUsageError(msg) {
			code = errors.ErrCodeInvalidInput
		}
		return string(code) + ": " + msg
	}
	// Keep outer context such as the file name, drop the inner code prefix.
	return string(code) + ": " + strings.Replace(msg, string(code)+": ", "", 1)
}

// isUsageError reports whether msg looks like a cobra argument or flag error.
func isUsageError(msg string) bool {
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "invalid argument", "accepts ", "requires at least", "flag needs an argument"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
