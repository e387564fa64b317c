package gettext

import "fmt"

// LoadError reports a failure to load or validate a MO catalogue. Its
// message text is part of this package's stable contract: callers that
// need to distinguish failure kinds should match on the Error() string,
// the same way GNU gettext tooling reports catalogue problems.
type LoadError struct {
	msg string
}

func (e *LoadError) Error() string {
	return e.msg
}

func loadErrorf(format string, args ...interface{}) *LoadError {
	return &LoadError{msg: fmt.Sprintf(format, args...)}
}
