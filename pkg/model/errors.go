package model

import "fmt"

// ConfigurationError marks invalid classroom or course configuration. It is
// raised before scheduling; the solver never sees a misconfigured problem.
type ConfigurationError struct {
	Detail string
}

func (e ConfigurationError) Error() string {
	return "invalid configuration: " + e.Detail
}

func Configurationf(format string, args ...any) ConfigurationError {
	return ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}
