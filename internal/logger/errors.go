package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")

	// ErrSQLLogLevelUnknown is returned for a Log.SQLLogLevel other than silent, error, warn or info.
	ErrSQLLogLevelUnknown = errors.New("config Log.SQLLogLevel is unknown")

	// ErrSlowQueryNegative is returned for a negative Log.SlowQueryMs.
	ErrSlowQueryNegative = errors.New("config Log.SlowQueryMs can not be negative")
)

// errorOutput receives events zerolog failed to write.
var errorOutput io.Writer = os.Stderr //nolint:gochecknoglobals

// ErrorHandler reports events that could not be written, for example
// because a rolling log file became unwritable.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(errorOutput, "appsettings logger: dropped event: %v\n", err)
}
