package logger

import "time"

// Levels accepted in Log.SQLLogLevel.
const (
	SQLLevelSilent = "silent"
	SQLLevelError  = "error"
	SQLLevelWarn   = "warn"
	SQLLevelInfo   = "info"
)

// DefaultSlowQuery is used when Log.SlowQueryMs is 0.
const DefaultSlowQuery = 200 * time.Millisecond

// SQLLevel returns the SQL log level, warn when none is configured.
func (l Log) SQLLevel() string {
	if l.SQLLogLevel == "" {
		return SQLLevelWarn
	}

	return l.SQLLogLevel
}

// SlowQuery returns the duration above which a statement counts as slow.
func (l Log) SlowQuery() time.Duration {
	if l.SlowQueryMs <= 0 {
		return DefaultSlowQuery
	}

	return time.Duration(l.SlowQueryMs) * time.Millisecond
}

func (l Log) validateSQL() error {
	switch l.SQLLevel() {
	case SQLLevelSilent, SQLLevelError, SQLLevelWarn, SQLLevelInfo:
	default:
		return ErrSQLLogLevelUnknown
	}

	if l.SlowQueryMs < 0 {
		return ErrSlowQueryNegative
	}

	return nil
}
