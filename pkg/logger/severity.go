package logger

import "strings"

// Severity :
// Grades the importance of a log line. The zero value is the
// most talkative level so that a misconfigured logger errs on
// the side of printing too much.
type Severity int

// Available severities, ordered from chatty to critical.
const (
	Verbose Severity = iota
	Debug
	Info
	Notice
	Warning
	Error
	Critical
	Fatal
)

// severityNames : The display name of each severity, indexed
// by its value.
var severityNames = [...]string{
	Verbose:  "verbose",
	Debug:    "debug",
	Info:     "info",
	Notice:   "notice",
	Warning:  "warning",
	Error:    "error",
	Critical: "critical",
	Fatal:    "fatal",
}

// severityColors : The display color of each severity. Every
// level from `Error` upwards shows red.
var severityColors = [...]Color{
	Verbose:  Grey,
	Debug:    Blue,
	Info:     Green,
	Notice:   Cyan,
	Warning:  Yellow,
	Error:    Red,
	Critical: Red,
	Fatal:    Red,
}

// Name :
// Provides the display name of the severity. Out-of-range
// values are reported as `verbose`.
//
// Returns the name.
func (s Severity) Name() string {
	if s < Verbose || s > Fatal {
		s = Verbose
	}

	return severityNames[s]
}

// Color :
// Provides the color the severity is displayed with.
//
// Returns the color.
func (s Severity) Color() Color {
	if s < Verbose || s > Fatal {
		s = Verbose
	}

	return severityColors[s]
}

// String :
// Provides the bracketed, colored representation of the
// severity used by the logging devices.
//
// Returns the formatted string.
func (s Severity) String() string {
	return FormatWithBrackets(s.Name(), s.Color())
}

// fromString :
// Parses a severity from its display name, ignoring the case
// of the input. Unknown names fall back to `Verbose`.
//
// The `level` defines the name to parse.
//
// Returns the severity.
func fromString(level string) Severity {
	wanted := strings.ToLower(level)

	for id, name := range severityNames {
		if name == wanted {
			return Severity(id)
		}
	}

	return Verbose
}
