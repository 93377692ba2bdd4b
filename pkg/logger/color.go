package logger

import "fmt"

// Color :
// Describes the colors that can be used when formatting a string
// to be displayed in a terminal. Each color is translated into an
// ANSI escape sequence when applied.
type Color int

const (
	Grey Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// code :
// Provides the ANSI code associated to the color.
//
// Returns the integer value to insert in the escape sequence.
func (c Color) code() int {
	return [...]int{
		90,
		31,
		32,
		33,
		34,
		35,
		36,
		37,
	}[c]
}

// FormatWithBrackets :
// Used to wrap the input string into brackets and apply the input
// color to the whole result. This is the common decoration used
// for the structured parts of a log line (application name, level
// and module).
//
// The `msg` defines the string to format.
//
// The `c` defines the color to apply.
//
// Returns the formatted string.
func FormatWithBrackets(msg string, c Color) string {
	return fmt.Sprintf("\033[1;%dm[%s]\033[0m", c.code(), msg)
}

// FormatWithNoBrackets :
// Fills a similar purpose to `FormatWithBrackets` but does not
// surround the input string with brackets.
//
// The `msg` defines the string to format.
//
// The `c` defines the color to apply.
//
// Returns the formatted string.
func FormatWithNoBrackets(msg string, c Color) string {
	return fmt.Sprintf("\033[1;%dm%s\033[0m", c.code(), msg)
}
