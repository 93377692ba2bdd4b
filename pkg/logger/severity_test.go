package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityNamesRoundTrip(t *testing.T) {
	for s := Verbose; s <= Fatal; s++ {
		assert.Equal(t, s, fromString(s.Name()))
	}
}

func TestSeverityParsingIgnoresCase(t *testing.T) {
	assert.Equal(t, Debug, fromString("DeBug"))
	assert.Equal(t, Fatal, fromString("FATAL"))
}

func TestUnknownSeverityFallsBackToVerbose(t *testing.T) {
	assert.Equal(t, Verbose, fromString("chatty"))
	assert.Equal(t, "verbose", Severity(42).Name())
}
