package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	cases := map[string]logrus.Level{
		"error":   logrus.ErrorLevel,
		" WARN ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"debug":   logrus.DebugLevel,
		"trace":   logrus.TraceLevel,
		"":        logrus.InfoLevel,
		"verbose": logrus.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, levelFromString(in), in)
	}
}

func TestNewUsesJSONFormatter(t *testing.T) {
	log := New("info", "json")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}
