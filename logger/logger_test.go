package logger

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetFlags(0)
	prevLevel := GetLevel()
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetFlags(log.LstdFlags)
		mu.Lock()
		currentLevel = prevLevel
		mu.Unlock()
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t)

	SetLevel("warn")
	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Error("error ", 4)

	assert.Equal(t, "[WARN] warn 3\n[ERROR] error 4\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level Level
		ok    bool
	}{
		{"debug", DebugLevel, true},
		{"INFO", InfoLevel, true},
		{"", InfoLevel, true},
		{"warning", WarnLevel, true},
		{"error", ErrorLevel, true},
		{"fatal", FatalLevel, true},
		{"verbose", InfoLevel, false},
	}

	for _, tt := range tests {
		level, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.level, level, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestFatalCallsExit(t *testing.T) {
	buf := captureOutput(t)

	code := -1
	exitFunc = func(c int) { code = c }
	defer func() { exitFunc = os.Exit }()

	Fatalf("boom %s", "now")
	assert.Equal(t, 1, code)
	assert.Equal(t, "[FATAL] boom now\n", buf.String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
}
