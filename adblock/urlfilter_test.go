package adblock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckerVerdicts(t *testing.T) {
	c, err := NewChecker(
		[]string{"||ads.example.com^", "||tracker.net^", "0.0.0.0 hosts.example.org"},
		[]string{"@@||good.tracker.net^"},
	)
	require.NoError(t, err)

	tests := []struct {
		host   string
		result MatchResult
	}{
		{"ads.example.com", MatchBlocked},
		{"sub.ads.example.com", MatchBlocked},
		{"ADS.Example.com.", MatchBlocked},
		{"tracker.net", MatchBlocked},
		{"good.tracker.net", MatchAllowed},
		{"hosts.example.org", MatchBlocked},
		{"example.com", MatchNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			result, rule, err := c.Check(tt.host)
			require.NoError(t, err)
			assert.Equal(t, tt.result, result)
			if tt.result == MatchNeutral {
				assert.Empty(t, rule)
			} else {
				assert.NotEmpty(t, rule)
			}
		})
	}
}

func TestCheckerRejectsInvalidHost(t *testing.T) {
	c, err := NewChecker(nil, nil)
	require.NoError(t, err)

	_, _, err = c.Check("")
	assert.True(t, errors.Is(err, ErrInvalidHost))
}

func TestLoadChecker(t *testing.T) {
	dir := t.TempDir()
	blockPath := filepath.Join(dir, "Black.txt")
	allowPath := filepath.Join(dir, "White.txt")
	require.NoError(t, os.WriteFile(blockPath, []byte("# 更新时间: x\n\n||ads.example.com^\n"), 0644))
	require.NoError(t, os.WriteFile(allowPath, []byte("# 更新时间: x\n\n@@||ok.example.com^\n"), 0644))

	c, err := LoadChecker(blockPath, allowPath)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Count())

	result, rule, err := c.Check("ads.example.com")
	require.NoError(t, err)
	assert.Equal(t, MatchBlocked, result)
	assert.Equal(t, "||ads.example.com^", rule)

	_, err = LoadChecker(filepath.Join(dir, "missing.txt"), allowPath)
	assert.Error(t, err)
}

func TestMatchResultString(t *testing.T) {
	assert.Equal(t, "blocked", MatchBlocked.String())
	assert.Equal(t, "neutral", MatchResult(7).String())
}
