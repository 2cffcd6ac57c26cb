package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunRecords(t *testing.T) {
	r := NewRun()
	r.RecordSources("黑名单", 3, 1)
	r.RecordRules("黑名单", 120, 100, 80)
	r.RecordRemoved("黑名单", 5)
	r.RecordWritten("黑名单", 75)
	r.RecordSources("白名单", 2, 2)
	r.RecordPreserved("白名单")

	block, ok := r.Get("黑名单")
	assert.True(t, ok)
	assert.Equal(t, KindStats{
		Label: "黑名单", Sources: 3, FailedSources: 1,
		Processed: 120, Extracted: 100, Unique: 80, Removed: 5, Written: 75,
	}, block)

	allow, _ := r.Get("白名单")
	assert.True(t, allow.Preserved)

	_, ok = r.Get("unknown")
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	r := NewRun()
	r.RecordSources("黑名单", 3, 1)
	r.RecordRules("黑名单", 120, 100, 80)
	r.RecordRemoved("黑名单", 5)
	r.RecordWritten("黑名单", 75)
	r.RecordSources("白名单", 2, 2)
	r.RecordPreserved("白名单")
	r.Finish()

	lines := strings.Split(r.Summary(), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "运行完成"))
	assert.Equal(t, "黑名单: 规则源 3 个（失败 1），处理 120 行，提取 100 条，去重后 80 条，白名单抵消 5 条，写入 75 条", lines[1])
	assert.Contains(t, lines[2], "保留旧文件")
}

func TestDurationStopsAtFinish(t *testing.T) {
	r := NewRun()
	r.Finish()
	d := r.Duration()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, d, r.Duration())
}

func TestGetSystemStats(t *testing.T) {
	s := GetSystemStats()
	assert.Contains(t, s, "cpu_cores")
	assert.Contains(t, s, "process_rss_mb")
	assert.Contains(t, s, "goroutines")
}
