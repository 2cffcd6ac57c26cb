package stats

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"adguardrules/logger"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// KindStats 一种规则列表的统计
type KindStats struct {
	Label         string `json:"label"`
	Sources       int    `json:"sources"`
	FailedSources int    `json:"failed_sources"`
	Processed     int    `json:"processed"` // 去除注释后的原始行数
	Extracted     int    `json:"extracted"` // 规范化后的规则数（含重复）
	Unique        int    `json:"unique"`
	Removed       int    `json:"removed"` // 被白名单抵消的规则数
	Written       int    `json:"written"`
	Preserved     bool   `json:"preserved"` // 全部失败时保留了旧文件
}

// Run 一次运行的统计
type Run struct {
	mu        sync.Mutex
	order     []string
	kinds     map[string]*KindStats
	startTime time.Time
	endTime   time.Time
	rssBytes  uint64
}

// NewRun 创建统计并记录开始时间
func NewRun() *Run {
	return &Run{
		kinds:     make(map[string]*KindStats),
		startTime: time.Now(),
	}
}

func (r *Run) kind(label string) *KindStats {
	ks, ok := r.kinds[label]
	if !ok {
		ks = &KindStats{Label: label}
		r.kinds[label] = ks
		r.order = append(r.order, label)
	}
	return ks
}

// RecordSources 记录规则源数量
func (r *Run) RecordSources(label string, total, failed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ks := r.kind(label)
	ks.Sources = total
	ks.FailedSources = failed
}

// RecordRules 记录聚合结果
func (r *Run) RecordRules(label string, processed, extracted, unique int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ks := r.kind(label)
	ks.Processed = processed
	ks.Extracted = extracted
	ks.Unique = unique
}

// RecordRemoved 记录被白名单抵消的规则数
func (r *Run) RecordRemoved(label string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kind(label).Removed = n
}

// RecordWritten 记录写入文件的规则数
func (r *Run) RecordWritten(label string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kind(label).Written = n
}

// RecordPreserved 记录保留了上一次生成的文件
func (r *Run) RecordPreserved(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kind(label).Preserved = true
}

// Get 返回指定列表的统计副本
func (r *Run) Get(label string) (KindStats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ks, ok := r.kinds[label]
	if !ok {
		return KindStats{}, false
	}
	return *ks, true
}

// Finish 记录结束时间和进程内存占用
func (r *Run) Finish() {
	rss := processRSS()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.endTime = time.Now()
	r.rssBytes = rss
}

// Duration 运行耗时，未结束时返回到当前的耗时
func (r *Run) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.endTime.IsZero() {
		return time.Since(r.startTime)
	}
	return r.endTime.Sub(r.startTime)
}

// GetSystemStats 获取系统状态 (使用 gopsutil)
func GetSystemStats() map[string]interface{} {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	sysStats := map[string]interface{}{
		"cpu_cores":       runtime.NumCPU(),
		"mem_total_mb":    uint64(0),
		"mem_used_mb":     uint64(0),
		"mem_usage_pct":   0.0,
		"process_rss_mb":  processRSS() / 1024 / 1024,
		"go_mem_alloc_mb": memStats.Alloc / 1024 / 1024,
		"goroutines":      runtime.NumGoroutine(),
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warnf("无法获取内存信息: %v", err)
		return sysStats
	}
	sysStats["mem_total_mb"] = memInfo.Total / 1024 / 1024
	sysStats["mem_used_mb"] = memInfo.Used / 1024 / 1024
	sysStats["mem_usage_pct"] = memInfo.UsedPercent
	return sysStats
}

func processRSS() uint64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Debugf("无法获取进程信息: %v", err)
		return 0
	}
	info, err := p.MemoryInfo()
	if err != nil || info == nil {
		logger.Debugf("无法获取进程内存: %v", err)
		return 0
	}
	return info.RSS
}

// Summary 生成多行中文摘要
func (r *Run) Summary() string {
	d := r.Duration()

	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "运行完成，耗时 %s", d.Round(time.Millisecond))
	if r.rssBytes > 0 {
		fmt.Fprintf(&b, "，内存占用 %.1f MB", float64(r.rssBytes)/1024/1024)
	}
	b.WriteString("\n")

	for _, label := range r.order {
		ks := r.kinds[label]
		fmt.Fprintf(&b, "%s: 规则源 %d 个（失败 %d），处理 %d 行，提取 %d 条，去重后 %d 条",
			ks.Label, ks.Sources, ks.FailedSources, ks.Processed, ks.Extracted, ks.Unique)
		if ks.Removed > 0 {
			fmt.Fprintf(&b, "，白名单抵消 %d 条", ks.Removed)
		}
		if ks.Preserved {
			b.WriteString("，全部下载失败，保留旧文件")
		} else {
			fmt.Fprintf(&b, "，写入 %d 条", ks.Written)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}
