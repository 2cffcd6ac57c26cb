package adblock

import (
	"sync"
	"time"

	"adguardrules/config"
)

// 规则源状态
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusFailed  = "failed"
)

// SourceStatus 单个规则源在本次运行中的状态
type SourceStatus struct {
	Name      string        `json:"name"`
	URL       string        `json:"url"`
	Kind      string        `json:"kind"`
	Status    string        `json:"status"`
	Bytes     int           `json:"bytes"`
	Attempts  int           `json:"attempts"`
	Duration  time.Duration `json:"duration"`
	FetchedAt time.Time     `json:"fetched_at"`
	LastError string        `json:"last_error"`
}

type sourceKey struct {
	kind Kind
	name string
}

// SourceManager 记录本次运行中每个规则源的下载状态
// 状态只保存在内存中，不跨运行持久化
type SourceManager struct {
	order   []sourceKey
	sources map[sourceKey]*SourceStatus
	mu      sync.RWMutex
}

// NewSourceManager 按配置顺序登记全部规则源
func NewSourceManager(cfg *config.SourcesConfig) *SourceManager {
	sm := &SourceManager{
		sources: make(map[sourceKey]*SourceStatus),
	}
	for _, s := range cfg.Block {
		sm.AddSource(KindBlock, s)
	}
	for _, s := range cfg.Allow {
		sm.AddSource(KindAllow, s)
	}
	return sm
}

// AddSource 登记一个规则源，重复登记会被忽略
func (sm *SourceManager) AddSource(kind Kind, src config.SourceConfig) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	key := sourceKey{kind: kind, name: src.Name}
	if _, exists := sm.sources[key]; exists {
		return
	}
	sm.order = append(sm.order, key)
	sm.sources[key] = &SourceStatus{
		Name:   src.Name,
		URL:    src.URL,
		Kind:   kind.String(),
		Status: StatusPending,
	}
}

// UpdateSourceStatus 记录一次下载的结果
func (sm *SourceManager) UpdateSourceStatus(kind Kind, name string, bytes, attempts int, elapsed time.Duration, err error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	source, exists := sm.sources[sourceKey{kind: kind, name: name}]
	if !exists {
		return
	}
	source.FetchedAt = time.Now()
	source.Bytes = bytes
	source.Attempts = attempts
	source.Duration = elapsed
	if err != nil {
		source.LastError = err.Error()
		source.Status = StatusFailed
	} else {
		source.LastError = ""
		source.Status = StatusActive
	}
}

// GetStatuses 按登记顺序返回全部规则源状态
func (sm *SourceManager) GetStatuses() []SourceStatus {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	statuses := make([]SourceStatus, 0, len(sm.order))
	for _, key := range sm.order {
		statuses = append(statuses, *sm.sources[key])
	}
	return statuses
}

// FailedSources 返回指定类型中下载失败的规则源名称
func (sm *SourceManager) FailedSources(kind Kind) []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	var names []string
	for _, key := range sm.order {
		if key.kind == kind && sm.sources[key].Status == StatusFailed {
			names = append(names, key.name)
		}
	}
	return names
}
