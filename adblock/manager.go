package adblock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"adguardrules/config"
	"adguardrules/logger"
	"adguardrules/report"
	"adguardrules/stats"

	"golang.org/x/sync/errgroup"
)

// ErrAllSourcesFailed 某类规则源全部下载失败
var ErrAllSourcesFailed = errors.New("all sources failed")

// TimeSource 提供文件头中的更新时间
type TimeSource interface {
	Now(ctx context.Context) time.Time
}

// KindResult 一种列表在本次运行中的结果
type KindResult struct {
	Kind           Kind
	Aggregation    *Aggregation
	Rules          RuleSet // 最终写入的规则集合
	Removed        []Removal
	Written        int
	Preserved      bool // 全部失败，未覆盖旧文件
	ListPath       string
	ImpuritiesPath string
}

// RunResult 一次完整运行的结果
type RunResult struct {
	Timestamp string
	Block     *KindResult
	Allow     *KindResult
	Stats     *stats.Run

	// 从黑名单源中提取的放行规则，未开启提取时为 nil
	Extracted        RuleSet
	ExtractedPath    string
	ExtractedWritten int
	// 白名单源全部失败且保留旧文件时，提取的规则不参与抵消
	ExtractedIgnored bool
}

// Manager 负责一次完整的下载、聚合、抵消和写入流程
type Manager struct {
	cfg        *config.Config
	clock      TimeSource
	sourcesMgr *SourceManager
	loader     *RuleLoader

	mu     sync.RWMutex
	engine FilterEngine
}

// NewManager 创建管理器
func NewManager(cfg *config.Config, clock TimeSource) *Manager {
	sourcesMgr := NewSourceManager(&cfg.Sources)
	return &Manager{
		cfg:        cfg,
		clock:      clock,
		sourcesMgr: sourcesMgr,
		loader:     NewRuleLoader(&cfg.Fetch, sourcesMgr),
	}
}

// Sources 返回规则源状态管理器
func (m *Manager) Sources() *SourceManager {
	return m.sourcesMgr
}

// Run 执行一次完整的规则更新
// 某类规则源全部失败时仍会写出杂质文件，并返回包装了 ErrAllSourcesFailed 的错误
func (m *Manager) Run(ctx context.Context) (*RunResult, error) {
	st := stats.NewRun()

	// 同一次运行的所有文件使用同一个时间
	timestamp := m.clock.Now(ctx).Format(report.TimeLayout)
	logger.Infof("更新时间: %s", timestamp)

	// Phase 1: 下载两类规则源
	var blockTexts, allowTexts []SourceText
	var g errgroup.Group
	g.Go(func() error {
		blockTexts = m.loader.FetchAll(ctx, KindBlock, m.cfg.Sources.Block)
		return nil
	})
	g.Go(func() error {
		allowTexts = m.loader.FetchAll(ctx, KindAllow, m.cfg.Sources.Allow)
		return nil
	})
	_ = g.Wait()

	// Phase 2: 聚合与去重
	blockAgg := Aggregate(blockTexts, KindBlock)
	allowAgg := Aggregate(allowTexts, KindAllow)
	logAggregation(blockAgg)
	logAggregation(allowAgg)

	var embedded RuleSet
	embeddedIgnored := false
	if m.cfg.Sources.ExtractAllowFromBlock {
		embedded = EmbeddedAllowRules(blockTexts)
		if allowAgg.AllFailed() && m.cfg.Output.KeepOnTotalFailure {
			// 白名单文件不会被覆盖，抵消结果需要与已发布的白名单一致
			embeddedIgnored = true
			logger.Warnf("[%s] 规则源全部下载失败，从黑名单源中提取的 %d 条放行规则不参与抵消",
				KindAllow.Label(), embedded.Len())
		} else {
			before := allowAgg.Rules.Len()
			allowAgg.Rules.Union(embedded)
			logger.Infof("[%s] 从黑名单源中提取 %d 条放行规则，新增 %d 条",
				KindAllow.Label(), embedded.Len(), allowAgg.Rules.Len()-before)
		}
	}

	// Phase 3: 白名单抵消黑名单
	finalBlock, removed := Reconcile(blockAgg.Rules, allowAgg.Rules)
	logger.Infof("白名单抵消黑名单规则 %d 条", len(removed))
	for _, r := range removed {
		logger.Debugf("移除 %s (白名单: %s)", r.Rule, r.Domain)
	}

	result := &RunResult{
		Timestamp: timestamp,
		Block: &KindResult{
			Kind:           KindBlock,
			Aggregation:    blockAgg,
			Rules:          finalBlock,
			Removed:        removed,
			ListPath:       m.cfg.Output.BlockPath(),
			ImpuritiesPath: m.cfg.Output.BlockImpuritiesPath(),
		},
		Allow: &KindResult{
			Kind:           KindAllow,
			Aggregation:    allowAgg,
			Rules:          allowAgg.Rules,
			ListPath:       m.cfg.Output.AllowPath(),
			ImpuritiesPath: m.cfg.Output.AllowImpuritiesPath(),
		},
		Stats:            st,
		Extracted:        embedded,
		ExtractedIgnored: embeddedIgnored,
	}

	// Phase 4: 写入文件
	for _, kr := range []*KindResult{result.Block, result.Allow} {
		if err := m.writeKind(timestamp, kr); err != nil {
			return result, err
		}
		recordStats(st, kr)
	}
	if embedded != nil {
		if err := m.writeExtracted(timestamp, result); err != nil {
			return result, err
		}
	}

	// Phase 5: 用生成的规则构建检查引擎，替换旧引擎
	if err := m.loadEngine(result); err != nil {
		logger.Warnf("构建规则检查引擎失败: %v", err)
	}

	st.Finish()
	logger.Info(st.Summary())
	logger.Debugf("系统状态: %v", stats.GetSystemStats())

	var failedKinds []string
	for _, kr := range []*KindResult{result.Block, result.Allow} {
		if kr.Aggregation.AllFailed() {
			failedKinds = append(failedKinds, kr.Kind.String())
		}
	}
	if len(failedKinds) > 0 {
		return result, fmt.Errorf("%w: %s", ErrAllSourcesFailed, strings.Join(failedKinds, ", "))
	}
	return result, nil
}

func (m *Manager) writeKind(timestamp string, kr *KindResult) error {
	sections := make([]report.Section, 0, len(kr.Aggregation.Impurities))
	for _, s := range kr.Aggregation.Impurities {
		sections = append(sections, report.Section{Name: s.Name, Failed: s.Failed, Lines: s.Lines})
	}
	if err := report.WriteFile(kr.ImpuritiesPath, report.FormatImpurities(timestamp, sections)); err != nil {
		return err
	}
	logger.Infof("[%s] 杂质文件已写入 %s，原始行数 %d", kr.Kind.Label(), kr.ImpuritiesPath, kr.Aggregation.Processed())

	if kr.Aggregation.AllFailed() && m.cfg.Output.KeepOnTotalFailure {
		kr.Preserved = true
		logger.Warnf("[%s] 规则源全部下载失败，保留现有文件 %s", kr.Kind.Label(), kr.ListPath)
		return nil
	}

	text, written := report.FormatList(kr.Rules.Sorted(), report.Header{
		Timestamp:  timestamp,
		Label:      kr.Kind.Label(),
		AuthorName: m.cfg.Author.Name,
		AuthorURL:  m.cfg.Author.Homepage,
	})
	if err := report.WriteFile(kr.ListPath, text); err != nil {
		return err
	}
	kr.Written = written
	logger.Infof("[%s] 已写入 %s，共 %d 条规则", kr.Kind.Label(), kr.ListPath, written)
	return nil
}

// writeExtracted 写入从黑名单源中提取的放行规则
func (m *Manager) writeExtracted(timestamp string, result *RunResult) error {
	path := m.cfg.Output.ExtractedPath()
	text, written := report.FormatExtracted(result.Extracted.Sorted(), timestamp)
	if err := report.WriteFile(path, text); err != nil {
		return err
	}
	result.ExtractedPath = path
	result.ExtractedWritten = written
	logger.Infof("[%s] 提取的放行规则已写入 %s，共 %d 条", KindAllow.Label(), path, written)
	return nil
}

// loadEngine 保留旧文件时从磁盘读取，否则直接使用内存中的规则
func (m *Manager) loadEngine(result *RunResult) error {
	block, err := engineRules(result.Block)
	if err != nil {
		return err
	}
	allow, err := engineRules(result.Allow)
	if err != nil {
		return err
	}

	checker, err := NewChecker(block, allow)
	if err != nil {
		return err
	}
	logger.Debugf("规则检查引擎已加载 %d 条规则", checker.Count())

	m.mu.Lock()
	m.engine = checker
	m.mu.Unlock()
	return nil
}

func engineRules(kr *KindResult) ([]string, error) {
	if !kr.Preserved {
		return kr.Rules.Sorted(), nil
	}
	rules, err := readRuleFile(kr.ListPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return rules, err
}

// CheckHost 使用最近一次运行生成的规则检查域名
func (m *Manager) CheckHost(domain string) (MatchResult, string, error) {
	m.mu.RLock()
	engine := m.engine
	m.mu.RUnlock()

	if engine == nil {
		return MatchNeutral, "", nil
	}
	return engine.Check(domain)
}

func logAggregation(agg *Aggregation) {
	label := agg.Kind.Label()
	for _, s := range agg.Sources {
		if s.Failed {
			continue
		}
		logger.Infof("[%s] %s: 处理 %d 行，提取 %d 条规则", label, s.Name, s.Processed, s.Extracted)
	}
	if failed := agg.FailedSources(); len(failed) > 0 {
		logger.Warnf("[%s] 下载失败的规则源: %s", label, strings.Join(failed, ", "))
	}
	logger.Infof("[%s] 去重后共 %d 条规则", label, agg.Rules.Len())
}

func recordStats(st *stats.Run, kr *KindResult) {
	label := kr.Kind.Label()
	extracted := 0
	for _, s := range kr.Aggregation.Sources {
		extracted += s.Extracted
	}
	st.RecordSources(label, len(kr.Aggregation.Sources), len(kr.Aggregation.FailedSources()))
	st.RecordRules(label, kr.Aggregation.Processed(), extracted, kr.Aggregation.Rules.Len())
	st.RecordRemoved(label, len(kr.Removed))
	if kr.Preserved {
		st.RecordPreserved(label)
	} else {
		st.RecordWritten(label, kr.Written)
	}
}
