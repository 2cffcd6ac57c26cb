package adblock

import (
	"strings"
)

// SourceText 一个规则源的下载结果，Err 不为空表示下载失败
type SourceText struct {
	Name string
	URL  string
	Text string
	Err  error
}

// Failed 是否下载失败
func (s SourceText) Failed() bool {
	return s.Err != nil
}

// SourceResult 单个规则源的处理统计
type SourceResult struct {
	Name      string
	Failed    bool
	Err       error
	Processed int // 去除注释和空行后的行数
	Extracted int // 产生的规范规则数（含重复）
}

// ImpuritySection 杂质文件中属于一个规则源的原始内容
type ImpuritySection struct {
	Name   string
	Failed bool
	Lines  []string
}

// Aggregation 一种列表类型的聚合结果
type Aggregation struct {
	Kind       Kind
	Rules      RuleSet
	Sources    []SourceResult
	Impurities []ImpuritySection
}

// FailedSources 返回下载失败的规则源名称
func (a *Aggregation) FailedSources() []string {
	var names []string
	for _, s := range a.Sources {
		if s.Failed {
			names = append(names, s.Name)
		}
	}
	return names
}

// AllFailed 是否所有规则源都下载失败
func (a *Aggregation) AllFailed() bool {
	for _, s := range a.Sources {
		if !s.Failed {
			return false
		}
	}
	return true
}

// Processed 全部规则源去除注释后的原始行数
func (a *Aggregation) Processed() int {
	n := 0
	for _, s := range a.Sources {
		n += s.Processed
	}
	return n
}

// Aggregate 对所有规则源逐行分类、规范化并去重
// 下载失败的规则源只记录失败，不影响其余规则源
func Aggregate(sources []SourceText, kind Kind) *Aggregation {
	agg := &Aggregation{
		Kind:  kind,
		Rules: NewRuleSet(),
	}

	for _, src := range sources {
		if src.Failed() {
			agg.Sources = append(agg.Sources, SourceResult{Name: src.Name, Failed: true, Err: src.Err})
			agg.Impurities = append(agg.Impurities, ImpuritySection{Name: src.Name, Failed: true})
			continue
		}

		result := SourceResult{Name: src.Name}
		section := ImpuritySection{Name: src.Name}
		for _, raw := range SplitLines(src.Text) {
			shape := Classify(raw)
			if shape == ShapeDiscard {
				continue
			}
			result.Processed++
			section.Lines = append(section.Lines, raw)

			if rule, ok := Canonicalize(raw, shape, kind); ok {
				result.Extracted++
				agg.Rules.Add(rule)
			}
		}
		agg.Sources = append(agg.Sources, result)
		agg.Impurities = append(agg.Impurities, section)
	}

	return agg
}

// EmbeddedAllowRules 提取黑名单源中夹带的 @@ 放行规则
// 纯域名行不会被当作白名单，只收集 @@ 开头的规则
func EmbeddedAllowRules(sources []SourceText) RuleSet {
	rs := NewRuleSet()
	for _, src := range sources {
		if src.Failed() {
			continue
		}
		for _, raw := range SplitLines(src.Text) {
			if Classify(raw) != ShapeAdblockAllow {
				continue
			}
			if rule, ok := Canonicalize(raw, ShapeAdblockAllow, KindAllow); ok {
				rs.Add(rule)
			}
		}
	}
	return rs
}

// SplitLines 按行切分文本，兼容 \r\n 与单独的 \r
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
