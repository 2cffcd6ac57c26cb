package adblock

import (
	"strings"
)

// Removal 一条因白名单而被移除的黑名单规则
type Removal struct {
	Rule   string // 被移除的黑名单规则
	Domain string // 命中的白名单域名
}

// AllowDomainKey 提取白名单规则中的域名，只处理 @@||domain^ 形式
func AllowDomainKey(rule string) (string, bool) {
	rule = repairAllowPrefix(strings.TrimSpace(rule))
	return enclosedDomain(rule, allowPrefix)
}

// BlockDomainKey 提取黑名单规则中用于比较的域名
// ||domain^ 取中间部分；hosts 取第二个字段；其它形式无法提取
func BlockDomainKey(rule string) (string, bool) {
	rule = strings.TrimSpace(rule)
	switch Classify(rule) {
	case ShapeHostsEntry:
		return strings.Fields(rule)[1], true
	case ShapeAdblockBlock:
		return enclosedDomain(rule, blockPrefix)
	}
	return "", false
}

func enclosedDomain(rule, prefix string) (string, bool) {
	if !strings.HasPrefix(rule, prefix) || !strings.HasSuffix(rule, ruleSuffix) {
		return "", false
	}
	d := rule[len(prefix) : len(rule)-len(ruleSuffix)]
	return d, d != ""
}

// BuildAllowIndex 从白名单规则集合构建域名索引
func BuildAllowIndex(allow RuleSet) *DomainIndex {
	domains := make([]string, 0, len(allow))
	for rule := range allow {
		if d, ok := AllowDomainKey(rule); ok {
			domains = append(domains, d)
		}
	}
	return NewDomainIndex(domains...)
}

// Reconcile 从黑名单中移除被白名单覆盖的规则，白名单集合保持不变
func Reconcile(block, allow RuleSet) (RuleSet, []Removal) {
	idx := BuildAllowIndex(allow)
	kept := make(RuleSet, len(block))
	var removed []Removal

	for rule := range block {
		if d, ok := coveredBy(rule, idx); ok {
			removed = append(removed, Removal{Rule: rule, Domain: d})
			continue
		}
		kept[rule] = struct{}{}
	}
	return kept, removed
}

// coveredBy 判断一条黑名单规则是否被白名单域名覆盖
func coveredBy(rule string, idx *DomainIndex) (string, bool) {
	if idx.Count() == 0 {
		return "", false
	}

	if Classify(rule) == ShapeWildcard {
		return idx.ContainedIn(rule)
	}

	if d, ok := BlockDomainKey(rule); ok {
		return d, idx.Has(d)
	}

	residual := StripInlineComment(strings.TrimSpace(rule))
	return residual, idx.Has(residual)
}
