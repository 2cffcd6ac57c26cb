package adblock

import (
	"slices"
)

// RuleSet 以规则字符串为键的去重集合
type RuleSet map[string]struct{}

// NewRuleSet 创建规则集合，可选地预先加入规则
func NewRuleSet(rules ...string) RuleSet {
	rs := make(RuleSet, len(rules))
	for _, r := range rules {
		rs.Add(r)
	}
	return rs
}

// Add 加入一条规则，返回是否为新规则
func (rs RuleSet) Add(rule string) bool {
	if _, ok := rs[rule]; ok {
		return false
	}
	rs[rule] = struct{}{}
	return true
}

func (rs RuleSet) Has(rule string) bool {
	_, ok := rs[rule]
	return ok
}

func (rs RuleSet) Len() int {
	return len(rs)
}

// Union 将 other 中的规则并入当前集合
func (rs RuleSet) Union(other RuleSet) {
	for r := range other {
		rs[r] = struct{}{}
	}
}

// Sorted 按码点顺序返回全部规则
func (rs RuleSet) Sorted() []string {
	out := make([]string, 0, len(rs))
	for r := range rs {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
