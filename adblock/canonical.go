package adblock

import (
	"strings"
)

const (
	blockPrefix = "||"
	allowPrefix = "@@||"
	ruleSuffix  = "^"
)

// Canonicalize 将已分类的行转换为指定列表类型的规范规则
// 返回 false 表示该行不属于此列表或在清洗后无效
func Canonicalize(line string, shape Shape, kind Kind) (string, bool) {
	line = strings.TrimSpace(line)

	var candidate string
	switch kind {
	case KindBlock:
		switch shape {
		case ShapeHostsEntry, ShapeAdblockBlock, ShapeWildcard:
			candidate = line
		case ShapePlainDomain:
			candidate = blockPrefix + line + ruleSuffix
		default:
			return "", false
		}
	case KindAllow:
		switch shape {
		case ShapeAdblockAllow:
			candidate = repairAllowPrefix(line)
		case ShapePlainDomain:
			candidate = allowPrefix + line + ruleSuffix
		default:
			return "", false
		}
	default:
		return "", false
	}

	candidate = StripInlineComment(candidate)
	if candidate == "" || IsBracketed(candidate) {
		return "", false
	}
	return candidate, true
}

// CanonicalizeLine 分类并规范化一行
func CanonicalizeLine(line string, kind Kind) (string, bool) {
	return Canonicalize(line, Classify(line), kind)
}

// repairAllowPrefix 将 "@@|example.com^" 修正为 "@@||example.com^"，只修正一次
func repairAllowPrefix(rule string) string {
	if strings.HasPrefix(rule, "@@|") && !strings.HasPrefix(rule, allowPrefix) {
		return allowPrefix + rule[len("@@|"):]
	}
	return rule
}

// StripInlineComment 截断第一个 # 或 ! 以及其后的内容，并去除尾部空白
func StripInlineComment(rule string) string {
	if idx := strings.IndexAny(rule, "#!"); idx != -1 {
		rule = rule[:idx]
	}
	return strings.TrimRight(rule, " \t\r\n")
}

// IsBracketed 判断规则是否为 [Adblock Plus 2.0] 这类元数据行
func IsBracketed(rule string) bool {
	rule = strings.TrimSpace(rule)
	return strings.HasPrefix(rule, "[") && strings.HasSuffix(rule, "]")
}
