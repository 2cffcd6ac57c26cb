package adblock

import (
	"strings"

	util "adguardrules/internal"
)

// shapePredicate 判断一行（已去除首尾空白）是否属于某种规则形态
type shapePredicate struct {
	shape Shape
	match func(line string) bool
}

// shapePredicates 按优先级排列，第一个命中的生效
var shapePredicates = []shapePredicate{
	{ShapeHostsEntry, isHostsEntry},
	{ShapeAdblockAllow, isAdblockAllow},
	{ShapeAdblockBlock, isAdblockBlock},
	{ShapeWildcard, isWildcard},
	{ShapePlainDomain, util.IsValidDomain},
}

// Classify 对单行文本进行分类
// 空行以及首字符为 # 或 ! 的行返回 ShapeDiscard；行内注释不在这里处理
func Classify(line string) Shape {
	line = strings.TrimSpace(line)
	if isCommentOrBlank(line) {
		return ShapeDiscard
	}

	for _, p := range shapePredicates {
		if p.match(line) {
			return p.shape
		}
	}
	return ShapeUnrecognized
}

func isCommentOrBlank(trimmed string) bool {
	return trimmed == "" || trimmed[0] == '#' || trimmed[0] == '!'
}

// isHostsEntry 匹配 "IP 域名..." 形式，IP 只要求四段数字
func isHostsEntry(line string) bool {
	fields := strings.Fields(line)
	return len(fields) >= 2 && util.IsIPv4Literal(fields[0])
}

func isAdblockAllow(line string) bool {
	return strings.HasPrefix(line, "@@") && strings.Contains(line, "^")
}

func isAdblockBlock(line string) bool {
	return !strings.HasPrefix(line, "@@") &&
		strings.Contains(line, "||") &&
		strings.Contains(line, "^")
}

func isWildcard(line string) bool {
	return len(line) >= 2 && line[0] == '*' && line[len(line)-1] == '*'
}
