package report

import (
	"slices"
	"strconv"
	"strings"
)

// TimeLayout 文件头中更新时间的格式
const TimeLayout = "2006-01-02 15:04:05"

// Header 最终规则文件的头部信息
type Header struct {
	Timestamp  string
	Label      string // 黑名单 或 白名单
	AuthorName string
	AuthorURL  string
}

// Section 杂质文件中一个规则源的内容
type Section struct {
	Name   string
	Failed bool
	Lines  []string
}

// FormatList 渲染最终规则文件，返回文本和实际写入的规则数
// 规则按字节序排序，形如 [xxx] 的行不会写入
func FormatList(rules []string, h Header) (string, int) {
	body, written := formatBody(rules)

	var b strings.Builder
	b.Grow(len(body) + 256)
	b.WriteString("# 更新时间: " + h.Timestamp + "\n")
	b.WriteString("# " + h.Label + "规则数：" + strconv.Itoa(written) + "\n")
	b.WriteString("# 作者名称: " + h.AuthorName + "\n")
	b.WriteString("# 作者主页: " + h.AuthorURL + "\n")
	b.WriteString("\n")
	b.WriteString(body)

	return b.String(), written
}

// FormatExtracted 渲染从黑名单源中提取的放行规则文件，返回文本和写入的规则数
func FormatExtracted(rules []string, timestamp string) (string, int) {
	body, written := formatBody(rules)

	var b strings.Builder
	b.Grow(len(body) + 128)
	b.WriteString("# 更新时间: " + timestamp + "\n")
	b.WriteString("# 提取的规则数：" + strconv.Itoa(written) + "\n")
	b.WriteString("\n")
	b.WriteString(body)

	return b.String(), written
}

// FormatImpurities 渲染杂质文件
// 各规则源的原始行按配置顺序拼接，规则源之间用空行分隔
func FormatImpurities(timestamp string, sections []Section) string {
	var b strings.Builder
	// 头部只有更新时间，原始行数只写日志
	b.WriteString("# 更新时间: " + timestamp + "\n\n")

	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if s.Failed {
			b.WriteString("# 来源: " + s.Name + " (下载失败)\n")
			continue
		}
		for _, line := range s.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// formatBody 排序并逐行输出规则，跳过形如 [xxx] 的行
func formatBody(rules []string) (string, int) {
	sorted := slices.Clone(rules)
	slices.Sort(sorted)

	var body strings.Builder
	written := 0
	for _, rule := range sorted {
		if isBracketed(rule) {
			continue
		}
		body.WriteString(rule)
		body.WriteByte('\n')
		written++
	}
	return body.String(), written
}

func isBracketed(rule string) bool {
	rule = strings.TrimSpace(rule)
	return strings.HasPrefix(rule, "[") && strings.HasSuffix(rule, "]")
}
