package util

import (
	"strings"
)

// IsIPv4Literal 检查是否为 hosts 文件中的 IPv4 写法（四段纯数字，以点分隔）
// 与真实 IP 校验不同，这里不检查每段的取值范围，999.0.0.1 同样被接受
func IsIPv4Literal(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, ch := range p {
			if ch < '0' || ch > '9' {
				return false
			}
		}
	}
	return true
}

// IsValidDomain 验证域名格式
// 每个标签 1-63 个字母、数字或连字符，不能以连字符开头或结尾，至少一个标签
func IsValidDomain(domain string) bool {
	if len(domain) == 0 {
		return false
	}

	for _, label := range strings.Split(domain, ".") {
		if !isValidLabel(label) {
			return false
		}
	}

	return true
}

func isValidLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}

	for _, ch := range label {
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '-') {
			return false
		}
	}
	return true
}

// NormalizeDomain 规范化域名
func NormalizeDomain(domain string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(domain)), ".")
}
