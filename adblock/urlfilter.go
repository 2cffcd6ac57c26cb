package adblock

import (
	"errors"
	"fmt"
	"os"
	"strings"

	util "adguardrules/internal"

	"github.com/AdguardTeam/urlfilter"
	"github.com/AdguardTeam/urlfilter/filterlist"
	"github.com/miekg/dns"
)

// ErrInvalidHost 待检查的主机名不合法
var ErrInvalidHost = errors.New("invalid hostname")

// Checker 将生成的黑白名单加载到 urlfilter 引擎中，用于检查单个域名
type Checker struct {
	engine    *urlfilter.DNSEngine
	ruleCount int
}

// NewChecker 使用规则文本构建检查器
func NewChecker(block, allow []string) (*Checker, error) {
	rules := make([]string, 0, len(block)+len(allow))
	rules = append(rules, block...)
	rules = append(rules, allow...)
	rulesStr := strings.Join(rules, "\n")

	stringList := filterlist.NewString(&filterlist.StringConfig{
		RulesText:      rulesStr,
		ID:             1,
		IgnoreCosmetic: true,
	})

	storage, err := filterlist.NewRuleStorage([]filterlist.Interface{stringList})
	if err != nil {
		return nil, fmt.Errorf("create rule storage: %w", err)
	}

	return &Checker{
		engine:    urlfilter.NewDNSEngine(storage),
		ruleCount: len(rules),
	}, nil
}

// LoadChecker 从规则文件构建检查器，文件中的注释和头部会被引擎忽略
func LoadChecker(blockPath, allowPath string) (*Checker, error) {
	block, err := readRuleFile(blockPath)
	if err != nil {
		return nil, err
	}
	allow, err := readRuleFile(allowPath)
	if err != nil {
		return nil, err
	}
	return NewChecker(block, allow)
}

func readRuleFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	return SplitLines(string(data)), nil
}

// Check 返回域名的判定结果以及起决定作用的规则
func (c *Checker) Check(host string) (MatchResult, string, error) {
	host = util.NormalizeDomain(host)
	if _, ok := dns.IsDomainName(host); !ok || host == "" {
		return MatchNeutral, "", fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}
	if c.engine == nil {
		return MatchNeutral, "", nil
	}

	result, matched := c.engine.MatchRequest(&urlfilter.DNSRequest{
		Hostname: host,
		DNSType:  dns.TypeA,
	})
	if !matched || result == nil {
		return MatchNeutral, "", nil
	}

	if result.NetworkRule != nil {
		ruleText := result.NetworkRule.Text()
		if strings.HasPrefix(ruleText, "@@") {
			return MatchAllowed, ruleText, nil
		}
		return MatchBlocked, ruleText, nil
	}

	// hosts 形式的规则
	if len(result.HostRulesV4) > 0 {
		return MatchBlocked, result.HostRulesV4[0].Text(), nil
	}

	return MatchNeutral, "", nil
}

// Count 引擎实际接受的规则数
func (c *Checker) Count() int {
	if c.engine == nil {
		return 0
	}
	if c.engine.RulesCount > 0 {
		return c.engine.RulesCount
	}
	return c.ruleCount
}
