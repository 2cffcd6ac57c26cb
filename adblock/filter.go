package adblock

// MatchResult 域名检查结果
type MatchResult int

const (
	MatchNeutral MatchResult = iota // 没有规则命中
	MatchBlocked                    // 被黑名单拦截
	MatchAllowed                    // 被白名单放行
)

func (r MatchResult) String() string {
	switch r {
	case MatchBlocked:
		return "blocked"
	case MatchAllowed:
		return "allowed"
	default:
		return "neutral"
	}
}

// FilterEngine 域名检查引擎接口
type FilterEngine interface {
	Check(host string) (MatchResult, string, error)
	Count() int
}

var _ FilterEngine = (*Checker)(nil)
