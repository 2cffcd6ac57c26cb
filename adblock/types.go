package adblock

// Kind 规则列表类型：黑名单或白名单
type Kind int

const (
	KindBlock Kind = iota // 黑名单
	KindAllow             // 白名单
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Label 返回用于文件头和日志的中文名称
func (k Kind) Label() string {
	if k == KindAllow {
		return "白名单"
	}
	return "黑名单"
}

// Shape 行分类结果
type Shape int

const (
	ShapeDiscard      Shape = iota // 空行或注释行
	ShapeHostsEntry                // 0.0.0.0 example.com
	ShapeAdblockAllow              // @@||example.com^
	ShapeAdblockBlock              // ||example.com^
	ShapeWildcard                  // *-ad.example.com*
	ShapePlainDomain               // example.com
	ShapeUnrecognized              // 无法识别，丢弃
)

var shapeNames = [...]string{
	ShapeDiscard:      "discard",
	ShapeHostsEntry:   "hosts",
	ShapeAdblockAllow: "adblock-allow",
	ShapeAdblockBlock: "adblock-block",
	ShapeWildcard:     "wildcard",
	ShapePlainDomain:  "domain",
	ShapeUnrecognized: "unrecognized",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "invalid"
	}
	return shapeNames[s]
}
