package adblock

import (
	"strings"

	radix "github.com/hashicorp/go-immutable-radix"
)

// DomainIndex 白名单域名索引
// 使用不可变 Radix Tree 存储，精确查询走 Get，包含匹配按字典序遍历
type DomainIndex struct {
	tree *radix.Tree
}

// NewDomainIndex 用一组域名构建索引，空字符串会被忽略
func NewDomainIndex(domains ...string) *DomainIndex {
	txn := radix.New().Txn()
	for _, d := range domains {
		if d == "" {
			continue
		}
		txn.Insert([]byte(d), struct{}{})
	}
	return &DomainIndex{tree: txn.Commit()}
}

// Has 域名是否与索引中的某个域名完全相同
func (idx *DomainIndex) Has(domain string) bool {
	if domain == "" {
		return false
	}
	_, ok := idx.tree.Get([]byte(domain))
	return ok
}

// ContainedIn 返回第一个作为子串出现在 s 中的域名（按字典序）
func (idx *DomainIndex) ContainedIn(s string) (string, bool) {
	var found string
	idx.tree.Root().Walk(func(k []byte, _ interface{}) bool {
		if strings.Contains(s, string(k)) {
			found = string(k)
			return true
		}
		return false
	})
	return found, found != ""
}

// Count 返回域名数量
func (idx *DomainIndex) Count() int {
	return idx.tree.Len()
}
