package adblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileExactMatch(t *testing.T) {
	block := NewRuleSet("||ads.example.com^")
	allow := NewRuleSet("@@||ads.example.com^")

	got, removed := Reconcile(block, allow)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, []Removal{{Rule: "||ads.example.com^", Domain: "ads.example.com"}}, removed)
}

func TestReconcileWildcardContainment(t *testing.T) {
	block := NewRuleSet("*tracker.example.net*")
	allow := NewRuleSet("@@||tracker.example.net^")

	got, removed := Reconcile(block, allow)
	assert.False(t, got.Has("*tracker.example.net*"))
	assert.Len(t, removed, 1)
}

func TestReconcileNonMatchRetained(t *testing.T) {
	block := NewRuleSet("||other.example.org^")
	allow := NewRuleSet("@@||ads.example.com^")

	got, removed := Reconcile(block, allow)
	assert.True(t, got.Has("||other.example.org^"))
	assert.Empty(t, removed)
}

func TestReconcileHostsEntry(t *testing.T) {
	block := NewRuleSet("0.0.0.0 ads.example.com", "0.0.0.0 keep.example.com ads.example.com")
	allow := NewRuleSet("@@||ads.example.com^")

	got, _ := Reconcile(block, allow)
	// 只比较第二个字段
	assert.Equal(t, NewRuleSet("0.0.0.0 keep.example.com ads.example.com"), got)
}

func TestReconcileNoSubdomainImplication(t *testing.T) {
	// 精确比较，父域名白名单不会移除子域名规则
	block := NewRuleSet("||sub.ads.example.com^", "||ads.example.com^$third-party")
	allow := NewRuleSet("@@||ads.example.com^")

	got, removed := Reconcile(block, allow)
	assert.Equal(t, block, got)
	assert.Empty(t, removed)
}

func TestReconcileResidualVerbatim(t *testing.T) {
	block := NewRuleSet("ads.example.com", "||ads.example.com^$third-party")
	allow := NewRuleSet("@@||ads.example.com^")

	got, _ := Reconcile(block, allow)
	assert.Equal(t, NewRuleSet("||ads.example.com^$third-party"), got)
}

func TestReconcileRepairedAllowPrefix(t *testing.T) {
	block := NewRuleSet("||bad.example^")
	allow := NewRuleSet("@@|bad.example^")

	got, _ := Reconcile(block, allow)
	assert.Equal(t, 0, got.Len())
}

func TestReconcileIdempotentAndAllowUnchanged(t *testing.T) {
	block := NewRuleSet("||a.com^", "||b.com^", "*c.com*", "0.0.0.0 d.com", "||e.com^")
	allow := NewRuleSet("@@||b.com^", "@@||c.com^", "@@||d.com^", "@@good.example^$important")
	allowCopy := NewRuleSet(allow.Sorted()...)

	once, _ := Reconcile(block, allow)
	twice, removed := Reconcile(once, allow)

	assert.Equal(t, once, twice)
	assert.Empty(t, removed)
	assert.Equal(t, NewRuleSet("||a.com^", "||e.com^"), once)
	assert.Equal(t, allowCopy, allow)
	assert.Equal(t, 5, block.Len())
}

func TestReconcileEmptyAllow(t *testing.T) {
	block := NewRuleSet("||a.com^", "*x*")
	got, removed := Reconcile(block, NewRuleSet())
	assert.Equal(t, block, got)
	assert.Empty(t, removed)
}

func TestDomainKeys(t *testing.T) {
	d, ok := AllowDomainKey("@@||b.com^")
	assert.True(t, ok)
	assert.Equal(t, "b.com", d)

	_, ok = AllowDomainKey("@@good.example^$important")
	assert.False(t, ok)

	_, ok = AllowDomainKey("@@||^")
	assert.False(t, ok)

	d, ok = BlockDomainKey("0.0.0.0 ads.example.com other.example.com")
	assert.True(t, ok)
	assert.Equal(t, "ads.example.com", d)

	d, ok = BlockDomainKey("||a.com^")
	assert.True(t, ok)
	assert.Equal(t, "a.com", d)

	_, ok = BlockDomainKey("*a.com*")
	assert.False(t, ok)
}
