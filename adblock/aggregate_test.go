package adblock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEndToEnd(t *testing.T) {
	sources := []SourceText{
		{Name: "S1", Text: "||a.com^\n@@||b.com^\n# comment\n"},
	}

	block := Aggregate(sources, KindBlock)
	allow := Aggregate(sources, KindAllow)

	assert.Equal(t, NewRuleSet("||a.com^"), block.Rules)
	assert.Equal(t, NewRuleSet("@@||b.com^"), allow.Rules)

	reconciled, removed := Reconcile(block.Rules, allow.Rules)
	assert.Equal(t, NewRuleSet("||a.com^"), reconciled)
	assert.Empty(t, removed)

	require.Len(t, block.Sources, 1)
	assert.Equal(t, 2, block.Sources[0].Processed)
	assert.Equal(t, 1, block.Sources[0].Extracted)
}

func TestAggregateDedupCommutative(t *testing.T) {
	a := SourceText{Name: "A", Text: "example.org\n||ads.example.com^\n0.0.0.0 t.example.net\n"}
	b := SourceText{Name: "B", Text: "||example.org^\n*-ad.example.com*\nexample.org\n"}

	for _, kind := range []Kind{KindBlock, KindAllow} {
		ab := Aggregate([]SourceText{a, b}, kind)
		ba := Aggregate([]SourceText{b, a}, kind)
		assert.Equal(t, ab.Rules, ba.Rules, "kind %s", kind)
	}

	block := Aggregate([]SourceText{a, b}, KindBlock)
	assert.Equal(t, 4, block.Rules.Len())
	assert.True(t, block.Rules.Has("||example.org^"))
}

func TestAggregateIdempotentInsertion(t *testing.T) {
	a := SourceText{Name: "A", Text: "||x.example^\n||x.example^\n"}
	once := Aggregate([]SourceText{a}, KindBlock)
	twice := Aggregate([]SourceText{a, a}, KindBlock)
	assert.Equal(t, once.Rules, twice.Rules)
	assert.Equal(t, 1, twice.Rules.Len())
}

func TestAggregateFailedSource(t *testing.T) {
	sources := []SourceText{
		{Name: "down", Err: errors.New("timeout")},
		{Name: "up", Text: "ads.example.com\n"},
	}

	agg := Aggregate(sources, KindBlock)
	assert.Equal(t, NewRuleSet("||ads.example.com^"), agg.Rules)
	assert.Equal(t, []string{"down"}, agg.FailedSources())
	assert.False(t, agg.AllFailed())

	require.Len(t, agg.Impurities, 2)
	assert.True(t, agg.Impurities[0].Failed)
	assert.Equal(t, []string{"ads.example.com"}, agg.Impurities[1].Lines)
}

func TestAggregateAllFailed(t *testing.T) {
	sources := []SourceText{
		{Name: "a", Err: errors.New("boom")},
		{Name: "b", Err: errors.New("boom")},
	}
	agg := Aggregate(sources, KindAllow)
	assert.True(t, agg.AllFailed())
	assert.Equal(t, 0, agg.Rules.Len())
}

func TestAggregateImpuritiesKeepRawLines(t *testing.T) {
	// 杂质内容不经过规范化，保留原始行（包括会被拒绝的内容）
	src := SourceText{Name: "raw", Text: "  ||a.com^  \r\n! header\r\n\r\nexample.com##.ad\r\n[Adblock Plus 2.0]\r\n"}
	agg := Aggregate([]SourceText{src}, KindBlock)

	require.Len(t, agg.Impurities, 1)
	assert.Equal(t, []string{"  ||a.com^  ", "example.com##.ad", "[Adblock Plus 2.0]"}, agg.Impurities[0].Lines)
	assert.Equal(t, 3, agg.Processed())
	assert.Equal(t, NewRuleSet("||a.com^"), agg.Rules)
}

func TestEmbeddedAllowRules(t *testing.T) {
	sources := []SourceText{
		{Name: "block-list", Text: "||a.com^\nplain.example.org\n@@|b.com^\n@@||c.com^ # keep\n"},
		{Name: "down", Err: errors.New("x")},
	}
	assert.Equal(t, NewRuleSet("@@||b.com^", "@@||c.com^"), EmbeddedAllowRules(sources))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\r\n\r\nb"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\rb"))
}
