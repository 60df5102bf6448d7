package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsort/internal/document"
)

func entries(t *testing.T, src string) []*document.Entry {
	t.Helper()
	doc, err := document.Parse("Cargo.toml", []byte(src))
	require.NoError(t, err)
	return doc.Root().Entries()
}

func TestLexicalSortable(t *testing.T) {
	l := Lexical{}
	assert.True(t, l.Sortable([]string{"dependencies"}))
	assert.True(t, l.Sortable([]string{"workspace", "dependencies"}))
	assert.True(t, l.Sortable([]string{"target", "cfg(unix)", "dev-dependencies"}))
	assert.True(t, l.Sortable([]string{"features"}))
	assert.False(t, l.Sortable([]string{"package"}))
	assert.False(t, l.Sortable(nil))
	assert.False(t, l.Sortable([]string{"dependencies", "serde"}))

	custom := Lexical{Tables: []string{"package"}}
	assert.True(t, custom.Sortable([]string{"package"}))
	assert.False(t, custom.Sortable([]string{"dependencies"}))
}

func TestLexicalCompare(t *testing.T) {
	l := Lexical{}
	assert.Negative(t, l.Compare("B", "a"))
	assert.Zero(t, l.Compare("a", "a"))

	ci := Lexical{CaseInsensitive: true}
	assert.Negative(t, ci.Compare("a", "B"))
	assert.Zero(t, ci.Compare("Serde", "serde"))

	cs := Lexical{CaseInsensitive: true, TieBreak: TieCaseSensitive}
	assert.Negative(t, cs.Compare("Serde", "serde"))
}

func TestParseTieBreak(t *testing.T) {
	tb, ok := ParseTieBreak("Case-Sensitive")
	require.True(t, ok)
	assert.Equal(t, TieCaseSensitive, tb)
	assert.Equal(t, "case-sensitive", tb.String())

	_, ok = ParseTieBreak("random")
	assert.False(t, ok)
}

func TestSortKeyIgnoresQuotesAndValue(t *testing.T) {
	es := entries(t, "\"serde\" = { version = \"1\" }\nanyhow = \"1\"\n")
	c := Cargo{}
	assert.Equal(t, "serde", c.SortKey(es[0]))
	assert.Equal(t, "anyhow", c.SortKey(es[1]))
}

func TestDependencyKind(t *testing.T) {
	es := entries(t, `a = "1"
b = { path = "../b" }
c = { git = "https://example.com/c" }
d = { workspace = true }
e.workspace = true
f = { version = "1", features = [] }
`)
	want := []string{KindRegistry, KindPath, KindGit, KindWorkspace, KindWorkspace, KindRegistry}
	for i, e := range es {
		assert.Equal(t, want[i], DependencyKind(e), e.Key.Name())
	}

	assert.Equal(t, "", Cargo{}.Class(es[1]))
	assert.Equal(t, KindPath, Cargo{SplitByKind: true}.Class(es[1]))
}

func TestOrderInlineMovesPackageFirst(t *testing.T) {
	es := entries(t, `a = { version = "1", features = ["x"], package = "real-a" }
b = { package = "real-b", version = "1" }
c = "1"
`)
	c := Cargo{}
	require.True(t, c.OrderInline(es[0]))
	assert.Equal(t, `{ package = "real-a", version = "1", features = ["x"] }`, es[0].Value.Raw)
	assert.False(t, c.OrderInline(es[1]))
	assert.False(t, c.OrderInline(es[2]))
}
