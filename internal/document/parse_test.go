package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsort/internal/diag"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse("Cargo.toml", []byte(src))
	require.NoError(t, err)
	return doc
}

func TestRoundTrip(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"only blank": "\n\n",
		"comments":   "# top\n\n# second\n",
		"manifest": `# leading comment
[package]
name = "depsort"   # trailing
version="0.1.0"

[dependencies]
# serde first
serde = { version = "1.0", features = ["derive"] }
anyhow = "1"


[dependencies.tokio]
version = "1"
features = [
    # runtime
    "rt",   # with comment
    "macros",
]
`,
		"no eol":       "a = 1\nb = 2",
		"no eol blank": "a = 1\n   ",
		"crlf":         "[a]\r\nx = 1\r\n\r\n[b]\r\ny = 2\r\n",
		"bom":          "\xEF\xBB\xBFa = 1\n",
		"indented":     "  [a]\n    x = 1  \n",
		"array tables": "[[bin]]\nname = \"a\"\n\n[[bin]]\nname = \"b\"\n",
		"strings":      "a = '''\nmulti [x]\n# not a comment\n'''\nb = \"\"\"x\"\"\"\n",
		"dotted keys":  "a.b . c = 1\n\"x.y\".z = 'v'\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			doc := mustParse(t, src)
			assert.Equal(t, src, doc.String())
		})
	}
}

func TestCommentAttachment(t *testing.T) {
	src := "[deps]\n# intro\n\n# about a\na = 1\n# after a\n\n# about b\nb = 2\n\n# tail\n"
	doc := mustParse(t, src)
	tbl := doc.Table("deps")
	require.NotNil(t, tbl)

	assert.Equal(t, []string{"# intro\n", "\n"}, tbl.Intro)
	entries := tbl.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"# about a\n"}, entries[0].Leading)
	assert.Equal(t, []string{"# after a\n", "\n"}, entries[0].Trailing)
	assert.Equal(t, []string{"# about b\n"}, entries[1].Leading)
	assert.Empty(t, entries[1].Trailing)
	assert.Equal(t, []string{"\n", "# tail\n"}, tbl.Trailer)
	assert.Equal(t, 1, entries[0].BlankLinesAfter())
}

func TestHeaderLeadingComments(t *testing.T) {
	src := "a = 1\n\n# about b\n[b]\nx = 1\n"
	doc := mustParse(t, src)
	assert.Equal(t, []string{"\n"}, doc.Root().Trailer)
	b := doc.Table("b")
	require.NotNil(t, b)
	assert.Equal(t, []string{"# about b\n"}, b.Header.Leading)
	assert.Equal(t, "[b]", b.Header.Raw)
}

func TestKeysAndHeaders(t *testing.T) {
	doc := mustParse(t, "[ dependencies . \"my-crate\" ]\n'a b'.c = 1\n")
	tbl := doc.Headed()[0]
	assert.Equal(t, []string{"dependencies", "my-crate"}, tbl.Path())
	assert.Equal(t, "dependencies.my-crate", tbl.Name())
	assert.Equal(t, `dependencies."my-crate"`, tbl.Header.Key.Canonical())

	e := tbl.Entries()[0]
	assert.Equal(t, []string{"a b", "c"}, e.Key.Path())
	assert.Equal(t, "'a b'.c", e.Key.Raw)
	assert.Equal(t, " = ", e.Eq)
}

func TestArrayItems(t *testing.T) {
	doc := mustParse(t, "x = [\n  # one\n  1, # first\n  2,\n  # end\n]\ny = [1, 2]\n")
	x := doc.Root().Entries()[0].Value
	require.Equal(t, KindArray, x.Kind)
	require.Len(t, x.Items, 2)
	assert.True(t, x.Multiline)
	assert.True(t, x.TrailingComma)
	assert.Equal(t, []string{"# one"}, x.Items[0].Leading)
	assert.Equal(t, "# first", x.Items[0].Comment)
	assert.Equal(t, []string{"# end"}, x.Tail)
	assert.True(t, x.HasComments())

	y := doc.Root().Entries()[1].Value
	assert.False(t, y.Multiline)
	assert.False(t, y.TrailingComma)
	assert.False(t, y.HasComments())
	assert.Equal(t, "[1, 2]", y.Raw)
}

func TestInlineTable(t *testing.T) {
	doc := mustParse(t, "serde = {version = \"1\", optional = true, }\n")
	v := doc.Root().Entries()[0].Value
	require.Equal(t, KindInlineTable, v.Kind)
	require.Len(t, v.Fields, 2)
	assert.True(t, v.TrailingComma)
	assert.Equal(t, "version = \"1\"", v.Fields[0].Raw)

	s, ok := v.Field("version").Value.Text()
	assert.True(t, ok)
	assert.Equal(t, "1", s)
	assert.Nil(t, v.Field("path"))

	v.Fields[0], v.Fields[1] = v.Fields[1], v.Fields[0]
	v.RebuildInline()
	assert.Equal(t, "{optional = true, version = \"1\"}", v.Raw)
}

func TestStringText(t *testing.T) {
	doc := mustParse(t, "a = 'C:\\x'\nb = \"t\\u00e9\"\nc = 1\n")
	e := doc.Root().Entries()
	s, ok := e[0].Value.Text()
	assert.True(t, ok)
	assert.Equal(t, `C:\x`, s)
	s, ok = e[1].Value.Text()
	assert.True(t, ok)
	assert.Equal(t, "té", s)
	_, ok = e[2].Value.Text()
	assert.False(t, ok)
}

func TestFinalNewlineAndLineEndings(t *testing.T) {
	doc := mustParse(t, "a = 1")
	assert.False(t, doc.FinalNewline())
	doc.SetFinalNewline(true)
	assert.Equal(t, "a = 1\n", doc.String())

	crlf := mustParse(t, "a = 1\r\n")
	assert.True(t, crlf.HasCRLF())
	assert.Equal(t, "\r\n", crlf.Newline())
}

func TestSetTablesKeepsRoot(t *testing.T) {
	doc := mustParse(t, "r = 1\n[b]\n[a]\n")
	h := doc.Headed()
	doc.SetTables([]*Table{h[1], h[0]})
	assert.True(t, doc.Tables()[0].IsRoot())
	assert.Equal(t, "r = 1\n[a]\n[b]\n", doc.String())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
		line uint32
		col  uint32
	}{
		{"unclosed header", "[a\nx = 1\n", diag.SynUnclosedHeader, 1, 3},
		{"missing equals", "a 1\n", diag.SynExpectEquals, 1, 3},
		{"missing value", "a = \n", diag.SynExpectValue, 1, 5},
		{"unterminated string", "a = \"x\n", diag.LexUnterminatedString, 1, 7},
		{"unclosed array", "a = [1,\n", diag.SynUnclosedArray, 2, 1},
		{"double comma", "a = [1,,2]\n", diag.SynUnexpectedToken, 1, 8},
		{"newline in inline", "a = { x = 1\n}\n", diag.SynNewlineInInline, 1, 12},
		{"garbage after value", "a = 1 2\n", diag.SemInvalidDocument, 1, 0},
		{"text after header", "[a] x\n", diag.SynExpectNewline, 1, 5},
		{"duplicate key", "a = 1\na = 2\n", diag.SemInvalidDocument, 2, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("m.toml", []byte(tc.src))
			require.Error(t, err)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %T", err)
			assert.Equal(t, tc.code, perr.Code)
			assert.Equal(t, tc.line, perr.Pos.Line)
			if tc.col != 0 {
				assert.Equal(t, tc.col, perr.Pos.Col)
			}
			assert.Contains(t, perr.Error(), "m.toml:")
			assert.Equal(t, strings.Split(tc.src, "\n")[tc.line-1], perr.Line)
			assert.Equal(t, perr.Line, perr.Diagnostic().Source)
		})
	}
}
