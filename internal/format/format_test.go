package format

import (
	"strings"
	"testing"

	"depsort/internal/document"
)

func formatString(t *testing.T, src string, opt Options) string {
	t.Helper()
	doc, err := document.Parse("Cargo.toml", []byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	Format(doc, opt)
	return doc.String()
}

func TestFormatCanonical(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "spacing",
			src:  "  [ package ]   # pkg  \n  name='depsort'\nversion   =   \"0.1.0\"   #v\n",
			want: "[package] # pkg\nname = \"depsort\"\nversion = \"0.1.0\" #v\n",
		},
		{
			name: "blank runs",
			src:  "\n\n# top\n\n\n\na = 1\n\n\n\nb = 2\n\n\n",
			want: "# top\n\na = 1\n\nb = 2\n",
		},
		{
			name: "gap before header",
			src:  "a = 1\n[x]\nb = 2\n# about y\n[y]\n",
			want: "a = 1\n\n[x]\nb = 2\n\n# about y\n[y]\n",
		},
		{
			name: "first header keeps no gap",
			src:  "[x]\nb = 2\n",
			want: "[x]\nb = 2\n",
		},
		{
			name: "literal strings",
			src:  "a = 'plain'\nb = 'C:\\path'\nc = 'say \"hi\"'\nd = '''\nkeep\n'''\n",
			want: "a = \"plain\"\nb = 'C:\\path'\nc = 'say \"hi\"'\nd = '''\nkeep\n'''\n",
		},
		{
			name: "arrays",
			src:  "a = [ 'x' ,\"y\"]\nb = [ ]\nc = [\n  1, 2\n]\n",
			want: "a = [\"x\", \"y\"]\nb = []\nc = [\n    1,\n    2,\n]\n",
		},
		{
			name: "array comments",
			src:  "f = [\n# first\n\"a\", # one\n  \"b\"\n  # end\n]\n",
			want: "f = [\n    # first\n    \"a\", # one\n    \"b\",\n    # end\n]\n",
		},
		{
			name: "inline tables",
			src:  "serde = {version='1',features=['derive']}\nempty = {   }\n",
			want: "serde = { version = \"1\", features = [\"derive\"] }\nempty = {}\n",
		},
		{
			name: "dotted keys",
			src:  "a . b = 1\n[ dependencies . \"x\" ]\n",
			want: "a.b = 1\n\n[dependencies.\"x\"]\n",
		},
		{
			name: "missing final newline",
			src:  "a = 1",
			want: "a = 1\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := formatString(t, tc.src, DefaultOptions())
			if got != tc.want {
				t.Fatalf("format mismatch:\nwant %q\ngot  %q", tc.want, got)
			}
		})
	}
}

func TestFormatLongArrayWraps(t *testing.T) {
	items := make([]string, 12)
	for i := range items {
		items[i] = `"feature-name"`
	}
	src := "default = [" + strings.Join(items, ", ") + "]\n"
	got := formatString(t, src, DefaultOptions())
	if !strings.HasPrefix(got, "default = [\n    \"feature-name\",\n") {
		t.Fatalf("long array not wrapped:\n%s", got)
	}
	if !strings.HasSuffix(got, "    \"feature-name\",\n]\n") {
		t.Fatalf("missing trailing comma or closing bracket:\n%s", got)
	}
}

func TestFormatOptions(t *testing.T) {
	opt := DefaultOptions()
	opt.SpaceAroundEq = false
	opt.CompactArrays = true
	opt.CompactInlineTables = true
	opt.AlwaysTrailingComma = true
	opt.IndentCount = 2
	opt.AllowedBlankLines = 0

	src := "a = [1, 2]\nb = { x = 1 }\n\nc = [\n1\n]\n[t]\n"
	want := "a=[1,2,]\nb={x=1}\nc=[\n  1,\n]\n\n[t]\n"
	if got := formatString(t, src, opt); got != want {
		t.Fatalf("format mismatch:\nwant %q\ngot  %q", want, got)
	}

	opt = DefaultOptions()
	opt.MultilineTrailingComma = false
	if got := formatString(t, "c = [\n1,\n2,\n]\n", opt); got != "c = [\n    1,\n    2\n]\n" {
		t.Fatalf("trailing comma not dropped: %q", got)
	}
}

func TestFormatLineEndings(t *testing.T) {
	got := formatString(t, "[a]\r\nx = 1\r\n", DefaultOptions())
	if got != "[a]\r\nx = 1\r\n" {
		t.Fatalf("crlf not kept: %q", got)
	}
	if strings.Contains(strings.ReplaceAll(got, "\r\n", ""), "\n") {
		t.Fatalf("mixed line endings: %q", got)
	}

	on, off := true, false
	opt := DefaultOptions()
	opt.CRLF = &on
	if got := formatString(t, "a = 1\nb = '''\nx\n'''\n", opt); got != "a = 1\r\nb = '''\r\nx\r\n'''\r\n" {
		t.Fatalf("crlf not forced: %q", got)
	}
	opt.CRLF = &off
	if got := formatString(t, "a = 1\r\n", opt); got != "a = 1\n" {
		t.Fatalf("lf not forced: %q", got)
	}

	// многострочный массив внутри inline-таблицы
	opt.CRLF = &on
	src := "b = { version = \"1\", features = [\n  \"x\",\n  \"y\"\n] }\n"
	want := "b = { version = \"1\", features = [\"x\", \"y\"] }\r\n"
	if got := formatString(t, src, opt); got != want {
		t.Fatalf("inline table array not flattened:\ngot  %q\nwant %q", got, want)
	}
	src = "b = { f = [\n  \"x\", # why\n] }\n"
	got = formatString(t, src, opt)
	if strings.Contains(strings.ReplaceAll(got, "\r\n", ""), "\n") {
		t.Fatalf("bare LF inside inline table: %q", got)
	}
}

func TestFormatIdempotent(t *testing.T) {
	srcs := []string{
		"  # c\n\n\n[package]\nname='x'   # n\n\n\n\n[dependencies]\nserde = {version='1'}\nlist = [ [1,2], [\n3\n] ]\n# tail\n\n\n",
		"a = [\n  # only comment\n]\nb = [\"" + strings.Repeat("x", 90) + "\"]\n",
		"x = 1\r\n[t]\r\n\r\n\r\ny = 2",
		"",
		"\n\n\n",
	}
	for _, src := range srcs {
		for _, blanks := range []int{0, 1, 2} {
			opt := DefaultOptions()
			opt.AllowedBlankLines = blanks
			once := formatString(t, src, opt)
			twice := formatString(t, once, opt)
			if once != twice {
				t.Fatalf("format not idempotent (blanks=%d):\nonce  %q\ntwice %q", blanks, once, twice)
			}
		}
	}
}
