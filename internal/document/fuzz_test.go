package document

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var fuzzSeeds = []string{
	"",
	"\n",
	"# only a comment\n",
	"[package]\nname = \"demo\"\n\n[dependencies]\nserde = \"1\"\nanyhow = \"1\"\n",
	"a = [\n    1, # one\n    2,\n]\n",
	"dep = { version = \"1\", features = [\"x\"] }\n",
	"[[bin]]\nname = \"a\"\n\n[[bin]]\nname = \"b\"\n",
	"\ufeffa = 1\r\nb = 2\r\n",
	"s = \"\"\"\nmulti\nline\"\"\"\n",
	"x.y.z = 'lit'\n",
	"[a\n",
	"a = {b = 1,}\n",
}

// FuzzParseRoundTrip checks that every accepted input serializes back to
// exactly the same bytes.
func FuzzParseRoundTrip(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		doc, err := Parse("fuzz.toml", input)
		if err != nil {
			return
		}
		if got := doc.String(); got != string(input) {
			t.Fatalf("round trip mismatch\ninput: %q\noutput: %q", input, got)
		}
	})
}
