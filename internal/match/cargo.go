package match

import "depsort/internal/document"

// Dependency kinds reported by Cargo.Class with SplitByKind.
const (
	KindPath      = "path"
	KindGit       = "git"
	KindWorkspace = "workspace"
	KindRegistry  = "registry"
)

// Cargo knows the shape of Cargo.toml dependency entries.
type Cargo struct {
	Lexical
	// SplitByKind starts a new group whenever the dependency source changes.
	SplitByKind bool
}

var _ InlineOrderer = Cargo{}

// SortKey is the dependency name; the value never affects the order.
func (c Cargo) SortKey(e *document.Entry) string {
	return e.Key.Name()
}

func (c Cargo) Class(e *document.Entry) string {
	if !c.SplitByKind {
		return ""
	}
	return DependencyKind(e)
}

// DependencyKind classifies an entry by where the dependency comes from.
func DependencyKind(e *document.Entry) string {
	v := e.Value
	if v == nil || v.Kind != document.KindInlineTable {
		if len(e.Key.Parts) > 1 {
			// serde.workspace = true
			switch e.Key.Parts[len(e.Key.Parts)-1].Name {
			case "workspace":
				return KindWorkspace
			case "path":
				return KindPath
			case "git":
				return KindGit
			}
		}
		return KindRegistry
	}
	switch {
	case v.Field("path") != nil:
		return KindPath
	case v.Field("git") != nil:
		return KindGit
	case v.Field("workspace") != nil:
		return KindWorkspace
	}
	return KindRegistry
}

// OrderInline moves a "package" rename to the front of an inline dependency
// table. Other inline keys keep their order.
func (c Cargo) OrderInline(e *document.Entry) bool {
	v := e.Value
	if v == nil || v.Kind != document.KindInlineTable || len(v.Fields) < 2 {
		return false
	}
	idx := -1
	for i, f := range v.Fields {
		if f.Key.Name() == "package" {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return false
	}
	pkg := v.Fields[idx]
	copy(v.Fields[1:idx+1], v.Fields[:idx])
	v.Fields[0] = pkg
	v.RebuildInline()
	return true
}
