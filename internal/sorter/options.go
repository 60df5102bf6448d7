package sorter

// Options selects the sorting policy.
type Options struct {
	// Grouped keeps blank-line separated groups intact and orders groups.
	Grouped bool
	// TableOrder lists first header segments; listed tables come first,
	// in list order.
	TableOrder []string
}

// DefaultTableOrder is the table order used when none is configured.
var DefaultTableOrder = []string{
	"package",
	"workspace",
	"lib",
	"bin",
	"features",
	"dependencies",
	"build-dependencies",
	"dev-dependencies",
}
