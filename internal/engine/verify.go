package engine

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/pelletier/go-toml/v2"
)

// ErrDataChanged means the transform altered the decoded TOML data.
var ErrDataChanged = errors.New("transform changed manifest data")

// bom is the UTF-8 byte order mark the document model accepts and keeps.
var bom = []byte("\xEF\xBB\xBF")

// Verify decodes both texts with an independent TOML decoder and checks
// that they describe the same data. A leading byte order mark is ignored.
func Verify(before, after []byte) error {
	before = bytes.TrimPrefix(before, bom)
	after = bytes.TrimPrefix(after, bom)
	var a, b map[string]any
	if err := toml.Unmarshal(before, &a); err != nil {
		return fmt.Errorf("decode original: %w", err)
	}
	if err := toml.Unmarshal(after, &b); err != nil {
		return fmt.Errorf("decode result: %w: %w", ErrDataChanged, err)
	}
	if !reflect.DeepEqual(a, b) {
		return ErrDataChanged
	}
	return nil
}
