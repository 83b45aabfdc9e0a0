// assets/embed.go
//
// Embedded default data shipped inside the binary.
//   - words.yaml: the default word list and ordered clue table.

package assets

import (
	"embed"
)

//go:embed words.yaml
var FS embed.FS

// DefaultTableName is the embedded file holding the default word/clue table.
const DefaultTableName = "words.yaml"

// DefaultTable returns the raw YAML of the embedded word/clue table.
func DefaultTable() ([]byte, error) {
	return FS.ReadFile(DefaultTableName)
}
