// Package tables registers the built-in HR table definitions with the core
// registry. Import this package to ensure all tables are registered.
package tables

import (
	_ "embed"

	"github.com/JonMunkholm/hrconsole/internal/core"
)

//go:embed tables.yaml
var builtinCatalog []byte

func init() {
	for _, def := range Builtin() {
		core.Register(def)
	}
}
