// Package schema carries the SQL payloads applied by the init and seed
// steps. The defaults are embedded at build time; both can be overridden
// with files named in the config.
package schema

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed sql/init.sql
var defaultInitSQL string

//go:embed sql/seed.sql
var defaultSeedSQL string

// Source holds the init and seed SQL texts for one bootstrap run
type Source struct {
	initSQL string
	seedSQL string
}

// Default returns the embedded SQL payloads
func Default() Source {
	return Source{initSQL: defaultInitSQL, seedSQL: defaultSeedSQL}
}

// Load returns the SQL source with file overrides applied. An empty path
// keeps the embedded default.
func Load(initPath, seedPath string) (Source, error) {
	src := Default()

	if initPath != "" {
		data, err := os.ReadFile(initPath)
		if err != nil {
			return Source{}, fmt.Errorf("read init sql: %w", err)
		}
		src.initSQL = string(data)
	}

	if seedPath != "" {
		data, err := os.ReadFile(seedPath)
		if err != nil {
			return Source{}, fmt.Errorf("read seed sql: %w", err)
		}
		src.seedSQL = string(data)
	}

	return src, nil
}

// Init returns the initialization SQL batch
func (s Source) Init() string {
	return s.initSQL
}

// Seed returns the seed SQL batch
func (s Source) Seed() string {
	return s.seedSQL
}
