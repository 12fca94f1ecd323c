// Package builtin registers the levels shipped with the binary.
package builtin

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/vovakirdan/unbolt/internal/levels"
	"github.com/vovakirdan/unbolt/internal/registry"
)

//go:embed data/*.yaml
var data embed.FS

func init() {
	for _, lvl := range mustLoad() {
		lvl := lvl
		registry.Register(lvl.ID, func() levels.Level { return lvl.Clone() })
	}
}

// mustLoad parses every embedded level. A broken embedded file is a build
// defect, so it panics.
func mustLoad() []levels.Level {
	files, err := fs.Glob(data, "data/*.yaml")
	if err != nil {
		panic(fmt.Sprintf("builtin: %v", err))
	}

	result := make([]levels.Level, 0, len(files))
	for _, name := range files {
		raw, err := data.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("builtin: read %s: %v", name, err))
		}
		lvl, err := levels.ParseYAML(raw)
		if err != nil {
			panic(fmt.Sprintf("builtin: parse %s: %v", name, err))
		}
		lvl.FilePath = "builtin:" + name
		result = append(result, lvl)
	}
	return result
}
