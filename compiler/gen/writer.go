package gen

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// writeFile renders f, formats it with goimports and writes it to the
// target directory.
func (g *Generator) writeFile(entity string, f *jen.File, name string) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError(entity, name, "render", err)
	}
	path := g.path(name)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output for debugging; we are already failing.
		debugPath := path + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return NewGenerationError(entity, name, fmt.Sprintf("format (unformatted written to %s)", debugPath), err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError(entity, name, "write", err)
	}
	return nil
}
