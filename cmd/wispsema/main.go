// Command wispsema runs the semantic analyzer over a chunk's JSON AST
// (see internal/astjson) and its import graph, printing every
// diagnostic collected along the way. A real wisp lexer/parser is a
// separate, external concern from this module; this binary exists to
// drive and smoke-test the analyzer, not to define wisp's concrete
// syntax.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/wisplang/wisp/internal/astjson"
	"github.com/wisplang/wisp/internal/config"
	"github.com/wisplang/wisp/internal/diagnostics"
	"github.com/wisplang/wisp/internal/loader"
	"github.com/wisplang/wisp/internal/sema"
	"github.com/wisplang/wisp/internal/vmhost"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <chunk.json>\n", os.Args[0])
		os.Exit(2)
	}
	path := os.Args[1]

	manifestPath := filepath.Join(filepath.Dir(path), "wisp.yaml")
	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wisp.yaml: %v\n", err)
		os.Exit(1)
	}

	driver := sema.NewDriver(vmhost.NewNopHost())
	l := loader.New(driver, astjson.Unmarshal, manifest)

	if _, err := l.LoadRoot(path); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}

	printDiagnostics(driver.Sink)
	if driver.Sink.HasErrors() {
		os.Exit(1)
	}
}

func printDiagnostics(sink *diagnostics.Sink) {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	for _, e := range sink.Errors() {
		if color {
			fmt.Fprintf(os.Stderr, "\x1b[31merror[%s]\x1b[0m: %s\n", e.Code, e.Error())
		} else {
			fmt.Fprintf(os.Stderr, "error[%s]: %s\n", e.Code, e.Error())
		}
	}
}
