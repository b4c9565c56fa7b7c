// Package loader drives the import graph: it turns an ImportStmt's spec
// string into a canonical module id, parsing and analyzing whatever
// chunk provides that module the first time it is seen, and handing
// back the same module id to every later import of an equivalent spec.
//
// The loader never imports internal/sema's concrete types beyond what
// it needs to drive a Chunk; internal/sema never imports this package
// (see sema.ImportResolver), so the dependency runs one way: loader ->
// sema.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wisplang/wisp/internal/ast"
	"github.com/wisplang/wisp/internal/config"
	"github.com/wisplang/wisp/internal/diagnostics"
	"github.com/wisplang/wisp/internal/ids"
	"github.com/wisplang/wisp/internal/sema"
)

// ParseFunc turns a source file's bytes into a Program. Kept as an
// injected function (rather than a direct internal/parser import) so
// this package, and its tests, don't need a real lexer/parser wired up
// to exercise the import-graph machinery.
type ParseFunc func(file string, src []byte) (*ast.Program, error)

// errNotFound is returned by resolveSpecTemp when no search root holds
// the parent directory of a filesystem import path, and reported by
// service when reading an import's file fails. Its DiagnosticCode is
// ErrS401.
type errNotFound struct{ spec string }

func (e *errNotFound) Error() string { return fmt.Sprintf("import path does not exist: %q", e.spec) }
func (e *errNotFound) DiagnosticCode() diagnostics.Code { return diagnostics.ErrS401ImportNotFound }

// errNotInWasm is surfaced when a filesystem import is attempted under
// a host that disallows filesystem access (e.g. a wasm embedding).
type errNotInWasm struct{ spec string }

func (e *errNotInWasm) Error() string {
	return fmt.Sprintf("filesystem import %q is not supported on this host", e.spec)
}
func (e *errNotInWasm) DiagnosticCode() diagnostics.Code { return diagnostics.ErrS402NotInWasm }

// importTask is one entry in the FIFO queue the driver services: parse
// and analyze the chunk providing absSpec, then fill in modID's Module
// entry (currently a placeholder).
type importTask struct {
	providerChunkID int
	spec            string
	absSpec         string
	modID           ids.ModuleID
	builtin         bool
}

// Loader owns the FIFO import-task queue and the filesystem/URL
// resolution policy layered on top of a sema.Driver's Module registry.
type Loader struct {
	driver   *sema.Driver
	parse    ParseFunc
	manifest *config.Manifest
	builtins map[string]bool

	// AllowFilesystem is false under hosts (e.g. wasm) where relative
	// imports must be rejected rather than attempted.
	AllowFilesystem bool
	// FanoutLimit bounds concurrent filesystem/URL canonicalization
	// within one chunk's import statements; 0 picks a GOMAXPROCS-sized
	// default.
	FanoutLimit int

	queue []importTask

	readFile func(path string) ([]byte, error)
	httpGet  func(ctx context.Context, url string) ([]byte, error)
}

// New wires a Loader to driver, using parse to turn imported source
// into an ast.Program and manifest for search roots / the builtin
// module allow-list.
func New(driver *sema.Driver, parse ParseFunc, manifest *config.Manifest) *Loader {
	if manifest == nil {
		manifest = &config.Manifest{}
	}
	builtins := make(map[string]bool, len(manifest.BuiltinModules))
	for _, b := range manifest.BuiltinModules {
		builtins[b] = true
	}
	return &Loader{
		driver:          driver,
		parse:           parse,
		manifest:        manifest,
		builtins:        builtins,
		AllowFilesystem: true,
		readFile:        os.ReadFile,
		httpGet:         defaultHTTPGet,
	}
}

func defaultHTTPGet(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %s", rawURL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// resolveSpecTemp classifies and canonicalizes one import spec string
// relative to fromDir, the importing chunk's source directory.
func (l *Loader) resolveSpecTemp(spec, fromDir string) (absSpec string, builtin bool, err error) {
	if l.builtins[spec] {
		return spec, true, nil
	}

	if strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://") {
		return canonicalizeURL(spec), false, nil
	}

	if !l.AllowFilesystem {
		return "", false, &errNotInWasm{spec: spec}
	}

	for _, dir := range append([]string{fromDir}, l.manifest.SearchRoots...) {
		candidate := spec
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(dir, spec)
		}
		if _, statErr := os.Stat(filepath.Dir(candidate)); statErr != nil {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			// File itself may not exist yet relative to a fresh root import;
			// the raw absolute path still canonicalizes deterministically.
			resolved = abs
		}
		return resolved, false, nil
	}
	return "", false, &errNotFound{spec: spec}
}

// canonicalizeURL applies the GitHub shorthand rewrite:
// https://github.com/user/repo -> the raw master mod.cys for that repo.
// Any other path shape, or any other host, passes through unchanged
// (after normalizing via url.Parse/String so equivalent specs collapse
// to one canonical string).
func canonicalizeURL(spec string) string {
	u, err := url.Parse(spec)
	if err != nil {
		return spec
	}
	if u.Host == "github.com" {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) == 2 {
			return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/master/mod.cys", segments[0], segments[1])
		}
	}
	return u.String()
}

// getOrLoadModule interns spec's canonical form, allocating a
// placeholder module and enqueuing an import task on the first sighting
// of that canonical spec. The placeholder makes cyclic imports resolve
// to a real (if still-filling-in) module id instead of recursing.
func (l *Loader) getOrLoadModule(providerChunkID int, spec, fromDir string) (ids.ModuleID, error) {
	absSpec, builtin, err := l.resolveSpecTemp(spec, fromDir)
	if err != nil {
		return ids.NoModule, err
	}

	modID, isNew := l.driver.Modules.GetOrCreate(absSpec)
	if !isNew {
		return modID, nil
	}

	mod := l.driver.Modules.Get(modID)
	rootName := l.driver.Names.Intern(absSpec)
	mod.ResolvedRootSym = l.driver.ResolvedSyms.GetOrCreate(ids.NoResolvedSym, rootName, sema.VariantModule, true)
	l.driver.BindModuleRootSym(mod.ResolvedRootSym, modID)

	l.queue = append(l.queue, importTask{
		providerChunkID: providerChunkID,
		spec:            spec,
		absSpec:         absSpec,
		modID:           modID,
		builtin:         builtin,
	})
	return modID, nil
}

type specResolution struct {
	absSpec string
	builtin bool
	err     error
}

// precanonicalize resolves every import spec in specs concurrently
// (bounded), strictly for the I/O-bound classify-and-stat step; none of
// it touches the Module registry or any Sym table, so results can be
// computed in any order and are then consumed strictly in source order
// by the caller, which is the only place mutation happens.
func (l *Loader) precanonicalize(specs []string, fromDir string) map[string]specResolution {
	limit := l.FanoutLimit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
		if limit < 1 {
			limit = 1
		}
	}

	results := make(map[string]specResolution, len(specs))
	type slot struct {
		spec string
		res  specResolution
	}
	slots := make([]slot, len(specs))
	for i, s := range specs {
		slots[i].spec = s
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i := range slots {
		i := i
		g.Go(func() error {
			abs, builtin, err := l.resolveSpecTemp(slots[i].spec, fromDir)
			slots[i].res = specResolution{absSpec: abs, builtin: builtin, err: err}
			return nil
		})
	}
	_ = g.Wait() // per-slot errors are carried in res.err, not aggregated

	for _, s := range slots {
		results[s.spec] = s.res
	}
	return results
}

// LoadRoot parses and analyzes path as the entry chunk, then drains the
// import queue until every transitively imported module has a real
// (non-placeholder) definition. It returns the root chunk's module id.
func (l *Loader) LoadRoot(path string) (ids.ModuleID, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ids.NoModule, err
	}
	src, err := l.readFile(abs)
	if err != nil {
		return ids.NoModule, err
	}
	modID, _ := l.driver.Modules.GetOrCreate(abs)

	if err := l.analyzeChunk(abs, src, modID); err != nil {
		return ids.NoModule, err
	}
	l.drain()
	return modID, nil
}

// drain services the FIFO import-task queue. Tasks enqueued while
// servicing task N (a transitive import) are appended after it and
// serviced in turn, preserving FIFO order across the whole graph.
func (l *Loader) drain() {
	for len(l.queue) > 0 {
		task := l.queue[0]
		l.queue = l.queue[1:]
		l.service(task)
	}
}

func (l *Loader) service(task importTask) {
	mod := l.driver.Modules.Get(task.modID)
	if task.builtin {
		// A builtin spec names a host-supplied module; the host is
		// expected to have populated its Syms out of band before
		// driving the loader (spec's moduleLoaders value is "not
		// called from the core, just tested for membership"). The
		// loader's job is only to stop treating it as a placeholder.
		mod.Placeholder = false
		return
	}

	var src []byte
	var err error
	if strings.HasPrefix(task.absSpec, "http://") || strings.HasPrefix(task.absSpec, "https://") {
		src, err = l.httpGet(context.Background(), task.absSpec)
	} else {
		src, err = l.readFile(task.absSpec)
		if err != nil {
			err = &errNotFound{spec: task.spec}
		}
	}
	if err != nil {
		l.driver.Sink.ReportImportFailure(task.providerChunkID, task.spec, err)
		mod.Placeholder = false
		return
	}

	if err := l.analyzeChunk(task.absSpec, src, task.modID); err != nil {
		l.driver.Sink.ReportImportFailure(task.providerChunkID, task.spec, err)
	}
}

// analyzeChunk parses src, runs the full chunk analysis wired to this
// loader's import resolver, and flips modID's module out of placeholder
// state once the chunk finishes (even if it finished with diagnostics:
// a chunk that failed to analyze still publishes whatever it managed to
// declare before the failing statement, and unrelated chunks must not
// be left waiting on an eternal placeholder).
func (l *Loader) analyzeChunk(absPath string, src []byte, modID ids.ModuleID) error {
	prog, err := l.parse(absPath, src)
	if err != nil {
		return err
	}

	chunk := l.driver.NewChunk(absPath, modID)
	dir := filepath.Dir(absPath)
	if strings.HasPrefix(absPath, "http://") || strings.HasPrefix(absPath, "https://") {
		dir = ""
	}
	var imports []*ast.ImportStmt
	for _, stmt := range prog.Statements {
		if imp, ok := stmt.(*ast.ImportStmt); ok {
			imports = append(imports, imp)
		}
	}
	specs := make([]string, len(imports))
	for i, imp := range imports {
		specs[i] = imp.Spec
	}
	precomputed := l.precanonicalize(specs, dir)

	resolver := func(spec string) (ids.ModuleID, error) {
		res, ok := precomputed[spec]
		if !ok {
			// Defensive fallback; every spec Analyze asks about came from
			// the same imports slice precanonicalize just consumed.
			return l.getOrLoadModule(chunk.ID, spec, dir)
		}
		if res.err != nil {
			return ids.NoModule, res.err
		}
		return l.getOrLoadModuleResolved(chunk.ID, spec, res)
	}

	chunk.Analyze(prog, resolver)

	mod := l.driver.Modules.Get(modID)
	mod.ChunkID = chunk.ID
	mod.Placeholder = false
	return nil
}

// getOrLoadModuleResolved is getOrLoadModule's mutating half, given an
// already-canonicalized spec from precanonicalize. Mutation still
// happens strictly in resolver-call order (source order), never
// concurrently.
func (l *Loader) getOrLoadModuleResolved(providerChunkID int, spec string, res specResolution) (ids.ModuleID, error) {
	modID, isNew := l.driver.Modules.GetOrCreate(res.absSpec)
	if !isNew {
		return modID, nil
	}
	mod := l.driver.Modules.Get(modID)
	rootName := l.driver.Names.Intern(res.absSpec)
	mod.ResolvedRootSym = l.driver.ResolvedSyms.GetOrCreate(ids.NoResolvedSym, rootName, sema.VariantModule, true)
	l.driver.BindModuleRootSym(mod.ResolvedRootSym, modID)

	l.queue = append(l.queue, importTask{
		providerChunkID: providerChunkID,
		spec:            spec,
		absSpec:         res.absSpec,
		modID:           modID,
		builtin:         res.builtin,
	})
	return modID, nil
}
