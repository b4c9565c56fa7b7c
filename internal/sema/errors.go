package sema

import "errors"

// Internal sentinel errors for the resolution algorithm. The driver
// converts these into positioned *diagnostics.DiagnosticError at the
// call site, where it has the triggering AST node's token.
var (
	errAmbiguousModuleMember    = errors.New("ambiguous module member: multiple overloads")
	errUnsupportedModuleSymKind = errors.New("unsupported module sym kind")
	errNotExported              = errors.New("symbol is not exported")
	errMissingSymbol            = errors.New("symbol not found")
	errUnresolvedParent         = errors.New("parent symbol not yet resolved")
	errAmbiguousOverloaded      = errors.New("ambiguous: symbol has more than one overload")
	errUnresolvedAliasTarget    = errors.New("type alias target is not resolved")
)

// canNotUseLocal is raised when a static-var/static-func initializer
// expression reads a local. Caught one frame up and converted into a
// localized diagnostic naming the local and the enclosing sym.
type canNotUseLocal struct {
	LocalName string
}

func (e *canNotUseLocal) Error() string { return "can not use local " + e.LocalName + " here" }
