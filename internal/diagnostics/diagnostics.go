// Package diagnostics provides the typed error sink used throughout
// internal/sema and internal/loader, grounded on funvibe/funxy's
// internal/diagnostics usage pattern: diagnostic codes namespaced by
// category, diagnostics.NewError(code, token, msg) constructors, and a
// []*DiagnosticError slice accumulated on a processing context rather than
// aborting on the first error.
package diagnostics

import (
	"fmt"

	"github.com/wisplang/wisp/internal/token"
)

// Code is a closed, namespaced diagnostic identifier. The namespace digit
// groups codes by error kind:
//
//	S0xx  lookup / resolution
//	S1xx  declaration conflict
//	S2xx  scope discipline
//	S3xx  syntax-level rejection
//	S4xx  import
type Code string

const (
	ErrS001UnresolvedParamType Code = "S001" // cannot resolve a param's type sym
	ErrS002AmbiguousSym        Code = "S002" // overloaded func used as a non-func reference
	ErrS003AmbiguousModuleRef  Code = "S003" // import * hit more than one overload
	ErrS004MissingSymbol       Code = "S004" // name resolves to nothing
	ErrS005NotExported         Code = "S005" // symbol found but not exported
	ErrS006NotAFunctionRef     Code = "S006" // "Can not use `name` as a function reference"

	ErrS101DuplicateLocal   Code = "S101" // duplicate local var in one block
	ErrS102DuplicateObject  Code = "S102" // duplicate object type name
	ErrS103DuplicateTopSym  Code = "S103" // duplicate top-level sym (incl. alias collision)
	ErrS104OverloadCollides Code = "S104" // same func sym + same resolved sig already exists

	ErrS201CanNotUseLocal     Code = "S201" // static initializer referenced a local
	ErrS202CaptureInStaticFn  Code = "S202" // capture attempted inside a static function
	ErrS203AssignNeedsModExpr Code = "S203" // assignment to static/captured name missing modifier
	ErrS204UnresolvedAliasRhs Code = "S204" // type-alias target sym never resolved

	ErrS301BadAssignLHS    Code = "S301" // unsupported assignment lhs
	ErrS302BadExportSubj   Code = "S302" // unsupported export subject
	ErrS303NamedArgsUnsupp Code = "S303" // named-argument call rejected
	ErrS304BadAliasRHS     Code = "S304" // unsupported type-alias rhs form
	ErrS305StaticVarLHS    Code = "S305" // static-var decl lhs is not an identifier

	ErrS401ImportNotFound  Code = "S401" // import path does not exist
	ErrS402NotInWasm       Code = "S402" // filesystem import requested under wasm host
	ErrS403BadModuleSymKin Code = "S403" // unsupported module sym kind (e.g. userObject)
)

// DiagnosticError is the analyzer's error type. It satisfies the standard
// error interface so callers that only want `error` keep working, while
// callers that want structured data (LSP-style tooling, the CLI printer)
// can type-assert for Code/Token/Payload.
type DiagnosticError struct {
	Code    Code
	Token   token.Token
	Message string

	// Payload threads auxiliary error-specific data through callers without
	// widening the return type of every analysis function. Nothing in this
	// module sets it: the can-not-use-local error carries the local's name
	// in its own panic value (internal/sema) instead.
	Payload any
}

func (e *DiagnosticError) Error() string {
	if e.Token.Zero() {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Token, e.Code, e.Message)
}

// New builds a DiagnosticError with a formatted message.
func New(code Code, tok token.Token, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: fmt.Sprintf(format, args...)}
}

// WithPayload attaches auxiliary data and returns the same error, for
// chaining at the construction site.
func (e *DiagnosticError) WithPayload(p any) *DiagnosticError {
	e.Payload = p
	return e
}

// Sink accumulates diagnostics across a chunk's analysis and across the
// whole import graph. It never aborts a batch: the import loader records
// a chunk-level failure and continues with the next chunk, so unrelated
// files still get reported on.
type Sink struct {
	errors []*DiagnosticError
}

func NewSink() *Sink { return &Sink{} }

func (s *Sink) Report(e *DiagnosticError) {
	s.errors = append(s.errors, e)
}

func (s *Sink) Reportf(code Code, tok token.Token, format string, args ...any) {
	s.Report(New(code, tok, format, args...))
}

func (s *Sink) HasErrors() bool { return len(s.errors) > 0 }

func (s *Sink) Errors() []*DiagnosticError { return s.errors }

// Merge appends another sink's diagnostics, preserving order. The loader
// reports into the driver's single sink and does not call it.
func (s *Sink) Merge(other *Sink) {
	s.errors = append(s.errors, other.errors...)
}

// codedError is implemented by loader-level sentinel errors that know
// which diagnostic code they should surface as (e.g. "not found" vs
// "not supported under this host"), distinguishing them from a generic
// import failure.
type codedError interface {
	DiagnosticCode() Code
}

// ReportImportFailure records a failure that happened while the import
// loader serviced a queued task outside of any chunk's direct Analyze
// call (reading a file, fetching a URL, parsing the result). chunkID
// identifies the chunk whose import statement triggered the task; there
// is no AST token available at this point, so the diagnostic carries a
// zero token.
func (s *Sink) ReportImportFailure(chunkID int, spec string, err error) {
	code := ErrS401ImportNotFound
	if ce, ok := err.(codedError); ok {
		code = ce.DiagnosticCode()
	}
	s.Report(New(code, token.Token{}, "chunk %d: import %q: %v", chunkID, spec, err))
}
