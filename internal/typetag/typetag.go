// Package typetag implements a coarse, closed value-type model: enough
// shape information to check arities, merge branches, and pick fast
// paths, without doing real type inference. It is grounded on
// funvibe/funxy's internal/typesystem package (a Type interface with
// String/Apply/FreeTypeVariables/Kind, TCon/TApp/TVar constructors) but
// strips everything Hindley-Milner: unification, type variables, generic
// application. There is no subtyping lattice and no unification pass —
// just a fixed tag plus a couple of narrow payload fields.
package typetag

import "fmt"

// Tag is the closed set of coarse value-type tags.
type Tag uint8

const (
	Any Tag = iota
	Boolean
	Number
	Int
	List
	Map
	Fiber
	String
	StaticString
	Box
	TagType
	TagLiteral
	Undefined
)

var tagNames = [...]string{
	Any: "any", Boolean: "boolean", Number: "number", Int: "int",
	List: "list", Map: "map", Fiber: "fiber", String: "string",
	StaticString: "staticString", Box: "box", TagType: "tag",
	TagLiteral: "tagLiteral", Undefined: "undefined",
}

func (t Tag) String() string {
	if int(t) >= len(tagNames) {
		return fmt.Sprintf("<invalid tag %d>", t)
	}
	return tagNames[t]
}

// rcCandidateTags holds exactly the tags whose runtime representation is
// a refcounted heap object: list, map, fiber, string, box, any.
var rcCandidateTags = map[Tag]bool{
	List: true, Map: true, Fiber: true, String: true, Box: true, Any: true,
}

// Type is a Tag plus its discriminated payload. Exactly one of the
// payload fields is meaningful, selected by Tag.
type Type struct {
	Tag Tag

	// CanRequestInteger is set on numeric literals exactly representable
	// as a signed 32-bit integer. It is a side channel on the
	// *expression*, not a narrowing of the Type itself — ToLocalType
	// below is how it gets cleared on storage.
	CanRequestInteger bool

	// TagID is the tag-type payload: which user-defined tag (enum) type.
	TagID byte
}

// New builds a plain Type for any tag other than number/tag.
func New(tag Tag) Type { return Type{Tag: tag} }

// NumberOrRequestInteger builds a number whose operator context may
// demand it be materialized as a plain i32 instead of a boxed number.
func NumberOrRequestInteger() Type {
	return Type{Tag: Number, CanRequestInteger: true}
}

// TagValue builds the Type produced by a tag-init expression `T#member`.
func TagValue(tagID byte) Type {
	return Type{Tag: TagType, TagID: tagID}
}

// RCCandidate reports whether a value of this type is heap-allocated and
// refcounted at runtime.
func (t Type) RCCandidate() bool {
	return rcCandidateTags[t.Tag]
}

// IsNumberOrRequestInteger reports whether t carries the integer-request
// side channel; only numeric literals ever do.
func (t Type) IsNumberOrRequestInteger() bool {
	return t.Tag == Number && t.CanRequestInteger
}

// ToLocalType lowers a NumberOrRequestInteger to a plain number, the rule
// applied whenever a value is stored into a local. All other tags pass
// through unchanged.
func ToLocalType(t Type) Type {
	if t.Tag == Number {
		return Type{Tag: Number}
	}
	return t
}

// Equal compares tag and payload. Two tag-typed Types are equal only if
// they share the same TagID; two number Types are equal regardless of
// CanRequestInteger (storage already clears it where it matters).
func Equal(a, b Type) bool {
	if a.Tag != b.Tag {
		return false
	}
	if a.Tag == TagType {
		return a.TagID == b.TagID
	}
	return true
}

// Common returns the shared tag of a and b (for `and`/`or` expressions),
// or Any if they differ.
func Common(a, b Type) Type {
	if Equal(a, b) {
		return a
	}
	return New(Any)
}

func (t Type) String() string {
	if t.Tag == TagType {
		return fmt.Sprintf("tag#%d", t.TagID)
	}
	if t.IsNumberOrRequestInteger() {
		return "number(request-int)"
	}
	return t.Tag.String()
}
