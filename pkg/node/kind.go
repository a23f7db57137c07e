package node

import "strings"

// Kind identifies a built-in node variant.
type Kind int

const (
	KindUnknown Kind = iota

	KindHex8
	KindHex16
	KindHex32
	KindHex64

	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindNInt
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindNUInt

	KindBool
	KindFloat
	KindDouble
	KindVector2
	KindVector3
	KindVector4
	KindMatrix3x3
	KindMatrix3x4
	KindMatrix4x4
	KindFunctionPtr
	KindUtf8TextPtr
	KindUtf16TextPtr
	KindUtf32TextPtr

	KindClass
	KindClassInstance
	KindPointer
	KindArray
	KindVTable
	KindUtf8Text
	KindUtf16Text
	KindUtf32Text
	KindBitField
	KindFunction

	kindCount
)

// sizePointer marks primitives whose size is the platform pointer size.
const sizePointer = -1

type kindInfo struct {
	name string
	size int // fixed size in bytes for primitives, sizePointer, or 0
}

var kinds = [kindCount]kindInfo{
	KindUnknown: {"Unknown", 0},

	KindHex8:  {"Hex8", 1},
	KindHex16: {"Hex16", 2},
	KindHex32: {"Hex32", 4},
	KindHex64: {"Hex64", 8},

	KindInt8:   {"Int8", 1},
	KindInt16:  {"Int16", 2},
	KindInt32:  {"Int32", 4},
	KindInt64:  {"Int64", 8},
	KindNInt:   {"NInt", sizePointer},
	KindUInt8:  {"UInt8", 1},
	KindUInt16: {"UInt16", 2},
	KindUInt32: {"UInt32", 4},
	KindUInt64: {"UInt64", 8},
	KindNUInt:  {"NUInt", sizePointer},

	KindBool:         {"Bool", 1},
	KindFloat:        {"Float", 4},
	KindDouble:       {"Double", 8},
	KindVector2:      {"Vector2", 8},
	KindVector3:      {"Vector3", 12},
	KindVector4:      {"Vector4", 16},
	KindMatrix3x3:    {"Matrix3x3", 36},
	KindMatrix3x4:    {"Matrix3x4", 48},
	KindMatrix4x4:    {"Matrix4x4", 64},
	KindFunctionPtr:  {"FunctionPtr", sizePointer},
	KindUtf8TextPtr:  {"Utf8TextPtr", sizePointer},
	KindUtf16TextPtr: {"Utf16TextPtr", sizePointer},
	KindUtf32TextPtr: {"Utf32TextPtr", sizePointer},

	KindClass:         {"Class", 0},
	KindClassInstance: {"ClassInstance", 0},
	KindPointer:       {"Pointer", 0},
	KindArray:         {"Array", 0},
	KindVTable:        {"VTable", 0},
	KindUtf8Text:      {"Utf8Text", 0},
	KindUtf16Text:     {"Utf16Text", 0},
	KindUtf32Text:     {"Utf32Text", 0},
	KindBitField:      {"BitField", 0},
	KindFunction:      {"Function", 0},
}

// String returns the kind name, e.g. "Int32" or "ClassInstance".
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return kinds[KindUnknown].name
	}
	return kinds[k].name
}

// IsHex reports whether k is one of the opaque placeholder kinds.
func (k Kind) IsHex() bool { return k >= KindHex8 && k <= KindHex64 }

// IsPrimitive reports whether nodes of kind k are [PrimitiveNode] values.
func (k Kind) IsPrimitive() bool { return k >= KindHex8 && k <= KindUtf32TextPtr }

// Kinds returns every built-in kind that can appear inside a class.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := KindHex8; k < kindCount; k++ {
		if k != KindClass {
			out = append(out, k)
		}
	}
	return out
}

// ParseKind looks up a kind by name, ignoring case.
func ParseKind(name string) (Kind, bool) {
	for k := KindHex8; k < kindCount; k++ {
		if strings.EqualFold(kinds[k].name, name) {
			return k, true
		}
	}
	return KindUnknown, false
}

// KindOf reports the built-in kind of n, or KindUnknown for nil and for
// node types defined outside this package.
func KindOf(n Node) Kind {
	switch v := n.(type) {
	case *PrimitiveNode:
		return v.kind
	case *ClassNode:
		return KindClass
	case *ClassInstanceNode:
		return KindClassInstance
	case *PointerNode:
		return KindPointer
	case *ArrayNode:
		return KindArray
	case *VTableNode:
		return KindVTable
	case *TextNode:
		return v.Encoding.kind()
	case *BitFieldNode:
		return KindBitField
	case *FunctionNode:
		return KindFunction
	default:
		return KindUnknown
	}
}
