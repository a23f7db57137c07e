package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDRoundTrip(t *testing.T) {
	id := NewUUID()
	text := id.String()
	assert.Len(t, text, 24)

	parsed, err := ParseUUID(text)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	assert.Equal(t, "AAAAAAAAAAAAAAAAAAAAAA==", ZeroUUID.String())
	assert.True(t, ZeroUUID.IsZero())
	assert.False(t, id.IsZero())
}

func TestParseUUIDInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"NotBase64", "!!!"},
		{"WrongLength", "AAAA"},
		{"Empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUUID(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("int32")
	require.True(t, ok)
	assert.Equal(t, KindInt32, k)

	k, ok = ParseKind("ClassInstance")
	require.True(t, ok)
	assert.Equal(t, KindClassInstance, k)

	_, ok = ParseKind("Class")
	assert.True(t, ok)

	_, ok = ParseKind("Banana")
	assert.False(t, ok)

	assert.NotContains(t, Kinds(), KindClass)
	assert.NotContains(t, Kinds(), KindUnknown)
}

func TestNewCoversEveryKind(t *testing.T) {
	for _, k := range Kinds() {
		n, err := New(k)
		require.NoError(t, err, k.String())
		assert.Equal(t, k, KindOf(n), k.String())
	}

	_, err := New(KindClass)
	assert.Error(t, err)
	_, err = New(KindUnknown)
	assert.Error(t, err)
}

func TestUpdateOffsets(t *testing.T) {
	inner := NewClass("Vec")
	inner.AddNode(NewPrimitive(KindFloat, "x"))
	inner.AddNode(NewPrimitive(KindFloat, "y"))

	c := NewClass("Player")
	health := NewPrimitive(KindInt32, "health")
	ptr := NewPointer(NewPrimitive(KindInt8, "target"))
	pos := NewClassInstance(inner)
	arr := NewArray(NewPrimitive(KindUInt16, ""), 10)
	text := NewText(UTF16, 32)
	bits, err := NewBitField(16)
	require.NoError(t, err)
	for _, n := range []Node{health, ptr, pos, arr, text, bits} {
		c.AddNode(n)
	}

	l := NewLayout(8)
	l.Update([]*ClassNode{c, inner})

	assert.Equal(t, 0, health.Offset())
	assert.Equal(t, 4, ptr.Offset())
	assert.Equal(t, 12, pos.Offset())
	assert.Equal(t, 20, arr.Offset())
	assert.Equal(t, 40, text.Offset())
	assert.Equal(t, 104, bits.Offset())
	assert.Equal(t, 106, c.Size())
	assert.Equal(t, 8, inner.Size())
}

func TestPointerSizedPrimitives(t *testing.T) {
	c := NewClass("C")
	c.AddNode(NewPrimitive(KindNInt, ""))
	c.AddNode(&VTableNode{})

	assert.Equal(t, 8, NewLayout(4).ClassSize(c))
	assert.Equal(t, 16, NewLayout(8).ClassSize(c))
}

func TestLayoutEmbeddingCycleTerminates(t *testing.T) {
	a := NewClass("A")
	b := NewClass("B")
	a.AddNode(NewPrimitive(KindInt32, ""))
	a.AddNode(NewClassInstance(b))
	b.AddNode(NewPrimitive(KindInt64, ""))
	b.AddNode(NewClassInstance(a))

	l := NewLayout(8)
	l.Update([]*ClassNode{a, b})

	// b re-enters a while a is being measured, so a counts as empty there
	assert.Equal(t, 8, b.Size())
	assert.Equal(t, 12, a.Size())
}

func TestChangeHooks(t *testing.T) {
	c := NewClass("C")
	calls := 0
	id := c.AddChangeHook(func(*ClassNode) { calls++ })

	arr := NewArray(NewPrimitive(KindInt8, ""), 1)
	c.AddNode(arr)
	assert.Equal(t, 1, calls)

	arr.SetCount(4)
	assert.Equal(t, 2, calls)

	// edits deep inside owned wrappers reach the class
	inner := NewText(UTF8, 4)
	arr.ChangeInnerNode(inner)
	inner.SetLength(8)
	assert.Equal(t, 4, calls)

	c.RemoveChangeHook(id)
	c.AddNode(NewPrimitive(KindBool, ""))
	assert.Equal(t, 4, calls)
}

func TestChangeHookMayUnregisterItself(t *testing.T) {
	c := NewClass("C")
	var id HookID
	calls := 0
	id = c.AddChangeHook(func(c *ClassNode) {
		calls++
		c.RemoveChangeHook(id)
	})
	c.AddNode(NewPrimitive(KindBool, ""))
	c.AddNode(NewPrimitive(KindBool, ""))
	assert.Equal(t, 1, calls)
}

func TestClassNodeMutations(t *testing.T) {
	c := NewClass("C")
	a := NewPrimitive(KindInt8, "a")
	b := NewPrimitive(KindInt8, "b")
	x := NewPrimitive(KindInt8, "x")
	c.AddNode(a)
	c.AddNode(b)
	c.InsertNode(1, x)
	assert.Equal(t, []Node{a, x, b}, c.Nodes())
	assert.Same(t, c, a.Parent())

	require.True(t, c.RemoveNode(x))
	assert.Nil(t, x.Parent())
	assert.False(t, c.RemoveNode(x))

	y := NewPrimitive(KindInt16, "y")
	require.True(t, c.ReplaceNode(b, y))
	assert.Equal(t, []Node{a, y}, c.Nodes())
	assert.Nil(t, b.Parent())
}

func TestIsPlaceholder(t *testing.T) {
	c := NewClass("C")
	assert.True(t, c.IsPlaceholder())
	c.AddNode(NewPrimitive(KindHex64, ""))
	c.AddNode(NewPrimitive(KindHex8, ""))
	assert.True(t, c.IsPlaceholder())
	c.AddNode(NewPrimitive(KindInt32, ""))
	assert.False(t, c.IsPlaceholder())
}

func TestBitFieldWidth(t *testing.T) {
	for _, bad := range []int{0, -1, 65} {
		_, err := NewBitField(bad)
		assert.Error(t, err, bad)
	}

	b, err := NewBitField(32)
	require.NoError(t, err)
	assert.Error(t, b.SetBits(65))
	assert.Equal(t, 32, b.Bits())
}

func TestBitFieldBackingSize(t *testing.T) {
	tests := []struct {
		bits, size int
	}{
		{1, 1}, {4, 1}, {8, 1},
		{9, 2}, {12, 2}, {16, 2},
		{17, 4}, {32, 4},
		{33, 8}, {64, 8},
	}
	for _, tt := range tests {
		b, err := NewBitField(tt.bits)
		require.NoError(t, err)
		assert.Equal(t, tt.bits, b.Bits())
		assert.Equal(t, tt.size, b.MemorySize(NewLayout(8)), "bits=%d", tt.bits)
	}
}
