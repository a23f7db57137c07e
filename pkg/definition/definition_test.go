package definition

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/project"
)

func TestBuildGameDefinition(t *testing.T) {
	def, err := ParseFile(filepath.Join("testdata", "game.toml"))
	require.NoError(t, err)

	p, err := Build(def)
	require.NoError(t, err)

	assert.Equal(t, project.PlatformX86, p.Platform())
	require.Equal(t, 3, p.Len())

	v, ok := p.CustomData().Get("Generator_Version")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	require.Len(t, p.Enums(), 1)
	assert.Equal(t, 1, p.Enums()[0].Size())
	assert.Len(t, p.Enums()[0].Items(), 2)

	player, ok := p.FindClass("Player")
	require.True(t, ok)
	vec, _ := p.FindClass("Vec3")
	item, _ := p.FindClass("Item")

	nodes := player.Nodes()
	require.Len(t, nodes, 6)
	assert.Len(t, nodes[0].(*node.VTableNode).Methods(), 3)
	assert.Same(t, vec, nodes[2].(*node.ClassInstanceNode).Class())
	assert.Same(t, player, node.ResolveClass(nodes[3].(node.Wrapper)))

	inventory := nodes[4].(*node.ArrayNode)
	assert.Equal(t, 8, inventory.Count())
	assert.Same(t, item, node.ResolveClass(inventory))

	// x86: vtable 4 + health 4 + vec3 12 + pointer 4 + 8 pointers + 16 chars
	assert.Equal(t, 4+4+12+4+8*4+16, player.Size())
	assert.Equal(t, 8, nodes[2].Base().Offset())

	fn := item.Nodes()[1].(*node.FunctionNode)
	assert.Same(t, item, fn.BelongsToClass)
	assert.Equal(t, "void Use(Player*)", fn.Signature)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{
			name: "unknown kind",
			src:  "[[class]]\nname = \"A\"\n[[class.node]]\ntype = \"Int128\"\n",
			code: errors.ErrCodeUnknownNodeType,
		},
		{
			name: "unknown class",
			src:  "[[class]]\nname = \"A\"\n[[class.node]]\ntype = \"ClassInstance\"\nclass = \"B\"\n",
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "pointer without inner",
			src:  "[[class]]\nname = \"A\"\n[[class.node]]\ntype = \"Pointer\"\n",
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "duplicate class",
			src:  "[[class]]\nname = \"A\"\n[[class]]\nname = \"A\"\n",
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "bad bit count",
			src:  "[[class]]\nname = \"A\"\n[[class.node]]\ntype = \"BitField\"\nbits = 65\n",
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "unknown platform",
			src:  "platform = \"arm\"\n",
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "bad data key",
			src:  "[[data]]\nkey = \"1st\"\nvalue = \"x\"\n",
			code: errors.ErrCodeInvalidName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			_, err = Build(def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[[class]]\nname = \"A\"\ncolour = \"red\"\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[[class]\n"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestClassUUIDIsKept(t *testing.T) {
	id := node.NewUUID()
	def, err := Parse([]byte("[[class]]\nname = \"A\"\nuuid = \"" + id.String() + "\"\n"))
	require.NoError(t, err)
	p, err := Build(def)
	require.NoError(t, err)
	assert.True(t, p.ContainsClass(id))
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
