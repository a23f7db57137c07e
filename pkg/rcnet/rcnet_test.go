package rcnet

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/memlayout/pkg/convert"
	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/observability"
	"github.com/matzehuels/memlayout/pkg/project"
)

type recordLogger struct {
	errors []string
	warns  []string
}

func (l *recordLogger) Error(msg any, _ ...any) { l.errors = append(l.errors, fmt.Sprint(msg)) }
func (l *recordLogger) Warn(msg any, _ ...any)  { l.warns = append(l.warns, fmt.Sprint(msg)) }

// tagNode is a plugin node no built-in converter knows.
type tagNode struct {
	node.BaseNode
	Tag string
}

func (n *tagNode) MemorySize(node.SizeContext) int { return 2 }

type tagConverter struct{}

func (tagConverter) CanHandleNode(n node.Node) bool {
	_, ok := n.(*tagNode)
	return ok
}

func (tagConverter) CanHandleElement(el *etree.Element) bool {
	return el.SelectAttrValue(attrType, "") == "PluginTagNode"
}

func (tagConverter) CreateElement(n node.Node, _ convert.Logger, _ convert.ElementWriter) *etree.Element {
	el := etree.NewElement(elemNode)
	el.CreateAttr(attrType, "PluginTagNode")
	el.CreateAttr(attrName, n.Base().Name)
	el.CreateAttr("tag", n.(*tagNode).Tag)
	return el
}

func (tagConverter) CreateNode(el *etree.Element, _ convert.ReadContext) (node.Node, error) {
	n := &tagNode{Tag: el.SelectAttrValue("tag", "")}
	n.Name = el.SelectAttrValue(attrName, "")
	return n, nil
}

type fileRecorder struct {
	observability.NoopFileHooks
	writes, skipped int
}

func (r *fileRecorder) OnWrite(_ int, skipped int, _ time.Duration, _ error) {
	r.writes++
	r.skipped += skipped
}

func roundTrip(t *testing.T, p *project.Project, opts Options) *project.Project {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, opts))
	out, err := Read(&buf, opts)
	require.NoError(t, err)
	return out
}

func archive(t *testing.T, xml string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create(DataFileName)
	require.NoError(t, err)
	_, err = f.Write([]byte(xml))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func sampleProject(t *testing.T) *project.Project {
	t.Helper()
	p := project.New(project.WithPlatform(project.PlatformX64))

	empty := node.NewClass("Empty")
	p.AddClass(empty)

	c := node.NewClass("C")
	d := node.NewClass("D")
	c.AddNode(node.NewPointer(node.NewClassInstance(d)))
	d.AddNode(node.NewPointer(node.NewClassInstance(c)))
	p.AddClass(c)
	p.AddClass(d)

	player := node.NewClass("Player")
	player.Comment = "local player"
	player.AddressFormula = "<game.exe> + 0x1000"
	vt := &node.VTableNode{}
	vt.Name = "vtable"
	for i := range 3 {
		vt.AddMethod(&node.MethodNode{Name: fmt.Sprintf("m%d", i), IsHidden: i == 1})
	}
	player.AddNode(vt)
	hp := node.NewPrimitive(node.KindInt32, "health")
	hp.IsHidden = true
	hp.Comment = "0..100"
	player.AddNode(hp)
	player.AddNode(node.NewArray(node.NewPrimitive(node.KindFloat, ""), 10))
	player.AddNode(node.NewPointer(node.NewArray(node.NewPrimitive(node.KindUInt8, ""), 4)))
	player.AddNode(node.NewText(node.UTF16, 32))
	bits, err := node.NewBitField(4)
	require.NoError(t, err)
	player.AddNode(bits)
	player.AddNode(node.NewClassInstance(empty))
	player.AddNode(&node.FunctionNode{Signature: "void Tick(float)", BelongsToClass: c})
	p.AddClass(player)

	p.CustomData().Set("PluginX_Key", "value")
	e := project.NewEnum("Team")
	require.NoError(t, e.SetSize(2))
	e.UseFlagsMode = true
	e.AddItem("Red", 1)
	e.AddItem("Blue", 2)
	p.AddEnum(e)
	return p
}

func TestRoundTrip(t *testing.T) {
	p := sampleProject(t)
	out := roundTrip(t, p, Options{})

	assert.Equal(t, p.Platform(), out.Platform())
	require.Equal(t, p.Len(), out.Len())
	for _, want := range p.Classes() {
		got, err := out.GetClassByUUID(want.UUID)
		require.NoError(t, err, want.Name)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Comment, got.Comment)
		assert.Equal(t, want.AddressFormula, got.AddressFormula)
		assert.Equal(t, want.Size(), got.Size(), want.Name)
		require.Equal(t, want.Len(), got.Len(), want.Name)

		wantNodes, gotNodes := want.Nodes(), got.Nodes()
		for i := range wantNodes {
			assert.Equal(t, node.KindOf(wantNodes[i]), node.KindOf(gotNodes[i]))
			assert.Equal(t, wantNodes[i].Base().Name, gotNodes[i].Base().Name)
			assert.Equal(t, wantNodes[i].Base().IsHidden, gotNodes[i].Base().IsHidden)
			assert.Equal(t, wantNodes[i].Base().Offset(), gotNodes[i].Base().Offset())
		}
	}

	v, ok := out.CustomData().Get("PluginX_Key")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	require.Len(t, out.Enums(), 1)
	team := out.Enums()[0]
	assert.Equal(t, "Team", team.Name)
	assert.True(t, team.UseFlagsMode)
	assert.Equal(t, 2, team.Size())
	assert.Equal(t, []project.EnumItem{{Name: "Red", Value: 1}, {Name: "Blue", Value: 2}}, team.Items())
}

func TestRoundTripNodeDetails(t *testing.T) {
	p := sampleProject(t)
	out := roundTrip(t, p, Options{})

	player, ok := out.FindClass("Player")
	require.True(t, ok)
	nodes := player.Nodes()

	vt := nodes[0].(*node.VTableNode)
	require.Len(t, vt.Methods(), 3)
	assert.Equal(t, "m2", vt.Methods()[2].Name)
	assert.True(t, vt.Methods()[1].IsHidden)

	assert.Equal(t, "0..100", nodes[1].Base().Comment)
	assert.Equal(t, 10, nodes[2].(*node.ArrayNode).Count())

	ptr := nodes[3].(*node.PointerNode)
	arr, ok := ptr.InnerNode().(*node.ArrayNode)
	require.True(t, ok)
	assert.Equal(t, 4, arr.Count())
	assert.Same(t, ptr, arr.Parent())
	assert.Equal(t, node.KindUInt8, node.KindOf(arr.InnerNode()))

	text := nodes[4].(*node.TextNode)
	assert.Equal(t, 32, text.Length())
	assert.Equal(t, node.UTF16, text.Encoding)
	assert.Equal(t, 4, nodes[5].(*node.BitFieldNode).Bits())

	empty, _ := out.FindClass("Empty")
	assert.Same(t, empty, nodes[6].(*node.ClassInstanceNode).Class())

	fn := nodes[7].(*node.FunctionNode)
	assert.Equal(t, "void Tick(float)", fn.Signature)
	c, _ := out.FindClass("C")
	assert.Same(t, c, fn.BelongsToClass)
}

func TestRoundTripKeepsTextVerbatim(t *testing.T) {
	p := project.New()
	c := node.NewClass("Notes")
	c.Comment = "line1\r\nline2\tx"
	c.AddressFormula = "<a.dll>\t+ 0x10"
	field := node.NewPrimitive(node.KindInt32, "f")
	field.Comment = "first\nsecond\r\n"
	c.AddNode(field)
	p.AddClass(c)
	p.CustomData().Set("CRLF", "a\r\nb")
	p.CustomData().Set("Tabbed", "\tcol1\tcol2\n")

	out := roundTrip(t, p, Options{})

	got, ok := out.FindClass("Notes")
	require.True(t, ok)
	assert.Equal(t, "line1\r\nline2\tx", got.Comment)
	assert.Equal(t, "<a.dll>\t+ 0x10", got.AddressFormula)
	assert.Equal(t, "first\nsecond\r\n", got.Nodes()[0].Base().Comment)

	v, _ := out.CustomData().Get("CRLF")
	assert.Equal(t, "a\r\nb", v)
	v, _ = out.CustomData().Get("Tabbed")
	assert.Equal(t, "\tcol1\tcol2\n", v)
}

func TestRoundTripCycle(t *testing.T) {
	out := roundTrip(t, sampleProject(t), Options{})

	c, ok := out.FindClass("C")
	require.True(t, ok)
	d, ok := out.FindClass("D")
	require.True(t, ok)

	assert.Same(t, d, node.ResolveClass(c.Nodes()[0].(node.Wrapper)))
	assert.Same(t, c, node.ResolveClass(d.Nodes()[0].(node.Wrapper)))
	assert.Equal(t, 8, c.Size())
}

func TestWriteSkipsUnknownNodes(t *testing.T) {
	rec := &fileRecorder{}
	observability.SetFileHooks(rec)
	defer observability.Reset()

	p := project.New()
	c := node.NewClass("Mixed")
	c.AddNode(node.NewPrimitive(node.KindInt32, "a"))
	c.AddNode(&tagNode{Tag: "x"})
	c.AddNode(node.NewPrimitive(node.KindInt64, "b"))
	p.AddClass(c)

	log := &recordLogger{}
	out := roundTrip(t, p, Options{Logger: log})

	assert.Len(t, log.errors, 1)
	assert.Len(t, log.warns, 1)
	assert.Equal(t, 1, rec.writes)
	assert.Equal(t, 1, rec.skipped)

	got, ok := out.FindClass("Mixed")
	require.True(t, ok)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "b", got.Nodes()[1].Base().Name)
	assert.Equal(t, 4, got.Nodes()[1].Base().Offset())
}

func TestReadSkipsUnknownElements(t *testing.T) {
	p := project.New()
	c := node.NewClass("Tagged")
	c.AddNode(&tagNode{Tag: "x"})
	c.AddNode(node.NewPrimitive(node.KindInt8, "after"))
	p.AddClass(c)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, Options{Converters: convert.New(tagConverter{})}))

	log := &recordLogger{}
	out, err := Read(&buf, Options{Logger: log})
	require.NoError(t, err)
	assert.Len(t, log.errors, 1)
	assert.Len(t, log.warns, 1)

	got, _ := out.FindClass("Tagged")
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "after", got.Nodes()[0].Base().Name)
}

func TestCustomConverterRoundTrip(t *testing.T) {
	p := project.New()
	c := node.NewClass("Tagged")
	c.AddNode(node.NewPointer(&tagNode{Tag: "hello"}))
	p.AddClass(c)

	opts := Options{Converters: convert.New(tagConverter{})}
	out := roundTrip(t, p, opts)

	got, _ := out.FindClass("Tagged")
	require.Equal(t, 1, got.Len())
	inner, ok := got.Nodes()[0].(*node.PointerNode).InnerNode().(*tagNode)
	require.True(t, ok)
	assert.Equal(t, "hello", inner.Tag)
}

func TestUnresolvedReferenceIsSkipped(t *testing.T) {
	xml := fmt.Sprintf(`<memlayout version="65537" platform="x64"><classes>
<class uuid="%s" name="A" comment="" address="">
  <node name="ref" comment="" hidden="false" type="ClassInstanceNode" reference="%s"/>
  <node name="x" comment="" hidden="false" type="Int16Node"/>
</class></classes></memlayout>`, node.NewUUID(), node.NewUUID())

	log := &recordLogger{}
	out, err := Read(archive(t, xml), Options{Logger: log})
	require.NoError(t, err)
	assert.Len(t, log.errors, 1)
	assert.Len(t, log.warns, 1)

	a, _ := out.FindClass("A")
	require.Equal(t, 1, a.Len())
	assert.Equal(t, 2, a.Size())
}

func TestDuplicateClassUUIDInFile(t *testing.T) {
	id := node.NewUUID()
	xml := fmt.Sprintf(`<memlayout version="65537" platform="x64"><classes>
<class uuid="%[1]s" name="First" comment="" address=""/>
<class uuid="%[1]s" name="Second" comment="" address=""/>
</classes></memlayout>`, id)

	log := &recordLogger{}
	out, err := Read(archive(t, xml), Options{Logger: log})
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "First", out.Classes()[0].Name)
	assert.Len(t, log.warns, 1)
}

func TestInvalidClassUUIDGetsFreshOne(t *testing.T) {
	xml := `<memlayout version="65537"><classes><class uuid="???" name="A"/></classes></memlayout>`
	log := &recordLogger{}
	out, err := Read(archive(t, xml), Options{Logger: log})
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.False(t, out.Classes()[0].UUID.IsZero())
	assert.Len(t, log.warns, 1)
	assert.Equal(t, project.DefaultPlatform, out.Platform())
}

func TestReadVersionCheck(t *testing.T) {
	tests := []struct {
		name    string
		version string
		code    errors.Code
	}{
		{"current", "65537", ""},
		{"newer minor", fmt.Sprint(0x0001FFFF), ""},
		{"older major", fmt.Sprint(0x00000005), ""},
		{"newer major", fmt.Sprint(0x00020001), errors.ErrCodeUnsupportedVersion},
		{"garbage", "abc", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xml := fmt.Sprintf(`<memlayout version=%q platform="x64"/>`, tt.version)
			_, err := Read(archive(t, xml), Options{})
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestReadInvalidFormat(t *testing.T) {
	t.Run("not an archive", func(t *testing.T) {
		_, err := Read(bytes.NewBufferString("plain text"), Options{})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	})

	t.Run("missing entry", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		_, err := zw.Create("Other.xml")
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		_, err = Read(&buf, Options{})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	})

	t.Run("wrong root", func(t *testing.T) {
		_, err := Read(archive(t, `<something version="65537"/>`), Options{})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	})

	t.Run("malformed xml", func(t *testing.T) {
		_, err := Read(archive(t, `<memlayout version="65537" =broken/>`), Options{})
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	})
}

func TestPlatformMismatchWarns(t *testing.T) {
	p := project.New(project.WithPlatform(project.PlatformX86))
	c := node.NewClass("A")
	c.AddNode(node.NewPointer(nil))
	p.AddClass(c)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p, Options{}))

	log := &recordLogger{}
	out, err := Read(&buf, Options{Logger: log, Platform: project.PlatformX64})
	require.NoError(t, err)
	assert.Len(t, log.warns, 1)
	assert.Equal(t, project.PlatformX86, out.Platform())
	a, _ := out.FindClass("A")
	assert.Equal(t, 4, a.Size())
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriteFailurePropagates(t *testing.T) {
	boom := stderrors.New("disk full")
	err := Write(failingWriter{err: boom}, sampleProject(t), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game"+FileExtension)
	require.NoError(t, Save(path, sampleProject(t), Options{}))

	out, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.mlp"), Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestArchiveHasSingleEntry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleProject(t), Options{}))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, DataFileName, zr.File[0].Name)
}
