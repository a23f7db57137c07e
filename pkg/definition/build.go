package definition

import (
	"fmt"

	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/project"
)

// Build turns def into a laid-out project.
func Build(def *Definition) (*project.Project, error) {
	platform := def.Platform
	switch platform {
	case "":
		platform = project.DefaultPlatform
	case project.PlatformX86, project.PlatformX64:
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown platform %q", def.Platform)
	}
	p := project.New(project.WithPlatform(platform))

	for _, e := range def.Data {
		if err := errors.ValidateElementName(e.Key); err != nil {
			return nil, err
		}
		p.CustomData().Set(e.Key, e.Value)
	}

	for _, ed := range def.Enums {
		e := project.NewEnum(ed.Name)
		e.UseFlagsMode = ed.Flags
		if ed.Size != 0 {
			if err := e.SetSize(ed.Size); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "enum %s", ed.Name)
			}
		}
		for _, item := range ed.Items {
			e.AddItem(item.Name, item.Value)
		}
		p.AddEnum(e)
	}

	b := &builder{classes: make(map[string]*node.ClassNode, len(def.Classes))}
	order := make([]*node.ClassNode, 0, len(def.Classes))
	for _, cd := range def.Classes {
		c, err := b.declare(cd)
		if err != nil {
			return nil, err
		}
		order = append(order, c)
	}
	for i, cd := range def.Classes {
		for j, nd := range cd.Nodes {
			n, err := b.node(nd, fmt.Sprintf("%s.node[%d]", cd.Name, j))
			if err != nil {
				return nil, err
			}
			order[i].AddNode(n)
		}
	}
	for _, c := range order {
		p.AddClass(c)
	}
	return p, nil
}

type builder struct {
	classes map[string]*node.ClassNode
}

func (b *builder) declare(cd Class) (*node.ClassNode, error) {
	if cd.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "class without name")
	}
	if err := errors.ValidateName(cd.Name); err != nil {
		return nil, err
	}
	if _, dup := b.classes[cd.Name]; dup {
		return nil, errors.New(errors.ErrCodeInvalidInput, "class %q defined twice", cd.Name)
	}

	id := node.NewUUID()
	if cd.UUID != "" {
		parsed, err := node.ParseUUID(cd.UUID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "class %s", cd.Name)
		}
		id = parsed
	}
	c := node.NewClassWithUUID(id, cd.Name)
	c.Comment = cd.Comment
	c.AddressFormula = cd.Address
	b.classes[cd.Name] = c
	return c, nil
}

func (b *builder) class(name, at string) (*node.ClassNode, error) {
	c, ok := b.classes[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: unknown class %q", at, name)
	}
	return c, nil
}

func (b *builder) node(nd Node, at string) (node.Node, error) {
	k, ok := node.ParseKind(nd.Type)
	if !ok || k == node.KindClass {
		return nil, errors.New(errors.ErrCodeUnknownNodeType, "%s: unknown node type %q", at, nd.Type)
	}
	n, err := node.New(k)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnknownNodeType, err, "%s", at)
	}
	if err := errors.ValidateName(nd.Name); err != nil {
		return nil, err
	}
	base := n.Base()
	base.Name = nd.Name
	base.Comment = nd.Comment
	base.IsHidden = nd.Hidden

	switch v := n.(type) {
	case *node.ClassInstanceNode:
		c, err := b.class(nd.Class, at)
		if err != nil {
			return nil, err
		}
		v.ChangeInnerNode(c)
	case *node.PointerNode:
		inner, err := b.inner(nd, at)
		if err != nil {
			return nil, err
		}
		v.ChangeInnerNode(inner)
	case *node.ArrayNode:
		inner, err := b.inner(nd, at)
		if err != nil {
			return nil, err
		}
		v.ChangeInnerNode(inner)
		if nd.Count != 0 {
			v.SetCount(nd.Count)
		}
	case *node.VTableNode:
		for _, name := range nd.Methods {
			v.AddMethod(&node.MethodNode{Name: name})
		}
	case *node.TextNode:
		if nd.Length != 0 {
			v.SetLength(nd.Length)
		}
	case *node.BitFieldNode:
		if nd.Bits != 0 {
			if err := v.SetBits(nd.Bits); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", at)
			}
		}
	case *node.FunctionNode:
		v.Signature = nd.Signature
		if nd.Class != "" {
			c, err := b.class(nd.Class, at)
			if err != nil {
				return nil, err
			}
			v.BelongsToClass = c
		}
	}
	return n, nil
}

// inner builds the owned node of a pointer or array.
func (b *builder) inner(nd Node, at string) (node.Node, error) {
	switch {
	case nd.Inner != nil:
		return b.node(*nd.Inner, at+".inner")
	case nd.Class != "":
		c, err := b.class(nd.Class, at)
		if err != nil {
			return nil, err
		}
		return node.NewClassInstance(c), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "%s: %s needs an inner node or a class", at, nd.Type)
}
