package rcnet

import (
	"io"
	"time"

	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/observability"
	"github.com/matzehuels/memlayout/pkg/project"
)

// WriteNodes writes an ad-hoc selection of nodes as a self-contained
// container file, typically for a clipboard.
//
// The document holds every class reachable from nodes plus a synthetic
// class named [SerializationClassName] whose children are the nodes
// themselves. A [node.ClassNode] in nodes is carried as a class instance
// referencing it. The nodes are neither reparented nor laid out again.
func WriteNodes(w io.Writer, nodes []node.Node, opts Options) error {
	start := time.Now()
	platform := opts.Platform
	if platform == "" {
		platform = project.DefaultPlatform
	}
	classes := classClosure(nodes)

	enc := newEncoder(opts)
	doc := enc.document(contents{platform: platform, classes: classes})

	children := make([]node.Node, 0, len(nodes))
	for _, n := range nodes {
		if c, ok := n.(*node.ClassNode); ok {
			children = append(children, node.NewClassInstance(c))
			continue
		}
		children = append(children, n)
	}
	container := enc.classElement(node.NewUUID(), &node.BaseNode{Name: SerializationClassName}, "", children)
	doc.Root().SelectElement(elemClasses).AddChild(container)

	err := writeArchive(w, doc)
	observability.File().OnWrite(len(classes), enc.skipped, time.Since(start), err)
	return err
}

// classClosure returns every class reachable from nodes, deduplicated by
// UUID, in first-seen order.
func classClosure(nodes []node.Node) []*node.ClassNode {
	var out []*node.ClassNode
	seen := make(map[node.UUID]struct{})
	var visit func(c *node.ClassNode)
	visit = func(c *node.ClassNode) {
		if _, ok := seen[c.UUID]; ok {
			return
		}
		seen[c.UUID] = struct{}{}
		out = append(out, c)
		for _, ref := range node.ReferencedClasses(c) {
			visit(ref)
		}
	}
	for _, n := range nodes {
		if c, ok := n.(*node.ClassNode); ok {
			visit(c)
			continue
		}
		for _, ref := range node.ReferencedBy(n) {
			visit(ref)
		}
	}
	return out
}

// ReadNodes is the inverse of [WriteNodes]. Classes whose UUID already
// exists in target bind to the live class; the others are returned as
// classes, ready to be added to target. nodes are the children of the
// synthetic container class, detached from it.
//
// target is not modified.
func ReadNodes(r io.Reader, target *project.Project, opts Options) (classes []*node.ClassNode, nodes []node.Node, err error) {
	start := time.Now()
	dec := newDecoder(opts)
	defer func() {
		observability.File().OnRead(len(classes), dec.skipped, time.Since(start), err)
	}()

	root, err := readDocument(r)
	if err != nil {
		return nil, nil, err
	}
	dec.platform(root)

	var container *node.ClassNode
	for _, c := range dec.readClasses(root, target) {
		if c.Name == SerializationClassName && container == nil {
			container = c
			continue
		}
		classes = append(classes, c)
	}
	if container == nil {
		return classes, nil, nil
	}
	for _, n := range container.Nodes() {
		container.RemoveNode(n)
		nodes = append(nodes, n)
	}
	return classes, nodes, nil
}
