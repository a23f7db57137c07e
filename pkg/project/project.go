package project

import (
	"slices"
	"time"

	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/node"
	"github.com/matzehuels/memlayout/pkg/observability"
)

// Supported platform markers.
const (
	PlatformX86 = "x86"
	PlatformX64 = "x64"
)

// DefaultPlatform is used when no platform is configured.
const DefaultPlatform = PlatformX64

// PointerSize returns the pointer width for a platform marker. Unknown
// markers are treated as 64-bit.
func PointerSize(platform string) int {
	if platform == PlatformX86 {
		return 4
	}
	return 8
}

// Option configures a [Project].
type Option func(*Project)

// WithPlatform sets the platform whose pointer size drives the layout.
func WithPlatform(platform string) Option {
	return func(p *Project) {
		if platform != "" {
			p.platform = platform
		}
	}
}

// Project is the set of class definitions of one class graph together with
// its enums and custom data.
//
// The zero value is not usable - use New. Project is not safe for concurrent
// use.
type Project struct {
	platform   string
	classes    []*node.ClassNode
	hooks      map[*node.ClassNode]node.HookID
	enums      []*Enum
	customData *CustomData

	onAdded   []func(*node.ClassNode)
	onRemoved []func(*node.ClassNode)

	layoutPasses int
}

// New creates an empty project.
func New(opts ...Option) *Project {
	p := &Project{
		platform:   DefaultPlatform,
		hooks:      make(map[*node.ClassNode]node.HookID),
		customData: NewCustomData(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Platform returns the platform marker of the project.
func (p *Project) Platform() string { return p.platform }

// PointerSize returns the pointer width used for layout.
func (p *Project) PointerSize() int { return PointerSize(p.platform) }

// Classes returns the classes in insertion order.
func (p *Project) Classes() []*node.ClassNode { return slices.Clone(p.classes) }

// Len returns the number of classes.
func (p *Project) Len() int { return len(p.classes) }

// CustomData returns the project's custom data map.
func (p *Project) CustomData() *CustomData { return p.customData }

// Enums returns the enum definitions in insertion order.
func (p *Project) Enums() []*Enum { return slices.Clone(p.enums) }

// AddEnum appends an enum definition.
func (p *Project) AddEnum(e *Enum) { p.enums = append(p.enums, e) }

// RemoveEnum removes an enum definition and reports whether it was present.
func (p *Project) RemoveEnum(e *Enum) bool {
	i := slices.Index(p.enums, e)
	if i < 0 {
		return false
	}
	p.enums = slices.Delete(p.enums, i, i+1)
	return true
}

// OnClassAdded registers fn to run after a class joins the project.
func (p *Project) OnClassAdded(fn func(*node.ClassNode)) { p.onAdded = append(p.onAdded, fn) }

// OnClassRemoved registers fn to run after a class leaves the project.
func (p *Project) OnClassRemoved(fn func(*node.ClassNode)) {
	p.onRemoved = append(p.onRemoved, fn)
}

// AddClass appends c, starts tracking its structural changes and lays out
// the project.
//
// AddClass does not check whether a class with the same UUID is already
// present.
func (p *Project) AddClass(c *node.ClassNode) {
	p.classes = append(p.classes, c)
	p.hooks[c] = c.AddChangeHook(p.classChanged)
	p.UpdateLayout()

	observability.Project().OnClassAdded(c.UUID.String(), c.Name)
	for _, fn := range p.onAdded {
		fn(c)
	}
}

// ContainsClass reports whether a class with the given UUID is present.
func (p *Project) ContainsClass(id node.UUID) bool {
	return slices.ContainsFunc(p.classes, func(c *node.ClassNode) bool { return c.UUID == id })
}

// GetClassByUUID returns the first class with the given UUID. It fails with
// ErrCodeNotFound if there is none.
func (p *Project) GetClassByUUID(id node.UUID) (*node.ClassNode, error) {
	for _, c := range p.classes {
		if c.UUID == id {
			return c, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no class with uuid %s", id)
}

// FindClass returns the first class with the given name.
func (p *Project) FindClass(name string) (*node.ClassNode, bool) {
	for _, c := range p.classes {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ReferencingClasses returns every other class that holds a wrapper whose
// chain ends at c.
func (p *Project) ReferencingClasses(c *node.ClassNode) []*node.ClassNode {
	var out []*node.ClassNode
	for _, other := range p.classes {
		if other == c {
			continue
		}
		if slices.Contains(node.ReferencedClasses(other), c) {
			out = append(out, other)
		}
	}
	return out
}

// Remove removes c from the project. If other classes still refer to c the
// project is left unchanged and a [*ReferencedError] is returned.
func (p *Project) Remove(c *node.ClassNode) error {
	if refs := p.ReferencingClasses(c); len(refs) > 0 {
		return &ReferencedError{Class: c, ReferencedBy: refs}
	}
	i := slices.Index(p.classes, c)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "class %s is not part of the project", c.Name)
	}
	p.detach(i)
	p.UpdateLayout()
	return nil
}

// RemoveUnusedClasses removes every class that no other class refers to and
// whose body consists only of hex placeholder nodes. It returns the removed
// classes.
func (p *Project) RemoveUnusedClasses() []*node.ClassNode {
	var candidates []*node.ClassNode
	for _, c := range p.classes {
		if c.IsPlaceholder() && len(p.ReferencingClasses(c)) == 0 {
			candidates = append(candidates, c)
		}
	}
	for _, c := range candidates {
		// candidates do not refer to anything, so removing one cannot
		// make another one referenced
		_ = p.Remove(c)
	}
	return candidates
}

// Clear removes every class, raising the removal event for each.
func (p *Project) Clear() {
	for _, c := range slices.Clone(p.classes) {
		if i := slices.Index(p.classes, c); i >= 0 {
			p.detach(i)
		}
	}
}

// Close releases the classes held by the project.
func (p *Project) Close() error {
	p.Clear()
	p.customData.Clear()
	p.enums = nil
	return nil
}

// LayoutPasses returns how many times the project recomputed its layout.
func (p *Project) LayoutPasses() int { return p.layoutPasses }

// UpdateLayout recomputes offsets and sizes of every class.
func (p *Project) UpdateLayout() {
	start := time.Now()
	node.NewLayout(p.PointerSize()).Update(p.classes)
	p.layoutPasses++
	observability.Project().OnLayout(len(p.classes), time.Since(start))
}

func (p *Project) classChanged(*node.ClassNode) {
	p.UpdateLayout()
}

func (p *Project) detach(i int) {
	c := p.classes[i]
	p.classes = slices.Delete(p.classes, i, i+1)
	if id, ok := p.hooks[c]; ok {
		c.RemoveChangeHook(id)
		delete(p.hooks, c)
	}

	observability.Project().OnClassRemoved(c.UUID.String(), c.Name)
	for _, fn := range p.onRemoved {
		fn(c)
	}
}
