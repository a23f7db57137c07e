// Package definition builds projects from hand-written TOML descriptions.
//
// A definition lists the platform, custom data, enums and classes of a
// project. Nodes reference other classes by name, so classes may be listed
// in any order and may reference each other cyclically through pointers:
//
//	platform = "x64"
//
//	[[class]]
//	name = "Player"
//	address = "<game.exe> + 0x1000"
//
//	  [[class.node]]
//	  type = "VTable"
//	  methods = ["Destroy", "Tick"]
//
//	  [[class.node]]
//	  type = "Int32"
//	  name = "health"
//
//	  [[class.node]]
//	  type = "Pointer"
//	  name = "target"
//	  class = "Player"
package definition

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/memlayout/pkg/errors"
)

// Definition is the decoded form of a definition file.
type Definition struct {
	Platform string  `toml:"platform"`
	Data     []Entry `toml:"data"`
	Enums    []Enum  `toml:"enum"`
	Classes  []Class `toml:"class"`
}

// Entry is one custom data key/value pair.
type Entry struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

// Enum describes a named enumeration.
type Enum struct {
	Name  string     `toml:"name"`
	Flags bool       `toml:"flags"`
	Size  int        `toml:"size"`
	Items []EnumItem `toml:"item"`
}

// EnumItem is one enumeration member.
type EnumItem struct {
	Name  string `toml:"name"`
	Value int64  `toml:"value"`
}

// Class describes one class. UUID is optional and uses the container text
// form; a fresh one is drawn when it is empty.
type Class struct {
	Name    string `toml:"name"`
	Comment string `toml:"comment"`
	Address string `toml:"address"`
	UUID    string `toml:"uuid"`
	Nodes   []Node `toml:"node"`
}

// Node describes one node. Type is a kind name such as "Int32" or
// "ClassInstance", matched case-insensitively.
//
// Class names the referenced class of a ClassInstance and the owner of a
// Function. On a Pointer or Array without Inner it is shorthand for an
// inner ClassInstance of that class.
type Node struct {
	Type      string   `toml:"type"`
	Name      string   `toml:"name"`
	Comment   string   `toml:"comment"`
	Hidden    bool     `toml:"hidden"`
	Class     string   `toml:"class"`
	Count     int      `toml:"count"`
	Length    int      `toml:"length"`
	Bits      int      `toml:"bits"`
	Signature string   `toml:"signature"`
	Methods   []string `toml:"methods"`
	Inner     *Node    `toml:"inner"`
}

// Parse decodes a definition from TOML data.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	md, err := toml.Decode(string(data), &def)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse definition")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown definition key %q", undecoded[0].String())
	}
	return &def, nil
}

// ParseFile reads and decodes a definition file.
func ParseFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, err
	}
	return Parse(data)
}
