package project

import (
	"strings"

	"github.com/matzehuels/memlayout/pkg/errors"
	"github.com/matzehuels/memlayout/pkg/node"
)

// ReferencedError is returned by [Project.Remove] when other classes still
// refer to the class being removed.
type ReferencedError struct {
	Class        *node.ClassNode   // the class that could not be removed
	ReferencedBy []*node.ClassNode // classes holding a reference to Class
}

// Error implements the error interface.
func (e *ReferencedError) Error() string {
	names := make([]string, len(e.ReferencedBy))
	for i, c := range e.ReferencedBy {
		names[i] = c.Name
	}
	return "class " + e.Class.Name + " is referenced by " + strings.Join(names, ", ")
}

// Code returns the error code for this error type.
func (e *ReferencedError) Code() errors.Code { return errors.ErrCodeReferenced }

// Unwrap exposes the coded error so errors.Is(err, ErrCodeReferenced) holds.
func (e *ReferencedError) Unwrap() error {
	return errors.New(errors.ErrCodeReferenced, "class %s is still referenced", e.Class.Name)
}
