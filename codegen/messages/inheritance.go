package messages

import (
	"fmt"
	"strings"

	"github.com/teranos/schemagen/catalog"
	"github.com/teranos/schemagen/errors"
)

// UnknownParentError reports a parent name absent from the catalog.
type UnknownParentError struct {
	Message string
	Parent  string
}

func (e *UnknownParentError) Error() string {
	return fmt.Sprintf("message %s: unknown parent %q", e.Message, e.Parent)
}

func (e *UnknownParentError) Is(target error) bool { return target == errors.ErrUnknownParent }

// CyclicInheritanceError reports a parent chain that revisits a type.
// Chain starts at Message and ends with the first repeated name.
type CyclicInheritanceError struct {
	Message string
	Chain   []string
}

func (e *CyclicInheritanceError) Error() string {
	return fmt.Sprintf("message %s: cyclic inheritance %s", e.Message, strings.Join(e.Chain, " -> "))
}

func (e *CyclicInheritanceError) Is(target error) bool { return target == errors.ErrCyclicInheritance }

// DuplicateMemberError reports a member declared by Type that Ancestor
// already declares.
type DuplicateMemberError struct {
	Member   string
	Type     string
	Ancestor string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("message %s: member %q is already declared by ancestor %s", e.Type, e.Member, e.Ancestor)
}

func (e *DuplicateMemberError) Is(target error) bool { return target == errors.ErrDuplicateMember }

// InvalidDescriptorError reports a descriptor key outside catalog.DescriptorKinds.
type InvalidDescriptorError struct {
	Type   string
	Member string
	Key    string
}

func (e *InvalidDescriptorError) Error() string {
	allowed := make([]string, len(catalog.DescriptorKinds))
	for i, k := range catalog.DescriptorKinds {
		allowed[i] = string(k)
	}
	return fmt.Sprintf("message %s: member %q has invalid descriptor %q (allowed: %s)",
		e.Type, e.Member, e.Key, strings.Join(allowed, ", "))
}

func (e *InvalidDescriptorError) Is(target error) bool { return target == errors.ErrInvalidDescriptor }

// Validate checks every message of cat, in catalog order, and returns the
// first violation.
func Validate(cat *catalog.MessageCatalog) error {
	for _, def := range cat.Messages {
		if _, err := Ancestors(cat, def.Name); err != nil {
			return err
		}
	}
	return nil
}

// Ancestors walks the parent chain of the message called name and returns
// the ancestor names, nearest first. While walking it checks that no node
// redeclares a member of any node above it and that every descriptor key on
// the chain is an allowed kind.
func Ancestors(cat *catalog.MessageCatalog, name string) ([]string, error) {
	def, ok := cat.Lookup(name)
	if !ok {
		return nil, errors.Newf("message %s is not in the catalog", name)
	}
	if err := checkDescriptors(def); err != nil {
		return nil, err
	}

	visited := map[string]bool{def.Name: true}
	chain := []string{def.Name}
	walked := []catalog.MessageDefinition{def}

	current := def
	for current.HasParent() {
		parent, ok := cat.Lookup(current.Parent)
		if !ok {
			return nil, &UnknownParentError{Message: current.Name, Parent: current.Parent}
		}
		chain = append(chain, parent.Name)
		if visited[parent.Name] {
			return nil, &CyclicInheritanceError{Message: def.Name, Chain: chain}
		}
		visited[parent.Name] = true

		if err := checkDescriptors(parent); err != nil {
			return nil, err
		}
		for _, node := range walked {
			for _, m := range node.Members {
				if _, dup := parent.Member(m.Name); dup {
					return nil, &DuplicateMemberError{Member: m.Name, Type: node.Name, Ancestor: parent.Name}
				}
			}
		}

		walked = append(walked, parent)
		current = parent
	}
	return chain[1:], nil
}

func checkDescriptors(def catalog.MessageDefinition) error {
	for _, m := range def.Members {
		for _, d := range m.Descriptors {
			if !d.Kind.Valid() {
				return &InvalidDescriptorError{Type: def.Name, Member: m.Name, Key: string(d.Kind)}
			}
		}
	}
	return nil
}
