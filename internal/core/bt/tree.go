package bt

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNilRoot    = errors.New("bt: tree root is nil")
	ErrNilNode    = errors.New("bt: child node is nil")
	ErrSharedNode = errors.New("bt: node has more than one parent")
)

// Tree owns the root node and is the entry point for callers driving ticks.
type Tree struct{ root Node }

// NewTree validates that the nodes reachable from root form a strict tree
// and wraps it.
func NewTree(root Node) (*Tree, error) {
	if isNil(root) {
		return nil, ErrNilRoot
	}
	if err := validate(root, make(map[Node]struct{})); err != nil {
		return nil, err
	}
	return &Tree{root: root}, nil
}

func validate(n Node, seen map[Node]struct{}) error {
	if reflect.TypeOf(n).Comparable() {
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: %q", ErrSharedNode, n.Name())
		}
		seen[n] = struct{}{}
	}
	for i, ch := range childrenOf(n) {
		if isNil(ch) {
			return fmt.Errorf("%w: child %d of %q", ErrNilNode, i, n.Name())
		}
		if err := validate(ch, seen); err != nil {
			return err
		}
	}
	return nil
}

// isNil reports nil interfaces as well as interfaces holding a nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func (t *Tree) Root() Node { return t.root }

// Tick ticks the root once and returns its status.
func (t *Tree) Tick(bb *Blackboard) Status {
	return t.root.Tick(bb)
}

// Reset abandons any Running work by resetting every node in the tree.
func (t *Tree) Reset() {
	t.root.Reset()
}

// Describe renders the tree as an indented outline, one node per line.
func (t *Tree) Describe() string {
	var sb strings.Builder
	Walk(t.root, func(n Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(kindOf(n))
		if name := n.Name(); name != "" {
			sb.WriteString(" ")
			sb.WriteString(name)
		}
		sb.WriteString("\n")
		return true
	})
	return sb.String()
}

// Walk visits n and its descendants depth-first in evaluation order.
// Returning false from fn stops the walk.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	for _, ch := range childrenOf(n) {
		if !walk(ch, depth+1, fn) {
			return false
		}
	}
	return true
}

func childrenOf(n Node) []Node {
	switch v := n.(type) {
	case *Sequence:
		return v.children
	case *Selector:
		return v.children
	default:
		return nil
	}
}

func kindOf(n Node) string {
	switch n.(type) {
	case *Sequence:
		return "Sequence"
	case *Selector:
		return "Selector"
	case *Condition:
		return "Condition"
	case *Action:
		return "Action"
	default:
		return fmt.Sprintf("%T", n)
	}
}
