// Package pathtree provides a data structure
// that stores values organized under a /-separated path hierarchy
// and reads them back as an ordered tree.
//
// For example, setting values for 'tour/basics' and 'tour/optionals'
// yields a snapshot with a single 'tour' node
// holding both pages as children, sorted by name.
package pathtree

import (
	"sort"
	"strings"
)

const _sep = '/'

// Root is the starting point of the path tree.
// The zero value of Root is an empty tree.
type Root[T any] struct {
	root node[T]
}

// Set adds a value to the tree under the given path.
// If this path already had a value specified, it will be overwritten.
func (r *Root[T]) Set(p string, v T) {
	r.root.Set(p, &v)
}

// Snapshot is a snapshot of values added to the tree
// presented in a hierarchical manner.
type Snapshot[T any] struct {
	// Value in the tree,
	// or nil if this node doesn't have an explicit value.
	Value *T
	// Path to this node.
	Path string
	// Children of this node, ordered by name.
	Children []Snapshot[T]
}

// Snapshot builds and returns a snapshot of all values
// in this path tree.
//
// The returned slice holds nodes closest to root.
func (r *Root[T]) Snapshot() []Snapshot[T] {
	return r.root.Snapshot(nil).Children
}

// node is a single level of the tree.
// Children are held in a slice sorted by name
// so that snapshots come out ordered without an extra sort.
type node[T any] struct {
	value    *T
	children []child[T]
}

type child[T any] struct {
	name string
	node *node[T]
}

// find returns the index at which a child with the given name is,
// or should be inserted.
func (n *node[T]) find(name string) int {
	return sort.Search(len(n.children), func(i int) bool {
		return n.children[i].name >= name
	})
}

func (n *node[T]) ensureChild(name string) *node[T] {
	i := n.find(name)
	if i < len(n.children) && n.children[i].name == name {
		return n.children[i].node
	}

	c := child[T]{name: name, node: new(node[T])}
	n.children = append(n.children, child[T]{})
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	return c.node
}

func (n *node[T]) Set(p string, v *T) {
	if len(p) == 0 {
		n.value = v
		return
	}

	head, tail := split(p)
	n.ensureChild(head).Set(tail, v)
}

func (n *node[T]) Snapshot(path []string) Snapshot[T] {
	var children []Snapshot[T]
	if len(n.children) > 0 {
		children = make([]Snapshot[T], len(n.children))
		for i, c := range n.children {
			children[i] = c.node.Snapshot(append(path, c.name))
		}
	}

	return Snapshot[T]{
		Value:    n.value,
		Path:     strings.Join(path, string(_sep)),
		Children: children,
	}
}

func split(p string) (head, tail string) {
	head, tail = p, ""
	if idx := strings.IndexByte(p, _sep); idx >= 0 {
		head, tail = p[:idx], p[idx+1:]
	}
	// Collapse any extra slashes at the start of the tail.
	for len(tail) > 0 && tail[0] == _sep {
		tail = tail[1:]
	}
	return head, tail
}
