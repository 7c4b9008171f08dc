package utils

import (
	"sync"
)

// Tree is a navigation view over a nested configuration: every block
// becomes a node, every attribute an item on the owning node.
//
// Tree is thread-safe for concurrent access. All methods use appropriate
// locking to protect shared state. The Data field uses sync.Map for
// lock-free concurrent access.
type Tree struct {
	mu    sync.RWMutex
	Name  string
	Data  sync.Map
	Up    *Tree
	Downs []*Tree
}

// NewTree creates a new tree with the given name
func NewTree(name string) *Tree {
	return &Tree{Name: name, Data: sync.Map{}}
}

// AddNode adds a new node to the tree. It returns the newly created node.
// If a node with the same name already exists, returns the existing node.
func (t *Tree) AddNode(name string) *Tree {
	t.mu.Lock()
	defer t.mu.Unlock()

	// existence check must be inside the lock to avoid TOCTOU
	first := findNodeByName(t.Downs, name)
	if first != nil {
		return first
	}

	child := NewTree(name)
	t.Downs = append(t.Downs, child)
	child.Up = t
	return child
}

// AddNodes adds a new node to the tree, and then recursively adds the given
// names as children to the new node, creating a path.
// Returns the leaf node at the end of the path.
func (t *Tree) AddNodes(tag string, names ...string) *Tree {
	node := t.AddNode(tag)
	for _, name := range names {
		node = node.AddNode(name)
	}
	return node
}

func findNodeByName(downs []*Tree, name string) *Tree {
	for _, down := range downs {
		if down.Name == name {
			return down
		}
	}
	return nil
}

// GetNode returns the node at the specified path (tag + names).
// If tag is empty, returns self. If the node does not exist, returns nil.
// Example: GetNode("service", "http", "web") returns the node at path
// service/http/web.
func (t *Tree) GetNode(tag string, names ...string) *Tree {
	if tag == "" {
		return t
	}

	t.mu.RLock()
	down := findNodeByName(t.Downs, tag)
	t.mu.RUnlock()

	if down == nil {
		return nil
	}

	for _, name := range names {
		down.mu.RLock()
		next := findNodeByName(down.Downs, name)
		down.mu.RUnlock()

		if next == nil {
			return nil
		}
		down = next
	}

	return down
}

// DeleteNode deletes the node with the given name.
func (t *Tree) DeleteNode(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, item := range t.Downs {
		if item.Name == name {
			if i+1 == len(t.Downs) {
				t.Downs = t.Downs[:i]
			} else {
				t.Downs = append(t.Downs[:i], t.Downs[i+1:]...)
			}
			return
		}
	}
}

// AddItem adds or updates a key-value pair in the tree's data storage.
func (t *Tree) AddItem(k string, v any) {
	t.Data.Store(k, v)
}

// DeleteItem removes a key-value pair from the tree's data storage.
func (t *Tree) DeleteItem(k string) {
	t.Data.Delete(k)
}

// FindNode searches for a node by following a path of names through the tree.
// Returns nil if any part of the path is not found.
// Example: FindNode([]string{"service", "http"}) finds the http node under
// service, at any depth.
func (t *Tree) FindNode(names []string) *Tree {
	if len(names) == 0 {
		return nil
	}

	// copy children so the lock is not held during recursion
	t.mu.RLock()
	downs := make([]*Tree, len(t.Downs))
	copy(downs, t.Downs)
	t.mu.RUnlock()

	var down *Tree
	for _, item := range downs {
		if item.Name == names[0] {
			if len(names) == 1 {
				return item
			}
			return item.FindNode(names[1:])
		} else {
			down = item.FindNode(names)
			if down != nil {
				return down
			}
		}
	}

	return nil
}

// Variables returns all items in the tree, including those of descendant
// nodes, as a generic nested map keyed by node name.
func (t *Tree) Variables() map[string]any {
	hash := make(map[string]any)

	// copy children so the lock is not held during recursion
	t.mu.RLock()
	downs := make([]*Tree, len(t.Downs))
	copy(downs, t.Downs)
	t.mu.RUnlock()

	for _, down := range downs {
		if variables := down.Variables(); variables != nil {
			hash[down.Name] = variables
		}
	}

	// Data.Range is already thread-safe (sync.Map)
	t.Data.Range(func(k, v any) bool {
		hash[k.(string)] = v
		return true
	})

	return hash
}
