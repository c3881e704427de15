// Package manifest implements the routing tree that maps slash-delimited
// invocations to programs. A manifest is built once at startup from a
// declarative structure and is read-only while serving.
package manifest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/avral/tessera/pkg/domain"
)

var keyPattern = regexp.MustCompile(`^\w*$`)

// Entry is one manifest value: a program, an ordered program list, a
// nested manifest node, or an alias to a sibling key. The four variants
// are a closed set.
type Entry interface {
	entry()
}

type programEntry struct {
	program *domain.Program
}

type listEntry struct {
	programs []*domain.Program
}

type aliasEntry struct {
	target string
}

func (programEntry) entry() {}
func (listEntry) entry()    {}
func (aliasEntry) entry()   {}
func (*Node) entry()        {}

// Program wraps a single program as a manifest entry.
func Program(p *domain.Program) Entry {
	return programEntry{program: p}
}

// List wraps sibling programs sharing one key. Resolution picks the first
// program serving the requesting controller tag.
func List(programs ...*domain.Program) Entry {
	return listEntry{programs: programs}
}

// Alias redirects a key to another key in the same node.
func Alias(target string) Entry {
	return aliasEntry{target: target}
}

// Node is one namespace in the manifest tree. The empty key "" denotes the
// namespace's root program: it catches invocations that match the node's
// path but no deeper key.
type Node struct {
	entries map[string]Entry

	mu     sync.RWMutex
	routes map[string]map[string]route
}

type route struct {
	program *domain.Program
	name    string
}

// New validates keys and values and builds a manifest node.
// Keys must match ^\w*$; aliases must resolve, without cycles, to an entry
// in the same node. Validation failures are fatal configuration errors.
func New(entries map[string]Entry) (*Node, error) {
	n := &Node{
		entries: make(map[string]Entry, len(entries)),
		routes:  make(map[string]map[string]route),
	}
	for key, e := range entries {
		if !keyPattern.MatchString(key) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidManifestKey, key)
		}
		if e == nil {
			return nil, fmt.Errorf("%w: nil entry at key %q", domain.ErrInvalidManifestValue, key)
		}
		n.entries[key] = e
	}
	for key := range n.entries {
		if _, err := n.deref(key); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// MustNew is New that panics. Meant for static manifests built at init.
func MustNew(entries map[string]Entry) *Node {
	n, err := New(entries)
	if err != nil {
		panic(err)
	}
	return n
}

// deref follows alias chains starting at key and returns the terminal
// non-alias entry. Cycles and dangling targets are configuration errors.
func (n *Node) deref(key string) (Entry, error) {
	visited := map[string]bool{}
	for {
		if visited[key] {
			return nil, fmt.Errorf("%w: alias cycle at key %q", domain.ErrInvalidManifestValue, key)
		}
		visited[key] = true
		e, ok := n.entries[key]
		if !ok {
			return nil, fmt.Errorf("%w: alias target %q does not exist", domain.ErrInvalidManifestValue, key)
		}
		alias, isAlias := e.(aliasEntry)
		if !isAlias {
			return e, nil
		}
		key = alias.target
	}
}

// URLs enumerates every concrete path reachable by the given controller
// tag, sorted. Programs declaring no controller tags are reachable from
// every tag.
func (n *Node) URLs(controllerTag string) []string {
	routes := n.routesFor(controllerTag)
	urls := make([]string, 0, len(routes))
	for path := range routes {
		urls = append(urls, path)
	}
	sort.Strings(urls)
	return urls
}

func (n *Node) routesFor(tag string) map[string]route {
	n.mu.RLock()
	cached, ok := n.routes[tag]
	n.mu.RUnlock()
	if ok {
		return cached
	}

	out := make(map[string]route)
	n.collect(tag, "", out)

	n.mu.Lock()
	n.routes[tag] = out
	n.mu.Unlock()
	return out
}

// collect walks the tree depth-first, registering one route per reachable
// program. prefix is "" at the root.
func (n *Node) collect(tag, prefix string, out map[string]route) {
	for key := range n.entries {
		path := prefix + "/" + key
		if key == "" {
			path = prefix
			if path == "" {
				path = "/"
			}
		}

		resolved, err := n.deref(key)
		if err != nil {
			continue // unreachable: New validated every alias
		}

		switch v := resolved.(type) {
		case programEntry:
			if v.program.ServesController(tag) {
				out[path] = route{program: v.program, name: key}
			}
		case listEntry:
			for _, p := range v.programs {
				if p.ServesController(tag) {
					out[path] = route{program: p, name: key}
					break
				}
			}
		case *Node:
			childPrefix := path
			if key == "" {
				childPrefix = prefix
			}
			v.collect(tag, childPrefix, out)
		}
	}
}

// splitPath converts a normalized path into its segments; "/" yields none.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
