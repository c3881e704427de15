package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avral/tessera/pkg/domain"
)

// Match is the result of resolving an invocation against the manifest.
type Match struct {
	// Program is the resolved unit of dispatch.
	Program *domain.Program

	// Name is the manifest key the program was registered under; "" for a
	// namespace root program.
	Name string

	// Path is the matched path prefix, e.g. "/blog/edit".
	Path string

	// Args are the trailing invocation segments after the matched path.
	Args []string

	// Superformat is the short renderer name split off the terminal path
	// segment ("json" in "/user/profile.json"), if any.
	Superformat string

	// SuperformatMime is the mimetype the superformat maps to. It
	// overrides content negotiation for the request.
	SuperformatMime string
}

// ParseInvocation resolves an invocation string for a controller tag.
// Matching is strict longest-prefix over the reachable path set; trailing
// and missing leading slashes are tolerated. Returns ErrProgramNotFound
// when no path is a prefix of the invocation.
func (n *Node) ParseInvocation(invocation, controllerTag string) (*Match, error) {
	norm := Normalize(invocation)
	segs := splitPath(norm)
	routes := n.routesFor(controllerTag)

	paths := make([]string, 0, len(routes))
	for path := range routes {
		paths = append(paths, path)
	}
	// Longest prefix wins; lexicographic order only breaks ties between
	// equal-length candidates, which cannot both match one invocation.
	sort.Slice(paths, func(i, j int) bool {
		li, lj := len(splitPath(paths[i])), len(splitPath(paths[j]))
		if li != lj {
			return li > lj
		}
		return paths[i] < paths[j]
	})

	for _, path := range paths {
		super, ok := matchPrefix(segs, splitPath(path))
		if !ok {
			continue
		}
		r := routes[path]
		return &Match{
			Program:         r.program,
			Name:            r.name,
			Path:            path,
			Args:            append([]string(nil), segs[len(splitPath(path)):]...),
			Superformat:     super,
			SuperformatMime: domain.MimetypeForSuperformat(super),
		}, nil
	}

	return nil, fmt.Errorf("%w: no path matches %q for controller %q", domain.ErrProgramNotFound, norm, controllerTag)
}

// matchPrefix reports whether pathSegs is a prefix of invSegs. The terminal
// path segment may additionally match with a known superformat suffix
// stripped ("profile.json" matches "profile"); the stripped name is
// returned.
func matchPrefix(invSegs, pathSegs []string) (superformat string, ok bool) {
	if len(invSegs) < len(pathSegs) {
		return "", false
	}
	for i, want := range pathSegs {
		got := invSegs[i]
		if got == want {
			continue
		}
		if i == len(pathSegs)-1 {
			if name, stripped := stripSuperformat(got); stripped && name == want {
				// Suffix only applies when the segment terminates the
				// invocation; a dotted middle segment is an argument.
				if i == len(invSegs)-1 {
					ext := got[len(name)+1:]
					return ext, true
				}
			}
		}
		return "", false
	}
	return "", true
}

// stripSuperformat splits a trailing ".ext" off seg when ext is a known
// superformat name.
func stripSuperformat(seg string) (string, bool) {
	idx := strings.LastIndex(seg, ".")
	if idx <= 0 {
		return seg, false
	}
	if !domain.KnownSuperformat(seg[idx+1:]) {
		return seg, false
	}
	return seg[:idx], true
}

// Normalize canonicalizes an invocation: leading slash ensured, trailing
// slash stripped, empty string becomes "/". "/blog/5/", "/blog/5" and
// "blog/5" are equivalent.
func Normalize(invocation string) string {
	invocation = strings.TrimSuffix(invocation, "/")
	if invocation == "" {
		return "/"
	}
	if !strings.HasPrefix(invocation, "/") {
		invocation = "/" + invocation
	}
	return invocation
}
