package dia

import (
	"fmt"
	"slices"
)

// ResolveChain walks the dependency links from id down to its base layer
// and returns the ids in composite order: base layer first, requested id
// last. The walk is iterative with an explicit visited set, so chain
// length is bounded only by memory and a repeated id is caught before
// its edge is followed (an id depending on itself fails on its second
// visit).
//
// Only the dependency links are consulted here; whether every id has an
// image entry is checked later, when the layer is actually loaded.
func ResolveChain(cat *Catalog, id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyAssetID
	}

	var chain []string
	visited := make(map[string]bool)
	for current := id; ; {
		if visited[current] {
			return nil, fmt.Errorf("%w involving %q", ErrCircularDependency, current)
		}
		visited[current] = true
		chain = append(chain, current)

		parent, ok := cat.ParentOf(current)
		if !ok {
			// No dependency entry: current is the base layer.
			break
		}
		current = parent
	}

	slices.Reverse(chain)
	return chain, nil
}
