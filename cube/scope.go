// SPDX-License-Identifier: MIT
//
// scope.go — required/optional scope key computation, cached at the cube
// level and invalidated by every catalog or cell mutation.
package cube

import (
	"fmt"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/exec"
)

// RequiredScopeMetaKey is the cube meta-property holding any additional
// required scope keys beyond the implicit per-axis ones.
const RequiredScopeMetaKey = "requiredScopeKeys"

// checkRequiredScope raises ErrMissingScope if input omits a value for any
// required scope key.
func (c *Cube) checkRequiredScope(input map[string]interface{}) error {
	required := c.RequiredScope()
	for key := range required {
		if _, ok := lookupInput(input, key); !ok {
			return fmt.Errorf("%w: %q", ErrMissingScope, key)
		}
	}
	return nil
}

// RequiredScope returns the set of input keys every GetCell call must
// supply: the name of every non-default, non-rule axis, plus any keys
// declared in the cube's "requiredScopeKeys" meta-property.
func (c *Cube) RequiredScope() map[string]struct{} {
	out := make(map[string]struct{})
	for _, a := range c.Axes() {
		if a.Type == axis.Rule {
			continue
		}
		if a.Default() != nil {
			continue
		}
		out[a.Name] = struct{}{}
	}
	if extra, ok := c.Meta[RequiredScopeMetaKey].([]string); ok {
		for _, k := range extra {
			out[k] = struct{}{}
		}
	}
	return out
}

// OptionalScope returns every axis that has a default column or is a RULE
// axis, plus every "input.<name>" reference text-scanned out of executable
// cells and rule conditions, plus recursive optional scope from any cube
// referenced by name — all minus the required scope. resolver and appID may
// be nil/empty, in which case cross-cube recursion is skipped. A visited
// set guards against reference cycles between cubes.
func (c *Cube) OptionalScope(resolver exec.Resolver, appID string) map[string]struct{} {
	c.muCells.RLock()
	if c.scopeValid {
		cached := copyScopeSet(c.optScopeCache)
		c.muCells.RUnlock()
		return cached
	}
	c.muCells.RUnlock()

	visited := make(map[string]struct{})
	out := make(map[string]struct{})
	c.collectOptionalScope(resolver, appID, visited, out)

	required := c.RequiredScope()
	for k := range required {
		delete(out, k)
	}

	c.muCells.Lock()
	c.optScopeCache = copyScopeSet(out)
	c.reqScopeCache = copyScopeSet(required)
	c.scopeValid = true
	c.muCells.Unlock()
	return out
}

func copyScopeSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for k := range in {
		out[k] = struct{}{}
	}
	return out
}

func (c *Cube) collectOptionalScope(resolver exec.Resolver, appID string, visited, out map[string]struct{}) {
	if _, seen := visited[c.name]; seen {
		return
	}
	visited[c.name] = struct{}{}

	for _, a := range c.Axes() {
		if a.Default() != nil || a.Type == axis.Rule {
			out[a.Name] = struct{}{}
		}
		if a.Type != axis.Rule {
			continue
		}
		// Rule conditions contribute scope keys and cube references the
		// same way executable cells do.
		for _, col := range a.Columns() {
			if execCell, ok := col.Value.Expression().(exec.Executable); ok {
				scanExecutable(execCell, resolver, appID, visited, out)
			}
		}
	}

	for _, entry := range c.snapshotCells() {
		if execCell, ok := entry.(exec.Executable); ok {
			scanExecutable(execCell, resolver, appID, visited, out)
		}
	}
}

// scanExecutable harvests one executable's scope keys and recurses into any
// cube it references by name.
func scanExecutable(execCell exec.Executable, resolver exec.Resolver, appID string, visited, out map[string]struct{}) {
	keys := make(map[string]struct{})
	execCell.ScopeKeys(keys)
	for k := range keys {
		out[k] = struct{}{}
	}

	refs := make(map[string]struct{})
	execCell.ReferencedCubeNames(refs)
	if resolver == nil {
		return
	}
	for name := range refs {
		other, ok := resolver.GetCube(appID, name)
		if !ok {
			continue
		}
		realCube, ok := other.(*Cube)
		if !ok {
			continue
		}
		realCube.collectOptionalScope(resolver, appID, visited, out)
	}
}

// snapshotCells returns every stored cell value, for scope and SHA-1
// computation. Cells are not mutated by callers of this slice.
func (c *Cube) snapshotCells() []interface{} {
	c.muCells.RLock()
	defer c.muCells.RUnlock()
	out := make([]interface{}, 0, len(c.cells))
	for _, entry := range c.cells {
		out = append(out, entry.Value)
	}
	return out
}
