// SPDX-License-Identifier: MIT
package exec

// Cube is the minimal surface an executable cell needs from its own
// enclosing cube: a name (for diagnostics and self-reference by name) and
// the ability to re-enter evaluation (a cell that recurses into its own
// cube with a derived coordinate).
type Cube interface {
	Name() string
	GetCell(ctx *Ctx, input map[string]interface{}) (interface{}, error)
}

// Resolver looks up a cube by application id and name. It is the collaborator
// the core threads through Ctx so cells can reference other cubes without
// the cube package owning any cross-cube pointers.
type Resolver interface {
	GetCube(appID, name string) (Cube, bool)
}

// Ctx is the evaluation context passed to every Executable. It is
// constructed fresh per get_cell invocation and threaded through nested
// calls; it carries no global or process-wide state.
type Ctx struct {
	// Input is the coordinate map the current evaluation pass is matching
	// against. Cells may read it to compute their result.
	Input map[string]interface{}

	// Output accumulates side-channel results of the evaluation, including
	// the "return" key the cube sets to the final value.
	Output map[string]interface{}

	// Cube is the enclosing cube, for self-reference and diagnostics.
	Cube Cube

	// AppID scopes cross-cube resolution through Resolver.
	AppID string

	// Resolver resolves other cubes by name; nil if the cube was not given
	// one (cells that call referenced cubes will fail if so).
	Resolver Resolver

	// Stack is the shared per-evaluation call stack; see Stack.
	Stack *Stack
}

// Executable is the capability a stored cell value must implement for the
// cube to invoke it rather than return it verbatim. The core does not care
// how an Executable is compiled or dispatched, only that it satisfies this
// interface.
type Executable interface {
	// Execute runs the cell and returns its result, or an error. A RuleStop
	// or RuleJump error is recognized by the cube loop as a control signal,
	// not a failure; any other error is wrapped into CellExecutionError by
	// the caller.
	Execute(ctx *Ctx) (interface{}, error)

	// ReferencedCubeNames appends the names of any cube this cell might call
	// during Execute, so the cube can collect optional scope transitively.
	ReferencedCubeNames(out map[string]struct{})

	// ScopeKeys appends any "input.<name>" keys this cell's source
	// references, contributing to optional scope discovery.
	ScopeKeys(out map[string]struct{})
}

// URLProvider is an optional capability an Executable may also implement to
// expose a backing resource URL.
type URLProvider interface {
	URL() (string, bool)
}

// CmdProvider is an optional capability exposing the cell's raw source text
// or command string.
type CmdProvider interface {
	Cmd() (string, bool)
}

// Cacheable is an optional capability reporting whether the cell's result
// may be memoized across evaluations.
type Cacheable interface {
	IsCacheable() bool
}
