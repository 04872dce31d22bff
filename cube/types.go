// SPDX-License-Identifier: MIT
package cube

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/ncube/axis"
	"github.com/katalvlaran/ncube/exec"
	"github.com/katalvlaran/ncube/value"
)

// cellEntry is the stored payload at one cell key: the column ids that
// identify it (kept for diagnostics and export) and the value or executable
// cell itself.
type cellEntry struct {
	ColumnIDs []uint64
	Value     interface{}
}

// Cube is an N-axis sparse cell store. Axis catalog mutation and cell/cache
// mutation are guarded by separate locks — muCatalog protects axisOrder and
// axesByName, muCells protects cells and the derived caches — so that reads
// of a stable cube incur minimal contention. Axis-shape mutations
// (AddAxis/RemoveAxis) must take both locks since they also clear cells.
type Cube struct {
	// name backs the Name() method rather than an exported field, since
	// exec.Cube requires Name() as a method and Go forbids a field and a
	// method of the same identifier on one type.
	name string

	// DefaultValue is returned (and, if executable, invoked) whenever
	// get_cell finds no stored cell at the bound coordinate. nil means the
	// cube has no cube-level default and a miss raises CoordinateNotFound.
	DefaultValue interface{}
	Meta         map[string]interface{}

	// Logger defaults to a discard logger so library consumers opt in to
	// tracing explicitly.
	Logger *logrus.Logger

	muCatalog  sync.RWMutex
	axisOrder  []string // axis names, original case, insertion order
	axesByName map[string]*axis.Axis
	nextAxisID uint64

	muCells sync.RWMutex
	cells   map[string]*cellEntry

	sha1Cache     string
	sha1Valid     bool
	reqScopeCache map[string]struct{}
	optScopeCache map[string]struct{}
	scopeValid    bool

	// Resolver and AppID let GetCell construct an exec.Ctx for cells that
	// reference sibling cubes by name; both may be nil for a standalone
	// cube that never calls out.
	Resolver exec.Resolver
	AppID    string
}

// New constructs an empty, unnamed-axis Cube. name is used for diagnostics,
// stack frames, and CellExecutionError.
func New(name string) *Cube {
	discard := logrus.New()
	discard.SetOutput(nilWriter{})
	return &Cube{
		name:       name,
		Meta:       make(map[string]interface{}),
		Logger:     discard,
		axesByName: make(map[string]*axis.Axis),
		cells:      make(map[string]*cellEntry),
	}
}

// Name returns the cube's name, satisfying exec.Cube.
func (c *Cube) Name() string { return c.name }

type nilWriter struct{}

func (nilWriter) Write(p []byte) (int, error) { return len(p), nil }

// AddAxis creates and registers a new axis, allocating it a process-stable
// id. Adding an axis changes the cube's shape, so every existing cell is
// dropped and the sha1/scope caches are invalidated.
func (c *Cube) AddAxis(name string, typ axis.Type, valueType value.ValueType, order axis.Order, fireAll bool) (*axis.Axis, error) {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	key := strings.ToLower(name)
	if _, exists := c.axesByName[key]; exists {
		return nil, fmt.Errorf("%w: %q", ErrAxisExists, name)
	}

	id := atomic.AddUint64(&c.nextAxisID, 1)
	a := axis.New(id, name, typ, valueType, order)
	a.FireAll = fireAll

	c.axesByName[key] = a
	c.axisOrder = append(c.axisOrder, name)
	c.clearCellsLocked()
	c.invalidateCachesLocked()
	c.Logger.WithFields(logrus.Fields{"cube": c.name, "axis": name, "type": typ.String()}).Debug("axis added")
	return a, nil
}

// RemoveAxis deletes the named axis. Like AddAxis, this changes the cube's
// shape and drops every cell.
func (c *Cube) RemoveAxis(name string) error {
	c.muCatalog.Lock()
	defer c.muCatalog.Unlock()

	key := strings.ToLower(name)
	if _, exists := c.axesByName[key]; !exists {
		return fmt.Errorf("%w: %q", ErrAxisNotFound, name)
	}
	delete(c.axesByName, key)
	for i, n := range c.axisOrder {
		if strings.EqualFold(n, name) {
			c.axisOrder = append(c.axisOrder[:i], c.axisOrder[i+1:]...)
			break
		}
	}
	c.clearCellsLocked()
	c.invalidateCachesLocked()
	c.Logger.WithFields(logrus.Fields{"cube": c.name, "axis": name}).Debug("axis removed")
	return nil
}

// Axis returns the named axis, case-insensitively.
func (c *Cube) Axis(name string) (*axis.Axis, bool) {
	c.muCatalog.RLock()
	defer c.muCatalog.RUnlock()
	a, ok := c.axesByName[strings.ToLower(name)]
	return a, ok
}

// AxisByID returns the axis with the given id, the reverse-lookup side of
// column.AxisIDOf used by collaborators (jsonio, persist) that only have a
// column id in hand and need its owning axis.
func (c *Cube) AxisByID(id uint64) (*axis.Axis, bool) {
	c.muCatalog.RLock()
	defer c.muCatalog.RUnlock()
	for _, a := range c.axesByName {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Axes returns every axis in insertion order.
func (c *Cube) Axes() []*axis.Axis {
	c.muCatalog.RLock()
	defer c.muCatalog.RUnlock()
	out := make([]*axis.Axis, 0, len(c.axisOrder))
	for _, name := range c.axisOrder {
		out = append(out, c.axesByName[strings.ToLower(name)])
	}
	return out
}

// clearCellsLocked drops every cell. Callers must hold muCatalog for write;
// it takes muCells itself.
func (c *Cube) clearCellsLocked() {
	c.muCells.Lock()
	c.cells = make(map[string]*cellEntry)
	c.muCells.Unlock()
}

// invalidateCachesLocked clears the sha1 and scope-key caches. Callers must
// hold muCatalog for write.
func (c *Cube) invalidateCachesLocked() {
	c.muCells.Lock()
	c.sha1Valid = false
	c.scopeValid = false
	c.muCells.Unlock()
}
