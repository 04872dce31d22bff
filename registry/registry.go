// SPDX-License-Identifier: MIT
//
// registry.go — Memory, a process-local, mutex-guarded catalog of cubes
// keyed by (appID, name). It is the simplest exec.Resolver implementation:
// a cube wired to it can call sibling cubes by name without the cube
// package owning any cross-cube pointers.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/katalvlaran/ncube/cube"
	"github.com/katalvlaran/ncube/exec"
)

// ErrCubeExists indicates AddCube was called for a name already registered
// under the given appID.
type ErrCubeExists struct {
	AppID string
	Name  string
}

func (e *ErrCubeExists) Error() string {
	return fmt.Sprintf("registry: cube %q already registered for app %q", e.Name, e.AppID)
}

// Memory is an in-memory exec.Resolver. The zero value is not usable; build
// one with New.
type Memory struct {
	mu    sync.RWMutex
	cubes map[string]map[string]*cube.Cube // appID -> lower(name) -> cube
}

// New returns an empty registry.
func New() *Memory {
	return &Memory{cubes: make(map[string]map[string]*cube.Cube)}
}

// AddCube registers c under appID, keyed case-insensitively by c.Name(). It
// also wires c.Resolver and c.AppID back to this registry so cells stored in
// c can resolve sibling cubes transparently.
func (m *Memory) AddCube(appID string, c *cube.Cube) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	byName, ok := m.cubes[appID]
	if !ok {
		byName = make(map[string]*cube.Cube)
		m.cubes[appID] = byName
	}
	key := strings.ToLower(c.Name())
	if _, exists := byName[key]; exists {
		return &ErrCubeExists{AppID: appID, Name: c.Name()}
	}
	byName[key] = c
	c.Resolver = m
	c.AppID = appID
	return nil
}

// RemoveCube unregisters the named cube, if present.
func (m *Memory) RemoveCube(appID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if byName, ok := m.cubes[appID]; ok {
		delete(byName, strings.ToLower(name))
	}
}

// GetCube satisfies exec.Resolver: it looks up a cube by (appID, name),
// case-insensitively on name.
func (m *Memory) GetCube(appID, name string) (exec.Cube, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byName, ok := m.cubes[appID]
	if !ok {
		return nil, false
	}
	c, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return c, true
}

// List returns the names of every cube registered under appID.
func (m *Memory) List(appID string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byName, ok := m.cubes[appID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(byName))
	for _, c := range byName {
		out = append(out, c.Name())
	}
	return out
}

var _ exec.Resolver = (*Memory)(nil)
