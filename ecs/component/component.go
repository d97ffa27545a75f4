package component

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID names a component store. Zero is never issued.
type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	names           sync.Map // ComponentID -> string
)

// String returns the Go type registered under id.
func (id ComponentID) String() string {
	if name, ok := names.Load(id); ok {
		return name.(string)
	}
	return fmt.Sprintf("component#%d", uint32(id))
}

// ComponentKind identifies one component store. Each call to
// NewComponentKind yields a distinct store even for the same T.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	var zero T
	names.Store(id, fmt.Sprintf("%T", zero))
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// Name is the component's Go type, for errors and logs.
func (k ComponentKind[T]) Name() string { return k.id.String() }

// ComponentHandle is the package-level registration of a component type,
// e.g. `var TransformComponent = NewComponent[Transform]()`.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
