// Package seq provides generic linked containers: a singly linked List, a
// CircularList, a DoublyList, and the Stack and Queue disciplines built on
// top of List.
//
// The zero value of every container is an empty container ready to use.
// Containers have value semantics through Clone and Assign, which always
// produce storage disjoint from the source. None of the containers are safe
// for concurrent use.
package seq

import "github.com/emirpasic/gods/containers"

// Sequence is the positional operation set shared by List, CircularList and
// DoublyList.
type Sequence[T comparable] interface {
	PushFront(value T)
	PushBack(value T)
	Insert(index int, value T) error
	RemoveValue(value T) bool
	RemoveAt(index int) error
	At(index int) (*T, error)

	containers.Container
	// Empty() bool
	// Size() int
	// Clear()
	// Values() []interface{}
	// String() string
}

var (
	_ Sequence[int]        = (*List[int])(nil)
	_ Sequence[int]        = (*CircularList[int])(nil)
	_ Sequence[int]        = (*DoublyList[int])(nil)
	_ containers.Container = (*Stack[int])(nil)
	_ containers.Container = (*Queue[int])(nil)
)

// toValues converts a typed snapshot into the untyped form required by
// containers.Container.
func toValues[T any](items []T) []interface{} {
	values := make([]interface{}, len(items))
	for i, item := range items {
		values[i] = item
	}
	return values
}
