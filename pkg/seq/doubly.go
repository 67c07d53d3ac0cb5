package seq

import (
	"strings"

	"github.com/emirpasic/gods/utils"
	"github.com/sagernet/sing/common"
)

// ==================== DOUBLY LINKED LIST ====================

// dlistNode owns its successor through next. prev is only a navigation aid
// and never keeps a node alive on its own.
type dlistNode[T any] struct {
	value T
	prev  *dlistNode[T]
	next  *dlistNode[T]
}

// DoublyList is a doubly linked list. Indexed access walks from whichever
// end is closer.
type DoublyList[T comparable] struct {
	head *dlistNode[T]
	tail *dlistNode[T]
	size int
}

// NewDoublyList creates a doubly linked list holding values in order
func NewDoublyList[T comparable](values ...T) *DoublyList[T] {
	d := &DoublyList[T]{}
	for _, v := range values {
		d.PushBack(v)
	}
	return d
}

// Clone creates a deep copy of the list
func (d *DoublyList[T]) Clone() *DoublyList[T] {
	dst := &DoublyList[T]{}
	for n := d.head; n != nil; n = n.next {
		dst.PushBack(n.value)
	}
	return dst
}

// Assign replaces the contents of d with a deep copy of src
func (d *DoublyList[T]) Assign(src *DoublyList[T]) {
	if d == src {
		return
	}
	d.take(src.Clone())
}

// take releases the current chain and moves the chain of src into d,
// leaving src empty
func (d *DoublyList[T]) take(src *DoublyList[T]) {
	d.Clear()
	d.head, d.tail, d.size = src.head, src.tail, src.size
	src.head, src.tail, src.size = nil, nil, 0
}

func (d *DoublyList[T]) Empty() bool { return d.head == nil }
func (d *DoublyList[T]) Size() int   { return d.size }

// Clear removes all elements
func (d *DoublyList[T]) Clear() {
	for d.head != nil {
		n := d.head
		d.head = n.next
		n.next = nil
		n.prev = nil
	}
	d.tail = nil
	d.size = 0
}

// PushFront adds element to the head - O(1)
func (d *DoublyList[T]) PushFront(value T) {
	node := &dlistNode[T]{value: value}

	if d.head == nil {
		d.head = node
		d.tail = node
	} else {
		node.next = d.head
		d.head.prev = node
		d.head = node
	}
	d.size++
}

// PushBack adds element to the tail - O(1)
func (d *DoublyList[T]) PushBack(value T) {
	node := &dlistNode[T]{value: value}

	if d.tail == nil {
		d.head = node
		d.tail = node
	} else {
		node.prev = d.tail
		d.tail.next = node
		d.tail = node
	}
	d.size++
}

// Insert places value so that it ends up at index. Valid indices are 0..Size()
func (d *DoublyList[T]) Insert(index int, value T) error {
	if index < 0 || index > d.size {
		return outOfRange(index, d.size)
	}
	if index == 0 {
		d.PushFront(value)
		return nil
	}
	if index == d.size {
		d.PushBack(value)
		return nil
	}

	// Interior: the node currently at index has a predecessor, reached
	// through its back reference.
	at := d.nodeAt(index)
	prev := at.prev
	node := &dlistNode[T]{value: value, prev: prev, next: at}
	prev.next = node
	at.prev = node
	d.size++
	return nil
}

// RemoveValue removes the first element equal to value, walking from head
func (d *DoublyList[T]) RemoveValue(value T) bool {
	for n := d.head; n != nil; n = n.next {
		if n.value == value {
			d.unlink(n)
			return true
		}
	}
	return false
}

// RemoveAt removes the element at index
func (d *DoublyList[T]) RemoveAt(index int) error {
	if index < 0 || index >= d.size {
		return outOfRange(index, d.size)
	}
	d.unlink(d.nodeAt(index))
	return nil
}

// At returns a pointer to the element at index - O(min(index, n-index))
func (d *DoublyList[T]) At(index int) (*T, error) {
	if index < 0 || index >= d.size {
		return nil, outOfRange(index, d.size)
	}
	return &d.nodeAt(index).value, nil
}

// Get returns a copy of the element at index
func (d *DoublyList[T]) Get(index int) (T, error) {
	ref, err := d.At(index)
	if err != nil {
		return common.DefaultValue[T](), err
	}
	return *ref, nil
}

func (d *DoublyList[T]) Front() (T, bool) {
	if d.head == nil {
		return common.DefaultValue[T](), false
	}
	return d.head.value, true
}

func (d *DoublyList[T]) Back() (T, bool) {
	if d.tail == nil {
		return common.DefaultValue[T](), false
	}
	return d.tail.value, true
}

// Slice returns the elements from head to tail
func (d *DoublyList[T]) Slice() []T {
	result := make([]T, 0, d.size)
	for n := d.head; n != nil; n = n.next {
		result = append(result, n.value)
	}
	return result
}

// SliceBackward returns the elements from tail to head following back
// references
func (d *DoublyList[T]) SliceBackward() []T {
	result := make([]T, 0, d.size)
	for n := d.tail; n != nil; n = n.prev {
		result = append(result, n.value)
	}
	return result
}

func (d *DoublyList[T]) Values() []interface{} { return toValues(d.Slice()) }

// String renders the list forward as "Head -> a <-> b <- Tail"
func (d *DoublyList[T]) String() string {
	if d.head == nil {
		return "[Empty list]"
	}
	var sb strings.Builder
	sb.WriteString("Head -> ")
	for n := d.head; n != nil; n = n.next {
		sb.WriteString(utils.ToString(n.value))
		if n.next != nil {
			sb.WriteString(" <-> ")
		}
	}
	sb.WriteString(" <- Tail")
	return sb.String()
}

// StringBackward renders the list from tail to head as
// "Tail -> b <-> a <- Head", following back references node by node.
func (d *DoublyList[T]) StringBackward() string {
	if d.tail == nil {
		return "[Empty list]"
	}
	var sb strings.Builder
	sb.WriteString("Tail -> ")
	for n := d.tail; n != nil; n = n.prev {
		sb.WriteString(utils.ToString(n.value))
		if n.prev != nil {
			sb.WriteString(" <-> ")
		}
	}
	sb.WriteString(" <- Head")
	return sb.String()
}

// nodeAt returns the node at a valid index
func (d *DoublyList[T]) nodeAt(index int) *dlistNode[T] {
	// Optimize: traverse from closer end
	var node *dlistNode[T]
	if index < d.size/2 {
		node = d.head
		for i := 0; i < index; i++ {
			node = node.next
		}
	} else {
		node = d.tail
		for i := d.size - 1; i > index; i-- {
			node = node.prev
		}
	}
	return node
}

// unlink removes a node of this list, rejoining its neighbours in both
// directions - O(1)
func (d *DoublyList[T]) unlink(node *dlistNode[T]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		d.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		d.tail = node.prev
	}

	node.prev = nil
	node.next = nil
	d.size--
}
