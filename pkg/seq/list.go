package seq

import (
	"strings"

	"github.com/emirpasic/gods/utils"
	"github.com/sagernet/sing/common"
)

// ==================== SINGLY LINKED LIST ====================

type listNode[T any] struct {
	value T
	next  *listNode[T]
}

// List is a singly linked list with a cached tail for O(1) appends.
type List[T comparable] struct {
	head *listNode[T]
	tail *listNode[T]
	size int
}

// NewList creates a list holding values in order
func NewList[T comparable](values ...T) *List[T] {
	l := &List[T]{}
	for _, v := range values {
		l.PushBack(v)
	}
	return l
}

// Clone returns a deep copy of the list
func (l *List[T]) Clone() *List[T] {
	dst := &List[T]{}
	for n := l.head; n != nil; n = n.next {
		dst.PushBack(n.value)
	}
	return dst
}

// Assign replaces the contents of l with a deep copy of src.
// The copy is built before the current chain is released, and assigning a
// list to itself is a no-op.
func (l *List[T]) Assign(src *List[T]) {
	if l == src {
		return
	}
	l.take(src.Clone())
}

// take releases the current chain and moves the chain of src into l,
// leaving src empty
func (l *List[T]) take(src *List[T]) {
	l.Clear()
	l.head, l.tail, l.size = src.head, src.tail, src.size
	src.head, src.tail, src.size = nil, nil, 0
}

func (l *List[T]) Empty() bool { return l.head == nil }
func (l *List[T]) Size() int   { return l.size }

// Clear removes all elements
func (l *List[T]) Clear() {
	for l.head != nil {
		n := l.head
		l.head = n.next
		n.next = nil
	}
	l.tail = nil
	l.size = 0
}

// PushFront adds element to the head - O(1)
func (l *List[T]) PushFront(value T) {
	n := &listNode[T]{value: value, next: l.head}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.size++
}

// PushBack adds element to the tail - O(1)
func (l *List[T]) PushBack(value T) {
	n := &listNode[T]{value: value}
	if l.tail == nil {
		l.head = n
		l.tail = n
	} else {
		l.tail.next = n
		l.tail = n
	}
	l.size++
}

// Insert places value so that it ends up at index. Valid indices are
// 0..Size(); Size() appends - O(index)
func (l *List[T]) Insert(index int, value T) error {
	if index < 0 || index > l.size {
		return outOfRange(index, l.size)
	}
	if index == 0 {
		l.PushFront(value)
		return nil
	}
	if index == l.size {
		l.PushBack(value)
		return nil
	}

	prev := l.nodeAt(index - 1)
	prev.next = &listNode[T]{value: value, next: prev.next}
	l.size++
	return nil
}

// RemoveValue removes the first element equal to value.
// Reports whether an element was removed - O(n)
func (l *List[T]) RemoveValue(value T) bool {
	var prev *listNode[T]
	for n := l.head; n != nil; prev, n = n, n.next {
		if n.value == value {
			l.unlinkAfter(prev)
			return true
		}
	}
	return false
}

// RemoveAt removes the element at index - O(index)
func (l *List[T]) RemoveAt(index int) error {
	if index < 0 || index >= l.size {
		return outOfRange(index, l.size)
	}
	var prev *listNode[T]
	if index > 0 {
		prev = l.nodeAt(index - 1)
	}
	l.unlinkAfter(prev)
	return nil
}

// At returns a pointer to the element at index. Writes through the pointer
// update the stored element - O(index)
func (l *List[T]) At(index int) (*T, error) {
	if index < 0 || index >= l.size {
		return nil, outOfRange(index, l.size)
	}
	return &l.nodeAt(index).value, nil
}

// Get returns a copy of the element at index
func (l *List[T]) Get(index int) (T, error) {
	ref, err := l.At(index)
	if err != nil {
		return common.DefaultValue[T](), err
	}
	return *ref, nil
}

// Front returns the first element
func (l *List[T]) Front() (T, bool) {
	if l.head == nil {
		return common.DefaultValue[T](), false
	}
	return l.head.value, true
}

// Back returns the last element
func (l *List[T]) Back() (T, bool) {
	if l.tail == nil {
		return common.DefaultValue[T](), false
	}
	return l.tail.value, true
}

// Slice returns the elements from head to tail
func (l *List[T]) Slice() []T {
	result := make([]T, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		result = append(result, n.value)
	}
	return result
}

func (l *List[T]) Values() []interface{} { return toValues(l.Slice()) }

// String renders the chain as "Head -> a -> b -> nil"
func (l *List[T]) String() string {
	if l.head == nil {
		return "[Empty list]"
	}
	var sb strings.Builder
	sb.WriteString("Head -> ")
	for n := l.head; n != nil; n = n.next {
		sb.WriteString(utils.ToString(n.value))
		sb.WriteString(" -> ")
	}
	sb.WriteString("nil")
	return sb.String()
}

// nodeAt walks forward from head; index must be valid
func (l *List[T]) nodeAt(index int) *listNode[T] {
	n := l.head
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n
}

// unlinkAfter splices out the successor of prev, or the head when prev is
// nil, and returns the removed value. The list must not be empty.
func (l *List[T]) unlinkAfter(prev *listNode[T]) T {
	var victim *listNode[T]
	if prev == nil {
		victim = l.head
		l.head = victim.next
	} else {
		victim = prev.next
		prev.next = victim.next
	}
	if victim == l.tail {
		l.tail = prev
	}
	victim.next = nil
	l.size--
	return victim.value
}
