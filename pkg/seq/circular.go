package seq

import (
	"strings"

	"github.com/emirpasic/gods/utils"
	"github.com/sagernet/sing/common"
)

// ==================== CIRCULAR LINKED LIST ====================

// CircularList is a singly linked list whose tail links back to its head.
// Every walk counts size steps instead of looking for a nil link.
type CircularList[T comparable] struct {
	head *listNode[T]
	tail *listNode[T]
	size int
}

// NewCircularList creates a circular list holding values in order
func NewCircularList[T comparable](values ...T) *CircularList[T] {
	c := &CircularList[T]{}
	for _, v := range values {
		c.PushBack(v)
	}
	return c
}

// Clone returns a deep copy of the list
func (c *CircularList[T]) Clone() *CircularList[T] {
	dst := &CircularList[T]{}
	n := c.head
	for i := 0; i < c.size; i++ {
		dst.PushBack(n.value)
		n = n.next
	}
	return dst
}

// Assign replaces the contents of c with a deep copy of src
func (c *CircularList[T]) Assign(src *CircularList[T]) {
	if c == src {
		return
	}
	c.take(src.Clone())
}

// take releases the current ring and moves the ring of src into c,
// leaving src empty
func (c *CircularList[T]) take(src *CircularList[T]) {
	c.Clear()
	c.head, c.tail, c.size = src.head, src.tail, src.size
	src.head, src.tail, src.size = nil, nil, 0
}

func (c *CircularList[T]) Empty() bool { return c.head == nil }
func (c *CircularList[T]) Size() int   { return c.size }

// Clear breaks the ring and removes all elements
func (c *CircularList[T]) Clear() {
	n := c.head
	for i := 0; i < c.size; i++ {
		next := n.next
		n.next = nil
		n = next
	}
	c.head = nil
	c.tail = nil
	c.size = 0
}

// PushFront adds element to the head - O(1)
func (c *CircularList[T]) PushFront(value T) {
	n := &listNode[T]{value: value}
	if c.head == nil {
		n.next = n
		c.head = n
		c.tail = n
	} else {
		n.next = c.head
		c.head = n
		c.tail.next = n
	}
	c.size++
}

// PushBack adds element to the tail - O(1)
func (c *CircularList[T]) PushBack(value T) {
	n := &listNode[T]{value: value}
	if c.head == nil {
		n.next = n
		c.head = n
		c.tail = n
	} else {
		n.next = c.head
		c.tail.next = n
		c.tail = n
	}
	c.size++
}

// Insert places value so that it ends up at index. Valid indices are 0..Size()
func (c *CircularList[T]) Insert(index int, value T) error {
	if index < 0 || index > c.size {
		return outOfRange(index, c.size)
	}
	if index == 0 {
		c.PushFront(value)
		return nil
	}
	if index == c.size {
		c.PushBack(value)
		return nil
	}

	prev := c.nodeAt(index - 1)
	prev.next = &listNode[T]{value: value, next: prev.next}
	c.size++
	return nil
}

// RemoveValue removes the first element equal to value, walking from head
func (c *CircularList[T]) RemoveValue(value T) bool {
	var prev *listNode[T]
	n := c.head
	for i := 0; i < c.size; i++ {
		if n.value == value {
			c.unlinkAfter(prev)
			return true
		}
		prev, n = n, n.next
	}
	return false
}

// RemoveAt removes the element at index
func (c *CircularList[T]) RemoveAt(index int) error {
	if index < 0 || index >= c.size {
		return outOfRange(index, c.size)
	}
	var prev *listNode[T]
	if index > 0 {
		prev = c.nodeAt(index - 1)
	}
	c.unlinkAfter(prev)
	return nil
}

// At returns a pointer to the element at index
func (c *CircularList[T]) At(index int) (*T, error) {
	if index < 0 || index >= c.size {
		return nil, outOfRange(index, c.size)
	}
	return &c.nodeAt(index).value, nil
}

// Get returns a copy of the element at index
func (c *CircularList[T]) Get(index int) (T, error) {
	ref, err := c.At(index)
	if err != nil {
		return common.DefaultValue[T](), err
	}
	return *ref, nil
}

func (c *CircularList[T]) Front() (T, bool) {
	if c.head == nil {
		return common.DefaultValue[T](), false
	}
	return c.head.value, true
}

func (c *CircularList[T]) Back() (T, bool) {
	if c.tail == nil {
		return common.DefaultValue[T](), false
	}
	return c.tail.value, true
}

// Walk follows steps forward links starting at head and returns every value
// visited, wrapping around the ring as many times as needed. The result grows
// as it is filled, so steps only bounds the work done.
func (c *CircularList[T]) Walk(steps int) []T {
	if c.head == nil || steps <= 0 {
		return []T{}
	}
	result := make([]T, 0, min(steps, c.size))
	n := c.head
	for i := 0; i < steps; i++ {
		result = append(result, n.value)
		n = n.next
	}
	return result
}

// Slice returns one lap of the ring starting at head
func (c *CircularList[T]) Slice() []T { return c.Walk(c.size) }

func (c *CircularList[T]) Values() []interface{} { return toValues(c.Slice()) }

// String renders one lap as "Head -> a -> b -> (back to Head)"
func (c *CircularList[T]) String() string {
	if c.head == nil {
		return "[Empty circular list]"
	}
	var sb strings.Builder
	sb.WriteString("Head -> ")
	n := c.head
	for i := 0; i < c.size; i++ {
		sb.WriteString(utils.ToString(n.value))
		sb.WriteString(" -> ")
		n = n.next
	}
	sb.WriteString("(back to Head)")
	return sb.String()
}

func (c *CircularList[T]) nodeAt(index int) *listNode[T] {
	n := c.head
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n
}

// unlinkAfter splices out the successor of prev, or the head when prev is
// nil. Both removal paths go through here so tail retargeting stays in one
// place. Removing the last remaining node leaves head and tail nil.
func (c *CircularList[T]) unlinkAfter(prev *listNode[T]) T {
	var victim *listNode[T]
	switch {
	case c.size == 1:
		victim = c.head
		c.head = nil
		c.tail = nil
	case prev == nil:
		victim = c.head
		c.head = victim.next
		c.tail.next = c.head
	default:
		victim = prev.next
		prev.next = victim.next
		if victim == c.tail {
			c.tail = prev
		}
	}
	victim.next = nil
	c.size--
	return victim.value
}
