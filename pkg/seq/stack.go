package seq

import (
	"strings"

	"github.com/emirpasic/gods/utils"
	"github.com/sagernet/sing/common"
)

// ==================== STACK ====================

// Stack is a LIFO discipline over a singly linked List. The head of the
// chain is the top of the stack.
type Stack[T comparable] struct {
	chain List[T]
}

// NewStack creates a stack by pushing values in order, so the last value
// ends up on top
func NewStack[T comparable](values ...T) *Stack[T] {
	s := &Stack[T]{}
	for _, v := range values {
		s.Push(v)
	}
	return s
}

// Clone returns a deep copy with the same top-to-bottom order.
// Pushing while walking the source would reverse it, so the values are
// buffered first and replayed bottom up.
func (s *Stack[T]) Clone() *Stack[T] {
	buffer := s.chain.Slice()
	dst := &Stack[T]{}
	for i := len(buffer) - 1; i >= 0; i-- {
		dst.Push(buffer[i])
	}
	return dst
}

// Assign replaces the contents of s with a deep copy of src
func (s *Stack[T]) Assign(src *Stack[T]) {
	if s == src {
		return
	}
	s.chain.take(&src.Clone().chain)
}

func (s *Stack[T]) Push(value T) { s.chain.PushFront(value) }

// Pop discards the top element
func (s *Stack[T]) Pop() error {
	if s.chain.Empty() {
		return ErrUnderflow
	}
	s.chain.unlinkAfter(nil)
	return nil
}

// PopValue removes and returns the top element
func (s *Stack[T]) PopValue() (T, error) {
	if s.chain.Empty() {
		return common.DefaultValue[T](), ErrUnderflow
	}
	return s.chain.unlinkAfter(nil), nil
}

// Top returns a pointer to the top element
func (s *Stack[T]) Top() (*T, error) {
	if s.chain.Empty() {
		return nil, ErrUnderflow
	}
	return &s.chain.head.value, nil
}

// Peek returns a copy of the top element
func (s *Stack[T]) Peek() (T, error) {
	if s.chain.Empty() {
		return common.DefaultValue[T](), ErrUnderflow
	}
	return s.chain.head.value, nil
}

func (s *Stack[T]) Empty() bool { return s.chain.Empty() }
func (s *Stack[T]) Size() int   { return s.chain.Size() }
func (s *Stack[T]) Clear()      { s.chain.Clear() }

// Slice returns the elements from top to bottom
func (s *Stack[T]) Slice() []T { return s.chain.Slice() }

func (s *Stack[T]) Values() []interface{} { return toValues(s.Slice()) }

// String renders the stack as "Top -> c | b | a <- Bottom"
func (s *Stack[T]) String() string {
	if s.chain.Empty() {
		return "[Empty stack]"
	}
	var sb strings.Builder
	sb.WriteString("Top -> ")
	for n := s.chain.head; n != nil; n = n.next {
		sb.WriteString(utils.ToString(n.value))
		if n.next != nil {
			sb.WriteString(" | ")
		}
	}
	sb.WriteString(" <- Bottom")
	return sb.String()
}
