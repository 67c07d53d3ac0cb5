package seq

import (
	"strings"

	"github.com/emirpasic/gods/utils"
	"github.com/sagernet/sing/common"
)

// ==================== QUEUE ====================

// Queue is a FIFO discipline over a singly linked List. Elements join at
// the tail and leave from the head.
type Queue[T comparable] struct {
	chain List[T]
}

// NewQueue creates a queue by enqueueing values in order
func NewQueue[T comparable](values ...T) *Queue[T] {
	q := &Queue[T]{}
	for _, v := range values {
		q.Enqueue(v)
	}
	return q
}

// Clone returns a deep copy preserving front-to-back order
func (q *Queue[T]) Clone() *Queue[T] {
	dst := &Queue[T]{}
	for n := q.chain.head; n != nil; n = n.next {
		dst.Enqueue(n.value)
	}
	return dst
}

// Assign replaces the contents of q with a deep copy of src
func (q *Queue[T]) Assign(src *Queue[T]) {
	if q == src {
		return
	}
	q.chain.take(&src.Clone().chain)
}

func (q *Queue[T]) Enqueue(value T) { q.chain.PushBack(value) }

// Dequeue discards the front element
func (q *Queue[T]) Dequeue() error {
	if q.chain.Empty() {
		return ErrUnderflow
	}
	q.chain.unlinkAfter(nil)
	return nil
}

// DequeueValue removes and returns the front element
func (q *Queue[T]) DequeueValue() (T, error) {
	if q.chain.Empty() {
		return common.DefaultValue[T](), ErrUnderflow
	}
	return q.chain.unlinkAfter(nil), nil
}

// Front returns a pointer to the front element
func (q *Queue[T]) Front() (*T, error) {
	if q.chain.Empty() {
		return nil, ErrUnderflow
	}
	return &q.chain.head.value, nil
}

func (q *Queue[T]) Empty() bool { return q.chain.Empty() }
func (q *Queue[T]) Size() int   { return q.chain.Size() }
func (q *Queue[T]) Clear()      { q.chain.Clear() }

// Slice returns the elements from front to back
func (q *Queue[T]) Slice() []T { return q.chain.Slice() }

func (q *Queue[T]) Values() []interface{} { return toValues(q.Slice()) }

// String renders the queue as "Front -> a | b <- Back"
func (q *Queue[T]) String() string {
	if q.chain.Empty() {
		return "[Empty queue]"
	}
	var sb strings.Builder
	sb.WriteString("Front -> ")
	for n := q.chain.head; n != nil; n = n.next {
		sb.WriteString(utils.ToString(n.value))
		if n.next != nil {
			sb.WriteString(" | ")
		}
	}
	sb.WriteString(" <- Back")
	return sb.String()
}
