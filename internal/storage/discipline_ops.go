package storage

import "linkedseq/pkg/seq"

// ==================== STACK OPERATIONS ====================

func (s *Store) getStack(key string) (*seq.Stack[string], error) {
	val, exists := s.data[key]
	if !exists {
		return nil, ErrNoSuchKey
	}
	if val.Type != StackType {
		return nil, ErrWrongType
	}
	return val.Data.(*seq.Stack[string]), nil
}

// Push pushes values in order, so the last one ends up on top
func (s *Store) Push(key string, values ...string) (int, error) {
	st, err := s.getStack(key)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		st.Push(v)
	}
	return st.Size(), nil
}

// Pop removes and returns the top element
func (s *Store) Pop(key string) (string, error) {
	st, err := s.getStack(key)
	if err != nil {
		return "", err
	}
	v, err := st.PopValue()
	return v, translateErr(err)
}

// Top returns the top element without removing it
func (s *Store) Top(key string) (string, error) {
	st, err := s.getStack(key)
	if err != nil {
		return "", err
	}
	v, err := st.Peek()
	return v, translateErr(err)
}

// ==================== QUEUE OPERATIONS ====================

func (s *Store) getQueue(key string) (*seq.Queue[string], error) {
	val, exists := s.data[key]
	if !exists {
		return nil, ErrNoSuchKey
	}
	if val.Type != QueueType {
		return nil, ErrWrongType
	}
	return val.Data.(*seq.Queue[string]), nil
}

// Enqueue appends values at the back of the queue
func (s *Store) Enqueue(key string, values ...string) (int, error) {
	q, err := s.getQueue(key)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		q.Enqueue(v)
	}
	return q.Size(), nil
}

// Dequeue removes and returns the front element
func (s *Store) Dequeue(key string) (string, error) {
	q, err := s.getQueue(key)
	if err != nil {
		return "", err
	}
	v, err := q.DequeueValue()
	return v, translateErr(err)
}

// Front returns the front element without removing it
func (s *Store) Front(key string) (string, error) {
	q, err := s.getQueue(key)
	if err != nil {
		return "", err
	}
	ref, err := q.Front()
	if err != nil {
		return "", translateErr(err)
	}
	return *ref, nil
}
