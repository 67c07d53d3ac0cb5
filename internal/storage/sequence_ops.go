package storage

import "linkedseq/pkg/seq"

// ==================== SEQUENCE OPERATIONS ====================
// Shared by list, dlist and clist keys.

// getSequence returns the positional container under key
func (s *Store) getSequence(key string) (seq.Sequence[string], error) {
	val, exists := s.data[key]
	if !exists {
		return nil, ErrNoSuchKey
	}

	switch val.Type {
	case ListType, DoublyListType, CircularListType:
		return val.Data.(seq.Sequence[string]), nil
	default:
		return nil, ErrWrongType
	}
}

// PushFront adds values to the head one by one, so the last value ends up
// first. Returns the new size.
func (s *Store) PushFront(key string, values ...string) (int, error) {
	sq, err := s.getSequence(key)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		sq.PushFront(v)
	}
	return sq.Size(), nil
}

// PushBack adds values to the tail. Returns the new size.
func (s *Store) PushBack(key string, values ...string) (int, error) {
	sq, err := s.getSequence(key)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		sq.PushBack(v)
	}
	return sq.Size(), nil
}

// Insert places value at index. Returns the new size.
func (s *Store) Insert(key string, index int, value string) (int, error) {
	sq, err := s.getSequence(key)
	if err != nil {
		return 0, err
	}
	if err := sq.Insert(index, value); err != nil {
		return 0, translateErr(err)
	}
	return sq.Size(), nil
}

// Remove deletes the first element equal to value
func (s *Store) Remove(key string, value string) (bool, error) {
	sq, err := s.getSequence(key)
	if err != nil {
		return false, err
	}
	return sq.RemoveValue(value), nil
}

// RemoveAt deletes the element at index and returns it
func (s *Store) RemoveAt(key string, index int) (string, error) {
	sq, err := s.getSequence(key)
	if err != nil {
		return "", err
	}
	ref, err := sq.At(index)
	if err != nil {
		return "", translateErr(err)
	}
	removed := *ref
	if err := sq.RemoveAt(index); err != nil {
		return "", translateErr(err)
	}
	return removed, nil
}

// At returns the element at index
func (s *Store) At(key string, index int) (string, error) {
	sq, err := s.getSequence(key)
	if err != nil {
		return "", err
	}
	ref, err := sq.At(index)
	if err != nil {
		return "", translateErr(err)
	}
	return *ref, nil
}

// SetAt overwrites the element at index in place
func (s *Store) SetAt(key string, index int, value string) error {
	sq, err := s.getSequence(key)
	if err != nil {
		return err
	}
	ref, err := sq.At(index)
	if err != nil {
		return translateErr(err)
	}
	*ref = value
	return nil
}

// DumpBackward renders a dlist from tail to head
func (s *Store) DumpBackward(key string) (string, error) {
	val, exists := s.data[key]
	if !exists {
		return "", ErrNoSuchKey
	}
	d, ok := val.Data.(*seq.DoublyList[string])
	if !ok {
		return "", ErrWrongType
	}
	return d.StringBackward(), nil
}

// Walk returns the values visited following steps links around a clist
func (s *Store) Walk(key string, steps int) ([]string, error) {
	val, exists := s.data[key]
	if !exists {
		return nil, ErrNoSuchKey
	}
	c, ok := val.Data.(*seq.CircularList[string])
	if !ok {
		return nil, ErrWrongType
	}
	return c.Walk(steps), nil
}
