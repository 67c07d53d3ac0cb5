package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/emirpasic/gods/containers"

	"linkedseq/pkg/seq"
)

// Store holds named containers of string elements
type Store struct {
	data map[string]*Value
}

type Value struct {
	Data interface{}
	Type ValueType
}

type ValueType int

const (
	ListType ValueType = iota
	DoublyListType
	CircularListType
	StackType
	QueueType
)

var valueTypeNames = map[ValueType]string{
	ListType:         "list",
	DoublyListType:   "dlist",
	CircularListType: "clist",
	StackType:        "stack",
	QueueType:        "queue",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseValueType maps a kind name such as "dlist" to its ValueType
func ParseValueType(kind string) (ValueType, error) {
	kind = strings.ToLower(kind)
	for t, name := range valueTypeNames {
		if name == kind {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w '%s'", ErrUnknownKind, kind)
}

func NewStore() *Store {
	return &Store{
		data: make(map[string]*Value),
	}
}

// newContainer allocates an empty container of the given type
func newContainer(t ValueType) interface{} {
	switch t {
	case ListType:
		return &seq.List[string]{}
	case DoublyListType:
		return &seq.DoublyList[string]{}
	case CircularListType:
		return &seq.CircularList[string]{}
	case StackType:
		return &seq.Stack[string]{}
	default:
		return &seq.Queue[string]{}
	}
}

// Create adds an empty container under key
func (s *Store) Create(key string, t ValueType) error {
	if _, exists := s.data[key]; exists {
		return ErrKeyExists
	}
	s.data[key] = &Value{Data: newContainer(t), Type: t}
	return nil
}

// Delete removes key and reports whether it existed
func (s *Store) Delete(key string) bool {
	if _, exists := s.data[key]; !exists {
		return false
	}
	delete(s.data, key)
	return true
}

func (s *Store) Exists(key string) bool {
	_, exists := s.data[key]
	return exists
}

// Type returns the kind of container stored under key
func (s *Store) Type(key string) (ValueType, bool) {
	val, exists := s.data[key]
	if !exists {
		return 0, false
	}
	return val.Type, true
}

// Keys returns all keys in sorted order
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FlushAll removes every key
func (s *Store) FlushAll() {
	s.data = make(map[string]*Value)
}

// Copy deep-copies the container at src into dst. An existing dst must hold
// the same kind of container and is overwritten in place.
func (s *Store) Copy(src, dst string) error {
	from, exists := s.data[src]
	if !exists {
		return ErrNoSuchKey
	}
	to, exists := s.data[dst]
	if exists && to.Type != from.Type {
		return ErrWrongType
	}
	if !exists {
		to = &Value{Data: newContainer(from.Type), Type: from.Type}
	}

	switch c := to.Data.(type) {
	case *seq.List[string]:
		c.Assign(from.Data.(*seq.List[string]))
	case *seq.DoublyList[string]:
		c.Assign(from.Data.(*seq.DoublyList[string]))
	case *seq.CircularList[string]:
		c.Assign(from.Data.(*seq.CircularList[string]))
	case *seq.Stack[string]:
		c.Assign(from.Data.(*seq.Stack[string]))
	case *seq.Queue[string]:
		c.Assign(from.Data.(*seq.Queue[string]))
	}
	s.data[dst] = to
	return nil
}

// ==================== KIND-AGNOSTIC OPERATIONS ====================

// getContainer returns the container under key through the interface every
// container kind satisfies
func (s *Store) getContainer(key string) (containers.Container, error) {
	val, exists := s.data[key]
	if !exists {
		return nil, ErrNoSuchKey
	}
	return val.Data.(containers.Container), nil
}

func (s *Store) Size(key string) (int, error) {
	c, err := s.getContainer(key)
	if err != nil {
		return 0, err
	}
	return c.Size(), nil
}

func (s *Store) IsEmpty(key string) (bool, error) {
	c, err := s.getContainer(key)
	if err != nil {
		return false, err
	}
	return c.Empty(), nil
}

// Clear empties the container but keeps the key
func (s *Store) Clear(key string) error {
	c, err := s.getContainer(key)
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}

// Dump renders the container in traversal order
func (s *Store) Dump(key string) (string, error) {
	c, err := s.getContainer(key)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// Values returns the elements in traversal order
func (s *Store) Values(key string) ([]string, error) {
	c, err := s.getContainer(key)
	if err != nil {
		return nil, err
	}
	values := c.Values()
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = v.(string)
	}
	return result, nil
}

// translateErr maps container errors onto the store's reply errors
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, seq.ErrOutOfRange):
		return ErrIndexOutOfRange
	case errors.Is(err, seq.ErrUnderflow):
		return ErrEmpty
	default:
		return err
	}
}
