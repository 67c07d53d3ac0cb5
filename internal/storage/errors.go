package storage

import "errors"

var (
	// General errors
	ErrNoSuchKey   = errors.New("ERR no such key")
	ErrKeyExists   = errors.New("ERR key already exists")
	ErrUnknownKind = errors.New("ERR unknown container kind")
	ErrWrongType   = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

	// Container errors
	ErrIndexOutOfRange = errors.New("ERR index out of range")
	ErrEmpty           = errors.New("ERR container is empty")
)
