package lua

import (
	"fmt"
	"strconv"
	"strings"

	"linkedseq/internal/protocol"
	"linkedseq/internal/storage"
)

// SeqExecutor runs container commands directly against a store. It backs
// both the interactive command handler and seq.call inside scripts.
type SeqExecutor struct {
	store *storage.Store
}

// NewSeqExecutor creates a command executor over store
func NewSeqExecutor(store *storage.Store) *SeqExecutor {
	return &SeqExecutor{
		store: store,
	}
}

// Store returns the store commands run against
func (e *SeqExecutor) Store() *storage.Store {
	return e.store
}

// IsKnownCommand reports whether ExecuteCommand handles cmdName
func IsKnownCommand(cmdName string) bool {
	_, ok := commandArity[strings.ToUpper(cmdName)]
	return ok
}

// commandArity is the minimum number of arguments after the command name
var commandArity = map[string]int{
	// Key commands
	"NEW": 2, "DEL": 1, "EXISTS": 1, "TYPE": 1, "KEYS": 0, "COPY": 2, "FLUSHALL": 0,

	// Commands valid for every kind
	"SIZE": 1, "EMPTY": 1, "CLEAR": 1, "DUMP": 1, "VALUES": 1,

	// Sequence commands (list, dlist, clist)
	"PUSHFRONT": 2, "PUSHBACK": 2, "INSERT": 3, "REMOVE": 2, "REMOVEAT": 2,
	"AT": 2, "SETAT": 3, "DUMPBACK": 1, "WALK": 2,

	// Stack commands
	"PUSH": 2, "POP": 1, "TOP": 1,

	// Queue commands
	"ENQUEUE": 2, "DEQUEUE": 1, "FRONT": 1,
}

// maxWalkSteps caps how many links a single WALK may follow
const maxWalkSteps = 1 << 20

// ExecuteCommand executes a container command and returns the reply value
func (e *SeqExecutor) ExecuteCommand(cmdName string, args ...interface{}) (interface{}, error) {
	cmdName = strings.ToUpper(cmdName)

	minArgs, ok := commandArity[cmdName]
	if !ok {
		return nil, fmt.Errorf("ERR unknown command '%s'", strings.ToLower(cmdName))
	}
	if len(args) < minArgs {
		return nil, fmt.Errorf("ERR wrong number of arguments for '%s' command", strings.ToLower(cmdName))
	}

	// Convert interface{} args to strings
	stringArgs := make([]string, len(args))
	for i, arg := range args {
		stringArgs[i] = fmt.Sprintf("%v", arg)
	}

	switch cmdName {
	// ==================== KEY COMMANDS ====================
	case "NEW":
		kind, err := storage.ParseValueType(stringArgs[1])
		if err != nil {
			return nil, err
		}
		if err := e.store.Create(stringArgs[0], kind); err != nil {
			return nil, err
		}
		return protocol.StatusReply("OK"), nil

	case "DEL":
		count := int64(0)
		for _, key := range stringArgs {
			if e.store.Delete(key) {
				count++
			}
		}
		return count, nil

	case "EXISTS":
		count := int64(0)
		for _, key := range stringArgs {
			if e.store.Exists(key) {
				count++
			}
		}
		return count, nil

	case "TYPE":
		kind, exists := e.store.Type(stringArgs[0])
		if !exists {
			return protocol.StatusReply("none"), nil
		}
		return protocol.StatusReply(kind.String()), nil

	case "KEYS":
		return e.store.Keys(), nil

	case "COPY":
		if err := e.store.Copy(stringArgs[0], stringArgs[1]); err != nil {
			return nil, err
		}
		return protocol.StatusReply("OK"), nil

	case "FLUSHALL":
		e.store.FlushAll()
		return protocol.StatusReply("OK"), nil

	// ==================== ANY-KIND COMMANDS ====================
	case "SIZE":
		n, err := e.store.Size(stringArgs[0])
		return int64(n), err

	case "EMPTY":
		empty, err := e.store.IsEmpty(stringArgs[0])
		if err != nil {
			return nil, err
		}
		return boolReply(empty), nil

	case "CLEAR":
		if err := e.store.Clear(stringArgs[0]); err != nil {
			return nil, err
		}
		return protocol.StatusReply("OK"), nil

	case "DUMP":
		return stringOrErr(e.store.Dump(stringArgs[0]))

	case "VALUES":
		values, err := e.store.Values(stringArgs[0])
		if err != nil {
			return nil, err
		}
		return values, nil

	// ==================== SEQUENCE COMMANDS ====================
	case "PUSHFRONT":
		n, err := e.store.PushFront(stringArgs[0], stringArgs[1:]...)
		return int64(n), err

	case "PUSHBACK":
		n, err := e.store.PushBack(stringArgs[0], stringArgs[1:]...)
		return int64(n), err

	case "INSERT":
		index, err := parseIndex(stringArgs[1])
		if err != nil {
			return nil, err
		}
		n, err := e.store.Insert(stringArgs[0], index, stringArgs[2])
		return int64(n), err

	case "REMOVE":
		removed, err := e.store.Remove(stringArgs[0], stringArgs[1])
		if err != nil {
			return nil, err
		}
		return boolReply(removed), nil

	case "REMOVEAT":
		index, err := parseIndex(stringArgs[1])
		if err != nil {
			return nil, err
		}
		return stringOrErr(e.store.RemoveAt(stringArgs[0], index))

	case "AT":
		index, err := parseIndex(stringArgs[1])
		if err != nil {
			return nil, err
		}
		return stringOrErr(e.store.At(stringArgs[0], index))

	case "SETAT":
		index, err := parseIndex(stringArgs[1])
		if err != nil {
			return nil, err
		}
		if err := e.store.SetAt(stringArgs[0], index, stringArgs[2]); err != nil {
			return nil, err
		}
		return protocol.StatusReply("OK"), nil

	case "DUMPBACK":
		return stringOrErr(e.store.DumpBackward(stringArgs[0]))

	case "WALK":
		steps, err := parseIndex(stringArgs[1])
		if err != nil {
			return nil, err
		}
		if steps > maxWalkSteps {
			return nil, fmt.Errorf("ERR value is not an integer or out of range")
		}
		values, err := e.store.Walk(stringArgs[0], steps)
		if err != nil {
			return nil, err
		}
		return values, nil

	// ==================== STACK COMMANDS ====================
	case "PUSH":
		n, err := e.store.Push(stringArgs[0], stringArgs[1:]...)
		return int64(n), err

	case "POP":
		return stringOrErr(e.store.Pop(stringArgs[0]))

	case "TOP":
		return stringOrErr(e.store.Top(stringArgs[0]))

	// ==================== QUEUE COMMANDS ====================
	case "ENQUEUE":
		n, err := e.store.Enqueue(stringArgs[0], stringArgs[1:]...)
		return int64(n), err

	case "DEQUEUE":
		return stringOrErr(e.store.Dequeue(stringArgs[0]))

	case "FRONT":
		return stringOrErr(e.store.Front(stringArgs[0]))
	}

	return nil, fmt.Errorf("ERR unknown command '%s'", strings.ToLower(cmdName))
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("ERR value is not an integer or out of range")
	}
	return index, nil
}

// stringOrErr keeps a failed lookup from producing an empty bulk string
func stringOrErr(s string, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func boolReply(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
