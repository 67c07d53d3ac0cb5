package lua

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"

	lua "github.com/yuin/gopher-lua"

	"linkedseq/internal/protocol"
)

// ScriptEngine manages Lua script execution and caching
type ScriptEngine struct {
	scriptCache map[string]string // SHA1 -> script source
	executor    *SeqExecutor
}

// NewScriptEngine creates a new Lua script engine
func NewScriptEngine(executor *SeqExecutor) *ScriptEngine {
	return &ScriptEngine{
		scriptCache: make(map[string]string),
		executor:    executor,
	}
}

// Eval executes a Lua script with given keys and arguments
func (se *ScriptEngine) Eval(script string, keys []string, args []string) (interface{}, error) {
	L := lua.NewState()
	defer L.Close()

	// Register container API functions
	se.registerSeqAPI(L)

	// Set KEYS and ARGV globals
	se.setGlobals(L, keys, args)

	// Execute the script
	if err := L.DoString(script); err != nil {
		return nil, fmt.Errorf("ERR Error running script: %v", err)
	}

	if L.GetTop() == 0 {
		return nil, nil
	}
	return se.convertLuaToGo(L.Get(-1)), nil
}

// EvalSHA executes a cached script by its SHA1 hash
func (se *ScriptEngine) EvalSHA(sha1Hash string, keys []string, args []string) (interface{}, error) {
	script, exists := se.scriptCache[sha1Hash]
	if !exists {
		return nil, fmt.Errorf("NOSCRIPT No matching script. Please use EVAL")
	}

	return se.Eval(script, keys, args)
}

// RunFile loads a script from disk, caches it and runs it with the given
// arguments in ARGV
func (se *ScriptEngine) RunFile(path string, args []string) (interface{}, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ERR cannot read script: %w", err)
	}
	sha := se.LoadScript(string(source))
	log.Printf("Loaded script %s (sha1 %s)", path, sha)
	return se.Eval(string(source), nil, args)
}

// LoadScript loads a script into cache and returns its SHA1 hash
func (se *ScriptEngine) LoadScript(script string) string {
	hash := se.calculateSHA1(script)
	se.scriptCache[hash] = script
	return hash
}

// ScriptExists checks if scripts exist in cache
func (se *ScriptEngine) ScriptExists(sha1Hashes []string) []bool {
	results := make([]bool, len(sha1Hashes))
	for i, hash := range sha1Hashes {
		_, exists := se.scriptCache[hash]
		results[i] = exists
	}
	return results
}

// ScriptFlush removes all scripts from cache
func (se *ScriptEngine) ScriptFlush() {
	se.scriptCache = make(map[string]string)
}

// registerSeqAPI registers the seq table in the Lua state
func (se *ScriptEngine) registerSeqAPI(L *lua.LState) {
	seqTable := L.NewTable()

	// seq.call - executes command, throws error on failure
	seqTable.RawSetString("call", L.NewFunction(func(L *lua.LState) int {
		result, err := se.callFromLua(L)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(se.convertGoToLua(L, result))
		return 1
	}))

	// seq.pcall - executes command, returns error as table on failure
	seqTable.RawSetString("pcall", L.NewFunction(func(L *lua.LState) int {
		result, err := se.callFromLua(L)
		if err != nil {
			errorTable := L.NewTable()
			errorTable.RawSetString("err", lua.LString(err.Error()))
			L.Push(errorTable)
			return 1
		}
		L.Push(se.convertGoToLua(L, result))
		return 1
	}))

	// seq.log - writes a line to the process log
	seqTable.RawSetString("log", L.NewFunction(func(L *lua.LState) int {
		log.Printf("[script] %s", L.CheckString(1))
		return 0
	}))

	// seq.status_reply - creates a status reply table
	seqTable.RawSetString("status_reply", L.NewFunction(func(L *lua.LState) int {
		status := L.CheckString(1)
		statusTable := L.NewTable()
		statusTable.RawSetString("ok", lua.LString(status))
		L.Push(statusTable)
		return 1
	}))

	// seq.error_reply - creates an error reply table
	seqTable.RawSetString("error_reply", L.NewFunction(func(L *lua.LState) int {
		errMsg := L.CheckString(1)
		errorTable := L.NewTable()
		errorTable.RawSetString("err", lua.LString(errMsg))
		L.Push(errorTable)
		return 1
	}))

	L.SetGlobal("seq", seqTable)
}

// callFromLua runs the command named by the first Lua argument
func (se *ScriptEngine) callFromLua(L *lua.LState) (interface{}, error) {
	n := L.GetTop()
	if n < 1 {
		return nil, errors.New("ERR seq.call requires at least one argument")
	}

	cmdName := L.CheckString(1)
	args := make([]interface{}, n-1)
	for i := 2; i <= n; i++ {
		args[i-2] = se.convertLuaToGo(L.Get(i))
	}

	return se.executor.ExecuteCommand(cmdName, args...)
}

// setGlobals sets KEYS and ARGV as global Lua arrays
func (se *ScriptEngine) setGlobals(L *lua.LState, keys []string, args []string) {
	// Create KEYS array (1-indexed in Lua)
	keysTable := L.NewTable()
	for i, key := range keys {
		keysTable.RawSetInt(i+1, lua.LString(key))
	}
	L.SetGlobal("KEYS", keysTable)

	// Create ARGV array (1-indexed in Lua)
	argvTable := L.NewTable()
	for i, arg := range args {
		argvTable.RawSetInt(i+1, lua.LString(arg))
	}
	L.SetGlobal("ARGV", argvTable)
}

// convertLuaToGo converts Lua value to a reply value
func (se *ScriptEngine) convertLuaToGo(lv lua.LValue) interface{} {
	switch v := lv.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return int64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		// Check if it's a status reply
		if ok := v.RawGetString("ok"); ok != lua.LNil {
			return protocol.StatusReply(lua.LVAsString(ok))
		}
		// Check if it's an error reply
		if err := v.RawGetString("err"); err != lua.LNil {
			return errors.New(lua.LVAsString(err))
		}

		// Tables are read as arrays up to the first nil
		arr := make([]interface{}, 0, v.Len())
		for i := 1; i <= v.Len(); i++ {
			arr = append(arr, se.convertLuaToGo(v.RawGetInt(i)))
		}
		return arr
	default:
		return nil
	}
}

// convertGoToLua converts a reply value to a Lua value
func (se *ScriptEngine) convertGoToLua(L *lua.LState, v interface{}) lua.LValue {
	if v == nil {
		return lua.LNil
	}

	switch val := v.(type) {
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case protocol.StatusReply:
		table := L.NewTable()
		table.RawSetString("ok", lua.LString(string(val)))
		return table
	case []string:
		table := L.NewTable()
		for i, item := range val {
			table.RawSetInt(i+1, lua.LString(item))
		}
		return table
	case []interface{}:
		table := L.NewTable()
		for i, item := range val {
			table.RawSetInt(i+1, se.convertGoToLua(L, item))
		}
		return table
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}

// calculateSHA1 computes SHA1 hash of script
func (se *ScriptEngine) calculateSHA1(script string) string {
	hash := sha1.Sum([]byte(script))
	return hex.EncodeToString(hash[:])
}
