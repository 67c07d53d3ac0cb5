package handler

import (
	"fmt"
	"strings"
	"time"

	"linkedseq/internal/lua"
	"linkedseq/internal/protocol"
	"linkedseq/internal/storage"
)

// CommandFunc handles one parsed command and returns its reply value
type CommandFunc func(cmd *protocol.Command) interface{}

// HandlerConfig holds all handler configuration
type HandlerConfig struct {
	SlowLogThreshold time.Duration
	SlowLogMaxLen    int
}

// DefaultHandlerConfig returns default handler configuration
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		SlowLogThreshold: 10 * time.Millisecond,
		SlowLogMaxLen:    128,
	}
}

// CommandHandler routes commands to the container executor, the script
// engine and the admin commands
type CommandHandler struct {
	executor  *lua.SeqExecutor
	luaEngine *lua.ScriptEngine
	commands  map[string]CommandFunc
	slowLog   *SlowLog
}

func NewCommandHandler(store *storage.Store, config HandlerConfig) *CommandHandler {
	executor := lua.NewSeqExecutor(store)
	h := &CommandHandler{
		executor:  executor,
		luaEngine: lua.NewScriptEngine(executor),
		slowLog:   NewSlowLog(config.SlowLogMaxLen, config.SlowLogThreshold),
	}
	h.registerCommands()
	return h
}

// GetSlowLog returns the slow log for external access
func (h *CommandHandler) GetSlowLog() *SlowLog {
	return h.slowLog
}

// ScriptEngine returns the Lua engine sharing this handler's store
func (h *CommandHandler) ScriptEngine() *lua.ScriptEngine {
	return h.luaEngine
}

// registerCommands initializes the command map with the commands that are
// not plain container operations
func (h *CommandHandler) registerCommands() {
	h.commands = make(map[string]CommandFunc)

	// Script commands
	h.commands["EVAL"] = h.handleEval
	h.commands["EVALSHA"] = h.handleEvalSHA
	h.commands["SCRIPT"] = h.handleScript

	// Admin commands
	h.commands["SLOWLOG"] = h.handleSlowLog
	h.commands["PING"] = h.handlePing
	h.commands["ECHO"] = h.handleEcho
}

// Execute runs cmd, records it in the slow log if needed and returns the
// reply value. Failures are returned as error values inside the reply.
func (h *CommandHandler) Execute(cmd *protocol.Command) interface{} {
	name := cmd.Name()
	if name == "" {
		return protocol.ErrEmptyCommand
	}

	start := time.Now()
	reply := h.dispatch(name, cmd)
	entry := SlowLogEntry{
		Timestamp: start,
		Duration:  time.Since(start),
		Command:   name,
		Args:      cmd.Args[1:],
	}
	h.addContainerInfo(&entry)
	h.slowLog.Record(entry)
	return reply
}

// addContainerInfo fills in the key and kind for container commands, whose
// first argument always names the container
func (h *CommandHandler) addContainerInfo(entry *SlowLogEntry) {
	if !lua.IsKnownCommand(entry.Command) || len(entry.Args) == 0 {
		return
	}
	entry.Key = entry.Args[0]
	if t, ok := h.executor.Store().Type(entry.Key); ok {
		entry.Kind = t.String()
	}
}

func (h *CommandHandler) dispatch(name string, cmd *protocol.Command) interface{} {
	if fn, ok := h.commands[name]; ok {
		return fn(cmd)
	}

	if !lua.IsKnownCommand(name) {
		return fmt.Errorf("ERR unknown command '%s'", strings.ToLower(cmd.Args[0]))
	}

	args := make([]interface{}, len(cmd.Args)-1)
	for i, arg := range cmd.Args[1:] {
		args[i] = arg
	}
	result, err := h.executor.ExecuteCommand(name, args...)
	if err != nil {
		return err
	}
	return result
}

func (h *CommandHandler) handlePing(cmd *protocol.Command) interface{} {
	if len(cmd.Args) > 1 {
		return cmd.Args[1]
	}
	return protocol.StatusReply("PONG")
}

func (h *CommandHandler) handleEcho(cmd *protocol.Command) interface{} {
	if len(cmd.Args) != 2 {
		return fmt.Errorf("ERR wrong number of arguments for 'echo' command")
	}
	return cmd.Args[1]
}
