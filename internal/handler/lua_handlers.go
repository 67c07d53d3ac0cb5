package handler

import (
	"fmt"
	"strconv"
	"strings"

	"linkedseq/internal/protocol"
)

// handleEval executes a Lua script
// EVAL script numkeys key [key ...] arg [arg ...]
func (h *CommandHandler) handleEval(cmd *protocol.Command) interface{} {
	if len(cmd.Args) < 3 {
		return fmt.Errorf("ERR wrong number of arguments for 'eval' command")
	}

	keys, args, err := splitKeysAndArgs(cmd.Args[2:])
	if err != nil {
		return err
	}

	result, err := h.luaEngine.Eval(cmd.Args[1], keys, args)
	if err != nil {
		return err
	}
	return result
}

// handleEvalSHA executes a cached Lua script by SHA1 hash
// EVALSHA sha1 numkeys key [key ...] arg [arg ...]
func (h *CommandHandler) handleEvalSHA(cmd *protocol.Command) interface{} {
	if len(cmd.Args) < 3 {
		return fmt.Errorf("ERR wrong number of arguments for 'evalsha' command")
	}

	keys, args, err := splitKeysAndArgs(cmd.Args[2:])
	if err != nil {
		return err
	}

	result, err := h.luaEngine.EvalSHA(cmd.Args[1], keys, args)
	if err != nil {
		return err
	}
	return result
}

// splitKeysAndArgs splits "numkeys key... arg..." into keys and args
func splitKeysAndArgs(rest []string) ([]string, []string, error) {
	numKeys, err := strconv.Atoi(rest[0])
	if err != nil || numKeys < 0 {
		return nil, nil, fmt.Errorf("ERR value is not an integer or out of range")
	}
	if len(rest)-1 < numKeys {
		return nil, nil, fmt.Errorf("ERR Number of keys can't be greater than number of args")
	}
	keys := append([]string(nil), rest[1:1+numKeys]...)
	args := append([]string(nil), rest[1+numKeys:]...)
	return keys, args, nil
}

// handleScript handles SCRIPT subcommands
// SCRIPT LOAD | EXISTS | FLUSH
func (h *CommandHandler) handleScript(cmd *protocol.Command) interface{} {
	if len(cmd.Args) < 2 {
		return fmt.Errorf("ERR wrong number of arguments for 'script' command")
	}

	subcommand := strings.ToUpper(cmd.Args[1])

	switch subcommand {
	case "LOAD":
		if len(cmd.Args) < 3 {
			return fmt.Errorf("ERR wrong number of arguments for 'script|load' command")
		}
		return h.luaEngine.LoadScript(cmd.Args[2])
	case "EXISTS":
		if len(cmd.Args) < 3 {
			return fmt.Errorf("ERR wrong number of arguments for 'script|exists' command")
		}
		results := h.luaEngine.ScriptExists(cmd.Args[2:])
		response := make([]interface{}, len(results))
		for i, exists := range results {
			response[i] = exists
		}
		return response
	case "FLUSH":
		h.luaEngine.ScriptFlush()
		return protocol.StatusReply("OK")
	default:
		return fmt.Errorf("ERR unknown SCRIPT subcommand '%s'", subcommand)
	}
}
