package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"linkedseq/internal/protocol"
)

// handleSlowLog handles SLOWLOG command
// SLOWLOG GET [count] - Get slow log entries
// SLOWLOG LEN - Get slow log length
// SLOWLOG RESET - Reset slow log
// SLOWLOG THRESHOLD [duration] - Get or set the slow log threshold
func (h *CommandHandler) handleSlowLog(cmd *protocol.Command) interface{} {
	if len(cmd.Args) < 2 {
		return fmt.Errorf("ERR wrong number of arguments for 'slowlog' command")
	}

	subcommand := strings.ToUpper(cmd.Args[1])

	switch subcommand {
	case "GET":
		return h.handleSlowLogGet(cmd)
	case "LEN":
		return int64(h.slowLog.Len())
	case "RESET":
		h.slowLog.Reset()
		return protocol.StatusReply("OK")
	case "THRESHOLD":
		return h.handleSlowLogThreshold(cmd)
	default:
		return fmt.Errorf("ERR unknown subcommand '%s'. Try SLOWLOG GET, SLOWLOG LEN, SLOWLOG RESET, SLOWLOG THRESHOLD", subcommand)
	}
}

// handleSlowLogThreshold reports the threshold, or replaces it when a
// duration such as "250us" or "5ms" is given
func (h *CommandHandler) handleSlowLogThreshold(cmd *protocol.Command) interface{} {
	switch len(cmd.Args) {
	case 2:
		return h.slowLog.Threshold().String()
	case 3:
		threshold, err := time.ParseDuration(cmd.Args[2])
		if err != nil || threshold < 0 {
			return fmt.Errorf("ERR invalid slowlog threshold '%s'", cmd.Args[2])
		}
		h.slowLog.SetThreshold(threshold)
		return protocol.StatusReply("OK")
	default:
		return fmt.Errorf("ERR wrong number of arguments for 'slowlog threshold' command")
	}
}

// handleSlowLogGet returns slow log entries
func (h *CommandHandler) handleSlowLogGet(cmd *protocol.Command) interface{} {
	count := 10 // Default count
	if len(cmd.Args) >= 3 {
		var err error
		count, err = strconv.Atoi(cmd.Args[2])
		if err != nil {
			return fmt.Errorf("ERR value is not an integer or out of range")
		}
	}

	entries := h.slowLog.Get(count)

	// Each entry: [id, timestamp, duration_microseconds, [command, args...], key, kind]
	result := make([]interface{}, len(entries))
	for i, entry := range entries {
		cmdArgs := make([]interface{}, len(entry.Args)+1)
		cmdArgs[0] = entry.Command
		for j, arg := range entry.Args {
			cmdArgs[j+1] = arg
		}

		result[i] = []interface{}{
			entry.ID,
			entry.Timestamp.Unix(),
			entry.Duration.Microseconds(),
			cmdArgs,
			entry.Key,
			entry.Kind,
		}
	}

	return result
}
