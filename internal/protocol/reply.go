package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptyCommand = errors.New("empty command")
	ErrProtocol     = errors.New("ERR Protocol error")
)

// StatusReply is a short status such as OK, rendered without quotes
type StatusReply string

// ==================== RESP ENCODING ====================

func EncodeSimpleString(s string) []byte {
	return []byte(fmt.Sprintf("+%s\r\n", s))
}

func EncodeError(s string) []byte {
	return []byte(fmt.Sprintf("-%s\r\n", s))
}

func EncodeInteger64(i int64) []byte {
	return []byte(fmt.Sprintf(":%d\r\n", i))
}

func EncodeBulkString(s string) []byte {
	return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(s), s))
}

func EncodeNullBulkString() []byte {
	return []byte("$-1\r\n")
}

// EncodeReply encodes a reply value produced by the command layer.
// Supported values: nil, StatusReply, error, string, bool, int, int64,
// []string and []interface{} (recursively).
func EncodeReply(v interface{}) []byte {
	switch val := v.(type) {
	case nil:
		return EncodeNullBulkString()
	case StatusReply:
		return EncodeSimpleString(string(val))
	case error:
		return EncodeError(val.Error())
	case string:
		return EncodeBulkString(val)
	case bool:
		if val {
			return EncodeInteger64(1)
		}
		return EncodeInteger64(0)
	case int:
		return EncodeInteger64(int64(val))
	case int64:
		return EncodeInteger64(val)
	case []string:
		items := make([]interface{}, len(val))
		for i, s := range val {
			items[i] = s
		}
		return EncodeReply(items)
	case []interface{}:
		result := []byte(fmt.Sprintf("*%d\r\n", len(val)))
		for _, item := range val {
			result = append(result, EncodeReply(item)...)
		}
		return result
	default:
		return EncodeBulkString(fmt.Sprintf("%v", val))
	}
}

// ==================== TEXT RENDERING ====================

// FormatReply renders a reply the way an interactive client shows it:
// quoted strings, "(integer) n", "(nil)", "(error) msg" and numbered
// array items.
func FormatReply(v interface{}) string {
	var sb strings.Builder
	formatReply(&sb, v, "")
	return sb.String()
}

func formatReply(sb *strings.Builder, v interface{}, indent string) {
	switch val := v.(type) {
	case nil:
		sb.WriteString("(nil)")
	case StatusReply:
		sb.WriteString(string(val))
	case error:
		sb.WriteString("(error) ")
		sb.WriteString(val.Error())
	case string:
		sb.WriteString(strconv.Quote(val))
	case bool:
		if val {
			sb.WriteString("(integer) 1")
		} else {
			sb.WriteString("(integer) 0")
		}
	case int:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.Itoa(val))
	case int64:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(val, 10))
	case []string:
		items := make([]interface{}, len(val))
		for i, s := range val {
			items[i] = s
		}
		formatReply(sb, items, indent)
	case []interface{}:
		if len(val) == 0 {
			sb.WriteString("(empty array)")
			return
		}
		width := len(strconv.Itoa(len(val)))
		for i, item := range val {
			if i > 0 {
				sb.WriteString("\n")
				sb.WriteString(indent)
			}
			prefix := fmt.Sprintf("%*d) ", width, i+1)
			sb.WriteString(prefix)
			formatReply(sb, item, indent+strings.Repeat(" ", len(prefix)))
		}
	default:
		sb.WriteString(fmt.Sprintf("%v", val))
	}
}
