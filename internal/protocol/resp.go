package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Command struct {
	Args []string
}

// Name returns the upper-cased command name
func (c *Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return strings.ToUpper(c.Args[0])
}

// ParseCommand reads one command from reader. A line starting with '*' is a
// RESP array of bulk strings; anything else is an inline command split on
// whitespace, with double quotes grouping words.
func ParseCommand(reader *bufio.Reader) (*Command, error) {
	line, err := readLine(reader)
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(line)) == 0 {
		return nil, ErrEmptyCommand
	}

	switch line[0] {
	case '*':
		return parseArray(reader, line)
	default:
		return parseInline(line)
	}
}

const (
	// maxArrayLen and maxBulkLen mirror Redis' default
	// proto-max-multibulk-len and proto-max-bulk-len
	maxArrayLen = 1024 * 1024
	maxBulkLen  = 512 * 1024 * 1024
)

func parseArray(reader *bufio.Reader, firstLine string) (*Command, error) {
	count, err := strconv.Atoi(firstLine[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid array length: %v", ErrProtocol, err)
	}

	if count <= 0 || count > maxArrayLen {
		return nil, fmt.Errorf("%w: invalid array length: %d", ErrProtocol, count)
	}

	args := make([]string, 0, count)

	for i := 0; i < count; i++ {
		line, err := readLine(reader)
		if err != nil {
			return nil, err
		}

		if len(line) == 0 || line[0] != '$' {
			return nil, fmt.Errorf("%w: expected bulk string, got: %s", ErrProtocol, line)
		}

		length, err := strconv.Atoi(line[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid bulk string length: %v", ErrProtocol, err)
		}

		if length < 0 {
			args = append(args, "")
			continue
		}
		if length > maxBulkLen {
			return nil, fmt.Errorf("%w: invalid bulk length: %d", ErrProtocol, length)
		}

		data := make([]byte, length)
		_, err = io.ReadFull(reader, data)
		if err != nil {
			return nil, err
		}

		_, err = readLine(reader)
		if err != nil {
			return nil, err
		}

		args = append(args, string(data))
	}

	return &Command{Args: args}, nil
}

func parseInline(line string) (*Command, error) {
	args, err := splitInline(line)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}
	return &Command{Args: args}, nil
}

// splitInline splits on whitespace; "double quoted" words may contain
// spaces and the escapes \" and \\
func splitInline(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	inWord, inQuotes := false, false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes && ch == '\\' && i+1 < len(line):
			i++
			current.WriteByte(line[i])
		case ch == '"':
			inQuotes = !inQuotes
			inWord = true
		case !inQuotes && (ch == ' ' || ch == '\t'):
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteByte(ch)
			inWord = true
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("%w: unbalanced quotes in command", ErrProtocol)
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		// A final line without a trailing newline is still a command
		if err == io.EOF && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
