package server

import "time"

// Output formats for replies
const (
	FormatText = "text" // human readable, like an interactive client
	FormatRESP = "resp" // raw RESP frames
)

type Config struct {
	Prompt string
	Format string // FormatText or FormatRESP
	Quiet  bool   // suppress the prompt

	// Script run before reading commands
	ScriptPath string
	ScriptArgs []string

	// Slow log configuration
	SlowLogThreshold time.Duration // Commands slower than this are logged
	SlowLogMaxLen    int           // Max entries kept by SLOWLOG
}

func DefaultConfig() *Config {
	return &Config{
		Prompt: "seq> ",
		Format: FormatText,

		SlowLogThreshold: 10 * time.Millisecond, // Log commands slower than 10ms
		SlowLogMaxLen:    128,
	}
}
