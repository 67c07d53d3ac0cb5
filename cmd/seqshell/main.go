package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"linkedseq/internal/server"
)

func main() {
	defaults := server.DefaultConfig()

	// Command-line flags for shell configuration
	script := flag.String("script", "", "Lua script to run before reading commands (extra arguments become ARGV)")
	prompt := flag.String("prompt", defaults.Prompt, "Prompt shown before each command")
	format := flag.String("format", defaults.Format, "Reply format: text or resp")
	quiet := flag.Bool("quiet", false, "Do not print a prompt")
	slowThreshold := flag.Duration("slowlog-threshold", defaults.SlowLogThreshold, "Commands slower than this are written to the slow log")
	slowMaxLen := flag.Int("slowlog-max-len", defaults.SlowLogMaxLen, "Maximum number of slow log entries kept")

	flag.Parse()

	if *format != server.FormatText && *format != server.FormatRESP {
		log.Fatalf("Unknown reply format %q (want %s or %s)", *format, server.FormatText, server.FormatRESP)
	}

	cfg := &server.Config{
		Prompt:           *prompt,
		Format:           *format,
		Quiet:            *quiet,
		ScriptPath:       *script,
		ScriptArgs:       flag.Args(),
		SlowLogThreshold: *slowThreshold,
		SlowLogMaxLen:    *slowMaxLen,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh := server.NewShell(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	if err := sh.RunScript(os.Stdout); err != nil {
		log.Fatalf("Script failed: %v", err)
	}

	if err := sh.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		log.Fatalf("Shell failed: %v", err)
	}
}
