package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func quietShell(format string) *Shell {
	cfg := DefaultConfig()
	cfg.Quiet = true
	cfg.Format = format
	return NewShell(cfg)
}

func TestShellRunsCommandsUntilEOF(t *testing.T) {
	sh := quietShell(FormatText)
	input := strings.Join([]string{
		"NEW l list",
		"PUSHBACK l 10 20 30",
		"PUSHFRONT l 5",
		"INSERT l 2 99",
		"",
		"REMOVE l 20",
		"REMOVEAT l 0",
		"AT l 1",
		"DUMP l",
		"AT l 3",
		"VALUES l",
	}, "\n")

	var out bytes.Buffer
	if err := sh.Run(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := strings.Join([]string{
		"OK",
		"(integer) 3",
		"(integer) 4",
		"(integer) 5",
		"(integer) 1",
		`"5"`,
		`"99"`,
		`"Head -> 10 -> 99 -> 30 -> nil"`,
		"(error) ERR index out of range",
		`1) "10"`,
		`2) "99"`,
		`3) "30"`,
	}, "\n") + "\n"
	if out.String() != want {
		t.Fatalf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestShellQuitStopsReading(t *testing.T) {
	sh := quietShell(FormatText)
	var out bytes.Buffer
	err := sh.Run(context.Background(), strings.NewReader("NEW s stack\nQUIT\nNEW t stack\n"), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "OK\nOK\n" {
		t.Fatalf("output = %q", out.String())
	}
	if sh.Store().Exists("t") {
		t.Fatal("command after QUIT was executed")
	}
}

func TestShellProtocolErrorKeepsGoing(t *testing.T) {
	sh := quietShell(FormatText)
	var out bytes.Buffer
	err := sh.Run(context.Background(), strings.NewReader("ECHO \"open\nPING\n"), &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "(error) ERR Protocol error") || lines[1] != "PONG" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestShellRESPFormat(t *testing.T) {
	sh := quietShell(FormatRESP)
	var out bytes.Buffer
	input := "*3\r\n$3\r\nNEW\r\n$1\r\nq\r\n$5\r\nqueue\r\nENQUEUE q a\nDEQUEUE q\nDEQUEUE q\n"
	if err := sh.Run(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "+OK\r\n:1\r\n$1\r\na\r\n-ERR container is empty\r\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestShellPrompt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prompt = "> "
	sh := NewShell(cfg)
	var out bytes.Buffer
	if err := sh.Run(context.Background(), strings.NewReader("PING\n"), &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "> PONG\n> " {
		t.Fatalf("output = %q", out.String())
	}
}

func TestShellContextCancel(t *testing.T) {
	sh := quietShell(FormatText)
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sh.Run(ctx, reader, io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
}

func TestShellRunScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.lua")
	script := `
		seq.call("NEW", "d", "dlist")
		seq.call("PUSHBACK", "d", ARGV[1], ARGV[2], ARGV[3])
		return seq.call("DUMPBACK", "d")
	`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Quiet = true
	cfg.ScriptPath = path
	cfg.ScriptArgs = []string{"1", "2", "3"}
	sh := NewShell(cfg)

	var out bytes.Buffer
	if err := sh.RunScript(&out); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if err := sh.Run(context.Background(), strings.NewReader("SIZE d\n"), &out); err != nil {
		t.Fatal(err)
	}
	want := "\"Tail -> 3 <-> 2 <-> 1 <- Head\"\n(integer) 3\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestShellWithoutScript(t *testing.T) {
	sh := quietShell(FormatText)
	var out bytes.Buffer
	if err := sh.RunScript(&out); err != nil || out.Len() != 0 {
		t.Fatalf("RunScript without a path = %v, %q", err, out.String())
	}
}
