package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"linkedseq/internal/handler"
	"linkedseq/internal/protocol"
	"linkedseq/internal/storage"
)

// Shell reads commands from an input stream, runs them against an
// in-memory store and writes the replies. Commands run one at a time on the
// goroutine that called Run.
type Shell struct {
	config  *Config
	store   *storage.Store
	handler *handler.CommandHandler
}

// parsedCommand carries one read result from the reader goroutine
type parsedCommand struct {
	cmd *protocol.Command
	err error
}

// NewShell creates a new shell with an empty store
func NewShell(cfg *Config) *Shell {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	store := storage.NewStore()
	h := handler.NewCommandHandler(store, handler.HandlerConfig{
		SlowLogThreshold: cfg.SlowLogThreshold,
		SlowLogMaxLen:    cfg.SlowLogMaxLen,
	})

	return &Shell{
		config:  cfg,
		store:   store,
		handler: h,
	}
}

// Store returns the store commands run against
func (s *Shell) Store() *storage.Store {
	return s.store
}

// Handler returns the command handler backing the shell
func (s *Shell) Handler() *handler.CommandHandler {
	return s.handler
}

// RunScript runs the configured startup script, if any, and writes its
// result to out
func (s *Shell) RunScript(out io.Writer) error {
	if s.config.ScriptPath == "" {
		return nil
	}

	result, err := s.handler.ScriptEngine().RunFile(s.config.ScriptPath, s.config.ScriptArgs)
	if err != nil {
		return err
	}
	return s.writeReply(out, result)
}

// Run executes commands from in until EOF, QUIT or context cancellation.
//
// Reading happens on a separate goroutine. After ctx is cancelled Run returns
// at once, but that goroutine stays blocked in its current read until in
// yields a line, returns EOF or fails. Callers passing a reader that may never
// do so should close it (or make it fail) after Run returns.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	commands := make(chan parsedCommand)
	go s.readCommands(ctx, bufio.NewReader(in), commands)

	log.Printf("Shell ready (format=%s)", s.config.Format)
	s.writePrompt(out)

	for {
		select {
		case <-ctx.Done():
			log.Println("Shutting down shell...")
			return ctx.Err()

		case p, ok := <-commands:
			if !ok {
				return nil
			}

			if p.err != nil {
				if !errors.Is(p.err, protocol.ErrEmptyCommand) && !errors.Is(p.err, protocol.ErrProtocol) {
					return fmt.Errorf("failed to read command: %w", p.err)
				}
				if errors.Is(p.err, protocol.ErrProtocol) {
					if err := s.writeReply(out, p.err); err != nil {
						return err
					}
				}
				s.writePrompt(out)
				continue
			}

			if name := p.cmd.Name(); name == "QUIT" || name == "EXIT" {
				return s.writeReply(out, protocol.StatusReply("OK"))
			}

			if err := s.writeReply(out, s.handler.Execute(p.cmd)); err != nil {
				return err
			}
			s.writePrompt(out)
		}
	}
}

// readCommands parses commands until EOF or a read failure. Protocol and
// empty-line errors are forwarded and reading continues.
func (s *Shell) readCommands(ctx context.Context, reader *bufio.Reader, commands chan<- parsedCommand) {
	defer close(commands)

	for {
		cmd, err := protocol.ParseCommand(reader)
		if err == io.EOF {
			return
		}

		select {
		case commands <- parsedCommand{cmd: cmd, err: err}:
		case <-ctx.Done():
			return
		}

		if err != nil && !errors.Is(err, protocol.ErrEmptyCommand) && !errors.Is(err, protocol.ErrProtocol) {
			return
		}
	}
}

func (s *Shell) writeReply(out io.Writer, reply interface{}) error {
	var err error
	if s.config.Format == FormatRESP {
		_, err = out.Write(protocol.EncodeReply(reply))
	} else {
		_, err = fmt.Fprintln(out, protocol.FormatReply(reply))
	}
	return err
}

func (s *Shell) writePrompt(out io.Writer) {
	if s.config.Quiet || s.config.Format == FormatRESP {
		return
	}
	fmt.Fprint(out, s.config.Prompt)
}
