package handler

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"linkedseq/internal/protocol"
	"linkedseq/internal/storage"
)

func newTestHandler() *CommandHandler {
	return NewCommandHandler(storage.NewStore(), DefaultHandlerConfig())
}

func run(h *CommandHandler, args ...string) interface{} {
	return h.Execute(&protocol.Command{Args: args})
}

func TestExecuteContainerCommands(t *testing.T) {
	h := newTestHandler()
	steps := []struct {
		args []string
		want interface{}
	}{
		{[]string{"new", "q", "queue"}, protocol.StatusReply("OK")},
		{[]string{"ENQUEUE", "q", "1", "2", "3"}, int64(3)},
		{[]string{"COPY", "q", "q2"}, protocol.StatusReply("OK")},
		{[]string{"DEQUEUE", "q2"}, "1"},
		{[]string{"FRONT", "q"}, "1"},
		{[]string{"DUMP", "q2"}, "Front -> 2 | 3 <- Back"},
		{[]string{"VALUES", "q"}, []string{"1", "2", "3"}},
	}

	for _, step := range steps {
		got := run(h, step.args...)
		if !reflect.DeepEqual(got, step.want) {
			t.Fatalf("%v = %#v, want %#v", step.args, got, step.want)
		}
	}
}

func TestExecuteErrorsAreReplies(t *testing.T) {
	h := newTestHandler()
	run(h, "NEW", "s", "stack")

	if err, ok := run(h, "POP", "s").(error); !ok || !errors.Is(err, storage.ErrEmpty) {
		t.Fatalf("POP on empty stack = %v", err)
	}
	if err, ok := run(h, "NOPE").(error); !ok || err.Error() != "ERR unknown command 'nope'" {
		t.Fatalf("unknown command = %v", err)
	}
	if err, ok := h.Execute(&protocol.Command{}).(error); !ok || !errors.Is(err, protocol.ErrEmptyCommand) {
		t.Fatalf("empty command = %v", err)
	}
}

func TestPingEcho(t *testing.T) {
	h := newTestHandler()
	if got := run(h, "PING"); got != protocol.StatusReply("PONG") {
		t.Fatalf("PING = %#v", got)
	}
	if got := run(h, "PING", "hi"); got != "hi" {
		t.Fatalf("PING hi = %#v", got)
	}
	if got := run(h, "ECHO", "x"); got != "x" {
		t.Fatalf("ECHO = %#v", got)
	}
	if _, ok := run(h, "ECHO").(error); !ok {
		t.Fatal("ECHO without argument accepted")
	}
}

func TestEvalAndScriptCommands(t *testing.T) {
	h := newTestHandler()
	script := `seq.call("NEW", KEYS[1], "list") return seq.call("PUSHBACK", KEYS[1], ARGV[1], ARGV[2])`
	if got := run(h, "EVAL", script, "1", "l", "a", "b"); got != int64(2) {
		t.Fatalf("EVAL = %#v", got)
	}
	if got := run(h, "AT", "l", "1"); got != "b" {
		t.Fatalf("AT after EVAL = %#v", got)
	}

	sha, ok := run(h, "SCRIPT", "LOAD", `return seq.call("SIZE", KEYS[1])`).(string)
	if !ok {
		t.Fatal("SCRIPT LOAD did not return a sha")
	}
	if got := run(h, "EVALSHA", sha, "1", "l"); got != int64(2) {
		t.Fatalf("EVALSHA = %#v", got)
	}
	if got := run(h, "SCRIPT", "EXISTS", sha, "nope"); !reflect.DeepEqual(got, []interface{}{true, false}) {
		t.Fatalf("SCRIPT EXISTS = %#v", got)
	}
	if got := run(h, "SCRIPT", "FLUSH"); got != protocol.StatusReply("OK") {
		t.Fatalf("SCRIPT FLUSH = %#v", got)
	}
	if err, ok := run(h, "EVALSHA", sha, "0").(error); !ok || !strings.HasPrefix(err.Error(), "NOSCRIPT") {
		t.Fatalf("EVALSHA after flush = %#v", err)
	}
	if _, ok := run(h, "EVAL", "return 1", "2", "onlyone").(error); !ok {
		t.Fatal("numkeys larger than args accepted")
	}
	if _, ok := run(h, "SCRIPT", "KILL").(error); !ok {
		t.Fatal("unknown SCRIPT subcommand accepted")
	}
}

func TestSlowLog(t *testing.T) {
	h := NewCommandHandler(storage.NewStore(), HandlerConfig{SlowLogThreshold: 0, SlowLogMaxLen: 2})
	run(h, "NEW", "l", "list")
	run(h, "PUSHBACK", "l", "1")
	run(h, "SIZE", "l")

	if got := run(h, "SLOWLOG", "LEN"); got != int64(2) {
		t.Fatalf("SLOWLOG LEN = %#v", got)
	}
	entries, ok := run(h, "SLOWLOG", "GET", "1").([]interface{})
	if !ok || len(entries) != 1 {
		t.Fatalf("SLOWLOG GET 1 = %#v", entries)
	}
	// SLOWLOG LEN was itself logged once it returned
	newest := entries[0].([]interface{})
	if cmd := newest[3].([]interface{}); cmd[0] != "SLOWLOG" || cmd[1] != "LEN" {
		t.Fatalf("newest entry = %#v", newest)
	}
	if got := run(h, "SLOWLOG", "RESET"); got != protocol.StatusReply("OK") {
		t.Fatalf("SLOWLOG RESET = %#v", got)
	}
	if n := h.GetSlowLog().Len(); n != 1 {
		t.Fatalf("entries after reset = %d", n)
	}
}

func TestSlowLogRecordsContainer(t *testing.T) {
	h := NewCommandHandler(storage.NewStore(), HandlerConfig{SlowLogThreshold: 0, SlowLogMaxLen: 8})
	run(h, "NEW", "r", "clist")
	run(h, "WALK", "r", "3")
	run(h, "DEL", "r")
	run(h, "PING")

	entries := h.GetSlowLog().Get(0)
	want := []struct{ command, key, kind string }{
		{"PING", "", ""},
		{"DEL", "r", ""},
		{"WALK", "r", "clist"},
		{"NEW", "r", "clist"},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		e := entries[i]
		if e.Command != w.command || e.Key != w.key || e.Kind != w.kind {
			t.Errorf("entry %d = %s %q (%q), want %s %q (%q)", i, e.Command, e.Key, e.Kind, w.command, w.key, w.kind)
		}
	}

	reply := run(h, "SLOWLOG", "GET", "2").([]interface{})
	del := reply[1].([]interface{})
	if del[4] != "r" || del[5] != "" {
		t.Fatalf("SLOWLOG GET entry = %#v", del)
	}
}

func TestSlowLogRing(t *testing.T) {
	s := NewSlowLog(2, 0)
	for _, name := range []string{"A", "B", "C"} {
		s.Record(SlowLogEntry{Command: name})
	}
	got := s.Get(0)
	if len(got) != 2 || got[0].Command != "C" || got[1].Command != "B" {
		t.Fatalf("Get(0) = %#v", got)
	}
	if got[0].ID != 3 {
		t.Fatalf("newest ID = %d, want 3", got[0].ID)
	}

	s.Reset()
	if s.Len() != 0 || len(s.Get(0)) != 0 {
		t.Fatal("entries survive Reset")
	}
	s.Record(SlowLogEntry{Command: "D"})
	if got := s.Get(5); len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("after reset Get(5) = %#v", got)
	}

	if NewSlowLog(0, 0).Record(SlowLogEntry{Command: "X"}) {
		t.Fatal("zero-length slow log recorded an entry")
	}
}

func TestSlowLogThreshold(t *testing.T) {
	s := NewSlowLog(4, time.Second)
	if s.Record(SlowLogEntry{Command: "SIZE", Duration: time.Millisecond}) {
		t.Fatal("fast command logged")
	}
	if !s.Record(SlowLogEntry{Command: "WALK", Args: []string{"c", "100"}, Duration: 2 * time.Second}) {
		t.Fatal("slow command not logged")
	}

	h := NewCommandHandler(storage.NewStore(), DefaultHandlerConfig())
	if got := run(h, "SLOWLOG", "THRESHOLD"); got != "10ms" {
		t.Fatalf("SLOWLOG THRESHOLD = %#v", got)
	}
	if got := run(h, "SLOWLOG", "THRESHOLD", "1h"); got != protocol.StatusReply("OK") {
		t.Fatalf("SLOWLOG THRESHOLD 1h = %#v", got)
	}
	if h.GetSlowLog().Threshold() != time.Hour {
		t.Fatalf("threshold = %v", h.GetSlowLog().Threshold())
	}
	for _, bad := range []string{"soon", "-1s"} {
		if _, ok := run(h, "SLOWLOG", "THRESHOLD", bad).(error); !ok {
			t.Fatalf("threshold %q accepted", bad)
		}
	}

	run(h, "SLOWLOG", "THRESHOLD", "0s")
	run(h, "NEW", "q", "queue")
	if got := h.GetSlowLog().Get(1); len(got) != 1 || got[0].Command != "NEW" {
		t.Fatalf("Get(1) = %#v", got)
	}
}
