package lua

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"linkedseq/internal/protocol"
	"linkedseq/internal/storage"
)

func newTestEngine() (*ScriptEngine, *storage.Store) {
	store := storage.NewStore()
	return NewScriptEngine(NewSeqExecutor(store)), store
}

func TestEvalDrivesContainers(t *testing.T) {
	se, store := newTestEngine()
	script := `
		seq.call("NEW", KEYS[1], "dlist")
		for i = 1, #ARGV do
			seq.call("PUSHBACK", KEYS[1], ARGV[i])
		end
		seq.call("INSERT", KEYS[1], 1, "mid")
		return seq.call("VALUES", KEYS[1])
	`
	result, err := se.Eval(script, []string{"d"}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !reflect.DeepEqual(result, []interface{}{"a", "mid", "b"}) {
		t.Fatalf("result = %#v", result)
	}
	if kind, _ := store.Type("d"); kind != storage.DoublyListType {
		t.Fatalf("type = %v", kind)
	}
}

func TestEvalStackOrderLaw(t *testing.T) {
	se, _ := newTestEngine()
	script := `
		seq.call("NEW", "s", "stack")
		seq.call("PUSH", "s", 1, 2, 3)
		seq.call("COPY", "s", "copy")
		local out = {}
		while seq.call("EMPTY", "copy") == 0 do
			out[#out + 1] = seq.call("POP", "copy")
		end
		return out
	`
	result, err := se.Eval(script, nil, nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !reflect.DeepEqual(result, []interface{}{"3", "2", "1"}) {
		t.Fatalf("result = %#v", result)
	}
}

func TestCallRaisesAndPcallReturnsError(t *testing.T) {
	se, _ := newTestEngine()

	_, err := se.Eval(`return seq.call("POP", "missing")`, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "no such key") {
		t.Fatalf("call err = %v", err)
	}

	result, err := se.Eval(`return seq.pcall("POP", "missing")`, nil, nil)
	if err != nil {
		t.Fatalf("pcall Eval: %v", err)
	}
	replyErr, ok := result.(error)
	if !ok || replyErr.Error() != storage.ErrNoSuchKey.Error() {
		t.Fatalf("pcall result = %#v", result)
	}
}

func TestStatusAndErrorReplies(t *testing.T) {
	se, _ := newTestEngine()
	result, err := se.Eval(`return seq.call("NEW", "q", "queue")`, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result != protocol.StatusReply("OK") {
		t.Fatalf("result = %#v", result)
	}

	result, err = se.Eval(`return seq.error_reply("ERR custom")`, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if e, ok := result.(error); !ok || e.Error() != "ERR custom" {
		t.Fatalf("result = %#v", result)
	}

	result, err = se.Eval(`seq.log("hello")`, nil, nil)
	if err != nil || result != nil {
		t.Fatalf("script without return = %#v, %v", result, err)
	}
}

func TestScriptCache(t *testing.T) {
	se, _ := newTestEngine()
	sha := se.LoadScript(`return ARGV[1]`)
	if len(sha) != 40 {
		t.Fatalf("sha = %q", sha)
	}
	result, err := se.EvalSHA(sha, nil, []string{"x"})
	if err != nil || result != "x" {
		t.Fatalf("EvalSHA = %#v, %v", result, err)
	}
	if got := se.ScriptExists([]string{sha, "nope"}); !reflect.DeepEqual(got, []bool{true, false}) {
		t.Fatalf("ScriptExists = %v", got)
	}
	se.ScriptFlush()
	if _, err := se.EvalSHA(sha, nil, nil); err == nil || !strings.HasPrefix(err.Error(), "NOSCRIPT") {
		t.Fatalf("EvalSHA after flush err = %v", err)
	}
}

func TestRunFile(t *testing.T) {
	se, store := newTestEngine()
	path := filepath.Join(t.TempDir(), "seed.lua")
	script := `
		seq.call("NEW", "ring", "clist")
		seq.call("PUSHBACK", "ring", ARGV[1], ARGV[2])
		return seq.call("SIZE", "ring")
	`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	result, err := se.RunFile(path, []string{"x", "y"})
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if result != int64(2) {
		t.Fatalf("result = %#v", result)
	}
	if !store.Exists("ring") {
		t.Fatal("script did not create ring")
	}
	if _, err := se.RunFile(filepath.Join(t.TempDir(), "missing.lua"), nil); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestSyntaxError(t *testing.T) {
	se, _ := newTestEngine()
	if _, err := se.Eval(`return (`, nil, nil); err == nil || !strings.HasPrefix(err.Error(), "ERR Error running script") {
		t.Fatalf("err = %v", err)
	}
}
