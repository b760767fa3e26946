package node

import (
	"bytes"
	"strings"
	"testing"

	"github.com/anshdavid/computegraph/pkg/config"
	"github.com/anshdavid/computegraph/pkg/logging"
	"github.com/anshdavid/computegraph/pkg/operation"
)

func andFn(args []any, _ map[string]any) (any, error) {
	return args[0].(bool) && args[1].(bool), nil
}

func TestNode_ComputeRunsOperationAndStoresResult(t *testing.T) {
	n := New(config.Default())
	n.AddData("a", false, "")
	n.AddData("b", false, "")
	n.AddData("out", false, "")
	n.AddOperation("and", []string{"a", "b"}, []string{"out"}, andFn, nil, "")

	n.SetValues(map[string]any{"a": true, "b": true})
	n.Compute()

	if got := n.GetValues()["out"]; got != true {
		t.Fatalf("out = %v, want true", got)
	}
}

func TestNode_UpdateValuesTriggersEvaluate(t *testing.T) {
	n := New(config.Default())
	n.AddData("a", false, "")
	n.AddData("b", false, "")
	n.AddData("out", false, "")
	n.AddOperation("and", []string{"a", "b"}, []string{"out"}, andFn, nil, "")

	n.SetValues(map[string]any{"b": true})
	n.UpdateValues(map[string]any{"a": true})

	if got := n.GetValues()["out"]; got != true {
		t.Fatalf("out = %v, want true after UpdateValues triggered Evaluate", got)
	}
}

func TestNode_UpdateValuesNoChangeDoesNotReevaluate(t *testing.T) {
	n := New(config.Default())
	runs := 0
	n.AddData("a", true, "")
	n.AddData("out", false, "")
	n.AddOperation("count", []string{"a"}, []string{"out"}, func(args []any, _ map[string]any) (any, error) {
		runs++
		return runs, nil
	}, nil, "")

	n.UpdateValues(map[string]any{"a": true}) // same value, no Evaluate
	if runs != 0 {
		t.Fatalf("expected no operation runs, got %d", runs)
	}

	n.UpdateValues(map[string]any{"a": false}) // actual change, triggers Evaluate
	if runs != 1 {
		t.Fatalf("expected 1 operation run, got %d", runs)
	}
}

func TestNode_UnknownInterfaceNameIsLoggedAndSkipped(t *testing.T) {
	n := New(config.Default())
	n.AddData("a", 1, "")

	// Must not panic; the unknown key is simply skipped.
	n.SetValues(map[string]any{"unknown": 1})
	n.UpdateValues(map[string]any{"unknown": 1})

	if got := n.GetValues()["a"]; got != 1 {
		t.Fatalf("existing interface should be untouched, got %v", got)
	}
}

func TestNode_SocketsPropagateAcrossConnectedNodes(t *testing.T) {
	producer := New(config.Default())
	producer.AddData("value", "", "")
	outSocket := producer.AddSocket("value_out", Output, "")
	outSocket.SetDataInterface(mustGetInterface(t, producer, "value"))

	consumer := New(config.Default())
	consumer.AddData("value", "", "")
	inSocket := consumer.AddSocket("value_in", Input, "")
	inSocket.SetDataInterface(mustGetInterface(t, consumer, "value"))

	outSocket.Connect(inSocket)

	producer.UpdateValues(map[string]any{"value": "hello"})
	producer.Propagate()

	if got := consumer.GetValues()["value"]; got != "hello" {
		t.Fatalf("consumer value = %v, want hello", got)
	}
}

func mustGetInterface(t *testing.T, n *Node, name string) *DataInterface {
	t.Helper()
	iface, ok := n.GetInterfaceByName(name)
	if !ok {
		t.Fatalf("interface %q not found", name)
	}
	return iface
}

func TestNode_ExecuteAbsorbsOperationError(t *testing.T) {
	n := New(config.Default())
	n.AddData("a", 1, "")
	n.AddData("out", 0, "")
	op := n.AddOperation("fail", []string{"a"}, []string{"out"}, func([]any, map[string]any) (any, error) {
		return nil, operation.ErrInvalidValue
	}, nil, "")

	n.Execute(op) // must not panic

	if got := n.GetValues()["out"]; got != 0 {
		t.Fatalf("out should be untouched after a failed operation, got %v", got)
	}
}

func TestNode_AddDataDuplicateNameLogsErrDuplicateInterface(t *testing.T) {
	buf := &bytes.Buffer{}
	n := New(config.Default())
	n.SetLogger(logging.New(logging.Config{Level: "error", Output: buf}))
	n.AddData("a", 0, "")

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected AddData to panic on a duplicate name")
		}
		if !strings.Contains(buf.String(), ErrDuplicateInterface.Error()) {
			t.Errorf("expected log to reference ErrDuplicateInterface, got: %s", buf.String())
		}
	}()
	n.AddData("a", 0, "")
}

func TestNode_AddOperationUnknownInputLogsErrUnknownInterface(t *testing.T) {
	buf := &bytes.Buffer{}
	n := New(config.Default())
	n.SetLogger(logging.New(logging.Config{Level: "error", Output: buf}))
	n.AddData("out", 0, "")

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected AddOperation to panic on an unknown input")
		}
		if !strings.Contains(buf.String(), ErrUnknownInterface.Error()) {
			t.Errorf("expected log to reference ErrUnknownInterface, got: %s", buf.String())
		}
	}()
	n.AddOperation("op", []string{"missing"}, []string{"out"}, func([]any, map[string]any) (any, error) {
		return nil, nil
	}, nil, "")
}
