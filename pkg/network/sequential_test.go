package network

import (
	"context"
	"errors"
	"testing"

	"github.com/anshdavid/computegraph/pkg/config"
	"github.com/anshdavid/computegraph/pkg/operation"
)

func TestNetwork_CallAbsorbsOperationFailureAndContinues(t *testing.T) {
	n := New(config.Default())

	failing, err := operation.New("divide", "", []operation.Input{operation.Required("a"), operation.Required("b")},
		[]string{"quotient"},
		func(args []any, _ map[string]any) (any, error) {
			b := args[1].(float64)
			if b == 0 {
				return nil, operation.ErrInvalidValue
			}
			return args[0].(float64) / b, nil
		}, nil)
	if err != nil {
		t.Fatalf("operation.New: %v", err)
	}

	independent, err := operation.New("double", "", []operation.Input{operation.Required("c")}, []string{"doubled"},
		func(args []any, _ map[string]any) (any, error) {
			return args[0].(float64) * 2, nil
		}, nil)
	if err != nil {
		t.Fatalf("operation.New: %v", err)
	}

	if err := n.AddOperation(failing); err != nil {
		t.Fatalf("AddOperation: %v", err)
	}
	if err := n.AddOperation(independent); err != nil {
		t.Fatalf("AddOperation: %v", err)
	}
	if _, err := n.Compile(false); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	out, err := n.Call(context.Background(), map[string]any{"a": 1.0, "b": 0.0, "c": 5.0}, nil, Sequential)
	if err != nil {
		t.Fatalf("Call should not fail outright on an operation error: %v", err)
	}
	if _, ok := out["quotient"]; ok {
		t.Fatalf("quotient should be absent after a failed operation, got %v", out)
	}
	if got := out["doubled"].(float64); got != 10.0 {
		t.Fatalf("doubled = %v, want 10.0 from the unaffected operation", got)
	}
}

func TestNetwork_StrictExecutionAbortsOnOperationFailure(t *testing.T) {
	cfg := config.Default()
	cfg.StrictExecution = true
	n := New(cfg)

	failing, err := operation.New("divide", "", []operation.Input{operation.Required("a"), operation.Required("b")},
		[]string{"quotient"},
		func(args []any, _ map[string]any) (any, error) {
			return nil, operation.ErrInvalidValue
		}, nil)
	if err != nil {
		t.Fatalf("operation.New: %v", err)
	}
	if err := n.AddOperation(failing); err != nil {
		t.Fatalf("AddOperation: %v", err)
	}
	if _, err := n.Compile(false); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	_, err = n.Call(context.Background(), map[string]any{"a": 1.0, "b": 0.0}, nil, Sequential)
	if !errors.Is(err, operation.ErrInvalidValue) {
		t.Fatalf("strict mode should surface the operation error, got %v", err)
	}
}

func TestFilterResult_EmptyOutputsReturnsWholeCache(t *testing.T) {
	cache := map[string]any{"a": 1, "b": 2}
	got := filterResult(cache, nil)
	if len(got) != 2 {
		t.Fatalf("expected whole cache returned, got %v", got)
	}
}

func TestFilterResult_FiltersToRequestedSubset(t *testing.T) {
	cache := map[string]any{"a": 1, "b": 2, "c": 3}
	got := filterResult(cache, []string{"b"})
	if len(got) != 1 || got["b"] != 2 {
		t.Fatalf("expected only b, got %v", got)
	}
}
