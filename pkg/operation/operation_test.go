package operation

import (
	"errors"
	"testing"
)

func TestCompute_SingleOutput(t *testing.T) {
	sub, err := New("sub", "", []Input{Required("a"), Required("b")}, []string{"a_minus_b"},
		func(args []any, _ map[string]any) (any, error) {
			return args[0].(float64) - args[1].(float64), nil
		}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := sub.Compute(map[string]any{"a": 0.3, "b": 4.0}, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got := out["a_minus_b"].(float64); got != -3.7 {
		t.Fatalf("a_minus_b = %v, want -3.7", got)
	}
}

func TestCompute_MultiOutput(t *testing.T) {
	divmod, _ := New("divmod", "", []Input{Required("a"), Required("b")}, []string{"q", "r"},
		func(args []any, _ map[string]any) (any, error) {
			a, b := args[0].(int), args[1].(int)
			return []any{a / b, a % b}, nil
		}, nil)

	out, err := divmod.Compute(map[string]any{"a": 7, "b": 2}, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if out["q"] != 3 || out["r"] != 1 {
		t.Fatalf("out = %v, want q=3 r=1", out)
	}
}

func TestCompute_SelectedOutputsFiltered(t *testing.T) {
	divmod, _ := New("divmod", "", []Input{Required("a"), Required("b")}, []string{"q", "r"},
		func(args []any, _ map[string]any) (any, error) {
			a, b := args[0].(int), args[1].(int)
			return []any{a / b, a % b}, nil
		}, nil)

	out, err := divmod.Compute(map[string]any{"a": 7, "b": 2}, map[string]struct{}{"q": {}})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if _, ok := out["r"]; ok {
		t.Fatalf("r should have been filtered out, got %v", out)
	}
	if out["q"] != 3 {
		t.Fatalf("q = %v, want 3", out["q"])
	}
}

func TestCompute_OptionalInputKeywordDispatch(t *testing.T) {
	var sawKwarg bool
	f, _ := New("f", "", []Input{Required("x"), Optional("gain")}, []string{"y"},
		func(args []any, kwargs map[string]any) (any, error) {
			x := args[0].(float64)
			gain := 1.0
			if g, ok := kwargs["gain"]; ok {
				gain = g.(float64)
				sawKwarg = true
			}
			return x * gain, nil
		}, nil)

	out, err := f.Compute(map[string]any{"x": 2.0}, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if out["y"] != 2.0 || sawKwarg {
		t.Fatalf("expected default gain path, got y=%v sawKwarg=%v", out["y"], sawKwarg)
	}

	out, err = f.Compute(map[string]any{"x": 2.0, "gain": 3.0}, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if out["y"] != 6.0 || !sawKwarg {
		t.Fatalf("expected gain applied, got y=%v sawKwarg=%v", out["y"], sawKwarg)
	}
}

func TestCompute_AttrsAlwaysMerged(t *testing.T) {
	f, _ := New("f", "", []Input{Required("x")}, []string{"y"},
		func(args []any, kwargs map[string]any) (any, error) {
			return args[0].(float64) + kwargs["offset"].(float64), nil
		}, map[string]any{"offset": 10.0})

	out, err := f.Compute(map[string]any{"x": 1.0}, nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if out["y"] != 11.0 {
		t.Fatalf("y = %v, want 11.0", out["y"])
	}
}

func TestCompute_InvalidValueError(t *testing.T) {
	f, _ := New("f", "", []Input{Required("x")}, []string{"y"},
		func(args []any, _ map[string]any) (any, error) {
			return nil, ErrInvalidValue
		}, nil)

	out, err := f.Compute(map[string]any{"x": 1.0}, nil)
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("want ErrInvalidValue, got %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result on error, got %v", out)
	}
}

func TestNew_RejectsOverlappingSlotNames(t *testing.T) {
	_, err := New("f", "", []Input{Required("x")}, []string{"x"},
		func([]any, map[string]any) (any, error) { return nil, nil }, nil)
	if !errors.Is(err, ErrDuplicateSlotName) {
		t.Fatalf("want ErrDuplicateSlotName, got %v", err)
	}
}

func TestNew_RejectsNilFunction(t *testing.T) {
	_, err := New("f", "", nil, []string{"y"}, nil, nil)
	if !errors.Is(err, ErrNilFunction) {
		t.Fatalf("want ErrNilFunction, got %v", err)
	}
}
