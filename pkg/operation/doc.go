// An Operation pairs one Go function with the names of the data slots it
// reads and writes:
//
//	sub, _ := operation.New("sub", "", []operation.Input{
//	    operation.Required("a"), operation.Required("b"),
//	}, []string{"a_minus_b"}, func(args []any, _ map[string]any) (any, error) {
//	    return args[0].(float64) - args[1].(float64), nil
//	}, nil)
//
// Optional inputs are only passed to the function as keyword arguments when
// present in the value map; they are never required:
//
//	operation.Optional("gain")
package operation
