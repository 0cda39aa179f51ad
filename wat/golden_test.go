package wat

import (
	"fmt"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps detect obsolete snapshots across the package's
// test run; see https://github.com/gkampitakis/go-snaps.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// renderEvent produces a deterministic one-line rendering of a ParserState,
// used only to build a stable golden transcript; it is not the CLI's own
// renderer (see cmd/watlex/cmd).
func renderEvent(state *ParserState) string {
	switch state.Kind {
	case StateStartModule:
		return fmt.Sprintf("StartModule id=%q", string(state.ModuleID))
	case StateEndModule:
		return "EndModule"
	case StateImport:
		return fmt.Sprintf("Import mod=%q field=%q tag=%d", state.ModName, state.FieldName, state.Import.Tag)
	case StateStartFunc:
		return fmt.Sprintf("StartFunc id=%q params=%d results=%d locals=%d", string(state.FuncID), len(state.Typeuse.Params), len(state.Typeuse.Results), len(state.Locals))
	case StateEndFunc:
		return "EndFunc"
	case StateCodeOperator:
		return fmt.Sprintf("CodeOperator %s args=%d group=%t", string(state.Instruction), len(state.Args), state.Group)
	case StateCodeOperatorEnd:
		return "CodeOperatorEnd"
	case StateEnd:
		return "End"
	case StateError:
		return fmt.Sprintf("Error: %s", state.Err)
	default:
		return state.Kind.String()
	}
}

func transcript(source string) []string {
	p := NewParser([]byte(source))
	var lines []string
	for {
		state := p.Step()
		lines = append(lines, renderEvent(state))
		if state.Kind == StateEnd || state.Kind == StateError {
			return lines
		}
	}
}

func TestGoldenFibonacciModule(t *testing.T) {
	source := `
(module $fib
  (func $fib (export "fib") (param $n i32) (result i32)
    (if (result i32)
      (i32.lt_s (local.get $n) (i32.const 2))
      (then (local.get $n))
      (else
        (i32.add
          (call $fib (i32.sub (local.get $n) (i32.const 1)))
          (call $fib (i32.sub (local.get $n) (i32.const 2))))))))
`
	snaps.MatchSnapshot(t, transcript(source))
}

func TestGoldenMemoryAndFuncImportModule(t *testing.T) {
	source := `
(module $io
  (import "env" "mem" (memory (shared 1 16)))
  (func $log (import "env" "log") (param i32))
  (func $add (export "add") (param $a i32) (param $b i32) (result i32)
    (i32.add (local.get $a) (local.get $b))))
`
	snaps.MatchSnapshot(t, transcript(source))
}
