package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/watlex/watlex/internal/watlog"
	"github.com/watlex/watlex/wat"
)

var format string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a WAT module and print its event stream",
	Long: `parse drives a wat.Parser to completion over the given file (or
stdin, with "-" or no argument) and prints one line per parse event. It
exits non-zero and prints the single terminal error if parsing fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&format, "format", "text", "output format: text, json, or repr")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	source, err := readSource(path)
	if err != nil {
		return errors.Annotatef(err, "reading %s", path)
	}

	log := watlog.Logger()
	log.Tracef("parsing %s (%d bytes)", path, len(source))

	parser := wat.NewParser(source)
	for {
		state := parser.Step()
		if err := renderState(cmd.OutOrStdout(), state); err != nil {
			return errors.Annotatef(err, "rendering event from %s", path)
		}
		log.Tracef("%s: %s", path, state.Kind)

		if state.Kind == wat.StateEnd {
			return nil
		}
		if state.Kind == wat.StateError {
			log.Errorf("%s: %s", path, state.Err)
			return errors.Annotatef(state.Err, "parsing %s", path)
		}
	}
}

func readSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func renderState(w io.Writer, state *wat.ParserState) error {
	switch format {
	case "json":
		return renderStateJSON(w, state)
	case "repr":
		repr.Println(state)
		return nil
	default:
		fmt.Fprintln(w, describeState(state))
		return nil
	}
}

// stateJSON is the JSON rendering of a ParserState: one object per line,
// fields populated only for the Kind they belong to (see wat.ParserState).
type stateJSON struct {
	Kind        string              `json:"kind"`
	ModuleID    string              `json:"module_id,omitempty"`
	FuncID      string              `json:"func_id,omitempty"`
	ModName     string              `json:"mod_name,omitempty"`
	FieldName   string              `json:"field_name,omitempty"`
	ExportName  *string             `json:"export_name,omitempty"`
	Instruction string              `json:"instruction,omitempty"`
	Group       bool                `json:"group,omitempty"`
	NumArgs     int                 `json:"num_args,omitempty"`
	Error       string              `json:"error,omitempty"`
}

func renderStateJSON(w io.Writer, state *wat.ParserState) error {
	out := stateJSON{Kind: state.Kind.String()}
	if state.ModuleID != nil {
		out.ModuleID = string(state.ModuleID)
	}
	if state.FuncID != nil {
		out.FuncID = string(state.FuncID)
	}
	out.ModName = state.ModName
	out.FieldName = state.FieldName
	out.ExportName = state.ExportName
	if state.Instruction != nil {
		out.Instruction = string(state.Instruction)
	}
	out.Group = state.Group
	out.NumArgs = len(state.Args)
	if state.Err != nil {
		out.Error = state.Err.Error()
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

func describeState(state *wat.ParserState) string {
	switch state.Kind {
	case wat.StateStartModule:
		return fmt.Sprintf("StartModule id=%q", string(state.ModuleID))
	case wat.StateEndModule:
		return "EndModule"
	case wat.StateImport:
		return fmt.Sprintf("Import mod=%q field=%q", state.ModName, state.FieldName)
	case wat.StateStartFunc:
		return fmt.Sprintf("StartFunc id=%q", string(state.FuncID))
	case wat.StateEndFunc:
		return "EndFunc"
	case wat.StateCodeOperator:
		return fmt.Sprintf("CodeOperator %s args=%d group=%t", string(state.Instruction), len(state.Args), state.Group)
	case wat.StateCodeOperatorEnd:
		return "CodeOperatorEnd"
	case wat.StateEnd:
		return "End"
	case wat.StateError:
		return fmt.Sprintf("Error: %s", state.Err)
	default:
		return state.Kind.String()
	}
}
