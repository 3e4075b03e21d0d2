package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/aibraindb/LexiUIServer/internal/schema"
)

var errIssues = errors.New("schema has validation issues")

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemacheck [schema-file|-]",
		Short: "Validate an empty object against a JSON Schema",
		Long:  "Reads a Draft 7 JSON Schema (JSON or YAML) from a file or stdin, " +
			"validates {} against it and prints every issue found.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			issues, err := schema.Check(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintln(out, "Schema format looks valid.")
				return nil
			}
			for _, is := range issues {
				fmt.Fprintf(out, "Schema validation issue: %s\n", is.Message)
			}
			return fmt.Errorf("%w: %d found", errIssues, len(issues))
		},
	}
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(args[0])
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd()); err != nil {
		os.Exit(1)
	}
}
