package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// exitError carries an explicit process exit code through cobra's error
// return so validation failures (1) stay distinct from usage errors (2).
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func exitCodeOf(err error) (int, bool) {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code, true
	}
	return 0, false
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "typeforge",
		Short:         "Compile structural type schemas into generated outputs",
		Long:          "typeforge reads schema documents (YAML or JSON), lowers them into a typed intermediate representation, and generates JSON Schema documents and runtime codecs from it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newCompileCommand())
	cmd.AddCommand(newVetCommand())

	return cmd
}
