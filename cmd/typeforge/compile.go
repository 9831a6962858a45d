package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/typeforge/typeforge/jsonschema"
	"github.com/typeforge/typeforge/schemaio"
)

func newCompileCommand() *cobra.Command {
	var out string
	var target string

	cmd := &cobra.Command{
		Use:   "compile <schema-file>",
		Short: "Compile a schema document into a generated output",
		Long: `Compile loads a schema document, lowers it into the intermediate
representation, and emits the chosen target:

  jsonschema   a JSON Schema document with every definition under $defs
  json         the normalized schema document as JSON
  yaml         the normalized schema document as YAML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args[0], target, out)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&target, "target", "t", "jsonschema", "output target (jsonschema|json|yaml)")
	return cmd
}

func runCompile(cmd *cobra.Command, path, target, out string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	schema, err := schemaio.Load(data)
	if err != nil {
		return err
	}

	var rendered []byte
	switch target {
	case "jsonschema":
		rendered, err = jsonschema.FromSchema(schema).JSON()
	case "json":
		rendered, err = schemaio.SaveJSON(schema)
	case "yaml":
		rendered, err = schemaio.SaveYAML(schema)
	default:
		return fmt.Errorf("unknown target %q", target)
	}
	if err != nil {
		return err
	}
	if len(rendered) > 0 && rendered[len(rendered)-1] != '\n' {
		rendered = append(rendered, '\n')
	}

	if out == "" {
		_, err = cmd.OutOrStdout().Write(rendered)
		return err
	}
	return os.WriteFile(out, rendered, 0o644)
}
