package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/typeforge/typeforge"
	"github.com/typeforge/typeforge/ir"
	"github.com/typeforge/typeforge/jsoncodec"
	"github.com/typeforge/typeforge/schemaio"
	"github.com/typeforge/typeforge/wire"
)

func newVetCommand() *cobra.Command {
	var valueFile string
	var typeName string

	cmd := &cobra.Command{
		Use:   "vet <schema-file>",
		Short: "Check that a schema document compiles cleanly",
		Long: `Vet loads a schema document and builds a validator for every
definition, plus a wire codec for every object-rooted definition, reporting
anything that fails to generate. With --value and --type it additionally
validates a JSON value file against the named definition.

Exit status is 1 when vetting finds problems, 2 on usage errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVet(cmd, args[0], valueFile, typeName)
		},
	}

	cmd.Flags().StringVar(&valueFile, "value", "", "JSON value file to validate")
	cmd.Flags().StringVar(&typeName, "type", "", "definition name the value must conform to")
	return cmd
}

func runVet(cmd *cobra.Command, path, valueFile, typeName string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	schema, err := schemaio.Load(data)
	if err != nil {
		return err
	}

	failed := 0
	for _, def := range schema.Types {
		if _, err := jsoncodec.NewValidator(def, jsoncodec.WithSchema(schema)); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", def.Name, err)
			failed++
			continue
		}
		if ir.IsObject(def.Type) {
			if _, err := wire.NewCodec(def, wire.WithSchema(schema)); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: wire: %v\n", def.Name, err)
				failed++
			}
		}
	}
	if failed > 0 {
		return &exitError{code: 1, msg: fmt.Sprintf("%d of %d definitions failed to generate", failed, len(schema.Types))}
	}

	if valueFile != "" {
		if typeName == "" {
			return fmt.Errorf("--value requires --type")
		}
		def, ok := schema.Lookup(typeName)
		if !ok {
			return fmt.Errorf("schema has no definition named %q", typeName)
		}
		codec, err := jsoncodec.NewCodec(def, jsoncodec.WithSchema(schema))
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(valueFile)
		if err != nil {
			return err
		}
		if _, err := codec.Decode(raw); err != nil {
			if iss, ok := typeforge.AsIssues(err); ok {
				for _, issue := range iss {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", issue.Path, issue.Code, issue.Message)
				}
				return &exitError{code: 1, msg: fmt.Sprintf("%d issue(s)", len(iss))}
			}
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d definitions\n", len(schema.Types))
	return nil
}
