package main

import (
	"fmt"

	"github.com/jonathan/truthweaver/internal/schemas"
	rootschemas "github.com/jonathan/truthweaver/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <json-file>",
	Short: "Validate a JSON file against a bundled schema",
	Long: `Validate an analysis result (the default) or a sessions file against the
JSON Schema bundled with truthweaver, or against your own schema with --schema.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var (
	validateKind   string
	validateSchema string
)

// schemaKinds maps --kind values to bundled schema files.
var schemaKinds = map[string]string{
	"result":   rootschemas.AnalysisResult,
	"sessions": rootschemas.Sessions,
}

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "result", "Document kind: result or sessions")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON Schema file to validate against instead of a bundled one")
	validateCmd.MarkFlagsMutuallyExclusive("kind", "schema")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateSchema != "" {
		if err := schemas.ValidateJSON(validateSchema, args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid against %s\n", args[0], validateSchema)
		return nil
	}

	schemaName, ok := schemaKinds[validateKind]
	if !ok {
		return fmt.Errorf("unknown --kind %q (want result or sessions)", validateKind)
	}

	if err := schemas.ValidateFile(schemaName, args[0]); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s document\n", args[0], validateKind)
	return nil
}
