package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-studio/internal/schemas"
	rootschemas "github.com/jonathan/resume-studio/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON document against a schema",
	Long: `Validates a JSON file against a JSON Schema file (--schema) or one of the
built-in document kinds (--kind template-config or --kind resume-data).`,
	RunE: runValidate,
}

var (
	validateSchemaFile string
	validateKind       string
	validateJSONFile   string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaFile, "schema", "s", "", "Path to JSON Schema file")
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "", "Built-in document kind (template-config, resume-data)")
	validateCmd.Flags().StringVarP(&validateJSONFile, "json", "j", "", "Path to JSON file to validate (required)")

	_ = validateCmd.MarkFlagRequired("json")
	validateCmd.MarkFlagsMutuallyExclusive("schema", "kind")
	validateCmd.MarkFlagsOneRequired("schema", "kind")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if validateSchemaFile != "" {
		err = schemas.ValidateFile(validateSchemaFile, validateJSONFile)
	} else {
		err = validateBuiltin(validateKind, validateJSONFile)
	}
	if err != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation failed\n")
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed\n")
	return nil
}

var documentKinds = map[string]string{
	"template-config": rootschemas.TemplateConfig,
	"resume-data":     rootschemas.ResumeData,
}

func validateBuiltin(kind, path string) error {
	schema, ok := documentKinds[kind]
	if !ok {
		return fmt.Errorf("unknown document kind %q (want template-config or resume-data)", kind)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return schemas.ValidateDocument(schema, data)
}
