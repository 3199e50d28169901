package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/holon-run/nativegen/pkg/template"
)

var templateWritePath string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the built-in NativeTemplate.txt",
	Long: `Print the template nativegen ships with.

{0} is replaced by the generation time and {1} by the generated methods;
{{ and }} produce literal braces. Alignments such as {0,-24} pad the value;
format suffixes such as {0:u} are accepted and ignored. Save it next to the nativegen executable,
or pass it with --template, to customise the generated file.

Examples:
  nativegen template > NativeTemplate.txt
  nativegen template --write "$(dirname "$(command -v nativegen)")/NativeTemplate.txt"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if templateWritePath == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), template.Default())
			return err
		}
		if err := os.WriteFile(templateWritePath, []byte(template.Default()), 0644); err != nil {
			return fmt.Errorf("failed to write template: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "template written to %s\n", templateWritePath)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateWritePath, "write", "w", "", "Write the template to this file instead of stdout")
	rootCmd.AddCommand(templateCmd)
}
