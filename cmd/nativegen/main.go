// Command nativegen downloads the native function catalog and generates the
// C# wrapper file Native.cs.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/holon-run/nativegen/pkg/config"
	"github.com/holon-run/nativegen/pkg/generator"
	nglog "github.com/holon-run/nativegen/pkg/log"
)

var (
	configPath   string
	sourceURL    string
	outputPath   string
	templatePath string
	namespaces   []string
	logLevel     string
	userAgent    string
	showSummary  bool
	dryRun       bool
)

var rootCmd = &cobra.Command{
	Use:   "nativegen",
	Short: "Generate C# wrappers for the native function catalog",
	Long: `Download natives.json from the community native database, and generate
one public static C# wrapper per native that forwards to
NativeFunction.Natives.

With no flags the catalog is fetched from the default URL, the template is
read from NativeTemplate.txt next to the executable, and the result is
written to Native.cs in the current directory.

Examples:
  nativegen
  nativegen --namespace PLAYER --namespace "PED*" --summary
  nativegen --config nativegen.yaml --output ./Generated/Native.cs`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}

		level, err := nglog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if err := nglog.Init(nglog.Config{Level: level}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer nglog.Sync()

		gen, err := generator.New(cfg, generator.Options{DryRun: dryRun})
		if err != nil {
			return err
		}
		result, err := gen.Run(cmd.Context())
		if err != nil {
			return err
		}

		if showSummary {
			renderSummary(cmd.OutOrStdout(), result.Stats)
		}
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "would write %d bytes to %s\n", result.Bytes, result.OutputPath)
		}
		return nil
	},
}

// resolveConfig layers defaults, the optional config file and flags.
func resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		fileCfg, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}
	cfg = cfg.Merge(config.Config{
		SourceURL:  sourceURL,
		Output:     outputPath,
		Template:   templatePath,
		Namespaces: cleanPatterns(namespaces),
		LogLevel:   logLevel,
		UserAgent:  userAgent,
	})
	return cfg, nil
}

// cleanPatterns drops blanks left by lists such as "PLAYER, ,PED*".
func cleanPatterns(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&sourceURL, "url", "", "Catalog URL (default "+config.DefaultSourceURL+")")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default "+config.DefaultOutput+")")
	rootCmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template file (default NativeTemplate.txt next to the executable)")
	rootCmd.Flags().StringSliceVarP(&namespaces, "namespace", "n", nil, "Only generate namespaces matching these wildcard patterns")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, progress, minimal, error")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "", "User-Agent header for the download")
	rootCmd.Flags().BoolVar(&showSummary, "summary", false, "Print a per-namespace summary table")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render without writing the output file")
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
