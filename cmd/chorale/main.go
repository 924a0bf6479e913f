// Command chorale is the CLI front end: give it an instruction, get sheet
// music suggestions.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ewilliams-labs/chorale/internal/adapters/catalog"
	"github.com/ewilliams-labs/chorale/internal/config"
	"github.com/ewilliams-labs/chorale/internal/core/extract"
	"github.com/ewilliams-labs/chorale/internal/core/services"
	"github.com/ewilliams-labs/chorale/internal/providers"
)

var (
	apiType string
	apiKey  string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chorale",
	Short: "Find choral sheet music from natural-language instructions",
	Long: `chorale extracts search parameters (voicing, theme, technique, skill
level, ensemble) from a free-text instruction and looks up matching sheet
music on CPDL, falling back to a built-in catalog when the lookup is
unavailable or empty.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [instruction]",
	Short: "Run one instruction and print the results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		finder, err := buildFinder()
		if err != nil {
			return err
		}

		instruction := strings.Join(args, " ")
		report := finder.Process(cmd.Context(), instruction)
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Read instructions from stdin until quit/exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		finder, err := buildFinder()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Enter instructions to find sheet music. Type 'quit' or 'exit' to stop.")

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "\nEnter instruction: ")
			if !scanner.Scan() {
				break
			}
			instruction := strings.TrimSpace(scanner.Text())
			if instruction == "" {
				continue
			}
			switch strings.ToLower(instruction) {
			case "quit", "exit", "q":
				fmt.Fprintln(out, "Goodbye!")
				return nil
			}

			report := finder.Process(cmd.Context(), instruction)
			printReport(out, report)
		}
		return scanner.Err()
	},
}

func buildFinder() (*services.Finder, error) {
	cfg := config.Load()
	if apiType != "" {
		cfg.APIType = apiType
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}

	live, err := providers.ForConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	extractor := extract.New(extract.DefaultVocabulary())
	return services.NewFinder(extractor, live, catalog.NewProvider(), logger), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiType, "api-type", "", "lookup backend: cpdl, mock, web_search, openai (default from CHORALE_API_TYPE)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for keyed backends (default from CHORALE_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(interactiveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
