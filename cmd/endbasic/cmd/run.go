package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/go-endbasic/endbasic/pkg/endbasic"
	"github.com/go-endbasic/endbasic/pkg/host"
	"github.com/go-endbasic/endbasic/pkg/platform/native"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an EndBASIC program",
	Long: `Execute an EndBASIC program from a file or an inline expression.

Examples:
  # Run a program file
  endbasic run hello.bas

  # Evaluate inline code instead of reading a file
  endbasic run -e 'PRINT "Hello, World!"'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	var source, filename string

	switch {
	case evalExpr != "":
		source, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	store, err := native.NewStore(storeDir(cfg))
	if err != nil {
		return err
	}

	services := &host.Services{
		Console: native.NewConsole(),
		Store:   store,
		Clock:   native.Clock{},
		Entropy: native.Entropy{},
		Editor:  native.Editor{},
	}
	if cfg.DefaultFg != nil || cfg.DefaultBg != nil {
		if err := services.Console.SetColor(cfg.DefaultFg, cfg.DefaultBg); err != nil {
			return err
		}
	}

	interp := endbasic.New(services)
	if cfg.AutoSeedRNG {
		interp.Machine().Vars().RNG().Seed(services.Entropy.Seed())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := interp.RunFile(ctx, source, filename); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return fmt.Errorf("execution failed")
	}

	if exited, code := interp.Exited(); exited && code != 0 {
		os.Exit(int(code))
	}
	return nil
}

func storeDir(cfg config) string {
	if cfg.WorkDir != "" {
		return cfg.WorkDir
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
