// Command typeexpect-verify runs the multi-version assertion verifier over
// an on-disk package: every file is checked against the configured Go
// language versions and failures are reported at the newest version where
// they appear, with a hint on the minimum supported version.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sirkon/typeexpect/internal/checkers"
	"github.com/sirkon/typeexpect/internal/expect"
	"github.com/sirkon/typeexpect/internal/verify"
)

var (
	ruleColor = color.New(color.FgRed, color.Bold)
	posColor  = color.New(color.FgCyan)
	okColor   = color.New(color.FgGreen)
)

var rootCmd = &cobra.Command{
	Use:   "typeexpect-verify [flags] <directory>",
	Short: "Verify $ExpectType/$ExpectError assertions across Go versions",
	Long: `Verify that $ExpectType and $ExpectError comment assertions in the package
under the given directory match what the Go type checker infers and reports,
for every version listed in the configuration (plus the implicit "next"
version, the current toolchain default).`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.Flags().String("config", "", "yaml file listing checker versions, oldest to newest")
	rootCmd.Flags().String("format", "pretty", "output format (pretty|short)")
	rootCmd.Flags().Int("jobs", 0, "max parallel workers for file verification (0=auto)")
	rootCmd.SilenceUsage = true
}

func runVerify(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("get format flag: %w", err)
	}
	if format != "pretty" && format != "short" {
		return fmt.Errorf("unknown format %q", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("get jobs flag: %w", err)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	cfg := &verify.Config{}
	if configPath != "" {
		cfg, err = verify.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	dir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve %s: %w", args[0], err)
	}

	provider := checkers.NewPackagesProvider(dir)
	files, err := provider.FileNames()
	if err != nil {
		return err
	}

	session := verify.NewSession(provider, cfg.Versions)
	collector := expect.NewCollector()

	var group errgroup.Group
	group.SetLimit(jobs)
	for _, name := range files {
		group.Go(func() error {
			failures, err := session.VerifyFile(name)
			if err != nil {
				return fmt.Errorf("verify %s: %w", name, err)
			}
			collector.Add(name, failures...)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		if errors.Is(err, verify.ErrInvariantViolation) {
			fmt.Fprintln(os.Stderr, "fatal:", err)
			os.Exit(2)
		}
		return err
	}

	for _, name := range collector.Files() {
		src, err := provider.Source(name)
		if err != nil {
			return err
		}
		printFailures(name, expect.NewSourceText(name, src), collector.File(name), format)
	}

	if collector.Total() == 0 {
		if format == "pretty" {
			okColor.Fprintf(os.Stdout, "ok: %d file(s) verified\n", len(files))
		}
		return nil
	}

	fmt.Fprintf(os.Stdout, "%d failure(s)\n", collector.Total())
	os.Exit(1)
	return nil
}

func printFailures(name string, text *expect.SourceText, failures []expect.Failure, format string) {
	for _, f := range failures {
		line := text.LineFor(f.Offset)
		col := f.Offset - text.LineStart(line)
		pos := fmt.Sprintf("%s:%d:%d", name, line+1, col+1)

		if format == "short" {
			fmt.Fprintf(os.Stdout, "%s: %s: %s\n", pos, f.Rule, f.Message)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s %s %s\n",
			posColor.Sprint(pos),
			ruleColor.Sprint(f.Rule.String()),
			f.Message)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}
