package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/axis/internal/compiler"
	"github.com/roach88/axis/internal/program"
	"github.com/roach88/axis/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output   string // output file path
	Database string // history database path
	Workers  int    // IK goroutines
	Strict   bool   // fail on unreachable targets
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <job-dir>",
		Short: "Compile a CUE job to controller code",
		Long: `Compile a CUE job to an ABB RAPID module or a KUKA KRL routine.

The job is validated, every Cartesian target is solved against the arm,
and the program text is printed (or written with --output). Diagnostics
go to stderr. With --db the run is recorded in the history database.

Exit codes:
  0 - Program compiled
  1 - Job failed validation, or unreachable targets found (with --strict)
  2 - Command error (unloadable job, unwritable output, etc.)

Examples:
  axis compile ./jobs/pick
  axis compile ./jobs/pick -o pick.mod --db axis.db
  axis compile ./jobs/pick --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "inverse kinematics goroutines (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit 1 if any target is unreachable")

	return cmd
}

func runCompile(opts *CompileOptions, jobDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loaded, err := LoadJob(jobDir)
	if err != nil {
		loadErr := asLoadError(err)
		return outputCompileError(formatter, loadErr.Code, loadErr.Message, positionDetails(loadErr))
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loaded.FileCount, jobDir)

	if errs := compiler.Validate(loaded.Job); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	prog, err := program.Build(cmd.Context(), loaded.Job,
		program.WithLogger(opts.logger(formatter.GetErrWriter())),
		program.WithWorkers(opts.Workers),
	)
	if err != nil {
		return outputCompileError(formatter, ErrCodeGeneric, err.Error(), nil)
	}

	// Write to file if --output specified
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(prog.Render()), 0644); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	if opts.Database != "" {
		seq, err := recordRun(cmd, opts.Database, prog)
		if err != nil {
			return outputCompileError(formatter, ErrCodeStore, err.Error(), nil)
		}
		formatter.VerboseLog("Recorded run %s (#%d) in %s", prog.RunID, seq, opts.Database)
	}

	if err := outputCompileSuccess(formatter, prog, opts.Output); err != nil {
		return err
	}

	if n := len(prog.Unreachable()); opts.Strict && n > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d unreachable target(s)", n))
	}
	return nil
}

// recordRun writes prog to the history database at path and returns the
// run's position in the history.
func recordRun(cmd *cobra.Command, path string, prog *program.Program) (int64, error) {
	st, err := store.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	if _, err := st.WriteRun(cmd.Context(), prog); err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	seq, err := st.GetLastSeq(cmd.Context())
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return seq, nil
}

// outputCompileSuccess outputs the compiled program.
func outputCompileSuccess(formatter *OutputFormatter, prog *program.Program, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.SuccessForRun(prog.RunID, prog)
	}

	// Program text goes to stdout unless it was written to a file.
	if outputFile == "" {
		fmt.Fprint(formatter.Writer, prog.Render())
	} else {
		fmt.Fprintf(formatter.Writer, "✓ Compiled %s for %s: %d instruction(s), %d unreachable\n",
			prog.Name, prog.Manufacturer, len(prog.Instructions), len(prog.Unreachable()))
		fmt.Fprintf(formatter.Writer, "Wrote program to %s\n", outputFile)
	}

	w := formatter.GetErrWriter()
	for _, d := range prog.AllDiagnostics() {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
	return nil
}

// outputCompileError outputs a single compilation error.
func outputCompileError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Compilation errors are command-level errors (exit code 2)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// positionDetails returns the source position of a load error for output,
// or nil when it has none.
func positionDetails(e *LoadError) interface{} {
	if !e.Pos.IsValid() {
		return nil
	}
	return map[string]interface{}{
		"file":   e.Pos.Filename(),
		"line":   e.Pos.Line(),
		"column": e.Pos.Column(),
	}
}
