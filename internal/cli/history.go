package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/axis/internal/geom"
	"github.com/roach88/axis/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Verify   bool // recompute content hashes
	Source   bool // print the stored program text
}

// RunDetail is a stored run together with the other runs that produced the
// same program text.
type RunDetail struct {
	store.Run
	SameProgram []string `json:"same_program,omitempty"`
}

// VerifyResult holds the hash check of every inspected run.
type VerifyResult struct {
	Runs  []store.RunCheck `json:"runs"`
	AllOK bool             `json:"all_ok"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id | instruction-id]",
		Short: "List recorded runs or show one run",
		Long: `Inspect the runs recorded by "axis compile --db".

Without a run ID every run is listed in recording order. With a run ID
the run's instructions are shown, along with earlier or later runs that
produced the identical program. An instruction ID shows that instruction
in both dialects. --verify recomputes the program hash from the stored
source and every instruction ID from the stored hash.

Exit codes:
  0 - Success (and every hash matched, with --verify)
  1 - Hash verification failed
  2 - Command error (database not found, unknown run, etc.)

Examples:
  axis history --db axis.db
  axis history --db axis.db 0192f8a4-...
  axis history --db axis.db 3f9c2d51e0b7...
  axis history --db axis.db --verify
  axis history --db axis.db 0192f8a4-... --source`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			return runHistory(opts, runID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "recompute and check content hashes")
	cmd.Flags().BoolVar(&opts.Source, "source", false, "print the stored program text (with a run ID)")

	return cmd
}

func runHistory(opts *HistoryOptions, runID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Opening would create an empty database; a typo should not.
	if _, err := os.Stat(opts.Database); err != nil {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.Database), nil)
		return WrapExitError(ExitCommandError, "database not found", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	switch {
	case opts.Verify:
		return verifyRuns(formatter, cmd, st, runID)
	case runID != "":
		return showRun(formatter, opts, cmd, st, runID)
	default:
		return listRuns(formatter, cmd, st)
	}
}

func listRuns(formatter *OutputFormatter, cmd *cobra.Command, st *store.Store) error {
	runs, err := st.ReadRuns(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found in database.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%4d  %s  %s  %s/%s  %d instruction(s), %d unreachable  %s\n",
			r.Seq, r.RunID, r.Name, r.Robot, r.Manufacturer, r.Instructions, r.Unreachable, shortHash(r.Hash))
	}
	return nil
}

func showRun(formatter *OutputFormatter, opts *HistoryOptions, cmd *cobra.Command, st *store.Store, runID string) error {
	ctx := cmd.Context()
	run, err := st.ReadRun(ctx, runID)
	if errors.Is(err, store.ErrRunNotFound) {
		// Not a run: the argument may be an instruction ID.
		if in, ierr := st.ReadInstruction(ctx, runID); ierr == nil {
			return showInstruction(formatter, in)
		}
	}
	if err != nil {
		code := ErrCodeStore
		if errors.Is(err, store.ErrRunNotFound) {
			code = ErrCodeNotFound
		}
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	ids, err := st.RunsByHash(ctx, run.Hash)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}
	detail := RunDetail{Run: run}
	for _, id := range ids {
		if id != run.RunID {
			detail.SameProgram = append(detail.SameProgram, id)
		}
	}

	if formatter.Format == "json" {
		return formatter.SuccessForRun(run.RunID, detail)
	}

	w := formatter.Writer
	if opts.Source {
		fmt.Fprint(w, run.Source)
		return nil
	}

	fmt.Fprintf(w, "Run %s (#%d)\n", run.RunID, run.Seq)
	fmt.Fprintf(w, "  Program: %s for %s on %s\n", run.Name, run.Manufacturer, run.Robot)
	fmt.Fprintf(w, "  Hash:    %s\n", run.Hash)
	fmt.Fprintf(w, "  Compiler: %s (IR %s)\n", run.CompilerVersion, run.IRVersion)
	if len(detail.SameProgram) > 0 {
		fmt.Fprintf(w, "  Same program: %s\n", strings.Join(detail.SameProgram, ", "))
	}
	for _, d := range run.Diagnostics {
		fmt.Fprintf(w, "  ! %s\n", d)
	}
	fmt.Fprintln(w)

	for _, in := range run.Instructions {
		mark := " "
		if !in.Reachable {
			mark = "✗"
		}
		code := in.Code
		if code == "" {
			code = "(no instruction)"
		}
		fmt.Fprintf(w, "%s %3d  %-14s %s\n", mark, in.Seq, in.Motion, code)
		if len(in.Diagnostics) > 0 {
			fmt.Fprintf(w, "        %s\n", strings.Join(in.Diagnostics, " "))
		}
	}
	return nil
}

func showInstruction(formatter *OutputFormatter, in store.Instruction) error {
	if formatter.Format == "json" {
		return formatter.SuccessForRun(in.RunID, in)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Instruction %s\n", in.ID)
	fmt.Fprintf(w, "  Run:    %s #%d\n", in.RunID, in.Seq)
	fmt.Fprintf(w, "  Motion: %s\n", in.Motion)
	if in.ABB != "" {
		fmt.Fprintf(w, "  ABB:    %s\n", in.ABB)
	}
	if in.KUKA != "" {
		fmt.Fprintf(w, "  KUKA:   %s\n", in.KUKA)
	}
	if in.Joints != nil {
		parts := make([]string, len(in.Joints))
		for i, d := range in.Joints.Degrees() {
			parts[i] = strconv.FormatFloat(geom.Round(d, 4), 'f', -1, 64)
		}
		fmt.Fprintf(w, "  Joints: [%s] deg\n", strings.Join(parts, ", "))
	}
	if !in.Reachable {
		fmt.Fprintln(w, "  ✗ out of reach")
	}
	for _, d := range in.Diagnostics {
		fmt.Fprintf(w, "  ! %s\n", d)
	}
	return nil
}

func verifyRuns(formatter *OutputFormatter, cmd *cobra.Command, st *store.Store, runID string) error {
	ctx := cmd.Context()

	var runIDs []string
	if runID != "" {
		runIDs = []string{runID}
	} else {
		runs, err := st.ReadRuns(ctx)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		for _, r := range runs {
			runIDs = append(runIDs, r.RunID)
		}
	}

	result := VerifyResult{Runs: make([]store.RunCheck, 0, len(runIDs)), AllOK: true}
	for _, id := range runIDs {
		check, err := st.VerifyRun(ctx, id)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to verify run %s", id), err)
		}
		result.Runs = append(result.Runs, check)
		if !check.OK() {
			result.AllOK = false
		}
	}

	if formatter.Format == "json" {
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(CLIResponse{Status: "ok", Data: result}); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		if len(result.Runs) == 0 {
			fmt.Fprintln(w, "No runs found in database.")
		}
		for _, c := range result.Runs {
			if c.OK() {
				fmt.Fprintf(w, "✓ %s %s\n", c.RunID, shortHash(c.Hash))
				continue
			}
			fmt.Fprintf(w, "✗ %s\n", c.RunID)
			if c.Hash != c.Recomputed {
				fmt.Fprintf(w, "  program hash: stored %s, recomputed %s\n", shortHash(c.Hash), shortHash(c.Recomputed))
			}
			for _, seq := range c.Mismatched {
				fmt.Fprintf(w, "  instruction %d: id does not match its code\n", seq)
			}
		}
	}

	if !result.AllOK {
		return NewExitError(ExitFailure, "hash verification failed")
	}
	return nil
}

// shortHash abbreviates a content hash for listings.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
