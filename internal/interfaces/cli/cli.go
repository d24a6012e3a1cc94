// Package cli implements the rotation subcommands. Results are written to out
// as JSON; diagnostics go to errOut.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
	"github.com/riskibarqy/rotation-engine/internal/platform/logging"
	"github.com/riskibarqy/rotation-engine/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

var (
	// ErrUsage is returned for unknown commands and bad flags.
	ErrUsage = errors.New("usage error")
	// ErrValidationFailed is returned after the output was written when a plan
	// or season has validation errors.
	ErrValidationFailed = errors.New("validation reported errors")
)

const (
	CommandValidatePlan   = "validate-plan"
	CommandValidateSeason = "validate-season"
	CommandFairness       = "fairness"
	CommandDraft          = "draft"
	CommandApply          = "apply"
)

// Services are the use cases the commands drive.
type Services struct {
	Rotation   *usecase.RotationService
	Season     *usecase.SeasonService
	Fairness   *usecase.FairnessService
	MaxWorkers int
	// Persistent is false when applied plans only live for this process.
	Persistent bool
}

type Runner struct {
	services Services
	out      io.Writer
	errOut   io.Writer
	logger   *logging.Logger
}

func NewRunner(services Services, out, errOut io.Writer, logger *logging.Logger) *Runner {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Runner{
		services: services,
		out:      out,
		errOut:   errOut,
		logger:   logger,
	}
}

// Run dispatches args[0] to its command.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		r.printUsage()
		return fmt.Errorf("%w: command is required", ErrUsage)
	}

	name := strings.ToLower(strings.TrimSpace(args[0]))
	rest := args[1:]
	r.logger.DebugContext(ctx, "run command", "command", name, "args", rest)
	switch name {
	case CommandValidatePlan:
		return r.validatePlan(ctx, rest)
	case CommandValidateSeason:
		return r.validateSeason(ctx, rest)
	case CommandFairness:
		return r.fairness(ctx, rest)
	case CommandDraft:
		return r.draft(ctx, rest)
	case CommandApply:
		return r.apply(ctx, rest)
	case "help", "-h", "--help":
		r.printUsage()
		return nil
	default:
		r.printUsage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

func (r *Runner) validatePlan(ctx context.Context, args []string) error {
	fs := r.flagSet(CommandValidatePlan)
	gameID := fs.Int64("game", 0, "game id")
	planPath := fs.String("plan", "", "plan JSON file (default: the stored plan)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	input := usecase.ValidatePlanInput{GameID: *gameID}
	if strings.TrimSpace(*planPath) != "" {
		plan, err := readPlan(*planPath)
		if err != nil {
			return err
		}
		input.Plan = &plan
	}

	version, err := r.services.Rotation.ValidatePlan(ctx, input)
	if err != nil {
		return err
	}
	if err := r.writeJSON(version); err != nil {
		return err
	}
	r.printIssues(version.Result)
	if version.State == rotation.StateValidatedInvalid {
		return fmt.Errorf("%w: game=%d", ErrValidationFailed, version.GameID)
	}
	return nil
}

func (r *Runner) validateSeason(ctx context.Context, args []string) error {
	fs := r.flagSet(CommandValidateSeason)
	seasonID := fs.Int64("season", 0, "season id")
	workers := fs.Int("workers", r.services.MaxWorkers, "max concurrent games")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	result, err := r.services.Season.ValidateSeason(ctx, usecase.SeasonValidationInput{
		SeasonID:   *seasonID,
		MaxWorkers: *workers,
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if writeErr := r.writeJSON(result); writeErr != nil {
		return writeErr
	}
	if err != nil {
		return err
	}
	if result.InvalidCount > 0 || result.FailedCount > 0 {
		return fmt.Errorf("%w: season=%d invalid=%d failed=%d", ErrValidationFailed, result.SeasonID, result.InvalidCount, result.FailedCount)
	}
	return nil
}

func (r *Runner) fairness(ctx context.Context, args []string) error {
	fs := r.flagSet(CommandFairness)
	seasonID := fs.Int64("season", 0, "season id")
	workers := fs.Int("workers", r.services.MaxWorkers, "max concurrent games")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	report, err := r.services.Fairness.Report(ctx, usecase.FairnessInput{
		SeasonID:   *seasonID,
		MaxWorkers: *workers,
	})
	if err != nil {
		return err
	}
	return r.writeJSON(report)
}

func (r *Runner) draft(ctx context.Context, args []string) error {
	fs := r.flagSet(CommandDraft)
	gameID := fs.Int64("game", 0, "game id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	result, err := r.services.Rotation.Draft(ctx, *gameID)
	if err != nil {
		return err
	}
	return r.writeJSON(result)
}

func (r *Runner) apply(ctx context.Context, args []string) error {
	fs := r.flagSet(CommandApply)
	gameID := fs.Int64("game", 0, "game id")
	planPath := fs.String("plan", "", "plan JSON file")
	allowErrors := fs.Bool("allow-errors", false, "store the plan even when validation reports errors")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(*planPath) == "" {
		return fmt.Errorf("%w: -plan is required", ErrUsage)
	}

	plan, err := readPlan(*planPath)
	if err != nil {
		return err
	}
	if !r.services.Persistent {
		r.logger.WarnContext(ctx, "applied plan is not persisted", "game_id", *gameID)
		fmt.Fprintln(r.errOut, "warning: data source is in-memory; the applied plan is discarded on exit (set DATA_SOURCE=postgres to keep it)")
	}

	version, err := r.services.Rotation.Apply(ctx, usecase.ApplyPlanInput{
		GameID:      *gameID,
		Plan:        plan,
		AllowErrors: *allowErrors,
	})
	if err != nil && version.Result == nil {
		return err
	}
	if writeErr := r.writeJSON(version); writeErr != nil {
		return writeErr
	}
	r.printIssues(version.Result)
	return err
}

func (r *Runner) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.errOut)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %s: %w", ErrUsage, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected arguments %v", ErrUsage, fs.Name(), fs.Args())
	}
	return nil
}

func readPlan(path string) (rotation.RotationPlan, error) {
	raw, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return rotation.RotationPlan{}, fmt.Errorf("read plan file: %w", err)
	}
	return decodePlan(raw)
}

// decodePlan accepts {"innings": {"1": [{"position": "P", "player_id": 4}]}}.
func decodePlan(raw []byte) (rotation.RotationPlan, error) {
	var plan rotation.RotationPlan
	if err := sonic.Unmarshal(raw, &plan); err != nil {
		return rotation.RotationPlan{}, fmt.Errorf("%w: decode plan: %w", usecase.ErrInvalidInput, err)
	}
	if plan.Innings == nil {
		return rotation.RotationPlan{}, fmt.Errorf("%w: plan has no innings", usecase.ErrInvalidInput)
	}
	for inning := range plan.Innings {
		if inning <= 0 {
			return rotation.RotationPlan{}, fmt.Errorf("%w: inning %d must be positive", usecase.ErrInvalidInput, inning)
		}
	}
	return plan, nil
}

func (r *Runner) writeJSON(v any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigDefault.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if _, err := r.out.Write(buf.B); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printIssues lists issue messages on errOut, errors first.
func (r *Runner) printIssues(result *rotation.ValidationResult) {
	if result == nil {
		return
	}
	for _, issue := range result.Errors {
		fmt.Fprintf(r.errOut, "error: %s\n", issue.Message())
	}
	for _, issue := range result.Warnings {
		fmt.Fprintf(r.errOut, "warning: %s\n", issue.Message())
	}
}

func (r *Runner) printUsage() {
	commands := []string{
		CommandValidatePlan + " -game ID [-plan FILE]",
		CommandValidateSeason + " -season ID [-workers N]",
		CommandFairness + " -season ID [-workers N]",
		CommandDraft + " -game ID",
		CommandApply + " -game ID -plan FILE [-allow-errors]",
	}
	sort.Strings(commands)
	fmt.Fprintln(r.errOut, "usage: rotation <command> [flags]")
	for _, c := range commands {
		fmt.Fprintf(r.errOut, "  %s\n", c)
	}
}
