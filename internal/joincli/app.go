package joincli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonica-labs/joinkit/internal/auditlog"
	"github.com/canonica-labs/joinkit/internal/config"
	"github.com/canonica-labs/joinkit/internal/joinerr"
	"github.com/canonica-labs/joinkit/internal/observability"
	"github.com/canonica-labs/joinkit/internal/record"
	"github.com/canonica-labs/joinkit/internal/retry"

	_ "github.com/lib/pq"
)

// Engine runs one join mode over left/right, writing formatted output
// via w and returning the number of records written. RunHash and
// RunMerge both satisfy this shape.
type Engine func(mode string, left, right *record.Source, w *record.Writer) (int64, error)

// App is the cobra wrapper shared by hjoin and mjoin. The two tools
// differ only in join strategy, the strategy's run-log label, and the
// -2 default and -i/-u type-tag support that distinguish the two
// field-spec grammars.
type App struct {
	Name          string
	Short         string
	StrategyLabel string
	AllowTypeTags bool
	DefaultField2 string
	Engine        Engine
}

// Main runs the tool to completion and exits the process with its
// result code. It is the sole call cmd/hjoin and cmd/mjoin make.
func (a App) Main() {
	os.Exit(a.run(os.Args[1:]))
}

func (a App) run(args []string) int {
	opts := Options{AllowTypeTags: a.AllowTypeTags, DefaultField2: a.DefaultField2}

	cmd := &cobra.Command{
		Use:           a.Name + " FILE1 FILE2",
		Short:         a.Short,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, cargs []string) error {
			opts.File1 = cargs[0]
			opts.File2 = cargs[1]
			return a.execute(opts)
		},
	}
	cmd.SetArgs(args)

	cmd.Flags().StringVarP(&opts.Field1, "field1", "1", "", "join fields of FILE1, comma-separated 1-based indices")
	cmd.Flags().StringVarP(&opts.Field2, "field2", "2", "", "join fields of FILE2, same syntax")
	cmd.Flags().StringVarP(&opts.InRecSep, "in-rec-sep", "R", "", "input record separator, one byte (default newline)")
	cmd.Flags().StringVarP(&opts.InFieldSep, "in-field-sep", "F", "", "input field separator (default ,)")
	cmd.Flags().StringVar(&opts.InRecSepLeft, "in-rec-sep-left", "", "left input record separator")
	cmd.Flags().StringVar(&opts.InRecSepRight, "in-rec-sep-right", "", "right input record separator")
	cmd.Flags().StringVar(&opts.InFieldSepLeft, "in-field-sep-left", "", "left input field separator")
	cmd.Flags().StringVar(&opts.InFieldSepRight, "in-field-sep-right", "", "right input field separator")
	cmd.Flags().StringVar(&opts.OutRecSep, "out-rec-sep", "", "output record separator (default: input's)")
	cmd.Flags().StringVar(&opts.OutFieldSep, "out-field-sep", "", "output field separator (default: input's)")
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "inner|left-excl|left-outer|right-excl|right-outer|full-outer")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "quiet|info|debug (default from config)")
	cmd.Flags().StringVar(&opts.AuditDSN, "audit-dsn", "", "optional Postgres DSN to persist run history")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", a.Name, err)
		return 1
	}
	return 0
}

func (a App) execute(opts Options) error {
	cfg, err := config.Load("")
	if err != nil {
		return joinerr.NewConfigError("could not load configuration", err)
	}
	if opts.InFieldSep == "" && opts.InFieldSepLeft == "" && opts.InFieldSepRight == "" {
		opts.InFieldSep = cfg.FieldSep
	}
	if opts.InRecSep == "" && opts.InRecSepLeft == "" && opts.InRecSepRight == "" {
		opts.InRecSep = cfg.RecordSep
	}
	if opts.LogLevel == "" {
		opts.LogLevel = cfg.Logging.Level
	}
	if opts.AuditDSN == "" {
		opts.AuditDSN = cfg.Audit.DSN
	}

	resolved, err := opts.Resolve()
	if err != nil {
		return err
	}
	leftPlan, rightPlan, err := opts.BuildPlans()
	if err != nil {
		return err
	}

	leftFile, err := OpenInput(opts.File1)
	if err != nil {
		return err
	}
	defer leftFile.Close()
	rightFile, err := OpenInput(opts.File2)
	if err != nil {
		return err
	}
	defer rightFile.Close()

	leftTok := record.NewTokenizer(leftFile, resolved.LeftRecSep)
	rightTok := record.NewTokenizer(rightFile, resolved.RightRecSep)
	leftSrc := record.NewSource(opts.File1, leftTok, resolved.LeftFieldSep, leftPlan)
	rightSrc := record.NewSource(opts.File2, rightTok, resolved.RightFieldSep, rightPlan)

	w := record.NewWriter(os.Stdout, resolved.OutFieldSep, resolved.OutRecSep)

	logger, closeLogger, err := a.buildLogger(opts)
	if err != nil {
		return err
	}
	defer closeLogger()

	start := time.Now()
	rows, runErr := a.Engine(resolved.Mode, leftSrc, rightSrc, w)
	duration := time.Since(start)

	if flushErr := w.Flush(); flushErr != nil && runErr == nil {
		runErr = joinerr.NewWriteError(flushErr)
	}

	if opts.LogLevel != "quiet" {
		entry := observability.RunLogEntry{
			RunID:       runID(),
			Mode:        a.StrategyLabel + "-" + resolved.Mode,
			LeftSource:  opts.File1,
			RightSource: opts.File2,
			RowsEmitted: rows,
			Duration:    duration,
		}
		if runErr != nil {
			entry.Error = runErr.Error()
		}
		logCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = logger.LogRun(logCtx, entry)
		cancel()
	}

	return runErr
}

// buildLogger resolves the run logger for one invocation: a no-op
// sink in quiet mode, stderr JSON lines by default, or — when
// --audit-dsn is set — a Postgres-persisted logger whose connection
// is retried with backoff and whose schema is migrated on first use.
func (a App) buildLogger(opts Options) (observability.RunLogger, func(), error) {
	noop := func() {}

	if opts.LogLevel == "quiet" {
		return observability.NewNoopLogger(), noop, nil
	}
	if opts.AuditDSN == "" {
		return observability.NewJSONLogger(os.Stderr), noop, nil
	}

	db, err := sql.Open("postgres", opts.AuditDSN)
	if err != nil {
		return nil, nil, joinerr.NewConfigError("invalid --audit-dsn", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := retry.Execute(ctx, retry.DefaultConfig(), func() error {
		return db.PingContext(ctx)
	})
	if !result.Success {
		db.Close()
		return nil, nil, joinerr.NewConfigError("could not connect to --audit-dsn ("+result.String()+")", result.LastError)
	}

	if err := auditlog.NewRunner(db).Run(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger, err := observability.NewPersistentLoggerWithWriter(db, os.Stderr)
	if err != nil {
		db.Close()
		return nil, nil, joinerr.NewConfigError("could not create audit logger", err)
	}
	return logger, func() { db.Close() }, nil
}

func runID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}
