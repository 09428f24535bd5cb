package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"jobincome_go/job"
	"jobincome_go/mwis"
)

var errOptimumMismatch = errors.New("income differs from the instance optimum")

func newRootCommand(v *viper.Viper) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "jobincome [file]",
		Short: "Select the most profitable set of non-overlapping jobs",
		Long: `Reads jobs (income, start, end) from a JSON instance list or a text file,
or generates random ones, and prints the subset of pairwise non-overlapping
jobs with the highest total income.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "YAML config file")
	flags.String("format", "", "input format, json or text (default from the file extension)")
	flags.String("instance", "", "solve only the named instance of a JSON file")
	flags.Int("random", 0, "solve this many random jobs instead of reading a file")
	flags.Int64("seed", 1, "seed for --random")
	flags.Float64("horizon", 100, "latest start time for --random")
	flags.Float64("max-duration", 10, "longest job for --random")
	flags.Float64("max-income", 200, "highest income for --random")
	flags.Int("workers", 1, "components solved concurrently")
	flags.Int("max-branches", 0, "give up on a component after this many branches (0 for no limit)")
	flags.String("strategy", mwis.Recursive.String(), "search strategy, recursive or states")
	flags.Bool("verbose", false, "log every component")
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	v.SetEnvPrefix("JOBINCOME")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd, nil
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zap.InfoLevel
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	if verbose {
		level = zap.DebugLevel
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}

func run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	logger := newLogger(cmd.ErrOrStderr(), v.GetBool("verbose"))
	defer func() { _ = logger.Sync() }()

	strategy, err := mwis.ParseStrategy(v.GetString("strategy"))
	if err != nil {
		return err
	}
	solverLog, err := zap.NewStdLogAt(logger.Named("mwis"), zap.DebugLevel)
	if err != nil {
		return err
	}
	opts := mwis.Options{
		Workers:     v.GetInt("workers"),
		MaxBranches: v.GetInt("max-branches"),
		Strategy:    strategy,
		Logger:      solverLog,
	}

	instances, err := loadInstances(v, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, instance := range instances {
		started := time.Now()
		solution, err := mwis.Solve(instance.Jobs, opts)
		if err != nil {
			return fmt.Errorf("instance %q: %w", instance.Name, err)
		}
		busy := 0.0
		for _, j := range solution.Jobs {
			busy += j.Duration()
		}
		logger.Info("solved",
			zap.String("instance", instance.Name),
			zap.Int("jobs", len(instance.Jobs)),
			zap.Int("selected", len(solution.Jobs)),
			zap.Float64("income", solution.Income),
			zap.Float64("busy", busy),
			zap.Int("branches", solution.Branches),
			zap.Duration("elapsed", time.Since(started)))

		fmt.Fprintf(out, "Instance: %s\n\nSolution:\n\n", instance.Name)
		for _, j := range solution.Jobs {
			fmt.Fprintln(out, j)
		}
		fmt.Fprintf(out, "\nIncome: %v\n\n", solution.Income)

		if instance.Optimum != nil && *instance.Optimum != solution.Income {
			return fmt.Errorf("instance %q: income %v, optimum %v: %w",
				instance.Name, solution.Income, *instance.Optimum, errOptimumMismatch)
		}
	}
	return nil
}

func loadInstances(v *viper.Viper, args []string) ([]*job.Instance, error) {
	if count := v.GetInt("random"); count > 0 {
		rng := rand.New(rand.NewSource(v.GetInt64("seed")))
		jobs := job.LoadRandom(count, v.GetFloat64("horizon"), v.GetFloat64("max-duration"), v.GetFloat64("max-income"), rng)
		return []*job.Instance{{Name: "random", Jobs: jobs}}, nil
	}
	if len(args) == 0 {
		return nil, errors.New("no input file given (or use --random)")
	}
	path := args[0]

	format := strings.ToLower(v.GetString("format"))
	if format == "" {
		format = "text"
		if strings.EqualFold(filepath.Ext(path), ".json") {
			format = "json"
		}
	}

	switch format {
	case "json":
		instances, err := job.LoadInstanceFile(path)
		if err != nil {
			return nil, err
		}
		name := v.GetString("instance")
		if name == "" {
			return instances, nil
		}
		for _, instance := range instances {
			if instance.Name == name {
				return []*job.Instance{instance}, nil
			}
		}
		return nil, fmt.Errorf("%s: no instance named %q", path, name)
	case "text":
		jobs, err := job.ReadJobsFile(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return []*job.Instance{{Name: name, Jobs: jobs}}, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
