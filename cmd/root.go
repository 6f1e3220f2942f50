package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jataware/flee-modeling/sim"
	"github.com/jataware/flee-modeling/sim/trace"
)

var (
	logLevel   string    // Log verbosity level
	configPath string    // Optional YAML run config
	flagRun    RunConfig // Values of the run flags shared by predict and ensemble
	topN       int       // Locations listed by ensemble
	limit      int       // Runs listed by history
	historyDB  string    // Run history read by history
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "flare",
	Short: "Conflict-onset prediction for displacement simulations",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// predictCmd runs one seeded prediction and writes the conflict schedule
var predictCmd = &cobra.Command{
	Use:   "predict <scenario-dir>",
	Short: "Predict conflict onsets and write conflicts.csv",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustResolve(cmd.Flags())
		if err := runPredict(cmd.Context(), args[0], cfg, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("predict: %v", err)
		}
	},
}

// ensembleCmd runs many seeded predictions and summarises them per location
var ensembleCmd = &cobra.Command{
	Use:   "ensemble <scenario-dir>",
	Short: "Run an ensemble of predictions and summarise flare likelihood",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustResolve(cmd.Flags())
		if err := runEnsemble(cmd.Context(), args[0], cfg, topN, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("ensemble: %v", err)
		}
	},
}

// inspectCmd describes a scenario without predicting
var inspectCmd = &cobra.Command{
	Use:   "inspect <scenario-dir>",
	Short: "Describe a scenario's locations, features and link graph",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustResolve(cmd.Flags())
		if err := runInspect(args[0], cfg, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("inspect: %v", err)
		}
	},
}

// historyCmd lists recorded runs
var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "List recorded prediction runs",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenarioName := ""
		if len(args) == 1 {
			scenarioName = args[0]
		}
		if err := runHistory(cmd.Context(), historyDB, scenarioName, limit, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("history: %v", err)
		}
	},
}

func mustResolve(fs *pflag.FlagSet) RunConfig {
	cfg, err := resolveRunConfig(fs, flagRun, configPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	return cfg
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addRunFlags registers the prediction parameters on cmd.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&flagRun.Seed, "seed", 42, "Seed for the voting and onset-day draws")
	cmd.Flags().IntVar(&flagRun.Days, "days", 0, "Simulated days (0 = Length from conflict_period.csv)")
	cmd.Flags().IntVar(&flagRun.WindowSize, "window-size", 0, "Days per prediction window (0 = gcd(days, days/20))")
	cmd.Flags().StringSliceVar(&flagRun.Voters, "voters", sim.DefaultVoters(), "Voters polled each window")
	cmd.Flags().StringVar(&flagRun.Aggregation, "aggregation", string(sim.AggregateAny), "Vote aggregation (any, plurality, majority)")
	cmd.Flags().BoolVar(&flagRun.SkipInvalid, "skip-invalid", false, "Drop locations with invalid features instead of failing")
	cmd.Flags().StringVar(&flagRun.Trace, "trace", string(trace.TraceLevelNone), "Decision trace level (none, votes)")
	cmd.Flags().StringVar(&flagRun.DB, "db", "", "SQLite run history to record into")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML run config; flags given explicitly override it")

	addRunFlags(predictCmd)
	predictCmd.Flags().StringVar(&flagRun.Output, "output", "", "Conflicts CSV path (default <scenario>/input_csv/conflicts.csv)")

	addRunFlags(ensembleCmd)
	ensembleCmd.Flags().StringVar(&flagRun.Output, "output", "", "Summary CSV path (default <scenario>/ensemble.csv)")
	ensembleCmd.Flags().IntVar(&flagRun.Members, "members", 20, "Number of seeded runs")
	ensembleCmd.Flags().IntVar(&flagRun.Concurrency, "concurrency", 0, "Runs in flight at once (0 = GOMAXPROCS)")
	ensembleCmd.Flags().IntVar(&topN, "top", 10, "Locations listed in the summary")

	inspectCmd.Flags().IntVar(&flagRun.Days, "days", 0, "Simulated days (0 = Length from conflict_period.csv)")
	inspectCmd.Flags().IntVar(&flagRun.WindowSize, "window-size", 0, "Days per prediction window (0 = gcd(days, days/20))")

	historyCmd.Flags().StringVar(&historyDB, "db", "flare.db", "SQLite run history")
	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs listed")

	rootCmd.AddCommand(predictCmd, ensembleCmd, inspectCmd, historyCmd)
}
