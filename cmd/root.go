package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/boardsim/sim/scenario"
	"github.com/inference-sim/boardsim/sim/trace"
)

// envPrefix namespaces environment overrides, e.g. BOARDSIM_STORE_PHASE_TICKS.
const envPrefix = "BOARDSIM"

var (
	// CLI flags for the run command
	scenarioPath string // Scenario YAML file
	horizon      int64  // Overrides the scenario horizon when positive
	traceLevel   string // Delivery trace level
	logLevel     string // Log verbosity level
	showBoard    bool   // Print the stored messages after the run
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "boardsim",
	Short: "Deterministic tick-driven simulator for a message board actor system",
}

// runCmd executes a scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a board scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if err := runScenario(cmd.OutOrStdout(), scenarioPath, horizon, traceLevel, showBoard); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// loadScenario reads the scenario file, applies environment overrides and
// the horizon flag, and validates the result.
func loadScenario(path string, horizonOverride int64) (*scenario.Scenario, error) {
	if path == "" {
		return nil, fmt.Errorf("scenario path not provided")
	}
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	if err := envconfig.Process(envPrefix, &sc.Board); err != nil {
		return nil, fmt.Errorf("board environment overrides: %w", err)
	}
	if err := envconfig.Process(envPrefix, &sc.Store); err != nil {
		return nil, fmt.Errorf("store environment overrides: %w", err)
	}
	if horizonOverride > 0 {
		sc.Horizon = horizonOverride
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func runScenario(w io.Writer, path string, horizonOverride int64, level string, withBoard bool) error {
	lvl, err := trace.ParseTraceLevel(level)
	if err != nil {
		return err
	}
	sc, err := loadScenario(path, horizonOverride)
	if err != nil {
		return err
	}
	logrus.Infof("Starting scenario %q with %d session(s), horizon=%d ticks, store phase=%d ticks",
		sc.Name, len(sc.Sessions), sc.Horizon, sc.Board.StorePhaseTicks)

	report, err := scenario.Run(sc, trace.TraceConfig{Level: lvl})
	if err != nil {
		return fmt.Errorf("running scenario: %w", err)
	}
	printReport(w, report, withBoard)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the scenario YAML file")
	runCmd.Flags().Int64Var(&horizon, "horizon", 0, "Override the scenario horizon (in ticks); 0 keeps the file's value")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Delivery trace level (none, deliveries)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&showBoard, "board", false, "Print the board content after the run")
	_ = runCmd.MarkFlagRequired("scenario")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultConfigCmd)
}
