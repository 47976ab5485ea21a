package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/go-drift/apppermission/internal/config"
	"github.com/go-drift/apppermission/internal/simulator"
	"github.com/go-drift/apppermission/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run a scripted scenario",
		Long: `Run a scenario file against a simulated device.

The scenario sets the device SDK level, the permissions already granted,
the permissions the platform wants explained, and the user's answers to
system and rationale dialogs. The listed buttons are pressed in order and
the final labels are printed.

Example scenario:

  sdk: 29
  rationale: [android.permission.WRITE_EXTERNAL_STORAGE]
  responses:
    - {android.permission.WRITE_EXTERNAL_STORAGE: true}
  rationaleTaps: [allow]
  actions: [save, local_weather]

Log level comes from apppermission.yaml in the enclosing Go module, if any.

Flags:
  --verbose   Log every state transition`,
		Usage: "apppermission run <scenario.yaml> [--verbose]",
		Run:   runScenario,
	})
}

func runScenario(args []string) error {
	var path string
	verbose := false
	for _, arg := range args {
		switch arg {
		case "--verbose":
			verbose = true
		default:
			if path != "" {
				return fmt.Errorf("unexpected argument %q", arg)
			}
			path = arg
		}
	}
	if path == "" {
		return fmt.Errorf("scenario file is required\n\nUsage: apppermission run <scenario.yaml> [--verbose]")
	}

	scenario, err := simulator.LoadScenario(path)
	if err != nil {
		return err
	}

	logger := newLogger(verbose)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})

	report, err := simulator.Run(scenario, logger)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

// newLogger builds the stderr logger, honoring apppermission.yaml when run
// inside a Go module. A broken config file is reported and ignored.
func newLogger(verbose bool) *log.Logger {
	prefix := "apppermission"
	level := log.InfoLevel

	if wd, err := os.Getwd(); err == nil {
		if root, err := config.FindProjectRoot(wd); err == nil {
			cfg, err := config.Resolve(root)
			if err != nil {
				errors.Report(&errors.Error{
					Op:   "config.resolve",
					Kind: errors.KindConfig,
					Err:  err,
				})
			} else {
				prefix = cfg.AppName
				level = cfg.LogLevel
			}
		}
	}
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: prefix,
		Level:  level,
	})
}

func printReport(r *simulator.Report) {
	fmt.Fprintf(stdout, "Device: SDK %d (%s)\n", r.SDK, r.Tier)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Requests:")
	if len(r.Requests) == 0 {
		fmt.Fprintln(stdout, "  (none)")
	}
	for i, ids := range r.Requests {
		fmt.Fprintf(stdout, "  %d. %v\n", i+1, ids)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Rationales:")
	if len(r.Rationales) == 0 {
		fmt.Fprintln(stdout, "  (none)")
	}
	for _, rationale := range r.Rationales {
		fmt.Fprintf(stdout, "  %s\n", rationale.Title)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "States:")
	for _, s := range r.States {
		fmt.Fprintf(stdout, "  %-14s %s\n", s.Action, s.State)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Labels:")
	fmt.Fprintf(stdout, "  %-9s %q\n", "storage:", r.Labels.Storage)
	fmt.Fprintf(stdout, "  %-9s %q\n", "location:", r.Labels.Location)

	if r.Pending > 0 {
		fmt.Fprintf(stdout, "\nWarning: %d request(s) never answered\n", r.Pending)
	}
}
