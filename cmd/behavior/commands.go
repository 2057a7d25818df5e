package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeusync/behavior/internal/app"
	"github.com/zeusync/behavior/internal/config"
	"github.com/zeusync/behavior/internal/injector"
	"github.com/zeusync/behavior/internal/scenario"
)

type runOptions struct {
	configPath string
	ticks      int
	interval   time.Duration
	agents     int
	monitor    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}
	rootCmd := &cobra.Command{
		Use:           "behavior",
		Short:         "Drive behavior trees against a shared blackboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Tick the chase demo and print the final blackboards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			rt, err := injector.InitializeRuntime(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Logger.Sync() }()

			sums, err := rt.Run(cmd.Context())
			printSummaries(cmd.OutOrStdout(), sums)
			return err
		},
	}
	runCmd.Flags().IntVarP(&opts.ticks, "ticks", "n", 0, "number of ticks, 0 runs until interrupted")
	runCmd.Flags().DurationVarP(&opts.interval, "interval", "i", 0, "delay between ticks, e.g. 250ms")
	runCmd.Flags().IntVar(&opts.agents, "agents", 0, "number of independent agents")
	runCmd.Flags().StringVar(&opts.monitor, "monitor", "", "serve the websocket tick stream on this address")
	runCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error")

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the demo tree outline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), scenario.Chase(nil, cfg.Scenario.ChaseSteps).Describe())
			return err
		},
	}

	rootCmd.AddCommand(runCmd, describeCmd)
	return rootCmd
}

// loadConfig reads the config file, if any, and applies flags that were
// set explicitly.
func loadConfig(cmd *cobra.Command, opts *runOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("ticks") {
		cfg.Ticks = opts.ticks
	}
	if flags.Changed("interval") {
		cfg.Interval = opts.interval
	}
	if flags.Changed("agents") {
		cfg.Agents = opts.agents
	}
	if flags.Changed("monitor") {
		cfg.Monitor.Addr = opts.monitor
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printSummaries(w io.Writer, sums []app.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "AGENT\tTICKS\tLAST\tBLACKBOARD")
	for _, s := range sums {
		keys := make([]string, 0, len(s.Blackboard))
		for k := range s.Blackboard {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := ""
		for i, k := range keys {
			if i > 0 {
				pairs += " "
			}
			pairs += fmt.Sprintf("%s=%d", k, s.Blackboard[k])
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.AgentName, s.Ticks, s.LastStatus, pairs)
	}
	_ = tw.Flush()
}
