package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zeusync/rocketbot/internal/config"
	"github.com/zeusync/rocketbot/internal/core/observability/log"
	"github.com/zeusync/rocketbot/internal/injector"
	"github.com/zeusync/rocketbot/internal/replay"
)

var errNoRecordings = errors.New("no recordings given: pass files or --scenario")

type app struct {
	cfgFile string
	rt      *injector.Runtime
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "rocketbot",
		Short:         "Offline driver for the car controller.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v, a.cfgFile)
			if err != nil {
				return err
			}
			rt, err := injector.InitializeRuntime(cfg)
			if err != nil {
				return err
			}
			a.rt = rt
			rt.Logger.Debug("config loaded", log.String("strategy", cfg.Agent.Strategy))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.rt != nil {
				_ = a.rt.Logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./rocketbot.yaml)")

	root.AddCommand(a.replayCmd(), a.scenarioCmd())
	return root
}

func (a *app) replayCmd() *cobra.Command {
	var scenarios []string

	cmd := &cobra.Command{
		Use:   "replay [recording.yaml...]",
		Short: "Replay recordings through the agent and summarize the actions it ran.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.rt.Config
			recs := make([]*replay.Recording, 0, len(args)+len(scenarios))
			for _, path := range args {
				rec, err := loadFile(path)
				if err != nil {
					return err
				}
				recs = append(recs, rec)
			}
			for _, name := range scenarios {
				recs = append(recs, replay.Scenario(name, cfg.Replay.ScenarioTicks))
			}
			if len(recs) == 0 {
				return errNoRecordings
			}

			a.rt.Logger.Info("replaying",
				log.Int("recordings", len(recs)),
				log.Int("workers", cfg.Replay.Workers),
			)
			results, err := replay.RunAll(cmd.Context(), a.rt.NewAgent, recs, cfg.Replay.Workers)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&scenarios, "scenario", "s", nil, "replay a generated scenario with this name (repeatable)")
	cmd.Flags().Int("replay.workers", 0, "recordings replayed in parallel")
	cmd.Flags().String("agent.strategy", "", "strategy to drive with")
	return cmd
}

func (a *app) scenarioCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "scenario NAME",
		Short: "Write a generated scenario as a YAML recording.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := replay.Scenario(args[0], a.rt.Config.Replay.ScenarioTicks)
			if out == "" {
				return replay.Save(cmd.OutOrStdout(), rec)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := replay.Save(f, rec); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().Int("replay.scenario_ticks", 0, "ticks to generate")
	return cmd
}

func loadFile(path string) (*replay.Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	rec, err := replay.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

func printSummary(w io.Writer, results []*replay.Result) {
	for _, res := range results {
		summary := res.Summary()
		keys := make([]string, 0, len(summary))
		for k := range summary {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintf(w, "%s: %d ticks, %d actions", res.Name, len(res.Commands), len(res.Actions))
		for _, k := range keys {
			fmt.Fprintf(w, " %s=%d", k, summary[k])
		}
		fmt.Fprintln(w)
	}
}
