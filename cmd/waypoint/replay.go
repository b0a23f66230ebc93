package main

import (
	"fmt"
	"io"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/metrics"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/uiloop"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Play a navigation scenario and print the stacks after each step",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("engine")
		save, _ := cmd.Flags().GetBool("save")
		withMetrics, _ := cmd.Flags().GetBool("metrics")
		return runReplay(cmd, args[0], kind, save, withMetrics)
	},
}

func init() {
	replayCmd.Flags().String("engine", "", "Force the modern or legacy engine (defaults to the scenario's)")
	replayCmd.Flags().Bool("save", false, "Print the final logical stack as JSON")
	replayCmd.Flags().Bool("metrics", false, "Print navigation metrics in Prometheus text format")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, path, kind string, save, withMetrics bool) error {
	switch kind {
	case "", "modern", "legacy":
	default:
		return fmt.Errorf("unknown engine %q", kind)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		return err
	}

	loop := uiloop.New(16)
	if err := initWaypoint(cmd, loop); err != nil {
		return err
	}
	defer waypoint.Close()

	collector := metrics.NewCollector("waypoint")
	collector.WatchRegistry(waypoint.Registry())

	runner := NewRunner(waypoint.Registry(), loop, cmd.OutOrStdout(), router.WithObserver(collector.Observer("replay")))
	if err := runner.Run(cmd.Context(), sc, kind); err != nil {
		return err
	}

	if save {
		data, err := runner.SaveStack()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}
	if withMetrics {
		return writeMetrics(cmd.OutOrStdout(), collector)
	}
	return nil
}

func writeMetrics(w io.Writer, c *metrics.Collector) error {
	families, err := c.Registry().Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func initWaypoint(cmd *cobra.Command, loop *uiloop.Loop) error {
	flags := cmd.Flags()
	styles, _ := flags.GetString("styles")
	messages, _ := flags.GetStringSlice("messages")
	locale, _ := flags.GetString("locale")
	level, _ := flags.GetString("log-level")

	return waypoint.Init(waypoint.Options{
		LogLevel:        level,
		StyleConfigPath: styles,
		MessageFiles:    messages,
		Locale:          locale,
		UILoop:          loop,
	})
}
