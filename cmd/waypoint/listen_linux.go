//go:build linux

package main

import (
	"context"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/host/evdevback"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/uiloop"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen <scenario.yaml>",
	Short: "Play a scenario, then navigate back on hardware back key presses",
	Long: `Listen replays the scenario and keeps the session open, turning KEY_BACK and
KEY_ESC presses from an evdev input device into router back navigation until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("engine")
		device, _ := cmd.Flags().GetString("device")
		return runListen(cmd, args[0], kind, device)
	},
}

func init() {
	listenCmd.Flags().String("engine", "", "Force the modern or legacy engine (defaults to the scenario's)")
	listenCmd.Flags().String("device", "/dev/input/event0", "evdev input device to read back presses from")
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, path, kind, device string) error {
	sc, err := LoadScenario(path)
	if err != nil {
		return err
	}

	loop := uiloop.New(16)
	if err := initWaypoint(cmd, loop); err != nil {
		return err
	}
	defer waypoint.Close()

	runner := NewRunner(waypoint.Registry(), loop, cmd.OutOrStdout())
	return runner.run(cmd.Context(), sc, kind, func(ctx context.Context) error {
		l := evdevback.New(loop.Post, func() {
			if runner.router.Back() {
				runner.report("hardware back")
			} else {
				runner.report("hardware back (ignored)")
			}
		}, evdevback.WithLogger(waypoint.GetLogger()))
		return l.Listen(ctx, device)
	})
}
