package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "waypoint",
	Short: "Waypoint drives navigation scenarios against in-memory hosts",
	Long: `Waypoint replays scripted navigation against the modern (path) or legacy
(controller stack) engine and prints the logical and host stacks after every step.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("styles", "", "TOML style catalog")
	rootCmd.PersistentFlags().StringSlice("messages", nil, "go-i18n message files for route titles")
	rootCmd.PersistentFlags().String("locale", "", "Title language (defaults to LANG)")
	rootCmd.PersistentFlags().String("log-level", "", "Application log level")
}
