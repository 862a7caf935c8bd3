package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd reports connectivity, cache and filter state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case forceOffline:
			fmt.Fprintln(cmd.OutOrStdout(), "✗ Offline mode forced")
		case monitor.CheckConnection(cmd.Context()):
			fmt.Fprintln(cmd.OutOrStdout(), "✓ API reachable")
		default:
			fmt.Fprintln(cmd.OutOrStdout(), "✗ API unreachable (offline)")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Base URL:     %s\n", client.BaseURL())
		fmt.Fprintf(cmd.OutOrStdout(), "Offline store: %s\n", cfg.Store.Backend)
		fmt.Fprintf(cmd.OutOrStdout(), "Families:     %d\n", len(registry.Families()))

		presets := filters.ListFilters()
		if len(presets) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Presets:      none")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Presets:")
		for _, name := range presets {
			flt, _ := filters.GetFilter(name)
			fmt.Fprintf(cmd.OutOrStdout(), "  • %s: %s\n", name, flt.Expression())
		}
		return nil
	},
}

// cacheCmd groups cache maintenance
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached responses",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached and stored responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.ClearCache(cmd.Context()); err != nil {
			return err
		}
		logger.Info().Str("store", cfg.Store.Backend).Msg("Cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(statusCmd, cacheCmd)
}
