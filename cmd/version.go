package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repoSlug = "s0up4200/pokedex"

// versionCmd prints build metadata
var versionCmd = &cobra.Command{
	Use:                "version",
	Short:              "Print version information",
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pokedex %s (built %s, %s/%s)\n", version, buildTime, runtime.GOOS, runtime.GOARCH)
	},
}

// updateCmd replaces the running binary with the latest release
var updateCmd = &cobra.Command{
	Use:                "update",
	Short:              "Update pokedex to the latest release",
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		current, err := semver.ParseTolerant(version)
		if err != nil {
			return fmt.Errorf("cannot update a development build (%s): %w", version, err)
		}

		latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repoSlug))
		if err != nil {
			return fmt.Errorf("failed to detect latest release: %w", err)
		}
		if !found {
			return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
		}
		if latest.LessOrEqual(current.String()) {
			fmt.Fprintf(cmd.OutOrStdout(), "Already up to date (%s)\n", current)
			return nil
		}

		exe, err := selfupdate.ExecutablePath()
		if err != nil {
			return fmt.Errorf("failed to locate executable: %w", err)
		}

		logger.Info().Str("from", current.String()).Str("to", latest.Version()).Msg("Updating")
		if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
			return fmt.Errorf("failed to update binary: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated to %s\n", latest.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd, updateCmd)
}
