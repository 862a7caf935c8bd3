package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/batch"
)

var (
	listOffset int
	listLimit  int

	batchConcurrency int
	stopOnError      bool
)

// getCmd fetches one resource as returned by the API
var getCmd = &cobra.Command{
	Use:   "get <family> <id|name>",
	Short: "Fetch one resource",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fam, err := registry.Family(args[0])
		if err != nil {
			return err
		}
		v, err := fam.Get(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), v)
	},
}

// detailsCmd fetches one resource in its flattened form
var detailsCmd = &cobra.Command{
	Use:   "details <family> <id|name>",
	Short: "Fetch one resource as a flat summary",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fam, err := registry.Family(args[0])
		if err != nil {
			return err
		}
		v, err := fam.Details(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), v)
	},
}

// listCmd lists one page of a family
var listCmd = &cobra.Command{
	Use:   "list <family>",
	Short: "List resource names of a family",
	Long: `List one page of a resource family. Run "pokedex list families" to see
every supported family.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "families" {
			for _, name := range registry.Families() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		fam, err := registry.Family(args[0])
		if err != nil {
			return err
		}
		page, err := fam.List(cmd.Context(), listOffset, listLimit)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d %s resources (showing %d from offset %d):\n",
			page.Count, fam.Endpoint(), len(page.Results), listOffset)
		for _, res := range page.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "• %s\n", res.Name)
		}
		return nil
	},
}

// randomCmd fetches a random resource
var randomCmd = &cobra.Command{
	Use:   "random [family]",
	Short: "Fetch a random resource (default family: pokemon)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "pokemon"
		if len(args) == 1 {
			name = args[0]
		}
		if name == "pokemon" {
			d, err := registry.Pokemon.Random(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		}

		fam, err := registry.Family(name)
		if err != nil {
			return err
		}
		v, err := fam.Random(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), v)
	},
}

// batchCmd fetches many resources in chunks
var batchCmd = &cobra.Command{
	Use:   "batch <family> <id|name>...",
	Short: "Fetch many resources concurrently",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fam, err := registry.Family(args[0])
		if err != nil {
			return err
		}

		ids := args[1:]
		res, err := fam.GetMany(cmd.Context(), ids, batch.Options{
			Concurrency: batchConcurrency,
			StopOnError: stopOnError,
			OnProgress: func(completed, total int) {
				logger.Debug().Int("completed", completed).Int("total", total).Msg("Batch progress")
			},
		})
		if err != nil {
			return err
		}

		failures := make(map[string]string, len(res.Failures))
		for _, f := range res.Failures {
			failures[f.Item] = f.Err.Error()
		}

		logger.Info().
			Int("fetched", len(res.Values)).
			Int("failed", len(res.Failures)).
			Msg("Batch complete")

		return printJSON(cmd.OutOrStdout(), map[string]any{
			"results":  res.Values,
			"failures": failures,
		})
	},
}

// searchCmd filters a sample of a family
var searchCmd = &cobra.Command{
	Use:   "search <family>",
	Short: "Filter a sample of a family with an expression",
	Long: `Fetch a sample of a family and keep the resources matching a filter.

Expressions use expr syntax over the flattened resource, with shorthand:
  type:fire              has the fire type
  ability!:levitate      does not have levitate
  stat:speed>100         base speed above 100
  name:char              name contains "char"
Combine terms with AND, OR and NOT.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fam, err := registry.Family(args[0])
		if err != nil {
			return err
		}

		expression, err := getFilterExpression()
		if err != nil {
			return err
		}
		flt, err := filters.Resolve(preset, expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}

		logger.Info().Str("family", fam.Endpoint()).Str("filter", flt.Expression()).Msg("Searching")

		matches, err := fam.Search(cmd.Context(), flt, sampleSize)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), matches)
		}
		fmt.Fprint(cmd.OutOrStdout(), NewConsoleFormatter().FormatRecords(fam.Endpoint(), matches))
		return nil
	},
}

// evolutionCmd shows the evolution chain of a species
var evolutionCmd = &cobra.Command{
	Use:   "evolution <species>",
	Short: "Show the evolution chain of a species",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stages, err := registry.Evolution.ForPokemon(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), stages)
		}
		fmt.Fprint(cmd.OutOrStdout(), NewConsoleFormatter().FormatEvolution(stages))
		return nil
	},
}

// effectivenessCmd computes a damage multiplier
var effectivenessCmd = &cobra.Command{
	Use:   "effectiveness <attacking> <defending> [defending]",
	Short: "Compute the damage multiplier of a type against one or two types",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		multiplier, err := registry.Types.Effectiveness(cmd.Context(), args[0], args[1:]...)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), NewConsoleFormatter().FormatEffectiveness(args[0], args[1:], multiplier))
		return nil
	},
}

var (
	filterExpr string
	preset     string
	sampleSize int
	jsonOutput bool
)

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset
	if strings.TrimSpace(filterExpr) != "" {
		preset = ""
		return filterExpr, nil
	}
	if preset != "" {
		return "", nil
	}
	return "", fmt.Errorf("no filter expression specified (use --filter or --preset)")
}

func init() {
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "index of the first result")
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "number of results")

	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "requests per chunk (default from config)")
	batchCmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "abort after the first chunk with a failure")

	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	searchCmd.Flags().IntVar(&sampleSize, "sample", 0, "resources to inspect (default from config)")
	searchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print matches as JSON")
	evolutionCmd.Flags().BoolVar(&jsonOutput, "json", false, "print stages as JSON")

	rootCmd.AddCommand(getCmd, detailsCmd, listCmd, randomCmd, batchCmd, searchCmd, evolutionCmd, effectivenessCmd)
}
