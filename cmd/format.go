package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/s0up4200/pokedex/filter"
	"github.com/s0up4200/pokedex/service"
)

// ConsoleFormatter renders results as trees for terminal output
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// listFields are the record keys shown under each search match, in order.
var listFields = []string{"types", "abilities", "flavors", "firmness", "damage_class", "power", "accuracy", "category", "cost", "region"}

// FormatRecords formats search matches for console display
func (f *ConsoleFormatter) FormatRecords(family string, records []filter.Record) string {
	if len(records) == 0 {
		return "No resources matched the filter"
	}

	var sb strings.Builder

	// Header
	fmt.Fprintf(&sb, "\nMatching %s resource", family)
	if len(records) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(records))

	for i, rec := range records {
		isLast := i == len(records)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %v", prefix, rec["name"])
		if id, ok := rec["id"]; ok {
			fmt.Fprintf(&sb, " (#%v)", id)
		}
		sb.WriteString("\n")

		for _, key := range listFields {
			if line, ok := formatField(rec[key]); ok {
				fmt.Fprintf(&sb, "%s%s: %s\n", indent, fieldLabel(key), line)
			}
		}

		if stats, ok := rec["stats"].(map[string]any); ok && len(stats) > 0 {
			names := make([]string, 0, len(stats))
			for name := range stats {
				names = append(names, name)
			}
			slices.Sort(names)
			parts := make([]string, len(names))
			for j, name := range names {
				parts[j] = fmt.Sprintf("%s %v", name, stats[name])
			}
			fmt.Fprintf(&sb, "%sStats: %s\n", indent, strings.Join(parts, " | "))
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatEvolution formats an evolution chain, one line per stage
func (f *ConsoleFormatter) FormatEvolution(stages []service.EvolutionStage) string {
	if len(stages) == 0 {
		return "No evolution data"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nEvolution chain (%d stages):\n\n", len(stages))

	for _, st := range stages {
		indent := strings.Repeat("    ", st.Stage-1)
		fmt.Fprintf(&sb, "%s╰── %s", indent, st.Species)

		var parts []string
		if st.IsBaby {
			parts = append(parts, "baby")
		}
		if st.Trigger != "" {
			parts = append(parts, st.Trigger)
		}
		if st.MinLevel != nil {
			parts = append(parts, fmt.Sprintf("level %d", *st.MinLevel))
		}
		if st.Item != "" {
			parts = append(parts, "with "+st.Item)
		}
		if len(parts) > 0 {
			fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ", "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatEffectiveness formats a damage multiplier
func (f *ConsoleFormatter) FormatEffectiveness(attacking string, defending []string, multiplier float64) string {
	verdict := "normal damage"
	switch {
	case multiplier == 0:
		verdict = "no effect"
	case multiplier > 1:
		verdict = "super effective"
	case multiplier < 1:
		verdict = "not very effective"
	}
	return fmt.Sprintf("%s → %s: ×%g (%s)\n", attacking, strings.Join(defending, "/"), multiplier, verdict)
}

func formatField(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case []any:
		if len(val) == 0 {
			return "", false
		}
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", "), true
	case map[string]any:
		return "", false
	default:
		return fmt.Sprint(val), true
	}
}

func fieldLabel(key string) string {
	label := strings.ReplaceAll(key, "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}
