package filter

import (
	"fmt"
	"regexp"
	"strings"
)

type shorthandRule struct {
	pattern *regexp.Regexp
	replace func(matches []string) string
}

var listShorthands = map[string]string{
	"type":      "hasType",
	"ability":   "hasAbility",
	"move":      "hasMove",
	"flavor":    "hasFlavor",
	"attribute": "hasAttribute",
}

var shorthandRules = []shorthandRule{
	// type:fire, type!:"water", ability:overgrow, ...
	{
		pattern: regexp.MustCompile(`\b(type|ability|move|flavor|attribute)(!?):(?:"([^"]+)"|([\w-]+))`),
		replace: func(m []string) string {
			call := fmt.Sprintf(`%s("%s")`, listShorthands[m[1]], firstNonEmpty(m[3], m[4]))
			if m[2] == "!" {
				return "not " + call
			}
			return call
		},
	},
	// name:"char" or name:char
	{
		pattern: regexp.MustCompile(`\bname(!?):(?:"([^"]+)"|([\w-]+))`),
		replace: func(m []string) string {
			call := fmt.Sprintf(`contains(name, "%s")`, firstNonEmpty(m[2], m[3]))
			if m[1] == "!" {
				return "not " + call
			}
			return call
		},
	},
	// stat:speed>100
	{
		pattern: regexp.MustCompile(`\bstat:([\w-]+)\s*(>=|<=|==|!=|>|<)\s*(\d+(?:\.\d+)?)`),
		replace: func(m []string) string {
			return fmt.Sprintf(`stat("%s") %s %s`, m[1], m[2], m[3])
		},
	},
	// height:>10, cost:<=300
	{
		pattern: regexp.MustCompile(`\b([a-z_]+):(>=|<=|==|!=|>|<)(\d+(?:\.\d+)?)`),
		replace: func(m []string) string {
			return fmt.Sprintf(`%s %s %s`, m[1], m[2], m[3])
		},
	},
}

// ConvertShorthand rewrites shorthand terms such as type:fire or
// stat:speed>100 into expr syntax. Plain expr input is returned unchanged.
func ConvertShorthand(expression string) (string, error) {
	if strings.TrimSpace(expression) == "" {
		return "", nil
	}

	filter := strings.ReplaceAll(expression, " AND ", " and ")
	filter = strings.ReplaceAll(filter, " OR ", " or ")
	filter = strings.ReplaceAll(filter, "NOT ", "not ")

	for _, rule := range shorthandRules {
		filter = rule.pattern.ReplaceAllStringFunc(filter, func(match string) string {
			return rule.replace(rule.pattern.FindStringSubmatch(match))
		})
	}

	return filter, nil
}

// IsShorthand checks if an expression uses shorthand terms
func IsShorthand(expression string) bool {
	for _, rule := range shorthandRules {
		if rule.pattern.MatchString(expression) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
