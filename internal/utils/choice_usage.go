package utils

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefixConstant = "<"
	choicePlaceholderSuffixConstant = ">"
	choiceSeparatorConstant         = "|"
	choiceUsageTemplateConstant     = "%s %s"
)

// FormatChoiceUsage prefixes description with a placeholder listing choices; the default is upper-cased.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayedChoices := make([]string, 0, len(choices))
	seenChoices := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, seen := seenChoices[normalizedChoice]; seen {
			continue
		}
		seenChoices[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			normalizedChoice = strings.ToUpper(normalizedChoice)
		}
		displayedChoices = append(displayedChoices, normalizedChoice)
	}

	placeholder := choicePlaceholderPrefixConstant + strings.Join(displayedChoices, choiceSeparatorConstant) + choicePlaceholderSuffixConstant
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return placeholder
	}
	return fmt.Sprintf(choiceUsageTemplateConstant, placeholder, trimmedDescription)
}
