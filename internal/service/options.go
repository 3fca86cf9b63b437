package service

import (
	"math"

	"quickbite/internal/domain"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemTotal computes the price of a cart line: base price plus every
// selected choice delta, summed first and multiplied by the quantity
// once at the end. Choice or group ids that do not exist on the item
// are skipped.
func ItemTotal(item domain.MenuItem, selections []domain.SelectedOption, quantity int) float64 {
	unit := item.Price
	for _, selection := range selections {
		group := findGroup(item.Options, selection.OptionID)
		if group == nil {
			continue
		}
		for _, choiceID := range selection.ChoiceIDs {
			if choice := findChoice(group.Choices, choiceID); choice != nil {
				unit += choice.Price
			}
		}
	}
	return round2(unit * float64(quantity))
}

// MissingRequired returns the names of required option groups that have
// no non-empty selection.
func MissingRequired(item domain.MenuItem, selections []domain.SelectedOption) []string {
	var missing []string
	for _, group := range item.Options {
		if !group.Required {
			continue
		}
		if !hasSelection(selections, group.ID) {
			missing = append(missing, group.Name)
		}
	}
	return missing
}

// ToggleChoice applies the selection rule for a single group. Multiple
// groups toggle the choice in and out, dropping the group entry when the
// set empties. Single-choice groups always end up with exactly the
// toggled id.
func ToggleChoice(selections []domain.SelectedOption, group domain.OptionGroup, choiceID string) []domain.SelectedOption {
	for i, selection := range selections {
		if selection.OptionID != group.ID {
			continue
		}

		if !group.Multiple {
			updated := make([]domain.SelectedOption, len(selections))
			copy(updated, selections)
			updated[i].ChoiceIDs = []string{choiceID}
			return updated
		}

		idx := indexOf(selection.ChoiceIDs, choiceID)
		updated := make([]domain.SelectedOption, len(selections))
		copy(updated, selections)
		if idx >= 0 {
			choices := append([]string{}, selection.ChoiceIDs[:idx]...)
			choices = append(choices, selection.ChoiceIDs[idx+1:]...)
			if len(choices) == 0 {
				return append(updated[:i], updated[i+1:]...)
			}
			updated[i].ChoiceIDs = choices
		} else {
			updated[i].ChoiceIDs = append(append([]string{}, selection.ChoiceIDs...), choiceID)
		}
		return updated
	}

	return append(append([]domain.SelectedOption{}, selections...), domain.SelectedOption{
		OptionID:  group.ID,
		ChoiceIDs: []string{choiceID},
	})
}

func findGroup(groups []domain.OptionGroup, id string) *domain.OptionGroup {
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i]
		}
	}
	return nil
}

func findChoice(choices []domain.Choice, id string) *domain.Choice {
	for i := range choices {
		if choices[i].ID == id {
			return &choices[i]
		}
	}
	return nil
}

func hasSelection(selections []domain.SelectedOption, groupID string) bool {
	for _, selection := range selections {
		if selection.OptionID == groupID && len(selection.ChoiceIDs) > 0 {
			return true
		}
	}
	return false
}

func indexOf(items []string, target string) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}
