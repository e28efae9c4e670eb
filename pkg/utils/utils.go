package utils

import (
	"sort"
	"strconv"
)

type ActionCount struct {
	Action string
	Count  uint64
}

// SortActionsByCount sorts actions by count (descending), then by name (ascending)
func SortActionsByCount(deliveredByAction map[string]uint64) []ActionCount {
	var actionCounts []ActionCount
	for action, count := range deliveredByAction {
		actionCounts = append(actionCounts, ActionCount{Action: action, Count: count})
	}

	// Sort by count descending, then by action ascending
	sort.Slice(actionCounts, func(i, j int) bool {
		if actionCounts[i].Count == actionCounts[j].Count {
			return actionCounts[i].Action < actionCounts[j].Action
		}
		return actionCounts[i].Count > actionCounts[j].Count
	})

	return actionCounts
}

// FormatNumber formats a number with comma separators for readability
func FormatNumber(n uint64) string {
	str := strconv.FormatUint(n, 10)
	if len(str) <= 3 {
		return str
	}

	result := ""
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(c)
	}
	return result
}
