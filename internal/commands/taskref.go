package commands

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a single 1-based task number.
// The number is not range checked; 0 is returned as is and rejected later
// as out of range.
func ParseTaskRef(arg string) (int, error) {
	if !isAllDigits(arg) {
		return 0, fmt.Errorf("invalid task reference: %s", arg)
	}
	num, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", arg)
	}
	return num, nil
}

// ParseTaskRefs parses one or more task numbers.
func ParseTaskRefs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}
	nums := make([]int, 0, len(args))
	for _, arg := range args {
		num, err := ParseTaskRef(arg)
		if err != nil {
			return nil, err
		}
		nums = append(nums, num)
	}
	return nums, nil
}

// firstOutOfRange returns the first number that does not name one of n
// tasks, and false if all are valid.
func firstOutOfRange(nums []int, n int) (int, bool) {
	for _, num := range nums {
		if num < 1 || num > n {
			return num, true
		}
	}
	return 0, false
}

// descendingUnique returns nums without duplicates, highest first.
func descendingUnique(nums []int) []int {
	out := slices.Clone(nums)
	slices.Sort(out)
	out = slices.Compact(out)
	slices.Reverse(out)
	return out
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

