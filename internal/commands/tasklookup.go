package commands

import (
	"fmt"
	"strconv"

	"tasko/internal/service"
	"tasko/internal/store"
)

// parseTaskNum parses a 1-based task number argument.
func parseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("task number required")
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("too many arguments")
	}
	num, err := strconv.Atoi(args[0])
	if err != nil || num < 1 {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	return num, nil
}

// findTaskByNumber resolves a 1-based number against the collection
// projected through the given filter, matching the numbering the list
// command prints for that filter.
func findTaskByNumber(st *store.Store, filter store.Filter, num int) (service.Task, error) {
	filtered, _ := store.Derive(st.Tasks(), filter)
	if num > len(filtered) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return filtered[num-1], nil
}

// resolveFilter picks the view filter: the --filter flag when given,
// else the configured default, else all.
func resolveFilter(flagValue, configured string) (store.Filter, error) {
	name := flagValue
	if name == "" {
		name = configured
	}
	if name == "" {
		return store.FilterAll, nil
	}
	return store.ParseFilter(name)
}
