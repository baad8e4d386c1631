package store

import (
	"fmt"

	"tasko/internal/service"
)

// Filter selects which slice of the collection the view shows.
// It is a pure view projection: never persisted, never sent to the backend.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter validates a filter name from flags or settings.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterCompleted:
		return Filter(s), nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// Stats holds counts derived from the task collection. They are
// recomputed on every read, never mutated independently.
type Stats struct {
	Total     int
	Active    int
	Completed int
}

// Derive computes the filtered view and stats from a task collection.
// Pure function: no side effects, input order preserved.
func Derive(tasks []service.Task, filter Filter) ([]service.Task, Stats) {
	var stats Stats
	filtered := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		stats.Total++
		if t.Completed {
			stats.Completed++
		} else {
			stats.Active++
		}
		switch filter {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		filtered = append(filtered, t)
	}
	return filtered, stats
}
