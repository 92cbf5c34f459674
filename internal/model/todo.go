package model

import (
	"fmt"
	"strings"
	"time"
)

// Todo is the domain model for a todo entry.
// ID and CreatedAt never change after creation.
type Todo struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt time.Time
}

// Filter selects which todos a view shows. It never affects the stored list.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// Label is the capitalized name used in headers and tabs.
func (f Filter) Label() string {
	s := f.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Match reports whether t belongs in the view selected by f.
func (f Filter) Match(t Todo) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter { return Filter((int(f) + 1) % len(Filters)) }

// Prev cycles in the opposite direction of Next.
func (f Filter) Prev() Filter { return Filter((int(f) + len(Filters) - 1) % len(Filters)) }

// ParseFilter accepts the filter names case-insensitively. An empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, active or completed)", s)
}
