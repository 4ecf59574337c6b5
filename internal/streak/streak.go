// Package streak derives daily study streaks from the set of calendar
// days on which a user recorded activity.
package streak

import (
	"sort"
	"time"
)

// State is a user's streak as of a given day.
type State struct {
	// CurrentStreak counts consecutive days with activity ending today.
	// It is 0 when today has no activity.
	CurrentStreak int `json:"current_streak"`

	// LongestStreak is the longest run of consecutive active days.
	LongestStreak int `json:"longest_streak"`
}

// Day returns the calendar day of t as midnight UTC. The date is taken in
// t's own location, so a local clock keeps local days.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Compute derives the streak state from activity days relative to today.
// Days may be unordered and contain duplicates or time-of-day parts.
func Compute(days []time.Time, today time.Time) State {
	set := make(map[time.Time]bool, len(days))
	for _, d := range days {
		set[Day(d)] = true
	}

	var st State
	for d := Day(today); set[d]; d = d.AddDate(0, 0, -1) {
		st.CurrentStreak++
	}

	ordered := make([]time.Time, 0, len(set))
	for d := range set {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	run := 0
	for i, d := range ordered {
		if i > 0 && ordered[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		st.LongestStreak = max(st.LongestStreak, run)
	}
	return st
}

// History is a user's set of active days.
type History struct {
	days map[time.Time]bool
}

// NewHistory returns a history holding the given days.
func NewHistory(days ...time.Time) *History {
	h := &History{days: make(map[time.Time]bool, len(days))}
	for _, d := range days {
		h.days[Day(d)] = true
	}
	return h
}

// RecordActivity marks day as active and returns the state relative to
// today. Recording the same day twice has no further effect.
func (h *History) RecordActivity(day, today time.Time) State {
	h.days[Day(day)] = true
	return h.State(today)
}

// State returns the streak relative to today.
func (h *History) State(today time.Time) State {
	return Compute(h.Days(), today)
}

// Days returns the active days in ascending order.
func (h *History) Days() []time.Time {
	out := make([]time.Time, 0, len(h.days))
	for d := range h.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
