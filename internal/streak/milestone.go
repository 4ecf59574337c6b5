package streak

// milestones are the early streak lengths worth celebrating. Past the
// last one, every MilestoneInterval days is a milestone.
var milestones = []int{3, 7, 14, 30}

// MilestoneInterval spaces milestones beyond the fixed list.
const MilestoneInterval = 30

// NextMilestone returns the next streak milestone above the current streak length.
func NextMilestone(current int) int {
	for _, m := range milestones {
		if m > current {
			return m
		}
	}
	return (current/MilestoneInterval + 1) * MilestoneInterval
}

// IsMilestone reports whether a streak of n days is a milestone.
func IsMilestone(n int) bool {
	if n <= 0 {
		return false
	}
	for _, m := range milestones {
		if m == n {
			return true
		}
	}
	return n%MilestoneInterval == 0
}
