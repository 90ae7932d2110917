package habit

import (
	"sort"
	"time"
)

// periodIndex maps an instant to a monotonically increasing period
// counter for the given frequency. Two instants share an index iff
// they fall in the same tracking period (UTC).
func periodIndex(t time.Time, f Frequency) int {
	t = t.UTC()
	switch f {
	case FrequencyWeekly:
		// Days since epoch shifted so weeks start on Monday
		// (1970-01-01 was a Thursday).
		days := int(t.Unix() / 86400)
		return (days + 3) / 7
	case FrequencyMonthly:
		return t.Year()*12 + int(t.Month()) - 1
	default:
		return int(t.Unix() / 86400)
	}
}

// periodIndexes reduces completion instants to sorted unique period
// counters.
func periodIndexes(times []time.Time, f Frequency) []int {
	seen := make(map[int]struct{}, len(times))
	idxs := make([]int, 0, len(times))
	for _, t := range times {
		idx := periodIndex(t, f)
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	return idxs
}

// CurrentStreak counts consecutive completed periods ending at the
// current period. The current period itself may still be pending: a
// streak reaching through the previous period is not broken until the
// current period has fully elapsed without a completion.
func CurrentStreak(times []time.Time, f Frequency, now time.Time) int {
	idxs := periodIndexes(times, f)
	if len(idxs) == 0 {
		return 0
	}

	nowIdx := periodIndex(now, f)
	last := idxs[len(idxs)-1]
	if last != nowIdx && last != nowIdx-1 {
		return 0
	}

	streak := 1
	for i := len(idxs) - 2; i >= 0; i-- {
		if idxs[i] != idxs[i+1]-1 {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed
// periods anywhere in the history.
func LongestStreak(times []time.Time, f Frequency) int {
	idxs := periodIndexes(times, f)
	if len(idxs) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(idxs); i++ {
		if idxs[i] == idxs[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// CompletionRate is the percentage of periods since createdAt with at
// least one completion, in [0, 100].
func CompletionRate(times []time.Time, f Frequency, createdAt, now time.Time) float64 {
	elapsed := periodIndex(now, f) - periodIndex(createdAt, f) + 1
	if elapsed <= 0 {
		return 0
	}

	completed := len(periodIndexes(times, f))
	if completed > elapsed {
		completed = elapsed
	}
	return float64(completed) / float64(elapsed) * 100
}

// ComputeStats assembles the full per-habit stats payload.
func ComputeStats(h *Habit, times []time.Time, now time.Time) Stats {
	stats := Stats{
		HabitID:           h.ID,
		CurrentStreak:     CurrentStreak(times, h.Frequency, now),
		LongestStreak:     LongestStreak(times, h.Frequency),
		CompletionRate:    CompletionRate(times, h.Frequency, h.CreatedAt, now),
		TotalCompletions:  len(times),
		CompletionHistory: times,
	}
	if len(times) > 0 {
		last := times[len(times)-1]
		stats.LastCompleted = &last
	}
	return stats
}
