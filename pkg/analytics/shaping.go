package analytics

import (
	"sort"

	"ai-docchat-be/internal/entity"
)

// BucketLabels is the fixed display order of the latency histogram.
var BucketLabels = []string{"< 3s", "3-5s", "5-10s", "10-15s", "> 15s"}

// BucketFor assigns one latency to its histogram bucket. Boundaries are
// left-inclusive: exactly 3.0s lands in "3-5s", exactly 15.0s in "> 15s".
func BucketFor(seconds float64) string {
	switch {
	case seconds < 3:
		return "< 3s"
	case seconds < 5:
		return "3-5s"
	case seconds < 10:
		return "5-10s"
	case seconds < 15:
		return "10-15s"
	default:
		return "> 15s"
	}
}

// BucketResponseTimes histograms the latencies. Every bucket appears in the
// result, zero-count buckets included, always in BucketLabels order.
func BucketResponseTimes(times []float64) []entity.ResponseTimeBucket {
	counts := make(map[string]int64, len(BucketLabels))
	for _, t := range times {
		counts[BucketFor(t)]++
	}

	out := make([]entity.ResponseTimeBucket, 0, len(BucketLabels))
	for _, label := range BucketLabels {
		out = append(out, entity.ResponseTimeBucket{Label: label, Count: counts[label]})
	}
	return out
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekdayAverages averages daily conversation counts per weekday. Only days
// that actually had traffic count toward the denominator, so two Mondays with
// 3 and 5 conversations average to 4 regardless of how many Mondays passed.
// All seven weekdays appear in the result, Sunday first.
func WeekdayAverages(daily []entity.DailyConversationCount) []entity.WeekdayAverage {
	var sums [7]int64
	var days [7]int64
	for _, d := range daily {
		if d.Weekday < 0 || d.Weekday > 6 {
			continue
		}
		sums[d.Weekday] += d.Count
		days[d.Weekday]++
	}

	out := make([]entity.WeekdayAverage, 0, 7)
	for w := 0; w < 7; w++ {
		avg := 0.0
		if days[w] > 0 {
			avg = float64(sums[w]) / float64(days[w])
		}
		out = append(out, entity.WeekdayAverage{Weekday: weekdayNames[w], Average: avg})
	}
	return out
}

// MergeUserStats joins activity rows with feedback tallies into leaderboard
// rows, most questions first. SatisfactionRate is a percentage and stays nil
// for users nobody has voted on.
func MergeUserStats(activity []entity.UserActivity, feedback []entity.UserFeedbackCount) []entity.UserStats {
	votes := make(map[string]entity.UserFeedbackCount, len(feedback))
	for _, f := range feedback {
		votes[f.EmployeeId] = f
	}

	out := make([]entity.UserStats, 0, len(activity))
	for _, a := range activity {
		row := entity.UserStats{
			EmployeeId:    a.EmployeeId,
			Questions:     a.Questions,
			Responses:     a.Responses,
			Conversations: a.Conversations,
			FirstActivity: a.FirstActivity,
			LastActivity:  a.LastActivity,
		}
		if v, ok := votes[a.EmployeeId]; ok {
			row.Positive = v.Positive
			row.Negative = v.Negative
			if total := v.Positive + v.Negative; total > 0 {
				rate := float64(v.Positive) / float64(total) * 100
				row.SatisfactionRate = &rate
			}
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Questions > out[j].Questions
	})
	return out
}
