package analytics

import (
	"testing"

	"ai-docchat-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketFor_LeftInclusiveBoundaries(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "< 3s"},
		{2.99, "< 3s"},
		{3.0, "3-5s"},
		{4.99, "3-5s"},
		{5.0, "5-10s"},
		{10.0, "10-15s"},
		{14.99, "10-15s"},
		{15.0, "> 15s"},
		{120, "> 15s"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BucketFor(c.seconds), "seconds=%v", c.seconds)
	}
}

func TestBucketResponseTimes_AllBucketsPresentInOrder(t *testing.T) {
	got := BucketResponseTimes([]float64{1.2, 3.0, 3.4, 16})

	require.Len(t, got, 5)
	labels := make([]string, 0, 5)
	for _, b := range got {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, BucketLabels, labels)

	assert.Equal(t, int64(1), got[0].Count) // < 3s
	assert.Equal(t, int64(2), got[1].Count) // 3-5s
	assert.Equal(t, int64(0), got[2].Count) // 5-10s
	assert.Equal(t, int64(0), got[3].Count) // 10-15s
	assert.Equal(t, int64(1), got[4].Count) // > 15s
}

func TestBucketResponseTimes_Empty(t *testing.T) {
	got := BucketResponseTimes(nil)
	require.Len(t, got, 5)
	for _, b := range got {
		assert.Zero(t, b.Count)
	}
}

func TestWeekdayAverages_DividesByObservedDaysOnly(t *testing.T) {
	daily := []entity.DailyConversationCount{
		{Date: "2026-08-03", Count: 3, Weekday: 1}, // a Monday
		{Date: "2026-08-10", Count: 5, Weekday: 1}, // another Monday
		{Date: "2026-08-05", Count: 7, Weekday: 3}, // a Wednesday
	}

	got := WeekdayAverages(daily)
	require.Len(t, got, 7)

	assert.Equal(t, "Sunday", got[0].Weekday)
	assert.Equal(t, 0.0, got[0].Average)

	assert.Equal(t, "Monday", got[1].Weekday)
	assert.Equal(t, 4.0, got[1].Average)

	assert.Equal(t, "Wednesday", got[3].Weekday)
	assert.Equal(t, 7.0, got[3].Average)

	assert.Equal(t, "Saturday", got[6].Weekday)
	assert.Equal(t, 0.0, got[6].Average)
}

func TestWeekdayAverages_IgnoresOutOfRangeWeekday(t *testing.T) {
	daily := []entity.DailyConversationCount{
		{Date: "2026-08-03", Count: 3, Weekday: 9},
	}
	got := WeekdayAverages(daily)
	for _, w := range got {
		assert.Zero(t, w.Average)
	}
}

func TestMergeUserStats_SortsAndComputesSatisfaction(t *testing.T) {
	activity := []entity.UserActivity{
		{EmployeeId: "E100", Questions: 2, Responses: 2, Conversations: 1},
		{EmployeeId: "E200", Questions: 9, Responses: 9, Conversations: 4},
		{EmployeeId: "E300", Questions: 5, Responses: 5, Conversations: 2},
	}
	feedback := []entity.UserFeedbackCount{
		{EmployeeId: "E200", Positive: 3, Negative: 1},
		{EmployeeId: "E999", Positive: 1, Negative: 0}, // feedback without activity is dropped
	}

	got := MergeUserStats(activity, feedback)
	require.Len(t, got, 3)

	assert.Equal(t, "E200", got[0].EmployeeId)
	assert.Equal(t, "E300", got[1].EmployeeId)
	assert.Equal(t, "E100", got[2].EmployeeId)

	require.NotNil(t, got[0].SatisfactionRate)
	assert.InDelta(t, 75.0, *got[0].SatisfactionRate, 0.0001)

	// No votes at all: rate stays nil rather than reading as 0% satisfied.
	assert.Nil(t, got[1].SatisfactionRate)
	assert.Nil(t, got[2].SatisfactionRate)
}
