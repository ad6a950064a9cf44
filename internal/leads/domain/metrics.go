package domain

import (
	"math"
	"sort"
	"time"
)

// HourlyBucket is one hour of the capture timeline.
type HourlyBucket struct {
	Hour  time.Time
	Total int
}

// Performance classifies the hourly capture rate of an event.
type Performance struct {
	Rate    int
	Status  string
	Trend   string
	Message string
}

// Classification values returned by Classify.
const (
	StatusPoor    = "poor"
	StatusAverage = "average"
	StatusStrong  = "strong"

	TrendDown   = "down"
	TrendStable = "stable"
	TrendUp     = "up"
)

// BucketByHour distributes lead creation timestamps into dense one-hour
// buckets. The first bucket starts at start truncated to the hour; buckets
// advance hourly until end (exclusive) and empty hours are zero-filled.
// Timestamps before start or at/after end are dropped. All arithmetic is
// done in UTC.
func BucketByHour(createdAts []time.Time, start, end time.Time) []HourlyBucket {
	start = start.UTC()
	end = end.UTC()

	var buckets []HourlyBucket
	index := make(map[time.Time]int)

	for cursor := start.Truncate(time.Hour); cursor.Before(end); cursor = cursor.Add(time.Hour) {
		index[cursor] = len(buckets)
		buckets = append(buckets, HourlyBucket{Hour: cursor})
	}

	for _, createdAt := range createdAts {
		createdAt = createdAt.UTC()
		if createdAt.Before(start) || !createdAt.Before(end) {
			continue
		}
		if i, ok := index[createdAt.Truncate(time.Hour)]; ok {
			buckets[i].Total++
		}
	}

	return buckets
}

// AverageRate returns the average bucket size over non-empty buckets,
// rounded to the nearest integer. Dead hours are excluded so the rate
// reflects typical burst size rather than the mean across the whole window.
func AverageRate(buckets []HourlyBucket) int {
	total := 0
	activeHours := 0
	for _, b := range buckets {
		total += b.Total
		if b.Total > 0 {
			activeHours++
		}
	}
	if activeHours == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(activeHours)))
}

// Classify maps a rounded hourly rate to a performance classification.
func Classify(rate int) Performance {
	switch {
	case rate < 10:
		return Performance{
			Rate:    rate,
			Status:  StatusPoor,
			Trend:   TrendDown,
			Message: "Low lead capture rate. Immediate optimization required.",
		}
	case rate < 25:
		return Performance{
			Rate:    rate,
			Status:  StatusAverage,
			Trend:   TrendStable,
			Message: "Moderate performance. There is room for improvement.",
		}
	default:
		return Performance{
			Rate:    rate,
			Status:  StatusStrong,
			Trend:   TrendUp,
			Message: "High lead capture rate. Strong event performance.",
		}
	}
}

// CategorySample is the projection of a lead used for category breakdowns.
type CategorySample struct {
	Category               string
	IntendsToStudyNextYear bool
}

// CategoryMetric is one row of a category breakdown.
type CategoryMetric struct {
	Category       string
	Total          int
	IntentNextYear int
}

// GroupByCategory counts leads per category, tracking how many of each
// group intend to study next year. Output is sorted by total descending;
// the order among equal totals is not defined.
func GroupByCategory(samples []CategorySample) []CategoryMetric {
	groups := make(map[string]*CategoryMetric)
	order := make([]string, 0)

	for _, s := range samples {
		metric, ok := groups[s.Category]
		if !ok {
			metric = &CategoryMetric{Category: s.Category}
			groups[s.Category] = metric
			order = append(order, s.Category)
		}
		metric.Total++
		if s.IntendsToStudyNextYear {
			metric.IntentNextYear++
		}
	}

	results := make([]CategoryMetric, 0, len(groups))
	for _, category := range order {
		results = append(results, *groups[category])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Total > results[j].Total
	})
	return results
}
