// Package aggregate computes derived reporting views over collections:
// running totals, time-bucketed series, category distributions, and top-N
// rankings. Every function is pure and re-derivable on demand; nothing here
// caches state.
package aggregate

import (
	"sort"
	"time"
)

// Period selects the truncation unit for bucketed series.
type Period string

// Supported bucketing periods.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

// Bucket is one period of a time series.
type Bucket struct {
	Start time.Time `json:"start"`
	Total float64   `json:"total"`
	Count int       `json:"count"`
}

// Group is one entry of a category distribution.
type Group struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // percentage of the grand total
}

// Sum adds value over every item.
func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += value(item)
	}
	return total
}

// SumWhere adds value over the items matching pred.
func SumWhere[T any](items []T, pred func(T) bool, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		if pred(item) {
			total += value(item)
		}
	}
	return total
}

// Truncate returns the bucket start for ts at the given period, in UTC.
func Truncate(ts time.Time, period Period) time.Time {
	ts = ts.UTC()
	switch period {
	case PeriodDay:
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

func next(start time.Time, period Period) time.Time {
	if period == PeriodDay {
		return start.AddDate(0, 0, 1)
	}
	return start.AddDate(0, 1, 0)
}

// Series groups items by at truncated to period, sums value per bucket, and
// returns buckets in chronological order. Only buckets with at least one
// contributing item are emitted.
func Series[T any](items []T, at func(T) time.Time, value func(T) float64, period Period) []Bucket {
	totals := make(map[time.Time]*Bucket)
	for _, item := range items {
		start := Truncate(at(item), period)
		b, ok := totals[start]
		if !ok {
			b = &Bucket{Start: start}
			totals[start] = b
		}
		b.Total += value(item)
		b.Count++
	}
	out := make([]Bucket, 0, len(totals))
	for _, b := range totals {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// SeriesRange is Series over a fixed period range: every period from the
// bucket containing from through the bucket containing to is emitted, zero
// valued when nothing contributed. Items outside the range are ignored.
func SeriesRange[T any](items []T, at func(T) time.Time, value func(T) float64, period Period, from, to time.Time) []Bucket {
	first := Truncate(from, period)
	last := Truncate(to, period)
	if last.Before(first) {
		return nil
	}
	var out []Bucket
	index := make(map[time.Time]int)
	for start := first; !start.After(last); start = next(start, period) {
		index[start] = len(out)
		out = append(out, Bucket{Start: start})
	}
	for _, item := range items {
		start := Truncate(at(item), period)
		if i, ok := index[start]; ok {
			out[i].Total += value(item)
			out[i].Count++
		}
	}
	return out
}

// Distribution groups items by key and counts per group. Shares are percent
// of the item count and sum to 100 within floating rounding. Groups are
// ordered by first appearance, preserving collection order.
func Distribution[T any](items []T, key func(T) string) []Group {
	return distribution(items, key, func(T) float64 { return 1 })
}

// DistributionSum groups items by key and sums value per group, with shares
// as percent of the grand total.
func DistributionSum[T any](items []T, key func(T) string, value func(T) float64) []Group {
	return distribution(items, key, value)
}

func distribution[T any](items []T, key func(T) string, value func(T) float64) []Group {
	index := make(map[string]int)
	var out []Group
	var grand float64
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Group{Key: k})
		}
		v := value(item)
		out[i].Total += v
		out[i].Count++
		grand += v
	}
	if grand != 0 {
		for i := range out {
			out[i].Share = out[i].Total / grand * 100
		}
	}
	return out
}

// TopN returns the first n items ranked descending by value, ties keeping
// their original relative order. n larger than the input returns everything.
func TopN[T any](items []T, value func(T) float64, n int) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return value(out[i]) > value(out[j]) })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
