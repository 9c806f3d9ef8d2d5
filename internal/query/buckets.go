package query

import (
	"fmt"
	"math"
)

// ContextBucket is a labelled half-open range [Min, Max) of context window sizes.
type ContextBucket struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"` // math.MaxInt means unbounded
}

// Contains reports whether tokens falls inside the bucket.
func (b ContextBucket) Contains(tokens int) bool {
	return tokens >= b.Min && tokens < b.Max
}

// ContextBuckets are the canonical context window buckets, smallest first.
var ContextBuckets = []ContextBucket{
	{Label: "<100K", Min: 0, Max: 100000},
	{Label: "100K-500K", Min: 100000, Max: 500000},
	{Label: "500K-1M", Min: 500000, Max: 1000000},
	{Label: "1M+", Min: 1000000, Max: math.MaxInt},
}

// BucketLabels returns the labels of the canonical buckets in order.
func BucketLabels() []string {
	labels := make([]string, len(ContextBuckets))
	for i, b := range ContextBuckets {
		labels[i] = b.Label
	}
	return labels
}

// LookupBucket returns the bucket with the given label.
func LookupBucket(label string) (ContextBucket, error) {
	for _, b := range ContextBuckets {
		if b.Label == label {
			return b, nil
		}
	}
	return ContextBucket{}, fmt.Errorf("%w: %q", ErrUnknownBucket, label)
}

// BucketFor returns the canonical bucket tokens falls into. Negative sizes
// belong to no bucket.
func BucketFor(tokens int) (ContextBucket, bool) {
	for _, b := range ContextBuckets {
		if b.Contains(tokens) {
			return b, true
		}
	}
	return ContextBucket{}, false
}
