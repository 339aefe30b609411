package edgework

import (
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// ResourceCount partitions port types by the number of plates carrying them.
// Bucket 0 holds types on no plate; bucket k holds types on exactly k plates.
type ResourceCount struct {
	buckets []mapset.Set[PortType]
}

// Classify starts every type of the universe in bucket 0 and, for each
// plate, promotes each type it carries by one bucket. A type carried by k
// plates ends in bucket k. Types outside the universe are ignored.
func Classify(plates []Plate, universe []PortType) *ResourceCount {
	rc := &ResourceCount{buckets: make([]mapset.Set[PortType], len(plates)+1)}
	for i := range rc.buckets {
		rc.buckets[i] = mapset.New[PortType]()
	}
	for _, p := range universe {
		rc.buckets[0].Put(p)
	}

	for _, plate := range plates {
		for _, p := range universe {
			if !plate.Has(p) {
				continue
			}
			from := rc.BucketOf(p)
			if from < 0 {
				continue
			}
			rc.buckets[from].Remove(p)
			rc.buckets[from+1].Put(p)
		}
	}
	return rc
}

// Len returns the number of buckets (plates + 1)
func (rc *ResourceCount) Len() int {
	return len(rc.buckets)
}

// BucketOf returns the bucket holding p, or -1 if p is not in the universe
func (rc *ResourceCount) BucketOf(p PortType) int {
	for i, bucket := range rc.buckets {
		if bucket.Has(p) {
			return i
		}
	}
	return -1
}

// Members returns the types in bucket i in ascending order. The order is for
// reproducible output only; a bucket itself is unordered.
func (rc *ResourceCount) Members(i int) []PortType {
	if i < 0 || i >= len(rc.buckets) {
		return nil
	}
	var members []PortType
	rc.buckets[i].Each(func(p PortType) {
		members = append(members, p)
	})
	slices.Sort(members)
	return members
}

// Size returns the number of types in bucket i
func (rc *ResourceCount) Size(i int) int {
	if i < 0 || i >= len(rc.buckets) {
		return 0
	}
	return rc.buckets[i].Size()
}
