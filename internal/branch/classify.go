package branch

import (
	"slices"
	"time"
)

// Category is the cleanup bucket a branch falls into.
type Category int

const (
	Merged Category = iota
	Stale
	Recent
)

func (c Category) String() string {
	switch c {
	case Merged:
		return "merged"
	case Stale:
		return "stale"
	case Recent:
		return "recent"
	}
	return "unknown"
}

// Display orders for the two workflows.
var (
	LocalOrder  = []Category{Merged, Stale, Recent}
	RemoteOrder = []Category{Stale, Recent}
)

// Groups maps each category to its records in display order.
type Groups map[Category][]Record

// Count returns the total number of records across all categories.
func (g Groups) Count() int {
	n := 0
	for _, recs := range g {
		n += len(recs)
	}
	return n
}

// Flatten returns the records of the given categories, in order.
func (g Groups) Flatten(order []Category) []Record {
	var out []Record
	for _, c := range order {
		out = append(out, g[c]...)
	}
	return out
}

// ThresholdDays returns the epoch before which a commit counts as stale.
func ThresholdDays(now time.Time, days int) int64 {
	return now.AddDate(0, 0, -days).Unix()
}

// ThresholdMonths returns the epoch before which a commit counts as stale.
func ThresholdMonths(now time.Time, months int) int64 {
	return now.AddDate(0, -months, 0).Unix()
}

// Categorize returns the local-cleanup category of a single record.
// Merged depends only on the upstream state, never on age.
// A record without a known commit time is Stale.
func Categorize(r Record, threshold int64) Category {
	if r.HadConfiguredUpstream && !r.HasRemoteCounterpart {
		return Merged
	}
	return categorizeByAge(r, threshold)
}

func categorizeByAge(r Record, threshold int64) Category {
	if r.LastCommitEpoch <= 0 || r.LastCommitEpoch < threshold {
		return Stale
	}
	return Recent
}

// BaseNames are the conventional base branch names. Whichever of them is
// not the actual base is still never offered for deletion.
var BaseNames = []string{"main", "master"}

// IsBase reports whether name is base or, when a base is given, one of
// BaseNames.
func IsBase(name, base string) bool {
	if base == "" {
		return false
	}
	return name == base || slices.Contains(BaseNames, name)
}

// Classify partitions local records into Merged, Stale and Recent.
// Base branches (see IsBase) are excluded, as are duplicate names (first
// one wins). An empty base excludes nothing.
func Classify(records []Record, threshold int64, base string) Groups {
	return classify(records, base, func(r Record) Category {
		return Categorize(r, threshold)
	})
}

// ClassifyRemote partitions remote records into Stale and Recent.
// Remote branches with a base name (origin/main, origin/master) are excluded.
func ClassifyRemote(records []Record, threshold int64, base string) Groups {
	return classify(records, base, func(r Record) Category {
		return categorizeByAge(r, threshold)
	})
}

func classify(records []Record, base string, categorize func(Record) Category) Groups {
	groups := make(Groups)
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if IsBase(r.Name, base) || r.Name == "HEAD" || seen[r.Ref()] {
			continue
		}
		seen[r.Ref()] = true
		c := categorize(r)
		groups[c] = append(groups[c], r)
	}
	for c := range groups {
		slices.SortStableFunc(groups[c], func(a, b Record) int {
			switch {
			case a.LastCommitEpoch > b.LastCommitEpoch:
				return -1
			case a.LastCommitEpoch < b.LastCommitEpoch:
				return 1
			}
			return 0
		})
	}
	return groups
}
