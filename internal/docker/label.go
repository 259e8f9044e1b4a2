package docker

import (
	"github.com/docker/docker/api/types/filters"
)

// ManagedLabelKey is the Docker label key that marks a network or volume
// as owned by this tool. Networks and volumes share the same key so that
// listing and ownership checks stay consistent across resource kinds.
const ManagedLabelKey = "io.github.kherge.dev.managed"

// ManagedLabelValue is the only value of ManagedLabelKey that counts as
// managed. The comparison is exact and case-sensitive.
const ManagedLabelValue = "true"

// IsManaged reports whether a label set marks its object as managed.
// A nil map, a missing key, or any value other than "true" (including
// "True", "1" or "false") yields false.
func IsManaged(labels map[string]string) bool {
	if labels == nil {
		return false
	}
	value, ok := labels[ManagedLabelKey]
	return ok && value == ManagedLabelValue
}

// ManagedLabels returns a new label map holding only the managed label.
// A fresh map is returned on every call so callers may not mutate a
// shared instance.
func ManagedLabels() map[string]string {
	return map[string]string{
		ManagedLabelKey: ManagedLabelValue,
	}
}

// ManagedFilter returns the Docker API filter selecting managed objects:
//
//	label=io.github.kherge.dev.managed=true
//
// The engine evaluates the filter server-side; results are not re-checked.
func ManagedFilter() filters.Args {
	return filters.NewArgs(
		filters.Arg("label", ManagedLabelKey+"="+ManagedLabelValue),
	)
}
