package model

import (
	"encoding/json"
	"math"
	"sort"
)

// Volume kinds reported by the enumerator
const (
	KindHDD     = "HDD"
	KindSSD     = "SSD"
	KindUnknown = "Unknown"
)

const bytesPerGB = 1_000_000_000

// Volume is a point-in-time view of one mounted disk.
// Identity is the mountpoint.
type Volume struct {
	Removable   bool   `json:"is_removable"`
	Kind        string `json:"kind"`
	Mountpoint  string `json:"mountpoint"`
	AvailableGB uint16 `json:"available_gb"`
	UsedGB      uint16 `json:"used_gb"`
	TotalGB     uint16 `json:"total_gb"`
}

// NewVolume converts raw byte counts into a Volume. Each figure is
// truncated to whole GB independently, so UsedGB+AvailableGB may be one
// less than TotalGB. That matches what existing front ends expect.
func NewVolume(mountpoint string, removable bool, kind string, totalBytes, availableBytes uint64) Volume {
	used := uint64(0)
	if totalBytes > availableBytes {
		used = totalBytes - availableBytes
	}
	return Volume{
		Removable:   removable,
		Kind:        kind,
		Mountpoint:  mountpoint,
		AvailableGB: BytesToGB(availableBytes),
		UsedGB:      BytesToGB(used),
		TotalGB:     BytesToGB(totalBytes),
	}
}

// BytesToGB converts bytes to decimal gigabytes, truncating and saturating at MaxUint16
func BytesToGB(bytes uint64) uint16 {
	gb := bytes / bytesPerGB
	if gb > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(gb)
}

// UsedPercent returns percentage of the volume used
func (v Volume) UsedPercent() float64 {
	if v.TotalGB == 0 {
		return 0
	}
	return float64(v.UsedGB) / float64(v.TotalGB) * 100
}

// Label returns a short description for display, e.g. "Removable" or "SSD"
func (v Volume) Label() string {
	if v.Removable {
		return "Removable"
	}
	return v.Kind
}

// Snapshot is the set of volumes mounted at one moment, sorted by mountpoint
type Snapshot []Volume

// NewSnapshot sorts volumes by mountpoint and drops duplicate mountpoints (first wins)
func NewSnapshot(volumes []Volume) Snapshot {
	seen := make(map[string]bool, len(volumes))
	snap := make(Snapshot, 0, len(volumes))
	for _, v := range volumes {
		if seen[v.Mountpoint] {
			continue
		}
		seen[v.Mountpoint] = true
		snap = append(snap, v)
	}
	sort.Slice(snap, func(i, j int) bool {
		return snap[i].Mountpoint < snap[j].Mountpoint
	})
	return snap
}

// Mountpoints returns the identity set of the snapshot
func (s Snapshot) Mountpoints() map[string]Volume {
	m := make(map[string]Volume, len(s))
	for _, v := range s {
		m[v.Mountpoint] = v
	}
	return m
}

// Find returns the volume mounted at mountpoint
func (s Snapshot) Find(mountpoint string) (Volume, bool) {
	for _, v := range s {
		if v.Mountpoint == mountpoint {
			return v, true
		}
	}
	return Volume{}, false
}

// SameMountpoints reports whether both snapshots hold the same set of
// mountpoints. Capacity figures are ignored.
func SameMountpoints(a, b Snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	am := a.Mountpoints()
	for _, v := range b {
		if _, ok := am[v.Mountpoint]; !ok {
			return false
		}
	}
	return true
}

// Diff is the key-based difference between two snapshots
type Diff struct {
	Added     []Volume // in current only
	Removed   []Volume // in previous only, with their last known figures
	Unchanged []Volume // in both, with current figures
}

// Changed reports whether the mountpoint set differs
func (d Diff) Changed() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// DiffSnapshots indexes both snapshots by mountpoint and classifies every volume
func DiffSnapshots(previous, current Snapshot) Diff {
	prevMap := previous.Mountpoints()
	currMap := current.Mountpoints()

	var d Diff
	for _, v := range current {
		if _, ok := prevMap[v.Mountpoint]; ok {
			d.Unchanged = append(d.Unchanged, v)
		} else {
			d.Added = append(d.Added, v)
		}
	}
	for _, v := range previous {
		if _, ok := currMap[v.Mountpoint]; !ok {
			d.Removed = append(d.Removed, v)
		}
	}
	return d
}

// VolumesChanged is the payload published when the mountpoint set changes
type VolumesChanged struct {
	Removed []Volume
	Current Snapshot
}

// MarshalJSON encodes the change as a two-element array [removed, current],
// the shape listeners of the "volumes" event decode.
func (c VolumesChanged) MarshalJSON() ([]byte, error) {
	removed := c.Removed
	if removed == nil {
		removed = []Volume{}
	}
	current := c.Current
	if current == nil {
		current = Snapshot{}
	}
	return json.Marshal([2]any{removed, current})
}

// UnmarshalJSON decodes the two-element array form
func (c *VolumesChanged) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &c.Removed); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &c.Current)
}
