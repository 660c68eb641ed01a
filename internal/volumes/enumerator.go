// Package volumes enumerates mounted storage volumes and watches for
// attach/detach changes.
package volumes

import (
	"context"
	"fmt"

	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/shirou/gopsutil/v4/disk"
)

// Enumerator takes one snapshot of mounted volumes
type Enumerator interface {
	Snapshot(ctx context.Context) (model.Snapshot, error)
}

// EnumeratorFunc adapts a function to Enumerator
type EnumeratorFunc func(ctx context.Context) (model.Snapshot, error)

// Snapshot calls f
func (f EnumeratorFunc) Snapshot(ctx context.Context) (model.Snapshot, error) {
	return f(ctx)
}

// System enumerates the volumes of the running machine
type System struct {
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	probe      func(p disk.PartitionStat) (removable bool, kind string)
}

// NewSystem creates an enumerator backed by gopsutil and platform probes
func NewSystem() *System {
	return &System{
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
		probe:      probeVolume,
	}
}

// Snapshot lists physical volumes with their capacity. A disk whose usage
// can't be read is left out instead of failing the whole snapshot.
func (s *System) Snapshot(ctx context.Context) (model.Snapshot, error) {
	parts, err := s.partitions(ctx, false)
	if err != nil {
		// gopsutil can return partial results alongside an error
		if len(parts) == 0 {
			return nil, fmt.Errorf("list partitions: %w", err)
		}
		logging.Volumes.Debugf("partial partition list: %v", err)
	}

	vols := make([]model.Volume, 0, len(parts))
	for _, p := range parts {
		if isFilteredFilesystem(p.Fstype) || !keepMountpoint(p.Mountpoint) {
			continue
		}

		u, err := s.usage(ctx, p.Mountpoint)
		if err != nil {
			logging.Volumes.Debugf("skipping %s: %v", p.Mountpoint, err)
			continue
		}
		// Only add if we got valid disk space info
		if u.Total == 0 {
			continue
		}

		removable, kind := s.probe(p)
		vols = append(vols, model.NewVolume(p.Mountpoint, removable, kind, u.Total, u.Free))
	}

	return model.NewSnapshot(vols), nil
}

// isFilteredFilesystem returns true if the filesystem type should be filtered out
func isFilteredFilesystem(fsType string) bool {
	switch fsType {
	// Network filesystems
	case "smbfs", "nfs", "nfs4", "afpfs", "webdav", "cifs", "sshfs", "fuse.sshfs":
		return true
	// Pseudo filesystems
	case "devfs", "autofs", "mtmfs", "nullfs",
		"proc", "sysfs", "tmpfs", "devtmpfs", "devpts", "overlay", "squashfs",
		"cgroup", "cgroup2", "securityfs", "debugfs", "tracefs", "configfs",
		"pstore", "bpf", "mqueue", "hugetlbfs", "ramfs", "nsfs", "efivarfs",
		"binfmt_misc", "fusectl":
		return true
	}
	return false
}
