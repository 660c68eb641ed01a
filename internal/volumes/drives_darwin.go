//go:build darwin

package volumes

import (
	"strings"

	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/shirou/gopsutil/v4/disk"
)

// keepMountpoint keeps the root filesystem and anything under /Volumes.
// The APFS helper volumes under /System/Volumes are not user-facing.
func keepMountpoint(mountpoint string) bool {
	return mountpoint == "/" || strings.HasPrefix(mountpoint, "/Volumes/")
}

// probeVolume treats everything mounted under /Volumes as removable
func probeVolume(p disk.PartitionStat) (bool, string) {
	if p.Mountpoint == "/" {
		return false, model.KindSSD
	}
	return strings.HasPrefix(p.Mountpoint, "/Volumes/"), model.KindUnknown
}
