//go:build !windows && !darwin && !linux

package volumes

import (
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/shirou/gopsutil/v4/disk"
)

func keepMountpoint(string) bool {
	return true
}

func probeVolume(disk.PartitionStat) (bool, string) {
	return false, model.KindUnknown
}
