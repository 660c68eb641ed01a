//go:build windows

package volumes

import (
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/shirou/gopsutil/v4/disk"
	"golang.org/x/sys/windows"
)

func keepMountpoint(string) bool {
	return true
}

// probeVolume asks GetDriveTypeW whether the drive is removable media
func probeVolume(p disk.PartitionStat) (bool, string) {
	root := p.Mountpoint
	if len(root) == 2 && root[1] == ':' {
		root += `\`
	}
	rootPtr, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return false, model.KindUnknown
	}

	switch windows.GetDriveType(rootPtr) {
	case windows.DRIVE_REMOVABLE, windows.DRIVE_CDROM:
		return true, model.KindUnknown
	default:
		return false, model.KindUnknown
	}
}
