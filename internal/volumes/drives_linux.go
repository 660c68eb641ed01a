//go:build linux

package volumes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/shirou/gopsutil/v4/disk"
	"golang.org/x/sys/unix"
)

// sysDevBlock is where the kernel exposes block devices by major:minor
var sysDevBlock = "/sys/dev/block"

func keepMountpoint(string) bool {
	return true
}

// probeVolume resolves the block device behind the mountpoint and reads its
// removable and rotational flags from sysfs
func probeVolume(p disk.PartitionStat) (bool, string) {
	var st unix.Stat_t
	if err := unix.Stat(p.Mountpoint, &st); err != nil {
		return false, model.KindUnknown
	}
	dev := uint64(st.Dev)
	return probeSysfs(filepath.Join(sysDevBlock, fmt.Sprintf("%d:%d", unix.Major(dev), unix.Minor(dev))))
}

// probeSysfs reads flags for a block device directory. Partitions carry a
// "partition" file and inherit the flags of their parent disk.
func probeSysfs(devDir string) (bool, string) {
	dir, err := filepath.EvalSymlinks(devDir)
	if err != nil {
		return false, model.KindUnknown
	}
	if _, err := os.Stat(filepath.Join(dir, "partition")); err == nil {
		dir = filepath.Dir(dir)
	}

	removable := readFlag(filepath.Join(dir, "removable")) == "1"

	kind := model.KindUnknown
	switch readFlag(filepath.Join(dir, "queue", "rotational")) {
	case "1":
		kind = model.KindHDD
	case "0":
		kind = model.KindSSD
	}
	return removable, kind
}

func readFlag(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
