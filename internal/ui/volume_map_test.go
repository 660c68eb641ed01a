package ui

import (
	"strings"
	"testing"

	"github.com/jeffwilliams/squarify"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquarifyVolumeItems(t *testing.T) {
	root := &volumeItem{
		size: 300,
		children: []*volumeItem{
			{index: 0, size: 100},
			{index: 1, size: 100},
			{index: 2, size: 100},
		},
	}

	blocks, metas := squarify.Squarify(root, squarify.Rect{X: 0, Y: 0, W: 76, H: 22}, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	// squarify returns the root's children at depth 0
	depth0 := 0
	for i := range blocks {
		if i < len(metas) && metas[i].Depth == 0 {
			depth0++
		}
	}
	assert.Equal(t, 3, depth0)
}

func testVolumes() model.Snapshot {
	return model.NewSnapshot([]model.Volume{
		{Mountpoint: "/", Kind: model.KindSSD, TotalGB: 500, UsedGB: 450, AvailableGB: 50},
		{Mountpoint: "/data", Kind: model.KindHDD, TotalGB: 2000, UsedGB: 100, AvailableGB: 1900},
		{Mountpoint: "/media/usb", Removable: true, Kind: model.KindUnknown, TotalGB: 32, UsedGB: 8, AvailableGB: 24},
	})
}

func TestVolumeMapLayoutFillsArea(t *testing.T) {
	m := NewVolumeMap()
	m.SetSize(80, 24)
	m.SetVolumes(testVolumes())

	blocks := m.Blocks()
	require.NotEmpty(t, blocks)

	area := 0
	for _, b := range blocks {
		assert.GreaterOrEqual(t, b.Width, minBlockWidth)
		assert.GreaterOrEqual(t, b.Height, minBlockHeight)
		assert.LessOrEqual(t, b.X+b.Width, 80)
		assert.LessOrEqual(t, b.Y+b.Height, 24)
		assert.Equal(t, b.Volume, m.volumes[b.Index])
		area += b.Width * b.Height
	}

	// The largest volume gets the largest block
	largest := blocks[0]
	for _, b := range blocks {
		if b.Width*b.Height > largest.Width*largest.Height {
			largest = b
		}
	}
	assert.Equal(t, "/data", largest.Volume.Mountpoint)
	assert.InDelta(t, 80*24, area, 80*24/10)
}

func TestVolumeMapDropsUnreadableBlocks(t *testing.T) {
	m := NewVolumeMap()
	m.SetSize(30, 6)
	m.SetVolumes(testVolumes())

	// The 32GB stick can't get a readable block next to 2TB
	for _, b := range m.Blocks() {
		assert.NotEqual(t, "/media/usb", b.Volume.Mountpoint)
	}
	assert.NotEmpty(t, m.Blocks())
}

func TestVolumeMapSkipsZeroCapacity(t *testing.T) {
	m := NewVolumeMap()
	m.SetSize(40, 10)
	m.SetVolumes(model.Snapshot{{Mountpoint: "/empty"}})

	assert.Empty(t, m.Blocks())
	assert.Contains(t, m.View(), "No volumes")
}

func TestVolumeMapTooSmall(t *testing.T) {
	m := NewVolumeMap()
	m.SetSize(4, 2)
	m.SetVolumes(testVolumes())
	assert.Empty(t, m.Blocks())
}

func TestVolumeMapViewHeight(t *testing.T) {
	m := NewVolumeMap()
	m.SetSize(60, 12)
	m.SetVolumes(testVolumes())
	m.SetSelected(0)

	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 12)
	assert.Contains(t, m.View(), "/data")
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "/data", truncateLeft("/data", 10))
	assert.Equal(t, "…usb", truncateLeft("/media/usb", 4))
	assert.Equal(t, "…", truncateLeft("/media/usb", 1))
}

func TestContainingVolume(t *testing.T) {
	vols := testVolumes()
	assert.Equal(t, 1, containingVolume(vols, "/data/projects"))
	assert.Equal(t, 2, containingVolume(vols, "/media/usb"))
	assert.Equal(t, 0, containingVolume(vols, "/home/me"))
	assert.Equal(t, 0, containingVolume(vols, "/database"), "prefix must end at a separator")
	assert.Equal(t, -1, containingVolume(vols, ""))
}

func TestFormatGB(t *testing.T) {
	assert.Equal(t, "0GB", FormatGB(0))
	assert.Equal(t, "999GB", FormatGB(999))
	assert.Equal(t, "2.0TB", FormatGB(2000))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512B", FormatSize(512))
	assert.Equal(t, "1.5KB", FormatSize(1536))
	assert.Equal(t, "1.0GB", FormatSize(1<<30))
}
