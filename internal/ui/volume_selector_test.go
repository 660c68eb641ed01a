package ui

import (
	"strings"
	"testing"

	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeSelectorRows(t *testing.T) {
	s := NewVolumeSelector()
	s.SetVolumes(testVolumes())

	rows := s.rows()
	require.Len(t, rows, 3)
	assert.Contains(t, rows[0], "SSD")
	assert.Contains(t, rows[0], "50GB free of 500GB")
	assert.Contains(t, rows[1], "HDD")
	assert.Contains(t, rows[1], "1.9TB free of 2.0TB")
	assert.Contains(t, rows[2], "⏏ Removable")

	// Mountpoints are padded to one column
	assert.Equal(t, strings.Index(rows[0], "SSD"), strings.Index(rows[1], "HDD"))
}

func TestVolumeSelectorUnknownCapacity(t *testing.T) {
	s := NewVolumeSelector()
	s.SetVolumes(model.Snapshot{{Mountpoint: "/mnt/odd", Kind: model.KindUnknown}})
	assert.Contains(t, s.rows()[0], "capacity unknown")
}

func TestVolumeSelectorKeepsCursorOnMountpoint(t *testing.T) {
	s := NewVolumeSelector()
	s.SetVolumes(testVolumes())
	s.MoveDown()
	s.MoveDown()
	require.Equal(t, 2, s.Selected())

	// /data went away; the cursor follows /media/usb
	s.SetVolumes(model.NewSnapshot([]model.Volume{testVolumes()[0], testVolumes()[2]}))
	assert.Equal(t, 1, s.Selected())

	s.SetVolumes(model.Snapshot{{Mountpoint: "/new", TotalGB: 10}})
	assert.Equal(t, 0, s.Selected())
}

func TestVolumeSelectorVisibility(t *testing.T) {
	s := NewVolumeSelector()
	s.SetVisible(true)
	assert.False(t, s.IsVisible(), "nothing to choose from")
	assert.Empty(t, s.View())

	s.SetSize(100, 20)
	s.SetVolumes(testVolumes())
	s.SetVisible(true)
	require.True(t, s.IsVisible())
	view := s.View()
	assert.Contains(t, view, "Select Volume")
	assert.Contains(t, view, "▶ /")

	s.SetVolumes(nil)
	assert.False(t, s.IsVisible())
}
