package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/lumipallolabs/diskseek/internal/logging"
	"github.com/lumipallolabs/diskseek/internal/model"
)

// JSONLines writes one {"event":..., "payload":...} object per line
type JSONLines struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLines creates a JSON lines sink on w
func NewJSONLines(w io.Writer) *JSONLines {
	return &JSONLines{enc: json.NewEncoder(w)}
}

type jsonLine struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Publish encodes the event. Write errors are logged and dropped.
func (j *JSONLines) Publish(event string, payload any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.enc.Encode(jsonLine{Event: event, Payload: payload}); err != nil {
		logging.Debug.Printf("jsonlines: dropping %s event: %v", event, err)
	}
}

// Console prints events for humans, coloured when the terminal supports it
type Console struct {
	mu  sync.Mutex
	w   io.Writer
	dir func(a ...interface{}) string
	rem func(a ...interface{}) string
	add func(a ...interface{}) string
	dim func(a ...interface{}) string
}

// NewConsole creates a console sink. Colour is disabled when noColor is set.
func NewConsole(w io.Writer, noColor bool) *Console {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
		return c.SprintFunc()
	}
	return &Console{
		w:   w,
		dir: mk(color.FgCyan, color.Bold),
		rem: mk(color.FgRed),
		add: mk(color.FgGreen),
		dim: mk(color.FgHiBlack),
	}
}

// Publish renders known payloads; anything else is printed with %v
func (c *Console) Publish(event string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch p := payload.(type) {
	case model.DiscoveredEntry:
		if p.IsFolder {
			fmt.Fprintln(c.w, c.dir(p.Path+string(os.PathSeparator)))
		} else {
			fmt.Fprintln(c.w, p.Path)
		}
	case model.VolumesChanged:
		for _, v := range p.Removed {
			fmt.Fprintf(c.w, "%s %s\n", c.rem("-"), v.Mountpoint)
		}
		fmt.Fprintln(c.w, c.dim(fmt.Sprintf("%d volume(s) mounted", len(p.Current))))
		for _, v := range p.Current {
			fmt.Fprintf(c.w, "%s %s\n", c.add("*"), FormatVolume(v))
		}
	default:
		fmt.Fprintf(c.w, "%s %v\n", event, payload)
	}
}

// FormatVolume renders one volume as a single table-like line
func FormatVolume(v model.Volume) string {
	return fmt.Sprintf("%-24s %-9s %5d/%5d GB used  %5d GB free  %s",
		v.Mountpoint, v.Label(), v.UsedGB, v.TotalGB, v.AvailableGB, usageBar(v.UsedPercent(), 20))
}

func usageBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
