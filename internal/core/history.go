package core

// History is a browser-style back/forward stack of visited directories
type History struct {
	past    []string
	present string
	future  []string
}

// NewHistory starts a history at path
func NewHistory(path string) *History {
	return &History{present: path}
}

// Present returns the current directory
func (h *History) Present() string {
	return h.present
}

// Visit moves to path and drops the forward stack.
// Visiting the current directory is a no-op.
func (h *History) Visit(path string) {
	if path == h.present {
		return
	}
	if h.present != "" {
		h.past = append(h.past, h.present)
	}
	h.present = path
	h.future = nil
}

// Back returns to the previous directory
func (h *History) Back() (string, bool) {
	if len(h.past) == 0 {
		return h.present, false
	}
	h.future = append(h.future, h.present)
	h.present = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return h.present, true
}

// Forward re-visits a directory left with Back
func (h *History) Forward() (string, bool) {
	if len(h.future) == 0 {
		return h.present, false
	}
	h.past = append(h.past, h.present)
	h.present = h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	return h.present, true
}

// CanGoBack reports whether Back would move
func (h *History) CanGoBack() bool {
	return len(h.past) > 0
}

// CanGoForward reports whether Forward would move
func (h *History) CanGoForward() bool {
	return len(h.future) > 0
}
