package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"sync"
	"testing"

	"github.com/lumipallolabs/diskseek/internal/cancel"
	"github.com/lumipallolabs/diskseek/internal/match"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/sink"
)

// makeTree creates files (and their parent dirs) under root
func makeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func newRequest(t *testing.T, root, pattern string, mode match.Mode, hidden, ext bool) model.SearchRequest {
	t.Helper()
	req, err := model.NewSearchRequest(root, pattern, mode, hidden, ext)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return req
}

func search(t *testing.T, req model.SearchRequest) []model.DiscoveredEntry {
	t.Helper()
	var rec sink.Recorder
	w := NewWalker(4)
	if err := w.Search(context.Background(), req, cancel.NewToken(), &rec); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	var entries []model.DiscoveredEntry
	for _, m := range rec.Messages() {
		if m.Event != sink.EventAdd {
			t.Fatalf("unexpected event %q", m.Event)
		}
		entries = append(entries, m.Payload.(model.DiscoveredEntry))
	}
	return entries
}

func relPaths(root string, entries []model.DiscoveredEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		rel, _ := filepath.Rel(root, e.Path)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func expectPaths(t *testing.T, root string, entries []model.DiscoveredEntry, want ...string) {
	t.Helper()
	if got := relPaths(root, entries); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWalkerSearchSubstring(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp,
		"report_2024.txt",
		"notes.md",
		"sub/report_old.txt",
		"sub/deeper/other.txt",
	)
	os.MkdirAll(filepath.Join(tmp, "reports"), 0755)

	entries := search(t, newRequest(t, tmp, "report", match.Substring, false, false))
	expectPaths(t, tmp, entries, "report_2024.txt", "reports", "sub/report_old.txt")

	for _, e := range entries {
		switch e.Name {
		case "reports":
			if !e.IsFolder || e.Extension != "" {
				t.Errorf("reports: got folder=%v ext=%q", e.IsFolder, e.Extension)
			}
		case "report_2024.txt":
			if e.IsFolder || e.Extension != "txt" {
				t.Errorf("report_2024.txt: got folder=%v ext=%q", e.IsFolder, e.Extension)
			}
		}
	}
}

func TestWalkerMatchesStemUnlessExtensionRequested(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp, "photo.jpg", "photo.png", "jpg-list.txt")

	expectPaths(t, tmp, search(t, newRequest(t, tmp, "jpg", match.Substring, false, false)),
		"jpg-list.txt")
	expectPaths(t, tmp, search(t, newRequest(t, tmp, "jpg", match.Substring, false, true)),
		"jpg-list.txt", "photo.jpg")
}

func TestWalkerHiddenExclusion(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp, ".git/config", "src/config", ".env", "src/.cache/config")

	expectPaths(t, tmp, search(t, newRequest(t, tmp, "config", match.Substring, false, false)),
		"src/config")
	expectPaths(t, tmp, search(t, newRequest(t, tmp, "config", match.Substring, true, false)),
		".git/config", "src/.cache/config", "src/config")
}

func TestWalkerHiddenAncestorOfRootIsIgnored(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, ".config", "app")
	makeTree(t, root, "settings.yaml")

	expectPaths(t, root, search(t, newRequest(t, root, "settings", match.Substring, false, false)),
		"settings.yaml")
}

func TestWalkerNeverReportsRoot(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "match_me")
	makeTree(t, root, "child.txt")

	if entries := search(t, newRequest(t, root, "match_me", match.Substring, false, false)); len(entries) != 0 {
		t.Errorf("expected no entries, got %v", relPaths(root, entries))
	}
	expectPaths(t, root, search(t, newRequest(t, root, "*", match.Mask, false, false)), "child.txt")
}

func TestWalkerFollowsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	tmp := t.TempDir()
	target := filepath.Join(tmp, "target")
	makeTree(t, target, "linked_file.txt")

	root := filepath.Join(tmp, "root")
	os.MkdirAll(root, 0755)
	if err := os.Symlink(target, filepath.Join(root, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	entries := search(t, newRequest(t, root, "link", match.Substring, false, false))
	expectPaths(t, root, entries, "link", "link/linked_file.txt")
	for _, e := range entries {
		if e.Name == "link" && !e.IsFolder {
			t.Error("symlink to a directory should report as folder")
		}
	}
}

func TestWalkerPrunesHiddenSymlinkedDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	tmp := t.TempDir()
	target := filepath.Join(tmp, "big")
	for i := 0; i < 50; i++ {
		makeTree(t, target, fmt.Sprintf("f%02d.bin", i))
	}

	root := filepath.Join(tmp, "home")
	os.MkdirAll(root, 0755)
	if err := os.Symlink(target, filepath.Join(root, ".cache")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	var rec sink.Recorder
	w := NewWalker(4)
	req := newRequest(t, root, "zzz", match.Substring, false, false)
	if err := w.Search(context.Background(), req, cancel.NewToken(), &rec); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if rec.Len() != 0 {
		t.Errorf("expected nothing published, got %d", rec.Len())
	}
	// Only the link itself is visited
	if v := w.Progress().Visited; v != 1 {
		t.Errorf("expected 1 visited, got %d", v)
	}

	// With hidden entries included the link is followed
	req = newRequest(t, root, "zzz", match.Substring, true, false)
	if err := w.Search(context.Background(), req, cancel.NewToken(), &rec); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if v := w.Progress().Visited; v != 51 {
		t.Errorf("expected 51 visited, got %d", v)
	}
}

func TestWalkerCancellationStopsPublishing(t *testing.T) {
	tmp := t.TempDir()
	for i := 0; i < 200; i++ {
		makeTree(t, tmp, fmt.Sprintf("d/%c/file%c.txt", 'a'+i%26, 'a'+i/26))
	}
	req := newRequest(t, tmp, "file", match.Substring, false, false)

	const n = 5
	tok := cancel.NewToken()
	var (
		mu        sync.Mutex
		published int
	)
	out := sink.Func(func(event string, payload any) {
		mu.Lock()
		defer mu.Unlock()
		published++
		if published == n {
			tok.RequestCancel()
		}
	})

	w := NewWalker(4)
	if err := w.Search(context.Background(), req, tok, out); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if published != n {
		t.Errorf("expected %d published, got %d", n, published)
	}
	if tok.Pending() {
		t.Error("signal should be cleared once observed")
	}
	p := w.Progress()
	if p.Matched != n || !p.Stopped {
		t.Errorf("expected matched=%d stopped=true, got %+v", n, p)
	}
}

func TestWalkerPreCancelledTokenPublishesNothing(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp, "a.txt", "b.txt")
	req := newRequest(t, tmp, "", match.Substring, false, false)

	tok := cancel.NewToken()
	tok.RequestCancel()

	var rec sink.Recorder
	w := NewWalker(2)
	if err := w.Search(context.Background(), req, tok, &rec); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if rec.Len() != 0 {
		t.Errorf("expected nothing published, got %d", rec.Len())
	}
	if tok.Pending() || !w.Progress().Stopped {
		t.Error("token should be consumed and the walk marked stopped")
	}

	// The next search with a fresh token is unaffected
	if got := len(search(t, req)); got != 2 {
		t.Errorf("expected 2 entries, got %d", got)
	}
}

func TestWalkerContextCancelIsSilent(t *testing.T) {
	tmp := t.TempDir()
	makeTree(t, tmp, "a.txt")
	req := newRequest(t, tmp, "a", match.Substring, false, false)

	ctx, cancelCtx := context.WithCancel(context.Background())
	cancelCtx()

	var rec sink.Recorder
	if err := NewWalker(1).Search(ctx, req, nil, &rec); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if rec.Len() != 0 {
		t.Errorf("expected nothing published, got %d", rec.Len())
	}
}

func TestWalkerRootVanished(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "gone")
	os.MkdirAll(root, 0755)

	req := newRequest(t, root, "x", match.Substring, false, false)
	os.Remove(root)

	if err := NewWalker(1).Search(context.Background(), req, nil, nil); err == nil {
		t.Error("expected an error for a vanished root")
	}
}

func TestWalkerSkipsUnreadableDirectories(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	tmp := t.TempDir()
	makeTree(t, tmp, "open/hit.txt", "locked/hit.txt")
	locked := filepath.Join(tmp, "locked")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	expectPaths(t, tmp, search(t, newRequest(t, tmp, "hit", match.Substring, false, false)),
		"open/hit.txt")
}

func TestIsHidden(t *testing.T) {
	root := filepath.FromSlash("/r")
	tests := []struct {
		path string
		want bool
	}{
		{"/r/.git/config", true},
		{"/r/a/.b", true},
		{"/r/a/b.c", false},
	}
	for _, tt := range tests {
		if got := isHidden(root, filepath.FromSlash(tt.path)); got != tt.want {
			t.Errorf("isHidden(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
