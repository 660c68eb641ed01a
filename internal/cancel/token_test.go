package cancel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIsSingleShot(t *testing.T) {
	tok := NewToken()
	assert.NotEmpty(t, tok.ID())
	assert.False(t, tok.ObserveAndClear())

	tok.RequestCancel()
	tok.RequestCancel() // idempotent
	assert.True(t, tok.Pending())
	assert.True(t, tok.ObserveAndClear())

	// Cleared after observation
	assert.False(t, tok.Pending())
	assert.False(t, tok.ObserveAndClear())
}

func TestTokenConcurrentObserveSeesOneCancel(t *testing.T) {
	tok := NewToken()
	tok.RequestCancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		observed int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tok.ObserveAndClear() {
				mu.Lock()
				observed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, observed)
	assert.False(t, tok.Pending())
}

func TestRegistryStopWithoutSearchIsNoop(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Stop("nope"))
	assert.Equal(t, 0, r.StopAll())

	// A search started afterwards is unaffected
	tok := r.Start()
	assert.False(t, tok.Pending())
	assert.Equal(t, 1, r.Active())
}

func TestRegistryStopTargetsOneSearch(t *testing.T) {
	r := NewRegistry()
	a := r.Start()
	b := r.Start()
	require.NotEqual(t, a.ID(), b.ID())

	assert.True(t, r.Stop(a.ID()))
	assert.True(t, a.Pending())
	assert.False(t, b.Pending())

	assert.Equal(t, 2, r.StopAll())
	assert.True(t, b.Pending())

	r.Finish(a)
	r.Finish(b)
	assert.Equal(t, 0, r.Active())
	assert.False(t, r.Stop(a.ID()))
}
