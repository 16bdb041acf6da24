package cachutil

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoadingCache(t *testing.T) {
	var loads atomic.Int32
	c := NewLoadingCache[string, int](time.Minute, 0, func(key string) int {
		loads.Add(1)
		return len(key)
	})

	v, ok := Load(c, "hello")
	require.True(t, ok)
	require.Equal(t, 5, v)

	v, ok = Load(c, "hello")
	require.True(t, ok)
	require.Equal(t, 5, v)
	require.Equal(t, int32(1), loads.Load(), "second access is cached")
}

func TestNewLoadingCache_Concurrent(t *testing.T) {
	var loads atomic.Int32
	release := make(chan struct{})
	c := NewLoadingCache[string, string](time.Minute, 10, func(key string) string {
		loads.Add(1)
		<-release
		return key
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, ok := Load(c, "k")
			assert.True(t, ok)
			assert.Equal(t, "k", v)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	require.LessOrEqual(t, loads.Load(), int32(8))
	require.Equal(t, 1, c.Len())
}
