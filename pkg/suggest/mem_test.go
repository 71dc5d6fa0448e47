package suggest

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

var memPrefixes = []string{
	"a", "ab", "abc",
	"h", "he", "hel", "hell",
	"w", "wo", "wor",
	"p", "pr", "pro", "prog",
	"t", "th", "the",
}

func fakeCompleter(seed int64, words int) *Completer {
	f := gofakeit.New(seed)
	c := NewCompleter()
	for i := 0; i < words; i++ {
		c.AddWord(f.LetterN(uint(f.Number(2, 10))), f.Number(1, 100000))
	}
	return c
}

func TestMemoryLeakBasic(t *testing.T) {
	for _, iterCount := range []int{100, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			c := fakeCompleter(7, 2000)

			var baseline runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&baseline)
			baselineGoroutines := runtime.NumGoroutine()

			for i := 0; i < iterCount; i++ {
				for _, prefix := range memPrefixes {
					_ = c.Complete(prefix, 10)
				}
			}

			var final runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&final)

			memDelta := int64(final.HeapAlloc) - int64(baseline.HeapAlloc)
			totalOps := iterCount * len(memPrefixes)
			memPerOp := float64(memDelta) / float64(totalOps)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines

			t.Logf("ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
				totalOps, memDelta, memPerOp, goroutineDelta)

			if memPerOp > 1000 {
				t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
			}
			if goroutineDelta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}

func TestMemoryStabilityLongRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running memory stability test in short mode")
	}

	c := fakeCompleter(11, 5000)
	f := gofakeit.New(12)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				_ = c.Complete(memPrefixes[i%len(memPrefixes)], 10)
			}
		}()
	}
	for i := 0; i < 200; i++ {
		word := f.LetterN(6)
		c.AddWord(word, i)
		c.RemoveWord(word)
	}
	wg.Wait()

	if entries := c.Stats()["hotCacheEntries"]; entries > DefaultHotCacheSize {
		t.Errorf("hot cache grew past its bound: %d", entries)
	}
}

func BenchmarkComplete(b *testing.B) {
	c := fakeCompleter(3, 20000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Complete(memPrefixes[i%len(memPrefixes)], 10)
	}
}

func BenchmarkCompleteUncached(b *testing.B) {
	c := fakeCompleter(3, 20000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.hotCache.Clear()
		c.Complete(memPrefixes[i%len(memPrefixes)], 10)
	}
}
