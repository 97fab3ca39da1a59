package cache

import (
	"math/rand"
	"testing"

	"github.com/IvanBrykalov/clipcache/policy"
	"github.com/IvanBrykalov/clipcache/policy/lru"
	"github.com/IvanBrykalov/clipcache/policy/preload"
	"github.com/IvanBrykalov/clipcache/policy/simple"
)

// nopLoader accepts every request and reports every clip as loaded.
type nopLoader struct{}

func (nopLoader) IsUnloaded(int) bool { return false }
func (nopLoader) Load(int)            {}
func (nopLoader) Unload(int)          {}

// benchmarkNavigate pages randomly through 100k clips in pages of 50.
// It measures plan computation plus bookkeeping; the loader is a no-op.
func benchmarkNavigate(b *testing.B, pol policy.Policy) {
	const numClips = 100_000
	pg, err := Uniform(numClips, 50)
	if err != nil {
		b.Fatal(err)
	}
	m, err := New(Options[int]{
		Config:     Config{MaxLoadedClips: 500, NumPrecedingPreload: 2, NumFollowingPreload: 4},
		Clips:      clipRange(numClips),
		Pagination: pg,
		Loader:     nopLoader{},
		Policy:     pol,
	})
	if err != nil {
		b.Fatal(err)
	}

	r := rand.New(rand.NewSource(1))
	pages := make([]int, 1024)
	for i := range pages {
		pages[i] = r.Intn(pg.NumPages())
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Update(pg, pages[i&(len(pages)-1)])
	}
}

func BenchmarkNavigate_Simple(b *testing.B)  { benchmarkNavigate(b, simple.New()) }
func BenchmarkNavigate_Preload(b *testing.B) { benchmarkNavigate(b, preload.New()) }
func BenchmarkNavigate_LRU(b *testing.B)     { benchmarkNavigate(b, lru.New()) }

// Sequential forward paging, the common viewer pattern.
func BenchmarkNavigate_PreloadSequential(b *testing.B) {
	const numClips = 100_000
	pg, _ := Uniform(numClips, 50)
	m, err := New(Options[int]{
		Config:     Config{MaxLoadedClips: 500, NumPrecedingPreload: 2, NumFollowingPreload: 4},
		Clips:      clipRange(numClips),
		Pagination: pg,
		Loader:     nopLoader{},
		Policy:     preload.New(),
	})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Update(pg, i%pg.NumPages())
	}
}
