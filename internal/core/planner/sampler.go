package planner

import (
	"math/rand"
	"sync"
	"time"
)

// Sampler 均勻抽樣的亂數來源
type Sampler interface {
	// Intn 回傳 [0, n) 的整數，n > 0
	Intn(n int) int
}

// RandSampler 以固定或時間種子建立的亂數來源，可同時被多個請求使用
type RandSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler seed 為 0 時使用目前時間
func NewSampler(seed int64) *RandSampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandSampler{rng: rand.New(rand.NewSource(seed))}
}

// Intn 實作 Sampler
func (s *RandSampler) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
