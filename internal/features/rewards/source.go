package rewards

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Source — источник случайных чисел генератора.
// Продакшн использует NewSource, тесты — фиксированный сид или заготовленную последовательность.
type Source interface {
	// Float64 возвращает число из [0, 1).
	Float64() float64
	// Intn возвращает число из [0, n).
	Intn(n int) int
}

// lockedSource делает *rand.Rand безопасным для конкурентных выполнений.
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSource создаёт источник с заданным сидом.
func NewSource(seed int64) Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// NewSeed получает сид из crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("ошибка чтения случайного сида: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
