package selector

import (
	"math/rand/v2"
	"time"
)

// RandomSource - источник случайности для выбора и перемешивания
type RandomSource interface {
	// Float64 возвращает число из [0, 1)
	Float64() float64
	// IntN возвращает число из [0, n)
	IntN(n int) int
}

// NewRandomSource возвращает детерминированный источник (PCG) для заданного seed
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeededSource возвращает источник, инициализированный текущим временем
func NewTimeSeededSource() RandomSource {
	return NewRandomSource(uint64(time.Now().UnixNano()))
}
