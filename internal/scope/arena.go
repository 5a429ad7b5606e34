package scope

import (
	"fmt"

	"fortio.org/safecast"
)

// arena: компактное хранилище с зарезервированным нулевым индексом.
type arena[T any] struct {
	data []T
}

func newArena[T any](capacity int) *arena[T] {
	if capacity <= 0 {
		capacity = 16
	}
	return &arena[T]{data: make([]T, 1, capacity+1)} // 0: sentinel
}

func (a *arena[T]) allocate(v T) uint32 {
	value, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	a.data = append(a.data, v)
	return value
}

func (a *arena[T]) get(id uint32) *T {
	if id == 0 || int(id) >= len(a.data) {
		return nil
	}
	return &a.data[id]
}

// Len reports the number of stored items excluding the sentinel.
func (a *arena[T]) Len() int { return len(a.data) - 1 }

func (a *arena[T]) items() []T {
	if len(a.data) <= 1 {
		return nil
	}
	return a.data[1:]
}
