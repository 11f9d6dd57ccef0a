// Package completion — locks.go: мьютексы по ключу.
package completion

import "sync"

// KeyedMutex сериализует работу с одним ключом (ID привычки),
// не мешая работе с другими ключами. Запись удаляется, когда у ключа
// не остаётся ни владельца, ни ожидающих.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex создаёт пустой набор мьютексов.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[int64]*keyedEntry)}
}

// Lock захватывает мьютекс ключа и возвращает функцию освобождения.
func (k *KeyedMutex) Lock(key int64) (unlock func()) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &keyedEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// Len возвращает число ключей, которые сейчас заняты или ожидаются.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
