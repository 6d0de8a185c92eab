// Package state holds the in-memory view of each entity family presented to
// the user. Providers merge server data, the local cache and still-pending
// queue operations, and notify subscribers after every change.
package state

import (
	"log/slog"
	"sync"
)

type listeners struct {
	fns    map[int]func()
	logger *slog.Logger
	next   int
	mu     sync.Mutex
}

func newListeners(logger *slog.Logger) *listeners {
	return &listeners{fns: make(map[int]func()), logger: logger}
}

func (l *listeners) add(fn func()) (unsubscribe func()) {
	l.mu.Lock()
	id := l.next
	l.next++
	l.fns[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

// notify вызывается без удержания блокировок провайдера
func (l *listeners) notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					l.logger.Error("State listener panicked", "panic", r)
				}
			}()
			fn()
		}()
	}
}
