// Package inmemdb implements the core repositories with maps guarded by RW mutexes.
// Everything is lost when the process exits.
package inmemdb

import (
	"sort"
	"sync"

	"github.com/trezcool/edutrack/core/lesson"
	"github.com/trezcool/edutrack/core/notification"
	"github.com/trezcool/edutrack/core/progress"
	"github.com/trezcool/edutrack/core/standard"
	"github.com/trezcool/edutrack/core/user"
)

type (
	DB struct {
		user         *table[user.User]
		standard     *table[standard.Standard]
		lesson       *table[lesson.Lesson]
		progress     *table[progress.Entry]
		notification *table[notification.Notification]
	}

	// table holds rows by primary key. Keys come from a per-table counter and are never reused.
	table[T any] struct {
		sync.RWMutex
		pkCount int
		rows    map[int]*T
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:         newTable[user.User](),
		standard:     newTable[standard.Standard](),
		lesson:       newTable[lesson.Lesson](),
		progress:     newTable[progress.Entry](),
		notification: newTable[notification.Notification](),
	}
	return db, nil
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]*T)}
}

// nextPK must be called with the write lock held.
func (t *table[T]) nextPK() int {
	t.pkCount++
	return t.pkCount
}

// filter returns copies of the rows matching `keep`, ordered by primary key.
// It must be called with a lock held.
func (t *table[T]) filter(keep func(row *T) bool) []T {
	ids := make([]int, 0, len(t.rows))
	for id, row := range t.rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, *t.rows[id])
	}
	return rows
}

func (t *table[T]) get(id int) (T, bool) {
	t.RLock()
	defer t.RUnlock()
	if row, ok := t.rows[id]; ok {
		return *row, true
	}
	var zero T
	return zero, false
}

func (t *table[T]) count() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.rows)
}
