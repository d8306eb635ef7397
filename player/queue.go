package player

import (
	"sync"

	"github.com/melodia-cli/melodia/media"
)

// Player is the playback surface the queue drives. *Facade satisfies it.
type Player interface {
	Play(item media.Item) error
}

// Queue sequences media items through a player.
//
// An index of -1 means idle. End-of-track events arrive from backend
// goroutines, so every entry point takes the lock.
type Queue struct {
	mu     sync.Mutex
	player Player
	items  []media.Item
	index  int

	// onPlay observes successful index changes, used by the UI to follow along.
	onPlay func(index int, item media.Item)
}

// NewQueue returns an idle queue over the given player.
func NewQueue(player Player) *Queue {
	return &Queue{
		player: player,
		index:  -1,
	}
}

// OnPlay registers the single playback observer slot.
func (q *Queue) OnPlay(fn func(index int, item media.Item)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onPlay = fn
}

// SetItems replaces the queue contents and resets the position to idle.
func (q *Queue) SetItems(items []media.Item) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = items
	q.index = -1
}

// Items returns a snapshot of the queued items.
func (q *Queue) Items() []media.Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]media.Item, len(q.items))
	copy(out, q.items)
	return out
}

// CurrentIndex returns the playing position, -1 when idle.
func (q *Queue) CurrentIndex() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.index
}

// Current returns the playing item, false when idle.
func (q *Queue) Current() (media.Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.index < 0 || q.index >= len(q.items) {
		return media.Item{}, false
	}
	return q.items[q.index], true
}

// PlayAt starts playback at the given index. Out-of-range indexes are no-ops.
// The index advances even when the play call fails, so Next after a broken
// item moves past it instead of replaying it.
func (q *Queue) PlayAt(index int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.playAtLocked(index)
}

func (q *Queue) playAtLocked(index int) error {
	if index < 0 || index >= len(q.items) {
		return nil
	}

	q.index = index
	item := q.items[index]

	err := q.player.Play(item)
	if q.onPlay != nil {
		q.onPlay(index, item)
	}
	return err
}

// Next advances to the following item; from idle it starts at the head.
// At the tail it is a no-op.
func (q *Queue) Next() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.index+1 >= len(q.items) {
		return nil
	}
	return q.playAtLocked(q.index + 1)
}

// Prev steps back to the preceding item. At the head or while idle it is a no-op.
func (q *Queue) Prev() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.index <= 0 {
		return nil
	}
	return q.playAtLocked(q.index - 1)
}

// Advance is Next for end-of-track events: it may be called from any
// goroutine and swallows play errors, reporting only whether it moved.
func (q *Queue) Advance() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.index+1 >= len(q.items) {
		return false
	}
	_ = q.playAtLocked(q.index + 1)
	return true
}

// RemoveAt drops the item at index, clamping the playing position so it
// never points past the tail. Out-of-range indexes are no-ops.
func (q *Queue) RemoveAt(index int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return
	}

	q.items = append(q.items[:index], q.items[index+1:]...)
	if q.index >= len(q.items) {
		q.index = len(q.items) - 1
	}
}
