// Package album holds the ordered in-memory photo collection that a document
// is generated from. The album is the sole owner of its entries; callers get
// copies via Snapshot and never alias the internal slice.
package album

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrIndexOutOfRange reports a rotate/move/remove on a missing index.
	ErrIndexOutOfRange = errors.New("photo index out of range")

	// ErrRunInProgress reports an attempt to start a second generation run
	// while one is already in flight.
	ErrRunInProgress = errors.New("a generation run is already in progress")
)

// Blob is one raw uploaded photo: opaque bytes plus a display name.
type Blob struct {
	Name string
	Data []byte
}

// Entry is one photo in the album: its raw bytes, a clockwise rotation in
// right-angle steps, and its position in the document.
type Entry struct {
	ID       uuid.UUID
	Name     string
	Data     []byte
	Rotation int // degrees, always one of 0, 90, 180, 270
	Order    int // dense 0..n-1 position, no gaps or duplicates
}

// Album is the mutable ordered photo collection. All operations are safe for
// concurrent use; mutations are rejected while a generation run holds the
// album via BeginRun.
type Album struct {
	mu      sync.Mutex
	entries []Entry
	running bool
}

// New creates an empty album.
func New() *Album {
	return &Album{}
}

// renumber restores the dense 0..n-1 order sequence after a mutation.
// Callers must hold a.mu.
func (a *Album) renumber() {
	for i := range a.entries {
		a.entries[i].Order = i
	}
}

// Append adds photos to the end of the album with rotation 0, in the given
// order.
func (a *Album) Append(blobs ...Blob) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, b := range blobs {
		a.entries = append(a.entries, Entry{
			ID:   uuid.New(),
			Name: b.Name,
			Data: b.Data,
		})
	}
	a.renumber()
}

// Rotate advances a photo's rotation by a quarter turn clockwise.
func (a *Album) Rotate(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.entries) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(a.entries))
	}
	a.entries[index].Rotation = (a.entries[index].Rotation + 90) % 360
	return nil
}

// MoveUp swaps a photo with its predecessor. Moving the first photo up is a
// silent no-op; the order is preserved exactly.
func (a *Album) MoveUp(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.entries) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(a.entries))
	}
	if index == 0 {
		return nil
	}
	a.entries[index-1], a.entries[index] = a.entries[index], a.entries[index-1]
	a.renumber()
	return nil
}

// MoveDown swaps a photo with its successor. Moving the last photo down is a
// silent no-op.
func (a *Album) MoveDown(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.entries) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(a.entries))
	}
	if index == len(a.entries)-1 {
		return nil
	}
	a.entries[index], a.entries[index+1] = a.entries[index+1], a.entries[index]
	a.renumber()
	return nil
}

// Remove deletes a photo and renumbers the remaining entries.
func (a *Album) Remove(index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.entries) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(a.entries))
	}
	a.entries = append(a.entries[:index], a.entries[index+1:]...)
	a.renumber()
	return nil
}

// Len returns the number of photos in the album.
func (a *Album) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Snapshot returns a copy of the entry sequence taken atomically. Entry data
// slices are shared with the album and must be treated as read-only.
func (a *Album) Snapshot() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Album) snapshotLocked() []Entry {
	entries := make([]Entry, len(a.entries))
	copy(entries, a.entries)
	return entries
}

// BeginRun atomically snapshots the album for a generation run and marks the
// run in flight. A second overlapping run is rejected with ErrRunInProgress
// rather than interleaved. The caller must call EndRun when finished,
// regardless of the run's outcome.
func (a *Album) BeginRun() ([]Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return nil, ErrRunInProgress
	}
	a.running = true
	return a.snapshotLocked(), nil
}

// EndRun releases the single-flight generation guard.
func (a *Album) EndRun() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = false
}
