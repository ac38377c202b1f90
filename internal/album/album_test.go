package album

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func blobs(names ...string) []Blob {
	out := make([]Blob, len(names))
	for i, n := range names {
		out[i] = Blob{Name: n, Data: []byte(n)}
	}
	return out
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func assertOrder(t *testing.T, a *Album, want ...string) {
	t.Helper()
	got := names(a.Snapshot())
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func assertDenseOrder(t *testing.T, a *Album) {
	t.Helper()
	for i, e := range a.Snapshot() {
		if e.Order != i {
			t.Errorf("entry %d: expected order %d, got %d", i, i, e.Order)
		}
	}
}

func TestAppend(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg", "b.jpg")...)
	a.Append(blobs("c.jpg")...)

	assertOrder(t, a, "a.jpg", "b.jpg", "c.jpg")
	assertDenseOrder(t, a)

	for i, e := range a.Snapshot() {
		if e.Rotation != 0 {
			t.Errorf("entry %d: new entries start at rotation 0, got %d", i, e.Rotation)
		}
		if e.ID == uuid.Nil {
			t.Errorf("entry %d: missing ID", i)
		}
	}
}

func TestRotate(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg")...)

	want := []int{90, 180, 270, 0}
	for _, expected := range want {
		if err := a.Rotate(0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := a.Snapshot()[0].Rotation; got != expected {
			t.Errorf("expected rotation %d, got %d", expected, got)
		}
	}
}

func TestRotate_FourTimesRoundTrip(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg")...)

	for i := 0; i < 4; i++ {
		if err := a.Rotate(0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if got := a.Snapshot()[0].Rotation; got != 0 {
		t.Errorf("four quarter turns should return to 0, got %d", got)
	}
}

func TestRotate_IndexOutOfRange(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg")...)

	for _, index := range []int{-1, 1, 99} {
		if err := a.Rotate(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("index %d: expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
}

func TestMoveUp(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg", "b.jpg", "c.jpg")...)

	if err := a.MoveUp(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, a, "a.jpg", "c.jpg", "b.jpg")
	assertDenseOrder(t, a)
}

func TestMoveUp_FirstIsNoOp(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg", "b.jpg")...)

	if err := a.MoveUp(0); err != nil {
		t.Fatalf("moving the first entry up should be a silent no-op, got %v", err)
	}
	assertOrder(t, a, "a.jpg", "b.jpg")
}

func TestMoveDown(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg", "b.jpg", "c.jpg")...)

	if err := a.MoveDown(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, a, "b.jpg", "a.jpg", "c.jpg")
	assertDenseOrder(t, a)
}

func TestMoveDown_LastIsNoOp(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg", "b.jpg")...)

	if err := a.MoveDown(1); err != nil {
		t.Fatalf("moving the last entry down should be a silent no-op, got %v", err)
	}
	assertOrder(t, a, "a.jpg", "b.jpg")
}

func TestMove_IndexOutOfRange(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg")...)

	if err := a.MoveUp(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("MoveUp(5): expected ErrIndexOutOfRange, got %v", err)
	}
	if err := a.MoveDown(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("MoveDown(-1): expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg", "b.jpg", "c.jpg")...)

	if err := a.Remove(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertOrder(t, a, "a.jpg", "c.jpg")
	assertDenseOrder(t, a)

	if err := a.Remove(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg", "b.jpg")...)

	snap := a.Snapshot()
	if err := a.MoveDown(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap[0].Name != "a.jpg" || snap[1].Name != "b.jpg" {
		t.Error("snapshot should not observe mutations made after it was taken")
	}
}

func TestBeginRun_SingleFlight(t *testing.T) {
	a := New()
	a.Append(blobs("a.jpg")...)

	snap, err := a.BeginRun()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap) != 1 {
		t.Fatalf("expected 1 entry in run snapshot, got %d", len(snap))
	}

	if _, err := a.BeginRun(); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("overlapping run: expected ErrRunInProgress, got %v", err)
	}

	a.EndRun()
	if _, err := a.BeginRun(); err != nil {
		t.Errorf("after EndRun a new run should start, got %v", err)
	}
	a.EndRun()
}

func TestBeginRun_EmptyAlbum(t *testing.T) {
	a := New()
	snap, err := a.BeginRun()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.EndRun()
	if len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %d entries", len(snap))
	}
}
