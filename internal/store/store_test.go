package store

import (
	"bytes"
	"fmt"
	"testing"
	"time"
)

var t0 = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func TestSetGetDelete(t *testing.T) {
	s := New(4)
	now := t0

	if _, ok, _ := s.Get("k", now); ok {
		t.Fatalf("Get on empty store should miss")
	}

	if created := s.Set("k", []byte("v1"), now, time.Time{}); !created {
		t.Fatalf("first Set should report created")
	}
	v, ok, expired := s.Get("k", now)
	if !ok || expired || !bytes.Equal(v, []byte("v1")) {
		t.Fatalf("Get after Set: ok=%v expired=%v v=%q", ok, expired, v)
	}

	if created := s.Set("k", []byte("v2"), now.Add(time.Second), time.Time{}); created {
		t.Fatalf("overwrite of live entry should not report created")
	}
	if v, _, _ := s.Get("k", now); !bytes.Equal(v, []byte("v2")) {
		t.Fatalf("overwrite did not replace value, got %q", v)
	}

	if !s.Delete("k") {
		t.Fatalf("Delete of present key should report existed")
	}
	if s.Delete("k") {
		t.Fatalf("Delete of absent key should be a no-op")
	}
	if s.Len() != 0 {
		t.Fatalf("Len after delete = %d, want 0", s.Len())
	}
}

func TestOverwriteOfExpiredCountsAsCreate(t *testing.T) {
	s := New(1)
	s.Set("k", []byte("old"), t0, t0.Add(time.Second))

	// Write after the entry's expiry: logically a new entry.
	if created := s.Set("k", []byte("new"), t0.Add(2*time.Second), time.Time{}); !created {
		t.Fatalf("overwrite of expired entry should report created")
	}
}

func TestSizeAccounting(t *testing.T) {
	s := New(4)
	if s.SizeBytes() != 0 {
		t.Fatalf("empty store size = %d", s.SizeBytes())
	}

	s.Set("a", make([]byte, 100), t0, time.Time{})
	want := entrySize("a", make([]byte, 100))
	if got := s.SizeBytes(); got != want {
		t.Fatalf("size after set = %d, want %d", got, want)
	}

	// Replacement adjusts by the delta, not the sum.
	s.Set("a", make([]byte, 10), t0, time.Time{})
	want = entrySize("a", make([]byte, 10))
	if got := s.SizeBytes(); got != want {
		t.Fatalf("size after replace = %d, want %d", got, want)
	}

	s.Set("b", make([]byte, 50), t0, time.Time{})
	s.Delete("a")
	s.Delete("b")
	if s.SizeBytes() != 0 || s.Len() != 0 {
		t.Fatalf("size/len after deleting all = %d/%d, want 0/0", s.SizeBytes(), s.Len())
	}
}

func TestLazyExpiryOnGet(t *testing.T) {
	s := New(2)
	s.Set("k", []byte("v"), t0, t0.Add(time.Second))

	if _, ok, _ := s.Get("k", t0.Add(500*time.Millisecond)); !ok {
		t.Fatalf("unexpired entry should hit")
	}

	v, ok, expired := s.Get("k", t0.Add(2*time.Second))
	if ok || !expired || v != nil {
		t.Fatalf("expired Get: ok=%v expired=%v v=%q", ok, expired, v)
	}
	// Removed as a side effect, size included.
	if s.Len() != 0 || s.SizeBytes() != 0 {
		t.Fatalf("expired entry not purged: len=%d size=%d", s.Len(), s.SizeBytes())
	}
	// A second Get is a plain miss, not another expiry.
	if _, ok, expired := s.Get("k", t0.Add(2*time.Second)); ok || expired {
		t.Fatalf("second Get: ok=%v expired=%v", ok, expired)
	}
}

func TestSweepExpired(t *testing.T) {
	s := New(8)
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("ttl-%d", i)
		s.Set(key, []byte("x"), t0, t0.Add(time.Second))
	}
	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("keep-%d", i)
		s.Set(key, []byte("x"), t0, time.Time{})
	}

	if removed := s.SweepExpired(t0.Add(500 * time.Millisecond)); removed != 0 {
		t.Fatalf("sweep before expiry removed %d", removed)
	}
	if removed := s.SweepExpired(t0.Add(2 * time.Second)); removed != 10 {
		t.Fatalf("sweep removed %d, want 10", removed)
	}
	if s.Len() != 5 {
		t.Fatalf("len after sweep = %d, want 5", s.Len())
	}
	for i := 0; i < 5; i++ {
		if _, ok, _ := s.Get(fmt.Sprintf("keep-%d", i), t0.Add(2*time.Second)); !ok {
			t.Fatalf("sweep removed an unexpired entry keep-%d", i)
		}
	}
}

func TestRemoveIf(t *testing.T) {
	s := New(2)
	s.Set("k", []byte("v"), t0, time.Time{})

	// Stale last-write time: entry was rewritten after candidate selection.
	if _, ok := s.RemoveIf("k", t0.Add(time.Minute)); ok {
		t.Fatalf("RemoveIf with stale timestamp should not remove")
	}
	if _, ok, _ := s.Get("k", t0); !ok {
		t.Fatalf("entry should survive stale RemoveIf")
	}

	freed, ok := s.RemoveIf("k", t0)
	if !ok || freed != entrySize("k", []byte("v")) {
		t.Fatalf("RemoveIf: ok=%v freed=%d", ok, freed)
	}
	if _, ok := s.RemoveIf("k", t0); ok {
		t.Fatalf("RemoveIf on absent key should not remove")
	}
}

func TestSnapshot(t *testing.T) {
	s := New(4)
	times := map[string]time.Time{
		"a": t0,
		"b": t0.Add(time.Second),
		"c": t0.Add(2 * time.Second),
	}
	for k, ts := range times {
		s.Set(k, []byte(k), ts, time.Time{})
	}

	cands := s.Snapshot()
	if len(cands) != 3 {
		t.Fatalf("snapshot returned %d candidates, want 3", len(cands))
	}
	for _, c := range cands {
		want, ok := times[c.Key]
		if !ok {
			t.Fatalf("snapshot has unknown key %q", c.Key)
		}
		if !c.LastModified.Equal(want) {
			t.Fatalf("candidate %q lastModified=%v, want %v", c.Key, c.LastModified, want)
		}
		if c.Size != entrySize(c.Key, []byte(c.Key)) {
			t.Fatalf("candidate %q size=%d", c.Key, c.Size)
		}
	}
}

func TestValueIsolation(t *testing.T) {
	s := New(1)
	in := []byte("abc")
	s.Set("k", in, t0, time.Time{})
	in[0] = 'X'

	out, _, _ := s.Get("k", t0)
	if !bytes.Equal(out, []byte("abc")) {
		t.Fatalf("stored value shares memory with caller slice: %q", out)
	}
	out[0] = 'Y'
	again, _, _ := s.Get("k", t0)
	if !bytes.Equal(again, []byte("abc")) {
		t.Fatalf("returned value shares memory with store: %q", again)
	}
}

func TestShardRounding(t *testing.T) {
	for _, n := range []int{0, 1, 3, 16, 17} {
		s := New(n)
		got := len(s.shards)
		if got&(got-1) != 0 || got == 0 {
			t.Fatalf("New(%d) built %d shards, not a power of two", n, got)
		}
	}
}
