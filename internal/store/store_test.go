package store

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func TestInsertAndGet(t *testing.T) {
	st := New(2)
	st.Insert("abc", []byte("hello"), "DEVICE001")

	got, ok := st.Get("abc", "DEVICE001")
	if !ok {
		t.Fatal("Get: expected paste, got none")
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Errorf("content: got %q, want hello", got)
	}
}

func TestGet_Missing(t *testing.T) {
	st := New(2)
	if _, ok := st.Get("nope", "DEVICE001"); ok {
		t.Fatal("Get on empty store: expected false, got true")
	}
}

func TestGet_WrongDevice_IndistinguishableFromMiss(t *testing.T) {
	st := New(2)
	st.Insert("abc", []byte("secret"), "DEVICE001")

	gotWrong, okWrong := st.Get("abc", "DEVICE002")
	gotMiss, okMiss := st.Get("never-inserted", "DEVICE002")

	if okWrong || okMiss {
		t.Fatalf("ok: got wrong=%v miss=%v, want false/false", okWrong, okMiss)
	}
	if gotWrong != nil || gotMiss != nil {
		t.Errorf("content: got wrong=%v miss=%v, want nil/nil", gotWrong, gotMiss)
	}
}

func TestRetention_KeepLastTwo(t *testing.T) {
	st := New(2)
	st.Insert("a", []byte("A"), "DEVICE001")
	st.Insert("b", []byte("B"), "DEVICE001")
	st.Insert("c", []byte("C"), "DEVICE001")

	ids := st.ListIDs("DEVICE001")
	if len(ids) != 2 {
		t.Fatalf("ListIDs: got %d ids, want 2", len(ids))
	}
	if ids[0] != "c" || ids[1] != "b" {
		t.Errorf("ListIDs: got %v, want [c b]", ids)
	}
	if _, ok := st.Get("a", "DEVICE001"); ok {
		t.Error("oldest paste should have been evicted")
	}
}

func TestRetention_NeverExceedsLimit(t *testing.T) {
	const limit = 3
	st := New(limit)
	for i := 0; i < 20; i++ {
		st.Insert(fmt.Sprintf("id-%d", i), []byte("x"), "DEVICE001")
		if n := len(st.ListIDs("DEVICE001")); n > limit {
			t.Fatalf("after insert %d: %d live pastes, limit %d", i, n, limit)
		}
	}
}

func TestNew_ClampsNonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		st := New(limit)
		st.Insert("a", []byte("A"), "DEVICE001")
		st.Insert("b", []byte("B"), "DEVICE001")

		ids := st.ListIDs("DEVICE001")
		if len(ids) != 1 || ids[0] != "b" {
			t.Errorf("New(%d): got %v, want [b]", limit, ids)
		}
	}
}

func TestEviction_ReportsCount(t *testing.T) {
	st := New(2)
	if n := st.Insert("a", []byte("A"), "DEVICE001"); n != 0 {
		t.Errorf("first insert: evicted %d, want 0", n)
	}
	if n := st.Insert("b", []byte("B"), "DEVICE001"); n != 0 {
		t.Errorf("second insert: evicted %d, want 0", n)
	}
	if n := st.Insert("c", []byte("C"), "DEVICE001"); n != 1 {
		t.Errorf("third insert: evicted %d, want 1", n)
	}
}

func TestEviction_DoesNotCrossDevices(t *testing.T) {
	st := New(2)
	st.Insert("a1", []byte("x"), "DEVICE001")
	st.Insert("b1", []byte("x"), "DEVICE002")
	st.Insert("a2", []byte("x"), "DEVICE001")
	st.Insert("a3", []byte("x"), "DEVICE001") // evicts a1, must not touch b1

	if _, ok := st.Get("b1", "DEVICE002"); !ok {
		t.Error("other device's paste was evicted")
	}
	ids := st.ListIDs("DEVICE002")
	if len(ids) != 1 || ids[0] != "b1" {
		t.Errorf("DEVICE002 ListIDs: got %v, want [b1]", ids)
	}
}

func TestListIDs_NewestFirst(t *testing.T) {
	st := New(5)
	st.Insert("one", []byte("1"), "DEVICE001")
	st.Insert("two", []byte("2"), "DEVICE001")
	st.Insert("three", []byte("3"), "DEVICE001")

	ids := st.ListIDs("DEVICE001")
	want := []string{"three", "two", "one"}
	if len(ids) != len(want) {
		t.Fatalf("ListIDs: got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ListIDs[%d]: got %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestListIDs_Empty(t *testing.T) {
	st := New(2)
	if ids := st.ListIDs("DEVICE001"); len(ids) != 0 {
		t.Errorf("ListIDs on empty store: got %v, want empty", ids)
	}
}

func TestInsert_OverwriteKeepsIDsUnique(t *testing.T) {
	st := New(2)
	st.Insert("dup", []byte("first"), "DEVICE001")
	st.Insert("dup", []byte("second"), "DEVICE002")

	if got, ok := st.Get("dup", "DEVICE002"); !ok || !bytes.Equal(got, []byte("second")) {
		t.Errorf("Get after overwrite: got %q ok=%v, want second/true", got, ok)
	}
	if _, ok := st.Get("dup", "DEVICE001"); ok {
		t.Error("overwritten paste still visible to its old device")
	}
	if ids := st.ListIDs("DEVICE001"); len(ids) != 0 {
		t.Errorf("old device ListIDs: got %v, want empty", ids)
	}
}

func TestKnownDevices(t *testing.T) {
	st := New(2)
	st.Insert("a", []byte("x"), "DEVICE001")
	st.Insert("b", []byte("x"), "DEVICE002")
	st.Insert("c", []byte("x"), "DEVICE002")

	devices := st.KnownDevices()
	if len(devices) != 2 {
		t.Fatalf("KnownDevices: got %d, want 2", len(devices))
	}
	for _, d := range []string{"DEVICE001", "DEVICE002"} {
		if _, ok := devices[d]; !ok {
			t.Errorf("KnownDevices missing %q", d)
		}
	}
}

func TestKnownDevices_DropsFullyEvictedDevice(t *testing.T) {
	st := New(1)
	st.Insert("a", []byte("x"), "DEVICE001")
	st.Insert("b", []byte("x"), "DEVICE001") // evicts a; device still live via b

	devices := st.KnownDevices()
	if _, ok := devices["DEVICE001"]; !ok {
		t.Error("device with a live paste missing from KnownDevices")
	}
	if len(devices) != 1 {
		t.Errorf("KnownDevices: got %d, want 1", len(devices))
	}
}

func TestHasAndCount(t *testing.T) {
	st := New(2)
	st.Insert("a", []byte("x"), "DEVICE001")
	st.Insert("b", []byte("x"), "DEVICE002")

	if !st.Has("a") || !st.Has("b") {
		t.Error("Has: expected true for live ids")
	}
	if st.Has("c") {
		t.Error("Has: expected false for unknown id")
	}
	if st.Count() != 2 {
		t.Errorf("Count: got %d, want 2", st.Count())
	}
	if st.DeviceCount() != 2 {
		t.Errorf("DeviceCount: got %d, want 2", st.DeviceCount())
	}
}

func TestConcurrentInserts(t *testing.T) {
	st := New(2)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			st.Insert(fmt.Sprintf("id-%d", n), []byte("x"), fmt.Sprintf("DEVICE%03d", n%10))
		}(i)
	}
	wg.Wait()

	// Ten devices, two pastes each after retention.
	if got := st.Count(); got != 20 {
		t.Errorf("Count after concurrent inserts: got %d, want 20", got)
	}
	if got := st.DeviceCount(); got != 10 {
		t.Errorf("DeviceCount: got %d, want 10", got)
	}
}

func TestConcurrentMixedOps(t *testing.T) {
	st := New(2)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func(n int) {
			defer wg.Done()
			st.Insert(fmt.Sprintf("id-%d", n), []byte("x"), "DEVICE001")
		}(i)
		go func() {
			defer wg.Done()
			st.ListIDs("DEVICE001")
		}()
		go func() {
			defer wg.Done()
			st.KnownDevices()
		}()
	}
	wg.Wait()

	if n := len(st.ListIDs("DEVICE001")); n > 2 {
		t.Errorf("ListIDs after concurrent ops: got %d ids, want at most 2", n)
	}
}
