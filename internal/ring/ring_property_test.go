package ring

import (
	"fmt"
	"testing"
)

// TestProperty_Determinism verifies that two rings built from the same
// membership, added in different orders, agree on every key's owner.
func TestProperty_Determinism(t *testing.T) {
	r1 := newTestRing(t, "n1", "n2", "n3")
	r2 := newTestRing(t, "n3", "n2", "n1")

	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("key-%d", i)
		o1, _ := r1.LocateKey(key)
		o2, _ := r2.LocateKey(key)
		if o1.Name() != o2.Name() {
			t.Fatalf("owner mismatch for key %s: %s vs %s", key, o1.Name(), o2.Name())
		}
	}
}

// TestProperty_RemovalExcludesMember verifies that after removing a
// member from a five-member ring, no key in a large probe set maps back
// to it and every key maps to one of the four remaining members.
func TestProperty_RemovalExcludesMember(t *testing.T) {
	r := newTestRing(t, "n1", "n2", "n3", "n4", "n5")

	if err := r.RemoveByName("n3"); err != nil {
		t.Fatalf("RemoveByName: %v", err)
	}

	remaining := map[string]bool{"n1": true, "n2": true, "n4": true, "n5": true}
	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("probe-%d", i)
		owner, ok := r.LocateKey(key)
		if !ok {
			t.Fatalf("expected an owner for key %s", key)
		}
		if owner.Name() == "n3" {
			t.Errorf("key %s still owned by removed member n3", key)
		}
		if !remaining[owner.Name()] {
			t.Errorf("key %s owned by unexpected member %s", key, owner.Name())
		}
	}
}

// TestProperty_AlwaysReturnsKnownMember verifies that LocateKey on a
// non-empty ring always returns a member from the current registry, for
// a large, varied set of keys.
func TestProperty_AlwaysReturnsKnownMember(t *testing.T) {
	r := newTestRing(t, "n1", "n2", "n3")

	known := map[string]bool{"n1": true, "n2": true, "n3": true}
	for i := 0; i < 2000; i++ {
		key := fmt.Sprintf("%c%d%c", 'a'+rune(i%26), i%10, 'A'+rune(i%26))
		owner, ok := r.LocateKey(key)
		if !ok {
			t.Fatalf("expected an owner for key %s", key)
		}
		if !known[owner.Name()] {
			t.Errorf("owner %s for key %s is not a known member", owner.Name(), key)
		}
	}
}

// TestProperty_GetClosestN_NoDuplicates verifies GetClosestN never
// repeats a member across a large sample of keys and replica counts.
func TestProperty_GetClosestN_NoDuplicates(t *testing.T) {
	r := newTestRing(t, "n1", "n2", "n3", "n4", "n5")

	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("k-%d", i)
		n := 1 + i%5
		result, err := r.GetClosestN(key, n)
		if err != nil {
			t.Fatalf("GetClosestN(%s, %d): %v", key, n, err)
		}
		if len(result) != n {
			t.Fatalf("GetClosestN(%s, %d): expected %d members, got %d", key, n, n, len(result))
		}
		seen := make(map[string]bool, n)
		for _, m := range result {
			if seen[m.Name()] {
				t.Fatalf("GetClosestN(%s, %d): duplicate member %s", key, n, m.Name())
			}
			seen[m.Name()] = true
		}
	}
}

// TestProperty_ConsistentAfterChurn verifies that a ring which has a
// member added and then removed again settles back to the exact owner
// mapping it started with, across a large probe set (the bounded churn
// / round-trip invariant).
func TestProperty_ConsistentAfterChurn(t *testing.T) {
	r := newTestRing(t, "n1", "n2", "n3")

	before := make(map[string]string, 500)
	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("churn-%d", i)
		owner, _ := r.LocateKey(key)
		before[key] = owner.Name()
	}

	if err := r.Add(testMember("n4")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(testMember("n5")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.RemoveByName("n5"); err != nil {
		t.Fatalf("RemoveByName: %v", err)
	}
	if err := r.RemoveByName("n4"); err != nil {
		t.Fatalf("RemoveByName: %v", err)
	}

	for key, owner := range before {
		after, _ := r.LocateKey(key)
		if after.Name() != owner {
			t.Errorf("owner for key %s changed after churn: %s -> %s", key, owner, after.Name())
		}
	}
}

// TestProperty_OrderInvariant verifies that the insertion order of the
// initial membership does not affect the resulting load distribution:
// the same members own the same number of partitions either way.
func TestProperty_OrderInvariant(t *testing.T) {
	r1 := newTestRing(t, "n1", "n2", "n3")
	r2 := newTestRing(t, "n3", "n1", "n2")

	l1 := r1.LoadDistribution()
	l2 := r2.LoadDistribution()
	if len(l1) != len(l2) {
		t.Fatalf("load distribution size differs: %d vs %d", len(l1), len(l2))
	}
	for name, count := range l1 {
		if l2[name] != count {
			t.Errorf("load for %s differs by insertion order: %d vs %d", name, count, l2[name])
		}
	}
}
