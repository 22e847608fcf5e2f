package ring

import (
	"sort"
	"strconv"
	"sync"
)

// Ring implements a bounded-load consistent hash ring with virtual nodes.
// A single RWMutex guards every read and mutation: many LocateKey/
// GetClosestN/GetMembers calls may proceed concurrently, but Add and
// RemoveByName are mutually exclusive with each other and with readers
// for the duration of the mutation.
type Ring struct {
	mu     sync.RWMutex
	config Config

	members map[string]Member // registry: name -> authoritative (owned) member
	ring    map[uint64]string // virtual-node hash -> owning member name
	sorted  []uint64          // ring's hashes, kept ascending

	partitions []string       // partition id -> owning member name; nil when empty
	loads      map[string]int // member name -> assigned partition count

	membersCache []Member // lazy snapshot of raw (non-cloned) registry values
	membersDirty bool
}

// New builds a Ring from an initial (possibly empty) member set and a
// configuration. A missing Hasher, or a configuration whose bounded-load
// cap the placement walk cannot reliably honor, is rejected with a
// *ConfigError.
func New(members []Member, config Config) (*Ring, error) {
	config = config.withDefaults()
	if err := config.validate(len(members)); err != nil {
		return nil, err
	}

	r := &Ring{
		config:  config,
		members: make(map[string]Member, len(members)),
		ring:    make(map[uint64]string, len(members)*config.ReplicationFactor),
	}

	for _, m := range members {
		name := m.Name()
		r.members[name] = m.Clone()
		r.addToRing(name)
	}
	sort.Slice(r.sorted, func(i, j int) bool { return r.sorted[i] < r.sorted[j] })

	if len(members) > 0 {
		table, loads, err := distributePartitions(config.Hasher, r.ring, r.sorted, len(r.members), config.PartitionCount, config.LoadFactor)
		if err != nil {
			return nil, err
		}
		r.partitions = table
		r.loads = loads
	}
	r.membersDirty = true
	return r, nil
}

// vnodeHash computes the hash position of the i-th virtual node for a
// member name: hasher(name ‖ decimal(i)), with no separator between the
// two, exactly as the reference design specifies.
func (r *Ring) vnodeHash(name string, i int) uint64 {
	return r.config.Hasher.Sum64([]byte(name + strconv.Itoa(i)))
}

// addToRing appends this member's R virtual-node hashes to r.ring and
// r.sorted. Callers are responsible for (re-)sorting r.sorted afterward.
func (r *Ring) addToRing(name string) {
	for i := 0; i < r.config.ReplicationFactor; i++ {
		h := r.vnodeHash(name, i)
		r.ring[h] = name
		r.sorted = append(r.sorted, h)
	}
}

// Add inserts a member into the ring, idempotent on name. It recomputes
// the full partition placement against the new membership before
// publishing anything; if the new membership cannot be placed within the
// load cap, the ring is left completely unchanged and an
// *InsufficientSpaceError is returned.
//
// Add does not re-run the aggregate cap check New's Config.validate
// performs — only the placement engine's own per-partition failure
// detection. This is deliberate: validate is a conservative check
// against the worst case for a prospective member count, and growing a
// ring one member at a time from empty is the normal way to build up a
// small membership under a configuration whose worst-case check would
// otherwise reject it outright.
func (r *Ring) Add(member Member) error {
	name := member.Name()

	r.mu.RLock()
	_, exists := r.members[name]
	r.mu.RUnlock()
	if exists {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[name]; exists {
		return nil
	}

	tempRing := make(map[uint64]string, len(r.ring)+r.config.ReplicationFactor)
	for h, n := range r.ring {
		tempRing[h] = n
	}
	tempSorted := make([]uint64, len(r.sorted), len(r.sorted)+r.config.ReplicationFactor)
	copy(tempSorted, r.sorted)
	for i := 0; i < r.config.ReplicationFactor; i++ {
		h := r.vnodeHash(name, i)
		tempRing[h] = name
		tempSorted = append(tempSorted, h)
	}
	sort.Slice(tempSorted, func(i, j int) bool { return tempSorted[i] < tempSorted[j] })

	newMemberCount := len(r.members) + 1
	table, loads, err := distributePartitions(r.config.Hasher, tempRing, tempSorted, newMemberCount, r.config.PartitionCount, r.config.LoadFactor)
	if err != nil {
		return err
	}

	r.members[name] = member.Clone()
	r.ring = tempRing
	r.sorted = tempSorted
	r.partitions = table
	r.loads = loads
	r.membersDirty = true
	return nil
}

// RemoveByName removes a member from the ring by name, idempotent on
// absence. As with Add, the new placement is computed before anything is
// published, so a failed removal (which should not happen once the ring
// was successfully constructed) leaves the ring unchanged.
func (r *Ring) RemoveByName(name string) error {
	r.mu.RLock()
	_, exists := r.members[name]
	r.mu.RUnlock()
	if !exists {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.members[name]; !exists {
		return nil
	}

	if len(r.members) == 1 {
		delete(r.members, name)
		r.ring = make(map[uint64]string)
		r.sorted = nil
		r.partitions = nil
		r.loads = nil
		r.membersDirty = true
		return nil
	}

	tempRing := make(map[uint64]string, len(r.ring))
	for h, n := range r.ring {
		tempRing[h] = n
	}
	for i := 0; i < r.config.ReplicationFactor; i++ {
		h := r.vnodeHash(name, i)
		delete(tempRing, h)
	}
	tempSorted := make([]uint64, 0, len(r.sorted))
	for _, h := range r.sorted {
		if _, stillPresent := tempRing[h]; stillPresent {
			tempSorted = append(tempSorted, h)
		}
	}

	newMemberCount := len(r.members) - 1
	table, loads, err := distributePartitions(r.config.Hasher, tempRing, tempSorted, newMemberCount, r.config.PartitionCount, r.config.LoadFactor)
	if err != nil {
		return err
	}

	delete(r.members, name)
	r.ring = tempRing
	r.sorted = tempSorted
	r.partitions = table
	r.loads = loads
	r.membersDirty = true
	return nil
}

// partitionOf returns the partition id for key. Callers must already
// hold r.mu for reading.
func (r *Ring) partitionOf(key []byte) int {
	return int(r.config.Hasher.Sum64(key) % uint64(r.config.PartitionCount))
}

// LocateKeyBytes returns the member that owns key's partition, or
// (nil, false) when the ring is empty.
func (r *Ring) LocateKeyBytes(key []byte) (Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.members) == 0 {
		return nil, false
	}
	name := r.partitions[r.partitionOf(key)]
	return r.members[name].Clone(), true
}

// LocateKey returns the member that owns key's partition, or
// (nil, false) when the ring is empty.
func (r *Ring) LocateKey(key string) (Member, bool) {
	return r.LocateKeyBytes([]byte(key))
}

// GetClosestN returns up to n distinct members for key, walking the ring
// forward from the primary member's own name hash so that the replica
// sequence is a property of the owning member rather than of whichever
// partition within that member was hit. The primary is not forced to the
// front: the first member returned is whichever owns the first virtual
// node at or after that hash, and the primary appears in the result only
// if the walk reaches it within n distinct members. A non-positive n returns an
// empty result; n greater than the current member count returns
// *InsufficientMembersError.
func (r *Ring) GetClosestN(key string, n int) ([]Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 {
		return nil, nil
	}
	if n > len(r.members) {
		return nil, &InsufficientMembersError{Requested: n, Available: len(r.members)}
	}

	primaryName := r.partitions[r.partitionOf([]byte(key))]
	startHash := r.config.Hasher.Sum64([]byte(primaryName))
	idx := searchSortedSet(r.sorted, startHash)

	result := make([]Member, 0, n)
	seen := make(map[string]bool, n)
	for i := 0; i < len(r.sorted) && len(result) < n && len(seen) < len(r.members); i++ {
		pos := (idx + i) % len(r.sorted)
		name := r.ring[r.sorted[pos]]
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, r.members[name].Clone())
	}
	return result, nil
}

// GetMembers returns a clone of every member currently in the ring.
func (r *Ring) GetMembers() []Member {
	r.mu.RLock()
	if !r.membersDirty {
		cache := r.membersCache
		r.mu.RUnlock()
		return cloneAll(cache)
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.membersDirty {
		return cloneAll(r.membersCache)
	}
	cache := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		cache = append(cache, m)
	}
	r.membersCache = cache
	r.membersDirty = false
	return cloneAll(cache)
}

func cloneAll(members []Member) []Member {
	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = m.Clone()
	}
	return out
}

// LoadDistribution returns a snapshot copy of the member -> partition
// count mapping.
func (r *Ring) LoadDistribution() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int, len(r.loads))
	for name, count := range r.loads {
		out[name] = count
	}
	return out
}

// AverageLoad returns the target average partition count per member,
// (P/M)*L with no ceiling — the target, not the placement cap — or 0
// when the ring is empty.
func (r *Ring) AverageLoad() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.members) == 0 {
		return 0
	}
	return float64(r.config.PartitionCount) / float64(len(r.members)) * r.config.LoadFactor
}
