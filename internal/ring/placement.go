package ring

import (
	"encoding/binary"
	"math"
	"sort"
)

// distributePartitions assigns every partition in [0, partitionCount) to a
// member, walking the sorted virtual-node array forward from each
// partition's hash and sliding past any member that has already reached
// the per-member cap. It is pure: it never mutates the ring map, sorted
// hash set, or member count it is handed.
//
// Partitions are processed in ascending id order, so the result is
// order-dependent within a given (ringMap, sortedSet) pair but
// reproducible given the same inputs.
func distributePartitions(hasher Hasher, ringMap map[uint64]string, sortedSet []uint64, memberCount, partitionCount int, loadFactor float64) (table []string, loads map[string]int, err error) {
	if memberCount == 0 {
		return nil, nil, nil
	}

	avgLoad := int(math.Ceil(float64(partitionCount) / float64(memberCount) * loadFactor))
	table = make([]string, partitionCount)
	loads = make(map[string]int, memberCount)

	for p := 0; p < partitionCount; p++ {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(p))
		key := hasher.Sum64(buf[:])
		idx := searchSortedSet(sortedSet, key)

		owner, ok := placeOne(ringMap, sortedSet, loads, idx, avgLoad)
		if !ok {
			return nil, nil, &InsufficientSpaceError{
				Partition:        p,
				AverageLoad:      avgLoad,
				MemberCount:      memberCount,
				VirtualNodeCount: len(sortedSet),
			}
		}
		table[p] = owner
		loads[owner]++
	}
	return table, loads, nil
}

func searchSortedSet(sortedSet []uint64, key uint64) int {
	idx := sort.Search(len(sortedSet), func(i int) bool { return sortedSet[i] >= key })
	if idx >= len(sortedSet) {
		idx = 0
	}
	return idx
}

// placeOne walks forward from idx, wrapping, until it finds a member whose
// current load (plus the partition being placed) would not exceed
// avgLoad, or exhausts every position on the ring without success.
func placeOne(ringMap map[uint64]string, sortedSet []uint64, loads map[string]int, idx, avgLoad int) (string, bool) {
	steps := 0
	for {
		hash := sortedSet[idx]
		name := ringMap[hash]
		if loads[name]+1 <= avgLoad {
			return name, true
		}
		steps++
		if steps >= len(sortedSet) {
			return "", false
		}
		idx++
		if idx >= len(sortedSet) {
			idx = 0
		}
	}
}
