// Package ring implements a bounded-load consistent hash ring: a data
// structure that maps an unbounded universe of keys onto a small, dynamic
// set of members such that ownership is deterministic, membership changes
// reshuffle only a small fraction of keys, and no member is assigned
// disproportionately more partitions than the average, even under hash
// skew.
//
// The hash function and the member type are pluggable capabilities
// (Hasher, Member); this package owns none of their implementations. See
// the sibling hasher and member packages for ready-made ones.
package ring
