package ring

import "fmt"

// ConfigError is returned by New when the supplied configuration cannot
// produce a ring that honors the bounded-load cap, or is missing a
// required capability. It is only ever raised at construction.
type ConfigError struct {
	PartitionCount    int
	MemberCount       int
	ReplicationFactor int
	LoadFactor        float64
	ExpectedCap       int
	Reason            string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" && e.PartitionCount == 0 && e.MemberCount == 0 {
		return fmt.Sprintf("ring: invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf(
		"ring: invalid configuration: partitionCount=%d memberCount=%d replicationFactor=%d load=%v results in expectedCap=%d, which exceeds 2*replicationFactor=%d",
		e.PartitionCount, e.MemberCount, e.ReplicationFactor, e.LoadFactor, e.ExpectedCap, 2*e.ReplicationFactor,
	)
}

// InsufficientMembersError is returned by GetClosestN when the caller
// asks for more distinct members than the ring currently has.
type InsufficientMembersError struct {
	Requested int
	Available int
}

func (e *InsufficientMembersError) Error() string {
	return fmt.Sprintf("ring: insufficient members: requested %d, have %d", e.Requested, e.Available)
}

// InsufficientSpaceError is returned by the placement engine when a
// partition cannot be assigned without exceeding the per-member load cap
// anywhere on the ring. It should not occur for a configuration that
// passed the checks in New; seeing it in practice indicates membership
// was mutated in a way New's validation did not anticipate.
type InsufficientSpaceError struct {
	Partition        int
	AverageLoad      int
	MemberCount      int
	VirtualNodeCount int
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf(
		"ring: failed to place partition %d: avgLoad=%d memberCount=%d virtualNodes=%d",
		e.Partition, e.AverageLoad, e.MemberCount, e.VirtualNodeCount,
	)
}
