package ring

import "math"

// Defaults applied to zero-valued Config fields, matching the reference
// design: 271 partitions (typically prime), 20 virtual nodes per member,
// and 25% load headroom over the average.
const (
	DefaultPartitionCount    = 271
	DefaultReplicationFactor = 20
	DefaultLoadFactor        = 1.25
)

// Hasher is the pluggable hash capability the ring delegates all hashing
// to. Implementations must be deterministic, side-effect-free, and safe
// for concurrent use; the ring calls Sum64 from multiple goroutines
// without additional synchronization.
type Hasher interface {
	Sum64(data []byte) uint64
}

// Member is the pluggable capability a ring entry must provide: a name
// that is stable for the member's lifetime in the ring, and a way to
// produce an independent copy. Two members with equal names are the same
// member as far as the ring is concerned.
type Member interface {
	Name() string
	Clone() Member
}

// Config configures a Ring. Zero-valued PartitionCount, ReplicationFactor,
// and LoadFactor adopt their package defaults. Hasher has no default and
// must be supplied.
type Config struct {
	Hasher            Hasher
	PartitionCount    int
	ReplicationFactor int
	LoadFactor        float64
}

func (c Config) withDefaults() Config {
	if c.PartitionCount == 0 {
		c.PartitionCount = DefaultPartitionCount
	}
	if c.ReplicationFactor == 0 {
		c.ReplicationFactor = DefaultReplicationFactor
	}
	if c.LoadFactor == 0 {
		c.LoadFactor = DefaultLoadFactor
	}
	return c
}

// validate checks the configuration against a prospective member count,
// rejecting combinations whose bounded-load cap the placement walk could
// not reliably honor.
func (c Config) validate(memberCount int) error {
	if c.Hasher == nil {
		return &ConfigError{Reason: "hasher is required"}
	}
	if memberCount == 0 {
		return nil
	}

	expectedCap := int(math.Ceil(float64(c.PartitionCount) / float64(memberCount) * c.LoadFactor))
	if expectedCap > 2*c.ReplicationFactor {
		return &ConfigError{
			PartitionCount:    c.PartitionCount,
			MemberCount:       memberCount,
			ReplicationFactor: c.ReplicationFactor,
			LoadFactor:        c.LoadFactor,
			ExpectedCap:       expectedCap,
		}
	}
	return nil
}
