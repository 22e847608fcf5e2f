package member

import (
	"fmt"

	"boundedring/internal/ring"
)

// Gateway is a concrete ring.Member representing a named network
// endpoint, grounded on the original design's GatewayMember: an id, a
// host, and a port. Name (and String) render as "id:host:port".
type Gateway struct {
	ID   string
	Host string
	Port int
}

// Name returns the stable identity the ring uses for this member:
// "id:host:port".
func (g Gateway) Name() string {
	return fmt.Sprintf("%s:%s:%d", g.ID, g.Host, g.Port)
}

// String is an alias for Name, for callers that just want to print a
// Gateway.
func (g Gateway) String() string {
	return g.Name()
}

// Clone returns an independent copy of g. Gateway holds only value
// fields, so this is a plain copy, but it is written out explicitly to
// satisfy ring.Member and to make the independence of the copy obvious
// at call sites.
func (g Gateway) Clone() ring.Member {
	return Gateway{ID: g.ID, Host: g.Host, Port: g.Port}
}

// Address returns "host:port", without the id.
func (g Gateway) Address() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}
