// Package member provides a concrete ring.Member: a named network
// endpoint. It is not imported by package ring — callers use it, or
// their own type, interchangeably through the Member capability.
package member
