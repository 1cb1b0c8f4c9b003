package ratelimiter

import "net/netip"

// RequestIdentity canonicalizes a caller-supplied identity into the stable
// string key under which its rate-limiting state lives in the store.
//
// Two concrete implementations are provided: IPIdentity and CustomIdentity.
// Equal identities always produce the same key, and distinct IP identities
// produce distinct keys. CustomIdentity joins Key and Value with an
// unescaped ':', so two distinct custom identities share a key when a ':'
// moves between them (Key "a:b", Value "c" and Key "a", Value "b:c" both
// yield "rl:cst_a:b:c").
type RequestIdentity interface {
	// KeyFor returns the canonical request key for this identity. It is
	// pure, total and deterministic; it performs no I/O and never fails.
	KeyFor() string
}

// IPIdentity identifies a caller by network address.
type IPIdentity struct {
	Addr netip.Addr
}

// KeyFor returns "rl:ip_<addr>", e.g. "rl:ip_1.2.3.4".
func (i IPIdentity) KeyFor() string {
	return "rl:ip_" + i.Addr.String()
}

// CustomIdentity identifies a caller by an arbitrary key/value pair, e.g.
// Key: "client_id", Value: "dili91".
type CustomIdentity struct {
	Key   string
	Value string
}

// KeyFor returns "rl:cst_<key>:<value>", e.g. "rl:cst_client_id:dili91".
func (c CustomIdentity) KeyFor() string {
	return "rl:cst_" + c.Key + ":" + c.Value
}
