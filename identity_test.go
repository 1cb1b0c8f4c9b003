package ratelimiter_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"

	ratelimiter "github.com/kyota-dev/ratelimiter"
)

func TestIPIdentity_KeyFor(t *testing.T) {
	identity := ratelimiter.IPIdentity{Addr: netip.MustParseAddr("1.2.3.4")}
	assert.Equal(t, "rl:ip_1.2.3.4", identity.KeyFor())
}

func TestCustomIdentity_KeyFor(t *testing.T) {
	identity := ratelimiter.CustomIdentity{Key: "client_id", Value: "dili91"}
	assert.Equal(t, "rl:cst_client_id:dili91", identity.KeyFor())
}

func TestKeyFor_Injective(t *testing.T) {
	identities := []ratelimiter.RequestIdentity{
		ratelimiter.IPIdentity{Addr: netip.MustParseAddr("1.2.3.4")},
		ratelimiter.IPIdentity{Addr: netip.MustParseAddr("1.2.3.5")},
		ratelimiter.CustomIdentity{Key: "client_id", Value: "alice"},
		ratelimiter.CustomIdentity{Key: "client_id", Value: "bob"},
		ratelimiter.CustomIdentity{Key: "user_id", Value: "alice"},
	}

	seen := make(map[string]ratelimiter.RequestIdentity)
	for _, identity := range identities {
		key := identity.KeyFor()
		if other, ok := seen[key]; ok {
			t.Fatalf("identities %#v and %#v collide on key %q", other, identity, key)
		}
		seen[key] = identity
	}
}

func TestKeyFor_EqualIdentitiesCollide(t *testing.T) {
	a := ratelimiter.IPIdentity{Addr: netip.MustParseAddr("10.0.0.1")}
	b := ratelimiter.IPIdentity{Addr: netip.MustParseAddr("10.0.0.1")}
	assert.Equal(t, a.KeyFor(), b.KeyFor())
}
