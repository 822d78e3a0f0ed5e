package gate

// Tier is the access level of a visitor, ordered from least to most access.
type Tier int

const (
	TierAnonymous Tier = iota
	TierRegistered
	TierPurchased
)

// FreeMessages is how many coach messages an anonymous visitor gets before
// the email prompt. RegisteredMessages is the TOTAL for a registered visitor,
// not an additional allowance on top of the free ones.
const (
	FreeMessages       = 3
	RegisteredMessages = 10
)

func (t Tier) String() string {
	switch t {
	case TierPurchased:
		return "purchased"
	case TierRegistered:
		return "registered"
	default:
		return "anonymous"
	}
}

// Decision is the outcome of the gate for a single message attempt.
type Decision struct {
	Allowed bool
	// NeedsEmail is set when the visitor must register an email to continue.
	NeedsEmail bool
	// NeedsPurchase is set when the visitor must buy the course to continue.
	NeedsPurchase bool
	// Remaining is how many messages are left at the current tier, -1 for
	// unlimited.
	Remaining int
}

// Decide applies the thresholds to a message count that is about to be spent.
// count is the number of messages already sent. Pure function; callers load
// the count and tier themselves.
func Decide(count int, tier Tier) Decision {
	if tier >= TierPurchased {
		return Decision{Allowed: true, Remaining: -1}
	}

	if count < FreeMessages {
		remaining := FreeMessages - count - 1
		if tier >= TierRegistered {
			remaining = RegisteredMessages - count - 1
		}
		return Decision{Allowed: true, Remaining: remaining}
	}

	if count < RegisteredMessages {
		if tier >= TierRegistered {
			return Decision{Allowed: true, Remaining: RegisteredMessages - count - 1}
		}
		return Decision{NeedsEmail: true}
	}

	return Decision{NeedsPurchase: true}
}
