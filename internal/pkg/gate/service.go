package gate

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/repository"
)

// Service resolves and grants entitlement tiers against the database. It is
// the single place that maps stored state (coach rows, orders) to a Tier.
type Service struct {
	coachUsers repository.CoachUserRepository
	orders     repository.OrderRepository
}

func NewService(coachUsers repository.CoachUserRepository, orders repository.OrderRepository) *Service {
	return &Service{coachUsers: coachUsers, orders: orders}
}

// CheckEntitlement maps an email to its tier. An unknown email is anonymous.
// Backend failures also degrade to anonymous so gated content stays locked
// instead of erroring out.
func (s *Service) CheckEntitlement(email string) (Tier, error) {
	if email == "" {
		return TierAnonymous, nil
	}

	user, err := s.coachUsers.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TierAnonymous, nil
		}
		return TierAnonymous, err
	}

	if user.HasUnlimitedAccess {
		return TierPurchased, nil
	}

	completed, err := s.orders.GetCompletedByEmail(email)
	if err != nil {
		return TierRegistered, err
	}
	if len(completed) > 0 {
		return TierPurchased, nil
	}

	return TierRegistered, nil
}

// GrantEntitlement raises the email to at least the given tier. Grants are
// monotonic; asking for a lower tier than the current one changes nothing.
func (s *Service) GrantEntitlement(email string, tier Tier) error {
	if email == "" {
		return errors.New("gate: empty email")
	}

	switch {
	case tier >= TierPurchased:
		return s.coachUsers.GrantUnlimitedAccess(email)
	case tier >= TierRegistered:
		_, err := s.coachUsers.GetOrCreate(email)
		return err
	default:
		return nil
	}
}

// DecideFor is a convenience that resolves the tier and message count for an
// email and applies the thresholds.
func (s *Service) DecideFor(email string) (Decision, error) {
	tier, err := s.CheckEntitlement(email)
	if err != nil {
		return Decide(0, TierAnonymous), err
	}

	count := 0
	if email != "" {
		if user, uerr := s.coachUsers.GetByEmail(email); uerr == nil {
			count = user.MessageCount
		}
	}

	return Decide(count, tier), nil
}
