package services

import (
	"strings"

	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/order"
)

// ServiceAreaMatcher decides whether an order belongs to a worker's city when the
// order's own city column is missing or does not match.
//
// The matcher is seeded with the saved addresses known to lie in the worker's city.
// An order matches when its free-text address contains the street or the area of
// any of those addresses. Matching is plain case-sensitive substring containment,
// so it can produce false positives (a short area name embedded in a longer word);
// the heuristic only runs when the primary city match found nothing.
//
// Empty streets and areas are ignored: they would otherwise match every order.
//
// Example usage:
//
//	addresses, err := addressRepo.ListByCity(ctx, w.City())
//	if err != nil {
//	    return nil, err
//	}
//	matcher := services.NewServiceAreaMatcher(addresses)
//	visible := matcher.Filter(candidates)
type ServiceAreaMatcher struct {
	fragments []string
}

// NewServiceAreaMatcher collects the distinct non-empty street and area values of addresses.
func NewServiceAreaMatcher(addresses []customer.Address) ServiceAreaMatcher {
	seen := make(map[string]struct{}, len(addresses)*2)
	fragments := make([]string, 0, len(addresses)*2)

	add := func(fragment string) {
		if fragment == "" {
			return
		}
		if _, ok := seen[fragment]; ok {
			return
		}
		seen[fragment] = struct{}{}
		fragments = append(fragments, fragment)
	}

	for _, a := range addresses {
		add(a.Street())
		add(a.Area())
	}

	return ServiceAreaMatcher{fragments: fragments}
}

// IsEmpty reports whether the matcher has nothing to match against.
func (m ServiceAreaMatcher) IsEmpty() bool {
	return len(m.fragments) == 0
}

// Matches reports whether the order's address mentions a known street or area.
func (m ServiceAreaMatcher) Matches(o *order.Order) bool {
	if o == nil || o.Address() == "" {
		return false
	}
	for _, fragment := range m.fragments {
		if strings.Contains(o.Address(), fragment) {
			return true
		}
	}
	return false
}

// Filter keeps the matching orders, preserving their order.
func (m ServiceAreaMatcher) Filter(orders []*order.Order) []*order.Order {
	if m.IsEmpty() {
		return []*order.Order{}
	}

	matched := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if m.Matches(o) {
			matched = append(matched, o)
		}
	}
	return matched
}
