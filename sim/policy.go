package sim

import "fmt"

// Policy is an (s, S) reorder-point policy: when the pre-demand inventory
// level falls to or below the reorder point s, stock is brought up to the
// order-up-to level S before that period's demand is realized.
//
// Policy is an immutable value; it is validated once at construction and
// never changes for the lifetime of a run.
type Policy struct {
	ReorderPoint float64 // s: restock trigger, compared against the pre-demand level
	OrderUpTo    float64 // S: restock target, must exceed ReorderPoint
}

// NewPolicy creates a validated (s, S) policy.
func NewPolicy(s, S float64) (Policy, error) {
	p := Policy{ReorderPoint: s, OrderUpTo: S}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate rejects degenerate policies. A policy with s >= S would restock
// straight back into the reorder region every period.
func (p Policy) Validate() error {
	if !(p.ReorderPoint < p.OrderUpTo) {
		return fmt.Errorf("policy requires reorder point s < order-up-to level S, got s=%v S=%v",
			p.ReorderPoint, p.OrderUpTo)
	}
	return nil
}
