package types

// Side is the direction of an order or a fill. Kept as its own type with
// an Opposite method, the way original_source/src/types/side.rs models it,
// rather than folding it into OrderSide string constants only.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Opposite returns the side that would close a position opened by s.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// PositionKind tags the sum-type cases of Position (spec.md §3).
type PositionKind string

const (
	Neutral PositionKind = "neutral"
	Long    PositionKind = "long"
	Short   PositionKind = "short"
)

// OrderLifecycle tags the phantom state an Order value carries. Go has no
// parametric phantom types, so lifecycle-typed orders are modeled as
// distinct Go types (order.NewLimit, order.PendingLimit,
// order.FilledLimit) each produced by a total conversion function,
// per spec.md design note "Lifecycle-typed orders".
type OrderLifecycle string

const (
	LifecycleNew             OrderLifecycle = "new"
	LifecyclePending         OrderLifecycle = "pending"
	LifecyclePartiallyFilled OrderLifecycle = "partially_filled"
	LifecycleFilled          OrderLifecycle = "filled"
)
