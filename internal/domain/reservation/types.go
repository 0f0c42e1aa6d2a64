package reservation

// Status is the lifecycle state of a reservation.
//
//	(none) -> HOLD -> PAYMENT_PENDING -> CONFIRMED
//	free kinds skip straight to CONFIRMED; holds and pending payments fall
//	to EXPIRED via the sweeper or to CANCELLED via user/admin action.
//
// CONFIRMED, CANCELLED and EXPIRED are terminal.
type Status string

const (
	StatusHold           Status = "HOLD"
	StatusPaymentPending Status = "PAYMENT_PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusCancelled      Status = "CANCELLED"
	StatusExpired        Status = "EXPIRED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHold, StatusPaymentPending, StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// IsHolding reports whether the status still depends on the hold-expiry
// deadline; only these states are ever swept.
func (s Status) IsHolding() bool {
	return s == StatusHold || s == StatusPaymentPending
}

// OccupyingStatuses are the states the overlap index considers when checking
// capacity. A HOLD row additionally needs an unexpired deadline to count.
func OccupyingStatuses() []Status {
	return []Status{StatusHold, StatusPaymentPending, StatusConfirmed}
}

// HoldingStatuses are the states the expiry sweeper reclaims.
func HoldingStatuses() []Status {
	return []Status{StatusHold, StatusPaymentPending}
}

// AllStatuses enumerates every lifecycle state, for unfiltered listings.
func AllStatuses() []Status {
	return []Status{StatusHold, StatusPaymentPending, StatusConfirmed, StatusCancelled, StatusExpired}
}
