package reservation

import (
	"courtside/internal/domain/resource"
)

// Quote is the price the customer sees: the full amount and the deposit that
// must be paid to confirm.
type Quote struct {
	Total   Money
	Deposit Money
}

// RateTable prices a slot from per-kind hourly rates. Pricing strategy is a
// collaborator concern; this is the flat-rate table the venue actually uses.
type RateTable struct {
	FieldHourlyCents    int64
	TableRowHourlyCents int64
	DepositPercent      int
}

func (t RateTable) hourlyCents(kind resource.Kind) int64 {
	switch kind {
	case resource.KindField:
		return t.FieldHourlyCents
	case resource.KindTableRow:
		return t.TableRowHourlyCents
	default:
		return 0
	}
}

// QuoteFor totals rate * hours * quantity across all lines and derives the
// deposit. A zero total means the kind is free.
func (t RateTable) QuoteFor(kind resource.Kind, slot TimeSlot, lines []ResourceLine) Quote {
	rate := t.hourlyCents(kind)
	hours := int64(slot.Hours())

	var totalCents int64
	for _, l := range lines {
		totalCents += rate * hours * int64(l.Quantity())
	}

	total := MustMoney(totalCents)
	return Quote{
		Total:   total,
		Deposit: total.Percent(t.DepositPercent),
	}
}
