package model

// Obligation is a fixed, non-date-bound expense counted against the budget.
type Obligation struct {
	Description string
	Amount      float64
}

// ObligationField selects which obligation attribute Update writes.
type ObligationField int

const (
	FieldDescription ObligationField = iota
	FieldAmount
)

// Obligations is the ordered, editable obligation list. Position decides the
// order in which obligations are placed at the top of a built ledger.
type Obligations []Obligation

// Add appends an empty obligation.
func (o *Obligations) Add() {
	*o = append(*o, Obligation{})
}

// Remove deletes the obligation at i. An out-of-range index is ignored and
// reported as false.
func (o *Obligations) Remove(i int) bool {
	if i < 0 || i >= len(*o) {
		return false
	}
	*o = append((*o)[:i], (*o)[i+1:]...)
	return true
}

// Update sets one field of the obligation at i. Amount input is parsed
// leniently with ParseAmount, so it never fails on bad numbers.
func (o Obligations) Update(i int, field ObligationField, value string) bool {
	if i < 0 || i >= len(o) {
		return false
	}
	switch field {
	case FieldDescription:
		o[i].Description = value
	case FieldAmount:
		o[i].Amount = ParseAmount(value)
	default:
		return false
	}
	return true
}

// Total sums every obligation amount.
func (o Obligations) Total() float64 {
	var sum float64
	for _, ob := range o {
		sum += ob.Amount
	}
	return sum
}

// Clone returns an independent copy of the list.
func (o Obligations) Clone() Obligations {
	if o == nil {
		return nil
	}
	out := make(Obligations, len(o))
	copy(out, o)
	return out
}
