package domain

// Derive recomputes every derived field of d after a write to changed.
//
//   - EndDate = StartDate + (Duration-1) days when both are set, else nil.
//   - Writing BudgetRange (even to the same value) resets BudgetAmount to
//     the band midpoint.
//   - Any other write leaves BudgetAmount as chosen, clamped into the band.
func Derive(d *TripDraft, changed FieldName) {
	if d.StartDate != nil && d.Duration > 0 {
		end := DateOnly(*d.StartDate).AddDate(0, 0, d.Duration-1)
		d.EndDate = &end
	} else {
		d.EndDate = nil
	}

	band, ok := BandFor(d.BudgetRange)
	if !ok {
		return
	}
	if changed == FieldNameBudgetRange {
		d.BudgetAmount = band.Midpoint()
		return
	}
	d.BudgetAmount = band.Clamp(d.BudgetAmount)
}
