// internal/domain/cart/calculator.go
package cart

// Summarize derives the checkout view of a set of entries: one line per entry
// with its subtotal, plus the grand total. It holds no state and is meant to
// be recomputed on every request.
func Summarize(entries []Entry) Summary {
	summary := Summary{
		Lines:     make([]Line, 0, len(entries)),
		ItemCount: len(entries),
	}

	for _, e := range entries {
		subtotal := e.Subtotal()
		summary.Lines = append(summary.Lines, Line{
			Item:     e.Item,
			Quantity: e.Quantity,
			Subtotal: subtotal,
		})
		summary.TotalQuantity += e.Quantity
		summary.Total = addMoney(summary.Total, subtotal)
	}

	return summary
}

// Summary of the ledger's current contents
func (l *Ledger) Summary() Summary {
	return Summarize(l.entries)
}
