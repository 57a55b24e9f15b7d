// internal/domain/cart/ledger.go
package cart

// MaxQuantity caps the quantity of a single cart entry. Adds and updates
// beyond it are clamped.
const MaxQuantity = 10000

// Ledger is the in-memory cart of one browsing session. It keeps entries in
// insertion order, at most one per item ID, and never holds an entry with a
// quantity below one.
//
// A Ledger is not safe for concurrent use; the owning session serializes
// access to it.
type Ledger struct {
	entries []Entry
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{entries: []Entry{}}
}

// Add puts quantity units of item in the cart. An item already present has
// its quantity increased and keeps its position. Non-positive quantities are
// ignored; the resulting quantity never exceeds MaxQuantity.
func (l *Ledger) Add(item Item, quantity int) {
	if quantity <= 0 {
		return
	}

	if i := l.indexOf(item.ID); i >= 0 {
		current := l.entries[i].Quantity
		if quantity > MaxQuantity-current {
			l.entries[i].Quantity = MaxQuantity
			return
		}
		l.entries[i].Quantity = current + quantity
		return
	}

	l.entries = append(l.entries, Entry{Item: item, Quantity: min(quantity, MaxQuantity)})
}

// Remove drops the entry for itemID if there is one
func (l *Ledger) Remove(itemID uint) {
	i := l.indexOf(itemID)
	if i < 0 {
		return
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
}

// SetQuantity replaces the quantity of itemID in place, clamped to
// MaxQuantity. A quantity of zero or less removes the entry. Unknown IDs are
// ignored.
func (l *Ledger) SetQuantity(itemID uint, quantity int) {
	if quantity <= 0 {
		l.Remove(itemID)
		return
	}

	if i := l.indexOf(itemID); i >= 0 {
		l.entries[i].Quantity = min(quantity, MaxQuantity)
	}
}

// Clear empties the ledger
func (l *Ledger) Clear() {
	l.entries = []Entry{}
}

// Total returns the sum of price x quantity over all entries
func (l *Ledger) Total() int64 {
	var total int64
	for _, e := range l.entries {
		total = addMoney(total, e.Subtotal())
	}
	return total
}

// Entries returns a copy of the entries in cart order
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of distinct items in the cart
func (l *Ledger) Len() int {
	return len(l.entries)
}

// IsEmpty reports whether the cart has no entries
func (l *Ledger) IsEmpty() bool {
	return len(l.entries) == 0
}

// Quantity returns the quantity held for itemID
func (l *Ledger) Quantity(itemID uint) (int, bool) {
	if i := l.indexOf(itemID); i >= 0 {
		return l.entries[i].Quantity, true
	}
	return 0, false
}

func (l *Ledger) indexOf(itemID uint) int {
	for i := range l.entries {
		if l.entries[i].Item.ID == itemID {
			return i
		}
	}
	return -1
}
