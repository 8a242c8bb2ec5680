// Package ledger tracks user-entered extra payments.
//
// The list is only ever changed through Reduce (or Ledger.Dispatch), which
// returns a new slice and leaves the previous state untouched.
package ledger

import (
	"fmt"
	"sort"
	"strings"
)

// Repeat is how often an extra payment recurs. The ordinal order is also the
// secondary display sort key.
type Repeat int

const (
	Once Repeat = iota
	EveryOtherYear
	Yearly
	TwiceYearly
	Quarterly
	Monthly
)

// Repeats lists every Repeat value in ordinal order.
var Repeats = []Repeat{Once, EveryOtherYear, Yearly, TwiceYearly, Quarterly, Monthly}

var repeatLabels = map[Repeat]string{
	Once:           "Once",
	EveryOtherYear: "Every other year",
	Yearly:         "Yearly",
	TwiceYearly:    "Twice Yearly",
	Quarterly:      "Quarterly",
	Monthly:        "Monthly",
}

func (r Repeat) String() string {
	if s, ok := repeatLabels[r]; ok {
		return s
	}
	return fmt.Sprintf("Repeat(%d)", int(r))
}

// IntervalMonths is the number of months between occurrences, 0 for Once.
func (r Repeat) IntervalMonths() int {
	switch r {
	case EveryOtherYear:
		return 24
	case Yearly:
		return 12
	case TwiceYearly:
		return 6
	case Quarterly:
		return 3
	case Monthly:
		return 1
	default:
		return 0
	}
}

// MarshalText encodes the repeat as its display label.
func (r Repeat) MarshalText() ([]byte, error) {
	if _, ok := repeatLabels[r]; !ok {
		return nil, fmt.Errorf("unknown repeat %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText accepts anything ParseRepeat accepts.
func (r *Repeat) UnmarshalText(b []byte) error {
	v, err := ParseRepeat(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRepeat accepts a display label ("Every other year") or a kebab/snake
// spelling ("every-other-year", "twice_yearly"), case-insensitively.
func ParseRepeat(s string) (Repeat, error) {
	norm := normalize(s)
	for _, r := range Repeats {
		if normalize(r.String()) == norm {
			return r, nil
		}
	}
	return Once, fmt.Errorf("unknown repeat %q", s)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// Payment is one extra payment. StartOffset counts months from now.
type Payment struct {
	ID          int     `json:"id" yaml:"id"`
	Amount      float64 `json:"amount" yaml:"amount"`
	StartOffset int     `json:"start_offset" yaml:"start_offset"`
	Repeat      Repeat  `json:"repeat" yaml:"repeat"`
}

// OccursAt reports whether the payment is due at the given 0-based offset.
func (p Payment) OccursAt(offset int) bool {
	if offset < p.StartOffset {
		return false
	}
	interval := p.Repeat.IntervalMonths()
	if interval == 0 {
		return offset == p.StartOffset
	}
	return (offset-p.StartOffset)%interval == 0
}

// Form bounds for entering a payment.
const (
	MinAmount      = 100
	MaxAmount      = 10000
	AmountStep     = 100
	MinStartOffset = 0
	MaxStartOffset = 360
)

// ActionKind selects the reducer branch.
type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionEdit   ActionKind = "edit"
	ActionRemove ActionKind = "remove"
)

// Action is a single ledger change. ID targets edit/remove; Payload carries
// the new record for add/edit.
type Action struct {
	Kind    ActionKind
	ID      int
	Payload *Payment
}

// Add builds an add action.
func Add(p Payment) Action { return Action{Kind: ActionAdd, Payload: &p} }

// Edit builds an edit action replacing the record with p.ID.
func Edit(p Payment) Action { return Action{Kind: ActionEdit, ID: p.ID, Payload: &p} }

// Remove builds a remove action.
func Remove(id int) Action { return Action{Kind: ActionRemove, ID: id} }

// Reduce applies a to state and returns the resulting list. state is never
// modified. Actions that cannot apply (zero or unknown id, missing payload,
// unknown kind) return state unchanged.
func Reduce(state []Payment, a Action) []Payment {
	switch a.Kind {
	case ActionRemove:
		idx := indexOf(state, a.ID)
		if a.ID == 0 || idx < 0 {
			return state
		}
		out := make([]Payment, 0, len(state)-1)
		out = append(out, state[:idx]...)
		return append(out, state[idx+1:]...)

	case ActionEdit:
		idx := indexOf(state, a.ID)
		if a.ID == 0 || idx < 0 || a.Payload == nil {
			return state
		}
		out := make([]Payment, len(state))
		copy(out, state)
		out[idx] = *a.Payload
		return out

	case ActionAdd:
		if a.Payload == nil {
			return state
		}
		out := make([]Payment, len(state), len(state)+1)
		copy(out, state)
		return append(out, *a.Payload)
	}
	return state
}

func indexOf(state []Payment, id int) int {
	for i, p := range state {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Sorted returns a display-ordered copy: start offset, then repeat ordinal,
// then amount, all ascending.
func Sorted(payments []Payment) []Payment {
	out := make([]Payment, len(payments))
	copy(out, payments)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.StartOffset != b.StartOffset {
			return a.StartOffset < b.StartOffset
		}
		if a.Repeat != b.Repeat {
			return a.Repeat < b.Repeat
		}
		return a.Amount < b.Amount
	})
	return out
}

// Schedule sums every payment due at an offset. It satisfies the
// amortization extras interface.
type Schedule []Payment

// AmountDue returns the total of all payments occurring at offset.
func (s Schedule) AmountDue(offset int) float64 {
	var total float64
	for _, p := range s {
		if p.OccursAt(offset) {
			total += p.Amount
		}
	}
	return total
}

// IDAllocator hands out increasing ids. The zero value starts at 1.
type IDAllocator struct {
	last int
}

// Next returns a fresh id.
func (a *IDAllocator) Next() int {
	a.last++
	return a.last
}

// Observe makes sure future ids are greater than id.
func (a *IDAllocator) Observe(id int) {
	if id > a.last {
		a.last = id
	}
}

// Ledger couples the payment list with the allocator that numbers it.
// It is a value: Dispatch returns a new Ledger.
type Ledger struct {
	payments []Payment
	ids      IDAllocator
}

// New builds a ledger from existing payments. Payments without an id, or
// with an id already taken by an earlier payment, get a fresh one.
func New(payments []Payment) Ledger {
	var l Ledger
	for _, p := range payments {
		if p.ID > 0 {
			l.ids.Observe(p.ID)
		}
	}
	for _, p := range payments {
		l = l.Dispatch(Add(p))
	}
	return l
}

// Dispatch applies a and returns the new ledger. Add payloads are numbered
// by the ledger's allocator unless they carry an id no record uses yet.
// Edits always keep the id of the record they replace.
func (l Ledger) Dispatch(a Action) Ledger {
	next := l
	if a.Payload != nil {
		p := *a.Payload
		switch a.Kind {
		case ActionAdd:
			if p.ID <= 0 || indexOf(l.payments, p.ID) >= 0 {
				p.ID = next.ids.Next()
			} else {
				next.ids.Observe(p.ID)
			}
		case ActionEdit:
			p.ID = a.ID
		}
		a.Payload = &p
	}
	next.payments = Reduce(l.payments, a)
	return next
}

// Payments returns the payments in insertion order.
func (l Ledger) Payments() []Payment {
	out := make([]Payment, len(l.payments))
	copy(out, l.payments)
	return out
}

// Sorted returns the payments in display order.
func (l Ledger) Sorted() []Payment { return Sorted(l.payments) }

// Len is the number of payments.
func (l Ledger) Len() int { return len(l.payments) }

// Get looks up a payment by id.
func (l Ledger) Get(id int) (Payment, bool) {
	if i := indexOf(l.payments, id); i >= 0 {
		return l.payments[i], true
	}
	return Payment{}, false
}

// AmountDue makes a Ledger usable as an extras schedule.
func (l Ledger) AmountDue(offset int) float64 {
	return Schedule(l.payments).AmountDue(offset)
}
