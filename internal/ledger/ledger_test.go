package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Payment {
	return []Payment{
		{ID: 1, Amount: 500, StartOffset: 12, Repeat: Yearly},
		{ID: 2, Amount: 100, StartOffset: 0, Repeat: Monthly},
		{ID: 3, Amount: 1000, StartOffset: 0, Repeat: Once},
	}
}

func TestReduceRemove(t *testing.T) {
	t.Parallel()
	state := sample()

	out := Reduce(state, Remove(2))
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, 3, out[1].ID)
	assert.Len(t, state, 3, "input must not be modified")
	assert.Equal(t, 2, state[1].ID)
}

func TestReduceNoOps(t *testing.T) {
	t.Parallel()
	state := sample()
	p := Payment{ID: 9, Amount: 200}

	cases := map[string]Action{
		"remove zero id":     Remove(0),
		"remove missing id":  Remove(42),
		"edit zero id":       {Kind: ActionEdit, Payload: &p},
		"edit missing id":    Edit(p),
		"edit without value": {Kind: ActionEdit, ID: 1},
		"add without value":  {Kind: ActionAdd},
		"unknown kind":       {Kind: "rename", ID: 1, Payload: &p},
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, state, Reduce(state, a))
		})
	}
}

func TestReduceEditAndAdd(t *testing.T) {
	t.Parallel()
	state := sample()

	edited := Reduce(state, Edit(Payment{ID: 1, Amount: 900, StartOffset: 6, Repeat: Quarterly}))
	require.Len(t, edited, 3)
	assert.Equal(t, 900.0, edited[0].Amount)
	assert.Equal(t, Quarterly, edited[0].Repeat)
	assert.Equal(t, 500.0, state[0].Amount)

	added := Reduce(state, Add(Payment{ID: 4, Amount: 300}))
	require.Len(t, added, 4)
	assert.Equal(t, 4, added[3].ID)
	assert.Len(t, state, 3)
}

func TestSortedOrder(t *testing.T) {
	t.Parallel()
	in := []Payment{
		{ID: 1, Amount: 500, StartOffset: 12, Repeat: Yearly},
		{ID: 2, Amount: 300, StartOffset: 0, Repeat: Monthly},
		{ID: 3, Amount: 200, StartOffset: 0, Repeat: Monthly},
		{ID: 4, Amount: 1000, StartOffset: 0, Repeat: Once},
	}
	out := Sorted(in)

	var ids []int
	for _, p := range out {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{4, 3, 2, 1}, ids)
	assert.Equal(t, 1, in[0].ID, "input order is preserved")
}

func TestLedgerDispatchAllocatesIDs(t *testing.T) {
	t.Parallel()
	var l Ledger
	l = l.Dispatch(Add(Payment{Amount: 100}))
	l = l.Dispatch(Add(Payment{Amount: 200}))
	before := l
	l = l.Dispatch(Remove(1))
	l = l.Dispatch(Add(Payment{Amount: 300}))

	ps := l.Payments()
	require.Len(t, ps, 2)
	assert.Equal(t, 2, ps[0].ID)
	assert.Equal(t, 3, ps[1].ID, "ids are never reused")
	assert.Equal(t, 2, before.Len())

	_, ok := l.Get(1)
	assert.False(t, ok)
}

func TestNewObservesExistingIDs(t *testing.T) {
	t.Parallel()
	l := New([]Payment{{ID: 7, Amount: 100}, {Amount: 200}})
	ps := l.Payments()
	require.Len(t, ps, 2)
	assert.Equal(t, 7, ps[0].ID)
	assert.Equal(t, 8, ps[1].ID)
}

func TestOccursAtAndSchedule(t *testing.T) {
	t.Parallel()
	once := Payment{Amount: 1000, StartOffset: 3, Repeat: Once}
	assert.False(t, once.OccursAt(2))
	assert.True(t, once.OccursAt(3))
	assert.False(t, once.OccursAt(15))

	yearly := Payment{Amount: 500, StartOffset: 2, Repeat: Yearly}
	assert.True(t, yearly.OccursAt(14))
	assert.False(t, yearly.OccursAt(13))

	other := Payment{Amount: 50, StartOffset: 0, Repeat: EveryOtherYear}
	assert.True(t, other.OccursAt(48))
	assert.False(t, other.OccursAt(12))

	s := Schedule{once, yearly, {Amount: 25, Repeat: Monthly}}
	assert.Equal(t, 1025.0, s.AmountDue(3))
	assert.Equal(t, 525.0, s.AmountDue(14))
	assert.Equal(t, 25.0, s.AmountDue(5))
}

func TestRepeatLabelsAndParsing(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Every other year", EveryOtherYear.String())
	assert.Equal(t, "Twice Yearly", TwiceYearly.String())

	for _, in := range []string{"twice-yearly", "Twice Yearly", "TWICE_YEARLY"} {
		r, err := ParseRepeat(in)
		require.NoError(t, err, in)
		assert.Equal(t, TwiceYearly, r)
	}
	_, err := ParseRepeat("fortnightly")
	assert.Error(t, err)

	data, err := json.Marshal(Payment{ID: 1, Amount: 100, Repeat: Quarterly})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"repeat":"Quarterly"`)
}

func TestStartDate(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	y, m := StartDate(now, 13)
	assert.Equal(t, 2027, y)
	assert.Equal(t, time.April, m)

	dec := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	y, m = StartDate(dec, 1)
	assert.Equal(t, 2027, y)
	assert.Equal(t, time.January, m)

	nov := time.Date(2026, time.November, 30, 0, 0, 0, 0, time.UTC)
	y, m = StartDate(nov, 13)
	assert.Equal(t, 2027, y)
	assert.Equal(t, time.December, m)
}

func TestDescribeStart(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Now", DescribeStart(now, 0))
	assert.Equal(t, "In 1 month", DescribeStart(now, 1))
	assert.Equal(t, "January 2027", DescribeStart(now, 3))
	assert.Equal(t, "November 2027", DescribeStart(now, 13))
}

func TestDispatchAddRenumbersTakenID(t *testing.T) {
	t.Parallel()
	var l Ledger
	l = l.Dispatch(Add(Payment{Amount: 100}))
	l = l.Dispatch(Add(Payment{ID: 1, Amount: 200}))

	got := l.Payments()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, 200.0, got[1].Amount)

	l = l.Dispatch(Add(Payment{ID: 9, Amount: 300}))
	l = l.Dispatch(Add(Payment{Amount: 400}))
	ids := []int{}
	for _, p := range l.Payments() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 2, 9, 10}, ids)
}

func TestNewRenumbersDuplicateIDs(t *testing.T) {
	t.Parallel()
	l := New([]Payment{{ID: 5, Amount: 100}, {ID: 5, Amount: 200}, {Amount: 300}})

	got := l.Payments()
	require.Len(t, got, 3)
	assert.Equal(t, 5, got[0].ID)
	assert.Equal(t, 100.0, got[0].Amount)
	assert.Equal(t, 6, got[1].ID)
	assert.Equal(t, 7, got[2].ID)
}

func TestDispatchEditKeepsRecordID(t *testing.T) {
	t.Parallel()
	l := New([]Payment{{Amount: 100}, {Amount: 200}})

	edit := Edit(Payment{ID: 2, Amount: 700})
	edit.Payload.ID = 0
	l = l.Dispatch(edit)

	p, ok := l.Get(2)
	require.True(t, ok)
	assert.Equal(t, 700.0, p.Amount)

	l = l.Dispatch(Remove(2))
	assert.Equal(t, 1, l.Len())
	_, ok = l.Get(2)
	assert.False(t, ok)
}
