package capgains

import (
	"testing"
)

func TestProcessor_Process(t *testing.T) {
	testCases := []struct {
		name string
		ops  []Operation
		want []Result
	}{
		{
			name: "buy then sell at the same price",
			ops: []Operation{
				NewBuy(Q(10), M(100)),
				NewSell(Q(10), M(100)),
			},
			want: taxes(0, 0),
		},
		{
			name: "case #1 small sales",
			ops: []Operation{
				NewBuy(Q(100), M(10)),
				NewSell(Q(50), M(15)),
				NewSell(Q(50), M(15)),
			},
			want: taxes(0, 0, 0),
		},
		{
			name: "case #2 profit then loss",
			ops: []Operation{
				NewBuy(Q(10000), M(10)),
				NewSell(Q(5000), M(20)),
				NewSell(Q(5000), M(5)),
			},
			want: taxes(0, 10000, 0),
		},
		{
			name: "case #3 loss then profit",
			ops: []Operation{
				NewBuy(Q(10000), M(10)),
				NewSell(Q(5000), M(5)),
				NewSell(Q(3000), M(20)),
			},
			want: taxes(0, 0, 1000),
		},
		{
			name: "case #4 weighted average",
			ops: []Operation{
				NewBuy(Q(10000), M(10)),
				NewBuy(Q(5000), M(25)),
				NewSell(Q(10000), M(15)),
			},
			want: taxes(0, 0, 0),
		},
		{
			name: "case #5 weighted average then profit",
			ops: []Operation{
				NewBuy(Q(10000), M(10)),
				NewBuy(Q(5000), M(25)),
				NewSell(Q(10000), M(15)),
				NewSell(Q(5000), M(25)),
			},
			want: taxes(0, 0, 0, 10000),
		},
		{
			name: "case #6 loss deducted over several sales",
			ops: []Operation{
				NewBuy(Q(10000), M(10)),
				NewSell(Q(5000), M(2)),
				NewSell(Q(2000), M(20)),
				NewSell(Q(2000), M(20)),
				NewSell(Q(1000), M(25)),
			},
			want: taxes(0, 0, 0, 0, 3000),
		},
		{
			name: "case #7 buying again after selling everything",
			ops: []Operation{
				NewBuy(Q(10000), M(10)),
				NewSell(Q(5000), M(2)),
				NewSell(Q(2000), M(20)),
				NewSell(Q(2000), M(20)),
				NewSell(Q(1000), M(25)),
				NewBuy(Q(10000), M(20)),
				NewSell(Q(5000), M(15)),
				NewSell(Q(4350), M(30)),
				NewSell(Q(650), M(30)),
			},
			want: taxes(0, 0, 0, 0, 3000, 0, 0, 3700, 0),
		},
		{
			name: "case #8 large profits",
			ops: []Operation{
				NewBuy(Q(10000), M(10)),
				NewSell(Q(10000), M(50)),
				NewBuy(Q(10000), M(20)),
				NewSell(Q(10000), M(50)),
			},
			want: taxes(0, 80000, 0, 60000),
		},
		{
			name: "case #9 exempt sale keeps the loss",
			ops: []Operation{
				NewBuy(Q(10), M(5000)),
				NewSell(Q(5), M(4000)),
				NewBuy(Q(5), M(15000)),
				NewBuy(Q(2), M(4000)),
				NewBuy(Q(2), M(23000)),
				NewSell(Q(1), M(20000)),
				NewSell(Q(10), M(12000)),
				NewSell(Q(3), M(15000)),
			},
			want: taxes(0, 0, 0, 0, 0, 0, 1000, 2400),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewProcessor(NewPosition()).Process(tc.ops)
			assertResults(t, got, tc.want)
		})
	}
}

func TestProcessor_EmptyBatch(t *testing.T) {
	p := NewProcessor(NewPosition())
	got := p.Process(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Process(nil) = %#v, want an empty slice", got)
	}

	pos := p.Position()
	if !pos.Quantity.IsZero() || !pos.AverageCost.IsZero() || !pos.LossCarryForward.IsZero() {
		t.Errorf("Position() = %v, want a fresh position", pos)
	}
}

func TestProcessor_OrderPreservation(t *testing.T) {
	var ops []Operation
	for i := 1; i <= 50; i++ {
		ops = append(ops, NewBuy(Q(i), M(i)), NewSell(Q(i), M(i*1000)))
	}
	got := Calculate(ops)
	if len(got) != len(ops) {
		t.Fatalf("Calculate() returned %d results, want %d", len(got), len(ops))
	}

	// replaying one operation at a time must give the same results.
	p := NewProcessor(NewPosition())
	for i, op := range ops {
		if want := p.Apply(op); !got[i].Tax.Equal(want.Tax) {
			t.Errorf("result #%d = %v, want %v", i, got[i].Tax, want.Tax)
		}
	}
}

func TestProcessor_FinalPosition(t *testing.T) {
	p := NewProcessor(&Position{Quantity: Q(100), AverageCost: M(200), LossCarryForward: M(1000)})
	p.Process([]Operation{NewSell(Q(50), M(30))})

	pos := p.Position()
	if got, want := pos.Quantity, Q(50); !got.Equal(want) {
		t.Errorf("Quantity = %v, want %v", got, want)
	}
	if got, want := pos.AverageCost, M(200); !got.Equal(want) {
		t.Errorf("AverageCost = %v, want %v", got, want)
	}
	if got, want := pos.LossCarryForward, M(9500); !got.Equal(want) {
		t.Errorf("LossCarryForward = %v, want %v", got, want)
	}
}

func TestProcessor_ResultsIsLazy(t *testing.T) {
	p := NewProcessor(NewPosition())
	ops := []Operation{
		NewBuy(Q(10), M(10)),
		NewBuy(Q(10), M(20)),
		NewBuy(Q(10), M(30)),
	}

	n := 0
	for range p.Results(ops) {
		n++
		if n == 2 {
			break
		}
	}
	if got, want := p.Position().Quantity, Q(20); !got.Equal(want) {
		t.Errorf("Quantity after 2 results = %v, want %v", got, want)
	}
}

func TestProcessor_UnknownOperationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Apply() with an unknown operation type should panic")
		}
	}()
	NewProcessor(NewPosition()).Apply(Operation{Type: "split", Quantity: Q(1), UnitCost: M(1)})
}
