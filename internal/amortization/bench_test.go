package amortization

import "testing"

func BenchmarkSimulate(b *testing.B) {
	p := defaultLoan()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := Simulate(p)
		if h.MonthCount == 0 {
			b.Fatal("empty history")
		}
	}
}

func BenchmarkSimulateWithExtras(b *testing.B) {
	p := defaultLoan()
	sched := extrasFunc(func(offset int) float64 {
		if offset%12 == 0 {
			return 1000
		}
		return 0
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := SimulateWithExtras(p, sched)
		if h.MonthCount == 0 {
			b.Fatal("empty history")
		}
	}
}
