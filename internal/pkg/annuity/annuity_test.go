package annuity

import "testing"

func TestMonthlyPayment(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		term      int
		expected  float64
	}{
		{"one year at 12 percent", 100000, 12, 12, 8884.88},
		{"five years at 6 percent", 50000, 6, 60, 966.64},
		{"zero rate splits evenly", 1200, 0, 12, 100},
		{"zero rate with remainder", 1000, 0, 3, 333.33},
		{"single month", 5000, 12, 1, 5050},
	}
	for _, tc := range cases {
		got := MonthlyPayment(tc.principal, tc.rate, tc.term)
		if got != tc.expected {
			t.Fatalf("%s: MonthlyPayment(%v, %v, %d) expected %v, got %v",
				tc.name, tc.principal, tc.rate, tc.term, tc.expected, got)
		}
	}
}

func TestMonthlyPayment_DegenerateInputs(t *testing.T) {
	if got := MonthlyPayment(0, 5, 12); got != 0 {
		t.Fatalf("zero principal: expected 0, got %v", got)
	}
	if got := MonthlyPayment(-100, 5, 12); got != 0 {
		t.Fatalf("negative principal: expected 0, got %v", got)
	}
	if got := MonthlyPayment(1000, 5, 0); got != 0 {
		t.Fatalf("zero term: expected 0, got %v", got)
	}
}
