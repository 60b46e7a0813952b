package engine

import (
	"math"
	"testing"
)

func TestWilsonIntervalBounds(t *testing.T) {
	cases := []struct {
		successes, trials int
	}{
		{0, 10}, {10, 10}, {7, 10}, {1, 2}, {50, 100},
	}
	for _, c := range cases {
		lower, upper := WilsonInterval(c.successes, c.trials, 0.95)
		if lower < 0 || upper > 1 {
			t.Fatalf("interval (%v, %v) for %d/%d escapes [0,1]", lower, upper, c.successes, c.trials)
		}
		if lower > upper {
			t.Fatalf("lower %v exceeds upper %v for %d/%d", lower, upper, c.successes, c.trials)
		}
		p := float64(c.successes) / float64(c.trials)
		if p < lower || p > upper {
			t.Fatalf("point estimate %v outside interval (%v, %v)", p, lower, upper)
		}
	}
}

func TestWilsonIntervalZeroTrials(t *testing.T) {
	lower, upper := WilsonInterval(0, 0, 0.95)
	if lower != 0 || upper != 0 {
		t.Fatalf("expected degenerate (0, 0) interval, got (%v, %v)", lower, upper)
	}
}

func TestWilsonIntervalNarrowsWithSample(t *testing.T) {
	smallLower, smallUpper := WilsonInterval(7, 10, 0.95)
	largeLower, largeUpper := WilsonInterval(700, 1000, 0.95)
	if (largeUpper - largeLower) >= (smallUpper - smallLower) {
		t.Fatalf("interval should narrow as trials grow")
	}
}

func TestBinomialTestZeroTrials(t *testing.T) {
	if p := BinomialTest(0, 0, 0.5); p != 1 {
		t.Fatalf("expected p-value 1 for zero trials, got %v", p)
	}
}

func TestBinomialTestBalanced(t *testing.T) {
	// 5/10 is exactly the null; the two-sided p-value must be 1.
	p := BinomialTest(5, 10, 0.5)
	if math.Abs(p-1) > 1e-9 {
		t.Fatalf("expected p-value 1 for balanced outcome, got %v", p)
	}
}

func TestBinomialTestExtreme(t *testing.T) {
	p := BinomialTest(20, 20, 0.5)
	// P(all 20 heads) two-sided = 2 * 0.5^20.
	want := 2 * math.Pow(0.5, 20)
	if math.Abs(p-want) > 1e-12 {
		t.Fatalf("expected p-value %v, got %v", want, p)
	}
	if p >= 0.05 {
		t.Fatalf("all-exceed outcome should be significant")
	}
}

func TestBinomialTestSymmetric(t *testing.T) {
	pLow := BinomialTest(2, 10, 0.5)
	pHigh := BinomialTest(8, 10, 0.5)
	if math.Abs(pLow-pHigh) > 1e-12 {
		t.Fatalf("test should be symmetric around the null: %v vs %v", pLow, pHigh)
	}
}
