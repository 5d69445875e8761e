package engine

// NiceMax rounds a bar chart's largest value up to a clean axis bound.
//
//	raw < 10    → raw + 1
//	raw < 100   → next multiple of 10
//	raw < 1000  → next multiple of 100
//	otherwise   → next multiple of 1000
//
// Negative input is treated as zero.
func NiceMax(raw int) int {
	if raw < 0 {
		raw = 0
	}
	switch {
	case raw < 10:
		return raw + 1
	case raw < 100:
		return ceilTo(raw, 10)
	case raw < 1000:
		return ceilTo(raw, 100)
	default:
		return ceilTo(raw, 1000)
	}
}

func ceilTo(v, step int) int {
	return (v + step - 1) / step * step
}

// TickValues returns count+1 evenly spaced values from 0 to max inclusive.
// A count below 1 is treated as DefaultTickCount.
func TickValues(max, count int) []float64 {
	if count < 1 {
		count = DefaultTickCount
	}
	ticks := make([]float64, count+1)
	for i := 0; i <= count; i++ {
		ticks[i] = float64(max) * float64(i) / float64(count)
	}
	ticks[count] = float64(max)
	return ticks
}
