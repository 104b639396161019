package mutate

// Pair is an ordered pair of base word indexes.
type Pair struct {
	Left  int
	Right int
}

// Pairs returns every ordered pair of indexes into a list of n words. Both
// (i, j) and (j, i) are produced. (i, i) is included only when selfPairs is
// set. Fewer than two words yield no pairs.
func Pairs(n int, selfPairs bool) []Pair {
	if n < 2 {
		return nil
	}
	out := make([]Pair, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j && !selfPairs {
				continue
			}
			out = append(out, Pair{Left: i, Right: j})
		}
	}
	return out
}

// Concat emits left+right for every combination of the two variation sets.
func Concat(left, right []string, fn func(string) error) error {
	for _, l := range left {
		for _, r := range right {
			if err := fn(l + r); err != nil {
				return err
			}
		}
	}
	return nil
}
