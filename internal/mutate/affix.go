package mutate

import (
	"fmt"
	"strconv"
	"time"
)

const affixYears = 50

// DefaultSymbols is the symbol affix pool.
var DefaultSymbols = []string{"!", "@", "#", "$", "%", "^", "&", "*", "?", "_", "-"}

// AffixPools holds the numeric and symbol suffix pools.
type AffixPools struct {
	Numeric []string
	Symbols []string
}

// DefaultAffixPools returns pools anchored on the current year.
func DefaultAffixPools() *AffixPools {
	return NewAffixPools(time.Now().Year())
}

// NewAffixPools builds the numeric pool from the given reference year back
// fifty years (four and two digit forms) plus common short numbers.
func NewAffixPools(year int) *AffixPools {
	var numeric []string
	for y := year; y >= year-affixYears; y-- {
		numeric = append(numeric, strconv.Itoa(y))
	}
	for y := year; y >= year-affixYears; y-- {
		numeric = append(numeric, fmt.Sprintf("%02d", y%100))
	}
	for i := 0; i < 10; i++ {
		numeric = append(numeric, strconv.Itoa(i))
	}
	for i := 0; i < 10; i++ {
		numeric = append(numeric, "0"+strconv.Itoa(i))
	}
	numeric = append(numeric, "123", "12345")

	return &AffixPools{
		Numeric: uniqueStrings(numeric),
		Symbols: uniqueStrings(DefaultSymbols),
	}
}

// Size returns the number of distinct strings Apply produces for any input.
func (p *AffixPools) Size() int {
	n, s := len(p.Numeric), len(p.Symbols)
	return 1 + n + s + 2*n*s
}

// Apply returns s unmodified, s with every single suffix, and s with every
// numeric+symbol and symbol+numeric suffix chain.
func (p *AffixPools) Apply(s string) []string {
	out := make([]string, 0, p.Size())
	_ = p.Each(s, func(v string) error {
		out = append(out, v)
		return nil
	})
	return out
}

// Each streams the Apply set of s to fn, stopping at the first error.
func (p *AffixPools) Each(s string, fn func(string) error) error {
	if err := fn(s); err != nil {
		return err
	}
	for _, n := range p.Numeric {
		if err := fn(s + n); err != nil {
			return err
		}
	}
	for _, sym := range p.Symbols {
		if err := fn(s + sym); err != nil {
			return err
		}
	}
	for _, n := range p.Numeric {
		for _, sym := range p.Symbols {
			if err := fn(s + n + sym); err != nil {
				return err
			}
		}
	}
	for _, sym := range p.Symbols {
		for _, n := range p.Numeric {
			if err := fn(s + sym + n); err != nil {
				return err
			}
		}
	}
	return nil
}
