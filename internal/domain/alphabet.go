package domain

import "github.com/samber/lo"

// AlphabetEntry pairs a letter with its zero-based alphabet index
type AlphabetEntry struct {
	Letter string `json:"letter"`
	Value  int    `json:"value"`
}

// AlphabetReference returns the A=0 ... Z=25 table shown as a solving aid
func AlphabetReference() []AlphabetEntry {
	return lo.Times(26, func(i int) AlphabetEntry {
		return AlphabetEntry{Letter: string(rune('A' + i)), Value: i}
	})
}
