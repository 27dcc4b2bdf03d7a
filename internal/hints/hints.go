// Package hints maps cipher pattern identifiers to player-facing hint text.
package hints

import (
	"sort"

	"github.com/samber/lo"
)

// Fallback is returned for pattern identifiers with no entry
const Fallback = "Hmm, this pattern is so tricky, even I'm stumped for a hint!"

var defaultHints = map[string]string{
	"alternating_shift_2_minus_2":          "It's a dance of 'two steps forward, two steps back!' Check the rhythm of the letters.",
	"vowel_consonant_opposite_shift":       "Vowels are going one way, consonants are marching to a different beat. Which direction for which?",
	"position_doubling_shift":              "Each letter's position got an upgrade – it's twice as important! Think about its spot in the word.",
	"odd_even_position_shift":              "Some letters are moving one way, others another, all based on if they're in an 'odd' or 'even' spot. Are you an oddball or an even-steven?",
	"reverse_alphabet_substitution":        "It's a full-alphabet flip! A's become Z's, B's become Y's. Like looking in a mirror!",
	"position_plus_letter_shift":           "The letters are getting a boost based on where they stand, plus a little extra for good measure!",
	"vowel_boost_shift":                    "Vowels got a massive power-up, while consonants just got a tiny nudge. Think 'vowel vortex'!",
	"cumulative_position_shift":            "Each letter's shift is like a snowball rolling downhill – it just keeps adding up from previous positions!",
	"prime_position_shift":                 "Only the cool kids, the prime numbers (2, 3, 5, 7...), are dictating the shifts here!",
	"alternating_sign_shift":               "It's a zig-zag! The shift amount grows, but the direction keeps flipping back and forth.",
	"letter_pair_swap":                     "Looks like some letters got a bit confused and swapped dance partners. Check for couples who switched!",
	"reverse_alphabet_cipher":              "A classic! Each letter decided to become its exact opposite in the alphabet. Total flip-flop!",
	"vowel_swap_0_2":                       "Hold on, did the first and third *vowels* just switch seats? Only if they're actually vowels, of course!",
	"double_index_mod_26":                  "Double the letter's secret number, then wrap it like a present around the alphabet!",
	"consonant_reverse_reflection_old":     "Only the consonants are doing the alphabet mirror trick; vowels are just chilling.",
	"position_multiply_by_3":               "Each letter's secret number got multiplied by its position. Hope it didn't break the alphabet!",
	"first_last_swap":                      "Simple but effective: the first and last letters played musical chairs!",
	"vowel_forward_2_consonant_backward_1": "Vowels skip two steps forward, but consonants are taking one step back. A little dance!",
	"middle_three_reverse":                 "The party in the middle just got a little wild – the three central letters spun around!",
	"constant_multiply_by_2":               "Yep, it's the old 'double the letter's numerical value and loop the alphabet' trick again!",
	"alphabet_reflect_by_position":         "Some letters are looking at their reflection in the alphabet, but only if they're in the 'odd' spots!",
	"consonant_double_vowel_single_shift":  "Consonants are taking two steps forward, while vowels are just taking one. Slow and steady wins the race for vowels!",
	"fibonacci_shift":                      "These shifts are based on a famous sequence of numbers: 1, 1, 2, 3, 5... Can you find the pattern within the pattern?",
	"character_order_reverse":              "Someone just threw the letters into a blender and sorted them backwards. Think alphabetical, but inverted!",
}

// Table is a read-only pattern-to-hint lookup
type Table struct {
	hints    map[string]string
	fallback string
}

// NewTable returns the built-in hint table
func NewTable() *Table {
	return &Table{hints: defaultHints, fallback: Fallback}
}

// Hint returns the hint for patternID, or the fallback text
func (t *Table) Hint(patternID string) string {
	if h, ok := t.hints[patternID]; ok {
		return h
	}
	return t.fallback
}

// Patterns lists the known pattern identifiers in sorted order
func (t *Table) Patterns() []string {
	ids := lo.Keys(t.hints)
	sort.Strings(ids)
	return ids
}
