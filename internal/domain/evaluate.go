package domain

import "strings"

// WordLength is the fixed length of target words and guesses
const WordLength = 5

// Classification is the per-position feedback for a guessed letter
type Classification string

const (
	ClassUnset   Classification = ""        // No letter typed at this position
	ClassCorrect Classification = "CORRECT" // Right letter, right position
	ClassPresent Classification = "PRESENT" // Letter occurs somewhere in the target
	ClassAbsent  Classification = "ABSENT"  // Letter not in the target
)

// Evaluate classifies each position of guess against target.
//
// PRESENT is a plain membership test: a letter guessed twice may be marked
// PRESENT twice even when the target holds it once. Positions past the end
// of guess are UNSET.
func Evaluate(guess, target string) [WordLength]Classification {
	var out [WordLength]Classification

	for i := 0; i < WordLength && i < len(guess); i++ {
		c := guess[i]
		switch {
		case i < len(target) && c == target[i]:
			out[i] = ClassCorrect
		case strings.IndexByte(target, c) >= 0:
			out[i] = ClassPresent
		default:
			out[i] = ClassAbsent
		}
	}

	return out
}
