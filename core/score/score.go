// core/score/score.go
package score

// Accuracy is the fraction of equal positions over the shorter of the two
// sequences, compared character by character. Length differences beyond
// that prefix are not penalised.
func Accuracy(reference, repaired string) float64 {
	a, b := []rune(reference), []rune(repaired)
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	return float64(n-mismatches(a[:n], b[:n])) / float64(n)
}

// Changes counts differing characters over the shorter prefix.
func Changes(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := min(len(ra), len(rb))
	return mismatches(ra[:n], rb[:n])
}

// Percent converts a ratio to a percentage.
func Percent(ratio float64) float64 { return ratio * 100 }

func mismatches(a, b []rune) int {
	d := 0
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}
