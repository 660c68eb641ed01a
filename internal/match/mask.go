package match

// matchMask matches name against a wildcard mask where '*' is any run of
// characters (including none) and '?' is exactly one character.
//
// This is a greedy two-cursor matcher with single-star backtracking, not a
// regex engine. On a mismatch it rewinds to the last '*' and lets that star
// swallow one more character, so the cost is linear amortized for typical
// filenames and O(len(name)*len(mask)) in the worst case.
func matchMask(name, mask []rune) bool {
	n, p := 0, 0
	star := -1  // index of the last '*' seen in mask
	resume := 0 // name index to resume from when backtracking to star

	for n < len(name) {
		switch {
		case p < len(mask) && (mask[p] == '?' || mask[p] == name[n]):
			n++
			p++
		case p < len(mask) && mask[p] == '*':
			star = p
			resume = n
			p++
		case star >= 0:
			resume++
			n = resume
			p = star + 1
		default:
			return false
		}
	}

	// Trailing stars match the empty rest
	for p < len(mask) && mask[p] == '*' {
		p++
	}
	return p == len(mask)
}
