package geo

// Ratio computes Ratcliff/Obershelp similarity of two strings: twice the
// number of matching characters over the total length, where matches come
// from the longest common substring and, recursively, the pieces on either
// side of it. Range [0,1], 1 for equal strings.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	m := matching([]rune(a), []rune(b))
	return 2 * float64(m) / float64(len([]rune(a))+len([]rune(b)))
}

func matching(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matching(a[:ai], b[:bi]) +
		matching(a[ai+size:], b[bi+size:])
}

func longestMatch(a, b []rune) (ai, bi, size int) {
	// prev[j] is the match length ending at a[i-1], b[j-1].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
