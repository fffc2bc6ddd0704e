package lattice

// IsPermutation reports whether order is a bijection on 0..n-1.
func IsPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Inverse returns the inverse permutation: Inverse(order)[order[k]] == k.
// order must be a permutation; check with [IsPermutation] first when unsure.
func Inverse(order []int) []int {
	inv := make([]int, len(order))
	for k, v := range order {
		inv[v] = k
	}
	return inv
}

// Identity returns the identity permutation of length n.
func Identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
