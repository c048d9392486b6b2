package grid

// NormalizeOrder returns a permutation of keys that follows order as closely
// as possible: keys unknown to the descriptor set and repeats are dropped,
// keys missing from order are appended in descriptor order.
func NormalizeOrder(order, keys []string) []string {
	known := setOf(keys)
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range order {
		if !known[k] || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// Subsequence returns the keys of order that are members of visible, in
// order's sequence. The result is always a valid visibility list for order.
func Subsequence(order, visible []string) []string {
	in := setOf(visible)
	out := make([]string, 0, len(visible))
	for _, k := range order {
		if in[k] {
			out = append(out, k)
		}
	}
	return out
}

// IsPermutation reports whether order holds every key exactly once.
func IsPermutation(order, keys []string) bool {
	if len(order) != len(keys) {
		return false
	}
	want := setOf(keys)
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		if !want[k] || seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

// IsSubsequence reports whether visible is an ordered sub-sequence of order.
func IsSubsequence(visible, order []string) bool {
	i := 0
	for _, k := range order {
		if i < len(visible) && visible[i] == k {
			i++
		}
	}
	return i == len(visible)
}

func setOf(keys []string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

func indexOf(list []string, key string) int {
	for i, k := range list {
		if k == key {
			return i
		}
	}
	return -1
}

func without(list []string, drop map[string]bool) []string {
	out := make([]string, 0, len(list))
	for _, k := range list {
		if !drop[k] {
			out = append(out, k)
		}
	}
	return out
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clone(list []string) []string {
	if list == nil {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
