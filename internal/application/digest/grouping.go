package digest

// Runs splits items into maximal runs of consecutive items sharing a key.
// Order is preserved and every item lands in exactly one run. Equal keys that
// are not adjacent start separate runs.
func Runs[T any, K comparable](items []T, key func(T) K) [][]T {
	if len(items) == 0 {
		return nil
	}

	var runs [][]T
	start := 0
	current := key(items[0])
	for i := 1; i < len(items); i++ {
		k := key(items[i])
		if k == current {
			continue
		}
		runs = append(runs, items[start:i:i])
		start, current = i, k
	}
	return append(runs, items[start:len(items):len(items)])
}

// FoldRuns renders each run of items with fold and concatenates the results.
func FoldRuns[T any, K comparable](items []T, key func(T) K, fold func(run []T) string) string {
	var out []byte
	for _, run := range Runs(items, key) {
		out = append(out, fold(run)...)
	}
	return string(out)
}
