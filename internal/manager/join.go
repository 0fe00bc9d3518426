package manager

// GroupByKey indexes items by the key each one carries, keeping the input
// order inside every group.
func GroupByKey[T any, K comparable](items []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}

// JoinByKey zips child rows onto their parents by foreign key. combine is
// called once per parent, in parent order, with the children whose key
// matches that parent's key (nil when there are none).
func JoinByKey[P, C, R any, K comparable](
	parents []P,
	parentKey func(P) K,
	children []C,
	childKey func(C) K,
	combine func(P, []C) R,
) []R {
	groups := GroupByKey(children, childKey)
	joined := make([]R, 0, len(parents))
	for _, parent := range parents {
		joined = append(joined, combine(parent, groups[parentKey(parent)]))
	}
	return joined
}

// FilterByIDs keeps the items whose id is in ids, preserving item order.
// Every match is kept regardless of where it sits in items.
func FilterByIDs[T any](items []T, id func(T) int64, ids []int64) []T {
	wanted := make(map[int64]struct{}, len(ids))
	for _, i := range ids {
		wanted[i] = struct{}{}
	}
	filtered := make([]T, 0, len(ids))
	for _, item := range items {
		if _, ok := wanted[id(item)]; ok {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
