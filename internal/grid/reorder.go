package grid

// DropEvent is the outcome of one drag gesture: the dragged key and the key it
// was dropped on. Target is empty when the drop landed outside the list.
// Pointer, touch and keyboard sensors all reduce to this value.
type DropEvent struct {
	Source string
	Target string
}

// Reorder moves ev.Source to the position held by ev.Target and returns the
// new order. Indices are looked up in the full order list, so keys that are
// hidden or filtered out of the settings view keep their relative positions.
//
// The input is returned unchanged when the drop has no target, when source
// and target are the same key, or when either key is not in order.
func Reorder(order []string, ev DropEvent) []string {
	if ev.Target == "" || ev.Source == ev.Target {
		return order
	}
	from := indexOf(order, ev.Source)
	to := indexOf(order, ev.Target)
	if from < 0 || to < 0 {
		return order
	}
	return move(order, from, to)
}

// move removes the element at from and reinserts it at index to of the
// shortened list.
func move(list []string, from, to int) []string {
	out := make([]string, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	item := list[from]
	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = item
	return out
}

// PinLast moves key to the tail of order when it is present and not already
// last. The input is returned unchanged otherwise.
func PinLast(order []string, key string) []string {
	i := indexOf(order, key)
	if i < 0 || i == len(order)-1 {
		return order
	}
	out := make([]string, 0, len(order))
	out = append(out, order[:i]...)
	out = append(out, order[i+1:]...)
	return append(out, key)
}
