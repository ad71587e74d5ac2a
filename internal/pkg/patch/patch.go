package patch

// Apply copies *src into *dst when src is set and reports whether it did.
// A nil src leaves the current value in place.
func Apply[T any](dst *T, src *T) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}
