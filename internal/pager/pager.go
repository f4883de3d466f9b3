// Package pager slices an ordered label list into fixed-size pages.
package pager

// DefaultSize is the number of labels shown per page.
const DefaultSize = 18

// Result is one page of labels together with navigation flags.
type Result struct {
	Index       int
	Visible     []string
	HasPrevious bool
	HasNext     bool
}

// Page returns all[index*size : index*size+size], clipped to the list.
// An index past the end yields an empty page with HasNext false; a negative
// index yields an empty page with both flags false. size <= 0 uses DefaultSize.
func Page(all []string, index, size int) Result {
	if size <= 0 {
		size = DefaultSize
	}
	if index < 0 {
		return Result{Index: index}
	}

	res := Result{
		Index:       index,
		HasPrevious: index > 0,
	}
	if index >= Count(len(all), size) {
		return res
	}
	start := index * size
	end := min(start+size, len(all))
	res.Visible = all[start:end:end]
	res.HasNext = end < len(all)
	return res
}

// Count reports how many pages total items occupy.
func Count(total, size int) int {
	if size <= 0 {
		size = DefaultSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
