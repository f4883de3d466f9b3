package pager

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("label-%03d", i)
	}
	return out
}

func TestPagesReassembleList(t *testing.T) {
	for _, total := range []int{0, 1, 17, 18, 19, 36, 73} {
		t.Run(fmt.Sprintf("total=%d", total), func(t *testing.T) {
			all := labels(total)
			pages := Count(total, DefaultSize)

			var joined []string
			for i := 0; i < pages; i++ {
				p := Page(all, i, DefaultSize)
				require.LessOrEqual(t, len(p.Visible), DefaultSize)
				require.NotEmpty(t, p.Visible)
				assert.Equal(t, i > 0, p.HasPrevious, "page %d", i)
				assert.Equal(t, i == pages-1, !p.HasNext, "page %d", i)
				joined = append(joined, p.Visible...)
			}
			if total == 0 {
				require.Empty(t, joined)
				return
			}
			require.Equal(t, all, joined)
		})
	}
}

func TestPageLastOfSeventyThree(t *testing.T) {
	all := labels(73)

	p := Page(all, 4, 18)
	require.Len(t, p.Visible, 1)
	assert.True(t, p.HasPrevious)
	assert.False(t, p.HasNext)

	p = Page(all, 3, 18)
	require.Len(t, p.Visible, 18)
	assert.True(t, p.HasNext)
}

func TestPageOutOfRange(t *testing.T) {
	all := labels(20)

	p := Page(all, 5, 18)
	assert.Empty(t, p.Visible)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrevious)

	p = Page(all, -1, 18)
	assert.Empty(t, p.Visible)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrevious)

	require.NotPanics(t, func() { Page(all, math.MaxInt, 18) })
	p = Page(all, math.MaxInt, 18)
	assert.Empty(t, p.Visible)
}

func TestPageDefaultSize(t *testing.T) {
	p := Page(labels(40), 0, 0)
	assert.Len(t, p.Visible, DefaultSize)
}

func TestPageDoesNotAliasInput(t *testing.T) {
	all := labels(30)
	p := Page(all, 0, 18)
	p.Visible = append(p.Visible, "extra")
	assert.Equal(t, "label-018", all[18])
}

func TestCount(t *testing.T) {
	assert.Equal(t, 0, Count(0, 18))
	assert.Equal(t, 1, Count(18, 18))
	assert.Equal(t, 2, Count(19, 18))
	assert.Equal(t, 5, Count(73, 18))
	assert.Equal(t, 5, Count(73, -3))
}
