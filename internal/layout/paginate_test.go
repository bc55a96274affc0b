package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginator_Reserve(t *testing.T) {
	p := NewPaginator(DefaultConfig())
	assert.Equal(t, 18.0, p.Top)
	assert.Equal(t, 277.0, p.Limit)

	t.Run("fits", func(t *testing.T) {
		c, broke := p.Reserve(Cursor{Y: 269}, 8)
		assert.False(t, broke)
		assert.Equal(t, Cursor{Y: 269}, c)
	})

	t.Run("overflows", func(t *testing.T) {
		c, broke := p.Reserve(Cursor{Y: 270, Page: 2}, 8)
		assert.True(t, broke)
		assert.Equal(t, Cursor{Y: 18, Page: 3}, c)
	})

	t.Run("zero space never breaks", func(t *testing.T) {
		c, broke := p.Reserve(Cursor{Y: 400}, 0)
		assert.False(t, broke)
		assert.Equal(t, 400.0, c.Y)
	})
}

func TestPaginator_Advance(t *testing.T) {
	p := NewPaginator(DefaultConfig())

	assert.Equal(t, 23.0, p.Advance(Cursor{Y: 18}, 5).Y)
	assert.Equal(t, 18.0, p.Advance(Cursor{Y: 18}, 0).Y)
	assert.Equal(t, 18.0, p.Advance(Cursor{Y: 18}, -3).Y)
}

func TestPaginator_Run(t *testing.T) {
	p := NewPaginator(DefaultConfig())
	steps := make([]Step, 60)
	for i := range steps {
		steps[i] = Step{Role: RoleBullet, SpaceNeeded: 8, Height: 5}
	}

	placed, end := p.Run(p.Start(), steps)
	require.Len(t, placed, 60)

	breaks := 0
	for i, pl := range placed {
		if pl.Broke {
			breaks++
			assert.Equal(t, 51, i)
			assert.Equal(t, 18.0, pl.Cursor.Y)
			assert.Equal(t, 1, pl.Cursor.Page)
		}
	}
	assert.Equal(t, 1, breaks)
	assert.InDelta(t, 18+5*50.0, placed[50].Cursor.Y, 1e-9)
	assert.Equal(t, 0, placed[50].Cursor.Page)
	assert.InDelta(t, 18+5*9.0, end.Y, 1e-9)
}

func TestPaginator_RunEmpty(t *testing.T) {
	p := NewPaginator(DefaultConfig())

	placed, end := p.Run(p.Start(), nil)

	assert.Empty(t, placed)
	assert.Equal(t, p.Start(), end)
}
