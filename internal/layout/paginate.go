package layout

// Paginator decides when content moves to a new page. It holds no cursor of
// its own: callers thread a Cursor value through Reserve and Advance.
type Paginator struct {
	Top   float64 // y of the first line on a fresh page
	Limit float64 // page height minus the bottom margin
}

// NewPaginator builds a Paginator from the page geometry
func NewPaginator(cfg Config) Paginator {
	return Paginator{Top: cfg.MarginTop, Limit: cfg.BreakLimit()}
}

// Start returns the cursor at the top of the first page
func (p Paginator) Start() Cursor {
	return Cursor{Y: p.Top}
}

// Reserve makes sure space units fit below c. If they do not, the returned
// cursor sits at the top of the next page and broke is true.
func (p Paginator) Reserve(c Cursor, space float64) (next Cursor, broke bool) {
	if space > 0 && c.Y+space > p.Limit {
		return Cursor{Y: p.Top, Page: c.Page + 1}, true
	}
	return c, false
}

// Advance moves the cursor down by dy
func (p Paginator) Advance(c Cursor, dy float64) Cursor {
	if dy > 0 {
		c.Y += dy
	}
	return c
}

// Step is a single placement request: the room to reserve before placing and
// the height consumed afterwards.
type Step struct {
	Role        LineRole
	SpaceNeeded float64
	Height      float64
}

// Placement is where a Step landed
type Placement struct {
	Step
	Cursor Cursor // position the step was placed at
	Broke  bool   // a page break preceded this step
}

// Run folds steps over c from left to right and reports each placement
func (p Paginator) Run(c Cursor, steps []Step) ([]Placement, Cursor) {
	out := make([]Placement, 0, len(steps))
	for _, s := range steps {
		var broke bool
		c, broke = p.Reserve(c, s.SpaceNeeded)
		out = append(out, Placement{Step: s, Cursor: c, Broke: broke})
		c = p.Advance(c, s.Height)
	}
	return out, c
}
