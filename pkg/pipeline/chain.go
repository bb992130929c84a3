package pipeline

// stepKind tags a deferred pipeline step with the operation it replays.
type stepKind int

const (
	stepInit stepKind = iota
	stepStyle
	stepDraw
	stepGrid
	stepSave
)

// step is one deferred operation with its frozen arguments. Steps are
// immutable once appended.
type step struct {
	kind  stepKind
	init  Options
	style StyleOptions
	draw  DrawOptions
	cells CellRenderer
	grid  GridOptions
	path  string
	save  SaveOptions
}

// Chain is an ordered, deferred sequence of pipeline steps. Builder
// methods append a step and return the chain; Run executes the steps in
// append order by dispatching to the corresponding Session operation,
// with identical stage enforcement and error propagation.
//
// The chain holds no engine resources until Run. Re-running a chain
// replays its side effects: an Init step replayed against the live
// session produced by the previous run fails with STAGE_VIOLATION,
// exactly as a second Init would. This is intentional.
type Chain struct {
	steps []step
	sess  *Session
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Init appends a session-creating step.
func (c *Chain) Init(opts Options) *Chain {
	c.steps = append(c.steps, step{kind: stepInit, init: opts})
	return c
}

// Style appends a SetStyle step.
func (c *Chain) Style(opts StyleOptions) *Chain {
	c.steps = append(c.steps, step{kind: stepStyle, style: opts})
	return c
}

// Draw appends a Draw step.
func (c *Chain) Draw(opts DrawOptions) *Chain {
	c.steps = append(c.steps, step{kind: stepDraw, draw: opts})
	return c
}

// Grid appends a DrawGrid step.
func (c *Chain) Grid(cells CellRenderer, opts GridOptions) *Chain {
	c.steps = append(c.steps, step{kind: stepGrid, cells: cells, grid: opts})
	return c
}

// Save appends a Save step.
func (c *Chain) Save(pathOrStem string, opts SaveOptions) *Chain {
	c.steps = append(c.steps, step{kind: stepSave, path: pathOrStem, save: opts})
	return c
}

// Session returns the session produced by the last Run, or nil.
func (c *Chain) Session() *Session {
	return c.sess
}

// Run executes the chain's steps in append order. The session created
// by the Init step (or left over from a previous run) is returned along
// with the first error encountered; execution stops at that step.
func (c *Chain) Run() (*Session, error) {
	for _, st := range c.steps {
		if st.kind == stepInit {
			if c.sess != nil && c.sess.stage != StageUninitialized {
				return c.sess, stageViolation(opInit, c.sess.stage)
			}
			sess, err := Init(st.init)
			if err != nil {
				return c.sess, err
			}
			c.sess = sess
			continue
		}

		if c.sess == nil {
			return nil, stageViolation(st.op(), StageUninitialized)
		}

		var err error
		switch st.kind {
		case stepStyle:
			err = c.sess.SetStyle(st.style)
		case stepDraw:
			_, err = c.sess.Draw(st.draw)
		case stepGrid:
			_, err = c.sess.DrawGrid(st.cells, st.grid)
		case stepSave:
			_, err = c.sess.Save(st.path, st.save)
		}
		if err != nil {
			return c.sess, err
		}
	}
	return c.sess, nil
}

// op maps a step kind to the operation named in violation errors.
func (st step) op() op {
	switch st.kind {
	case stepInit:
		return opInit
	case stepStyle:
		return opSetStyle
	case stepDraw:
		return opDraw
	case stepGrid:
		return opDrawGrid
	case stepSave:
		return opSave
	}
	return opInit
}
