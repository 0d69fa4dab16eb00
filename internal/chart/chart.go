package chart

import "github.com/rileyhilliard/hwmon/internal/logger"

// Chart is a retained-mode chart bound to one surface of a fixed size.
// The caller mutates Model() in place and then calls Update.
type Chart struct {
	surface Surface
	size    Size
	opts    Options
	model   *Model
	log     logger.Logger
	last    []Instruction
}

// New creates a chart with an empty model.
func New(surface Surface, size Size, opts Options) *Chart {
	return &Chart{
		surface: surface,
		size:    size,
		opts:    opts,
		model:   &Model{},
		log:     logger.Default(),
	}
}

// SetLogger replaces the logger used for model warnings.
func (c *Chart) SetLogger(l logger.Logger) {
	c.log = l
}

// Model returns the mutable model drawn by Update.
func (c *Chart) Model() *Model { return c.model }

// Size returns the fixed surface size.
func (c *Chart) Size() Size { return c.size }

// Surface returns the surface the chart draws on.
func (c *Chart) Surface() Surface { return c.surface }

// Last returns the instructions from the most recent Update.
func (c *Chart) Last() []Instruction { return c.last }

// Update redraws the current model onto the surface and returns what was drawn.
func (c *Chart) Update() []Instruction {
	for _, err := range Validate(c.model) {
		c.log.Warn("%v", err)
	}
	c.last = Render(c.model, c.size, c.opts)
	if c.surface != nil {
		Replay(c.surface, c.last)
	}
	return c.last
}
