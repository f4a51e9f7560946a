package effectchain

import (
	"errors"
	"fmt"

	"github.com/Jstxyn/Wavetable-Site/dsp/core"
	"github.com/Jstxyn/Wavetable-Site/dsp/effects"
	"github.com/Jstxyn/Wavetable-Site/dsp/wavetable"
)

// ErrUnknownEffect is returned when an operation references an effect
// id absent from the chain.
var ErrUnknownEffect = errors.New("unknown effect id")

// ErrUnknownParam is returned for parameter names an effect does not
// declare.
var ErrUnknownParam = errors.New("unknown effect parameter")

type node struct {
	id       string
	runtime  Runtime
	desc     Descriptor // ranges and defaults, fixed at build time
	params   Params
	bypassed bool
	applies  int // uncached stage executions, observable via ProcessCount
	cache    map[uint64]*wavetable.Wavetable
}

// Chain owns one session's effect pipeline: a fixed, ordered set of
// stages with mutable parameter values, bypass flags, and per-stage
// memo caches. It is not safe for concurrent use; the hosting session
// must serialize access.
type Chain struct {
	nodes []*node
	index map[string]*node
}

// New instantiates every registered effect, in registration order,
// with default parameters. Stages start bypassed: a fresh session's
// Apply is the identity until an effect is switched on.
func New(registry *Registry) (*Chain, error) {
	c := &Chain{index: make(map[string]*node)}

	for _, id := range registry.IDs() {
		rt, err := registry.Lookup(id)()
		if err != nil {
			return nil, fmt.Errorf("effectchain: building %s: %w", id, err)
		}

		desc := rt.Describe()
		n := &node{
			id:       id,
			runtime:  rt,
			desc:     desc,
			params:   desc.defaults(),
			bypassed: true,
			cache:    make(map[uint64]*wavetable.Wavetable),
		}

		c.nodes = append(c.nodes, n)
		c.index[id] = n
	}

	return c, nil
}

func (c *Chain) node(effectID string) (*node, error) {
	n, ok := c.index[effectID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, effectID)
	}
	return n, nil
}

// SetParam updates one parameter, clamping the value into the declared
// range. The stage's cache is invalidated only when the effective value
// actually changes, so re-sending the current value keeps memo hits
// alive. Non-finite values are rejected; unknown names return
// ErrUnknownParam.
func (c *Chain) SetParam(effectID, name string, value float64) error {
	n, err := c.node(effectID)
	if err != nil {
		return err
	}

	if !n.desc.hasParam(name) {
		return fmt.Errorf("%w: %s has no parameter %q", ErrUnknownParam, effectID, name)
	}

	if !core.IsFinite(value) {
		return fmt.Errorf("%w: %s.%s must be finite: %v", effects.ErrValidation, effectID, name, value)
	}

	clamped := n.desc.clampParam(name, value)
	if n.params[name] != clamped {
		n.params[name] = clamped
		n.cache = make(map[uint64]*wavetable.Wavetable)
	}

	return nil
}

// SetBypassed toggles one stage in or out of Apply.
func (c *Chain) SetBypassed(effectID string, bypassed bool) error {
	n, err := c.node(effectID)
	if err != nil {
		return err
	}

	n.bypassed = bypassed

	return nil
}

// Reset restores every stage to default parameters and bypassed state
// and drops all caches.
func (c *Chain) Reset() {
	for _, n := range c.nodes {
		n.params = n.desc.defaults()
		n.bypassed = true
		n.cache = make(map[uint64]*wavetable.Wavetable)
	}
}

// Descriptors returns a snapshot of every stage in chain order with
// current parameter values and bypass flags.
func (c *Chain) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(c.nodes))

	for _, n := range c.nodes {
		d := n.desc.clone()
		d.Bypassed = n.bypassed
		for i := range d.Parameters {
			d.Parameters[i].Value = n.params.GetNum(d.Parameters[i].ID, d.Parameters[i].Default)
		}
		out = append(out, d)
	}

	return out
}

// ProcessCount reports how many times the stage actually executed
// (cache hits excluded).
func (c *Chain) ProcessCount(effectID string) (int, error) {
	n, err := c.node(effectID)
	if err != nil {
		return 0, err
	}
	return n.applies, nil
}

// Apply runs the ordered, non-bypassed stages, feeding each stage's
// output to the next. A stage failure aborts the whole call; no
// partial result is returned.
func (c *Chain) Apply(wt *wavetable.Wavetable) (*wavetable.Wavetable, error) {
	if err := wt.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", effects.ErrValidation, err)
	}

	current := wt
	for _, n := range c.nodes {
		if n.bypassed {
			continue
		}

		next, err := c.applyNode(n, current)
		if err != nil {
			return nil, fmt.Errorf("effectchain: stage %s: %w", n.id, err)
		}
		current = next
	}

	if current == wt {
		// All stages bypassed; still hand back an independent table.
		current = wt.Clone()
	}

	return current, nil
}

// ApplyOne updates the stage's parameters from params and runs that
// single stage regardless of its bypass flag.
func (c *Chain) ApplyOne(effectID string, wt *wavetable.Wavetable, params Params) (*wavetable.Wavetable, error) {
	n, err := c.node(effectID)
	if err != nil {
		return nil, err
	}

	if err := wt.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", effects.ErrValidation, err)
	}

	for name, value := range params {
		if err := c.SetParam(effectID, name, value); err != nil {
			return nil, err
		}
	}

	return c.applyNode(n, wt)
}

func (c *Chain) applyNode(n *node, wt *wavetable.Wavetable) (*wavetable.Wavetable, error) {
	key := cacheKey(n.id, n.params, wt)
	if cached, ok := n.cache[key]; ok {
		return cached.Clone(), nil
	}

	if err := n.runtime.Configure(n.params); err != nil {
		return nil, err
	}

	out, err := n.runtime.Apply(wt)
	if err != nil {
		return nil, err
	}
	n.applies++

	if len(n.cache) >= maxCacheEntries {
		n.cache = make(map[uint64]*wavetable.Wavetable)
	}
	n.cache[key] = out

	return out.Clone(), nil
}
