package tir

// Effects describe what an instruction does besides writing its result.
// Only instructions whose effects are all pure may be removed when their
// result is unused.

// Effect represents the side effects of an instruction
type Effect interface {
	EffectKind() string
}

// PureEffect indicates no side effects
type PureEffect struct{}

func (p *PureEffect) EffectKind() string { return "pure" }

// InputEffect consumes a token from the input stream
type InputEffect struct{}

func (i *InputEffect) EffectKind() string { return "input" }

// OutputEffect writes to the output stream
type OutputEffect struct{}

func (o *OutputEffect) EffectKind() string { return "output" }

func (c *Copy) GetEffects() []Effect  { return []Effect{&PureEffect{}} }
func (c *Const) GetEffects() []Effect { return []Effect{&PureEffect{}} }
func (a *Arith) GetEffects() []Effect { return []Effect{&PureEffect{}} }
func (r *Read) GetEffects() []Effect  { return []Effect{&InputEffect{}} }
func (p *Print) GetEffects() []Effect { return []Effect{&OutputEffect{}} }

// IsPure reports whether every effect of inst is pure.
func IsPure(inst Instruction) bool {
	for _, effect := range inst.GetEffects() {
		if _, ok := effect.(*PureEffect); !ok {
			return false
		}
	}
	return true
}
