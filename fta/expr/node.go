package expr

import (
	"math"
	"math/rand"
)

// Epoch identifies a Monte-Carlo sample round. Sample results memoized
// under one epoch are invalidated as soon as a different epoch is
// requested; C6 advances the epoch once per simulation iteration.
type Epoch uint64

// Node is a single expression-graph vertex. Concrete node kinds are
// distinguished by Kind; Const/Param carry a literal value, the
// distribution kinds carry children that supply their parameters.
//
// Nodes are logically stateless per spec §4.1 ("nodes must be stateless
// except for any memoization tied to a sample epoch"); the cache fields
// below are exactly that memoization, never observable from Mean/Min/Max.
type Node struct {
	id       string
	kind     Kind
	literal  float64 // used by Const
	children []*Node // positional: order defined per kind, see doc comments below

	cachedEpoch Epoch
	cachedHas   bool
	cachedVal   float64
}

// ID returns the node's identifier (stable, assigned at construction).
func (n *Node) ID() string { return n.id }

// Kind returns the node's discriminant.
func (n *Node) Kind() Kind { return n.kind }

// NewConst builds a literal value node.
func NewConst(id string, value float64) *Node {
	return &Node{id: id, kind: Const, literal: value}
}

// NewParam builds a named-parameter node; its value is supplied the same
// way a Const is (parameters are resolved before the graph is built, the
// model does not carry a separate symbol table), kept distinct only for
// diagnostic naming.
func NewParam(id string, value float64) *Node {
	return &Node{id: id, kind: Param, literal: value}
}

// NewExponential builds `(λ, t) ↦ 1 − e^(−λt)`.
func NewExponential(id string, lambda, t *Node) *Node {
	return &Node{id: id, kind: Exponential, children: []*Node{lambda, t}}
}

// NewGLM builds the two-state Markov expression `(γ, λ, μ, t)`: with
// availability A(t) = μ/(λ+μ) + λ/(λ+μ)·e^(−(λ+μ)t), it yields the
// probability 1 − (1−γ)·A(t).
func NewGLM(id string, gamma, lambda, mu, t *Node) *Node {
	return &Node{id: id, kind: GLM, children: []*Node{gamma, lambda, mu, t}}
}

// NewWeibull builds `(α, β, t₀, t) ↦ 1 − e^(−((t−t₀)/α)^β)`.
func NewWeibull(id string, alpha, beta, t0, t *Node) *Node {
	return &Node{id: id, kind: Weibull, children: []*Node{alpha, beta, t0, t}}
}

// NewPeriodicTest4 builds the instantaneous-repair periodic-test flavor
// `(λ, τ, θ, t)`.
func NewPeriodicTest4(id string, lambda, tau, theta, t *Node) *Node {
	return &Node{id: id, kind: PeriodicTest4, children: []*Node{lambda, tau, theta, t}}
}

// NewPeriodicTest5 builds the finite-repair-rate flavor `(λ, τ, θ, t, μ)`.
func NewPeriodicTest5(id string, lambda, tau, theta, t, mu *Node) *Node {
	return &Node{id: id, kind: PeriodicTest5, children: []*Node{lambda, tau, theta, t, mu}}
}

// NewAdd builds a variadic sum node.
func NewAdd(id string, terms ...*Node) *Node {
	return &Node{id: id, kind: Add, children: terms}
}

// NewMul builds a variadic product node.
func NewMul(id string, factors ...*Node) *Node {
	return &Node{id: id, kind: Mul, children: factors}
}

// NewFromKind builds a node of the given kind from already-constructed
// child nodes and/or a literal (constants[0], for Const/Param). It is
// the entry point the builder's add_expression uses, where kind and
// children arrive as data rather than as a typed constructor call.
func NewFromKind(id string, kind Kind, children []*Node, constants []float64) (*Node, error) {
	switch kind {
	case Const, Param:
		if len(constants) < 1 {
			return nil, domainErrf(kind, "requires one constant value")
		}
		return &Node{id: id, kind: kind, literal: constants[0]}, nil
	case Add, Mul:
		if len(children) == 0 {
			return nil, domainErrf(kind, "requires at least one child")
		}
		return &Node{id: id, kind: kind, children: children}, nil
	default:
		want := kind.arity()
		if want < 0 || len(children) != want {
			return nil, domainErrf(kind, "requires exactly %d children, got %d", want, len(children))
		}
		return &Node{id: id, kind: kind, children: children}, nil
	}
}

// clampUnit folds numerical underflow to 0 and exponent overflow to 1
// rather than raising, per spec §4.1.
func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// expNeg computes e^(-x) collapsing overflowing x to an exponent of 1
// (i.e. e^(-x) -> 0) and underflowing/negative x safely.
func expNeg(x float64) float64 {
	if x > 745 { // math.Exp underflows below this; treat as exact 0
		return 0
	}
	if x < 0 {
		x = 0
	}
	return math.Exp(-x)
}

// Mean returns the node's deterministic expected value.
func (n *Node) Mean() float64 { return n.eval(meanOp) }

// Min returns the node's deterministic lower bound.
func (n *Node) Min() float64 { return n.eval(minOp) }

// Max returns the node's deterministic upper bound.
func (n *Node) Max() float64 { return n.eval(maxOp) }

type op uint8

const (
	meanOp op = iota
	minOp
	maxOp
)

// eval computes the deterministic descriptor requested by which, fetching
// child descriptors recursively. Non-monotonic functions pick whichever
// child extremum extremizes the outer expression, per spec §4.1.
func (n *Node) eval(which op) float64 {
	switch n.kind {
	case Const, Param:
		return n.literal
	case Exponential:
		lambda, t := n.argAt(0, which), n.argAt(1, which)
		return clampUnit(1 - expNeg(lambda*t))
	case GLM:
		if which != meanOp {
			// Open question in spec §9: Min/Max stubbed to {0,1}, conservative but loose.
			if which == minOp {
				return 0
			}
			return 1
		}
		gamma, lambda, mu, t := n.child(0), n.child(1), n.child(2), n.child(3)
		return glmMean(gamma.Mean(), lambda.Mean(), mu.Mean(), t.Mean())
	case Weibull:
		alpha, beta, t0, t := n.weibullArgs(which)
		return weibull(alpha, beta, t0, t)
	case PeriodicTest4:
		lambda, tau, theta, t := n.argAt(0, which), n.argAt(1, which), n.argAt(2, which), n.argAt(3, which)
		return periodicTestInstant(lambda, tau, theta, t)
	case PeriodicTest5:
		lambda, tau, theta, t, mu := n.argAt(0, which), n.argAt(1, which), n.argAt(2, which), n.argAt(3, which), n.argAt(4, which)
		return periodicTestFiniteRepair(lambda, tau, theta, t, mu)
	case Add:
		sum := 0.0
		for _, c := range n.children {
			sum += c.descriptor(which)
		}
		return sum
	case Mul:
		prod := 1.0
		for _, c := range n.children {
			prod *= c.descriptor(which)
		}
		return clampUnit(prod)
	default:
		return 0
	}
}

// descriptor returns the requested deterministic descriptor for n,
// recursing through eval.
func (n *Node) descriptor(which op) float64 { return n.eval(which) }

func (n *Node) child(i int) *Node { return n.children[i] }

// argAt returns child i's descriptor for a monotonic argument: mean uses
// the child's mean, min/max use the same-direction child extremum. This
// is correct for Exponential/PeriodicTest, whose outputs are monotonic
// increasing in every argument; Weibull overrides the rule explicitly
// because β appears in an exponent whose sign depends on (t-t0).
func (n *Node) argAt(i int, which op) float64 {
	c := n.child(i)
	switch which {
	case minOp:
		return c.Min()
	case maxOp:
		return c.Max()
	default:
		return c.Mean()
	}
}

// weibullArgs picks, per spec §4.1, the extrema that extremize Weibull's
// max/min: max uses alpha.min, beta.max, t0.min, t.max; min is the dual.
func (n *Node) weibullArgs(which op) (alpha, beta, t0, t float64) {
	switch which {
	case maxOp:
		return n.child(0).Min(), n.child(1).Max(), n.child(2).Min(), n.child(3).Max()
	case minOp:
		return n.child(0).Max(), n.child(1).Min(), n.child(2).Max(), n.child(3).Min()
	default:
		return n.child(0).Mean(), n.child(1).Mean(), n.child(2).Mean(), n.child(3).Mean()
	}
}

func weibull(alpha, beta, t0, t float64) float64 {
	if t < t0 {
		return 0
	}
	if alpha <= 0 {
		return 0
	}
	ratio := (t - t0) / alpha
	exponent := math.Pow(ratio, beta)
	return clampUnit(1 - expNeg(exponent))
}

func glmMean(gamma, lambda, mu, t float64) float64 {
	denom := lambda + mu
	if denom == 0 {
		return clampUnit(gamma)
	}
	avail := mu/denom + (lambda/denom)*expNeg(denom*t)
	return clampUnit(1 - avail*(1-gamma))
}

// periodicTestInstant models the instantaneous-repair periodic-test
// flavor as the time-averaged unavailability of a component tested every
// tau with detection delay theta, approximated by the standard linear
// periodic-test formula `λ(τ/2 + θ)` clamped to [0,1].
func periodicTestInstant(lambda, tau, theta, t float64) float64 {
	_ = t
	return clampUnit(lambda * (tau/2 + theta))
}

// periodicTestFiniteRepair extends the instantaneous flavor with a
// finite mean repair duration `1/mu` added to the outage window.
func periodicTestFiniteRepair(lambda, tau, theta, t, mu float64) float64 {
	_ = t
	repair := 0.0
	if mu > 0 {
		repair = 1 / mu
	}
	return clampUnit(lambda * (tau/2 + theta + repair))
}

// Sample draws a stochastic value consistent with the node's
// distribution, memoized per epoch so repeated queries within the same
// epoch are stable (spec §4.1/§4.6). rng must be supplied by the caller
// (C6) so draws are deterministically reproducible from a split seed.
func (n *Node) Sample(epoch Epoch, rng *rand.Rand) float64 {
	if n.cachedHas && n.cachedEpoch == epoch {
		return n.cachedVal
	}
	v := n.sampleUncached(epoch, rng)
	n.cachedEpoch = epoch
	n.cachedVal = v
	n.cachedHas = true
	return v
}

func (n *Node) sampleUncached(epoch Epoch, rng *rand.Rand) float64 {
	switch n.kind {
	case Const, Param:
		return n.literal
	case Exponential:
		lambda := n.child(0).Sample(epoch, rng)
		t := n.child(1).Sample(epoch, rng)
		if lambda < 0 {
			lambda = 0
		}
		return clampUnit(1 - expNeg(lambda*t))
	case GLM:
		gamma := n.child(0).Sample(epoch, rng)
		lambda := n.child(1).Sample(epoch, rng)
		mu := n.child(2).Sample(epoch, rng)
		t := n.child(3).Sample(epoch, rng)
		return glmMean(gamma, lambda, mu, t)
	case Weibull:
		alpha := n.child(0).Sample(epoch, rng)
		beta := n.child(1).Sample(epoch, rng)
		t0 := n.child(2).Sample(epoch, rng)
		t := n.child(3).Sample(epoch, rng)
		return weibull(alpha, beta, t0, t)
	case PeriodicTest4:
		lambda := n.child(0).Sample(epoch, rng)
		tau := n.child(1).Sample(epoch, rng)
		theta := n.child(2).Sample(epoch, rng)
		t := n.child(3).Sample(epoch, rng)
		return periodicTestInstant(lambda, tau, theta, t)
	case PeriodicTest5:
		lambda := n.child(0).Sample(epoch, rng)
		tau := n.child(1).Sample(epoch, rng)
		theta := n.child(2).Sample(epoch, rng)
		t := n.child(3).Sample(epoch, rng)
		mu := n.child(4).Sample(epoch, rng)
		return periodicTestFiniteRepair(lambda, tau, theta, t, mu)
	case Add:
		sum := 0.0
		for _, c := range n.children {
			sum += c.Sample(epoch, rng)
		}
		return sum
	case Mul:
		prod := 1.0
		for _, c := range n.children {
			prod *= c.Sample(epoch, rng)
		}
		return clampUnit(prod)
	default:
		return 0
	}
}

// Validate checks the node's own parameters (not its children's; callers
// walk the graph and call Validate on every node) against the domain
// rules from spec §4.1: negative rates, β ≤ 0, t < t0, GLM denominator
// zero.
func (n *Node) Validate() error {
	switch n.kind {
	case Const, Param:
		return nil
	case Exponential:
		lambda, t := n.child(0).Mean(), n.child(1).Mean()
		if lambda < 0 {
			return domainErrf(n.kind, "lambda must be >= 0, got %g", lambda)
		}
		if t < 0 {
			return domainErrf(n.kind, "t must be >= 0, got %g", t)
		}
	case GLM:
		lambda, mu := n.child(1).Mean(), n.child(2).Mean()
		if lambda+mu == 0 {
			return domainErrf(n.kind, "lambda+mu denominator is zero")
		}
	case Weibull:
		alpha, beta, t0, t := n.child(0).Mean(), n.child(1).Mean(), n.child(2).Mean(), n.child(3).Mean()
		if alpha <= 0 {
			return domainErrf(n.kind, "alpha must be > 0, got %g", alpha)
		}
		if beta <= 0 {
			return domainErrf(n.kind, "beta must be > 0, got %g", beta)
		}
		if t < t0 {
			return domainErrf(n.kind, "t (%g) must be >= t0 (%g)", t, t0)
		}
	case PeriodicTest4, PeriodicTest5:
		lambda := n.child(0).Mean()
		if lambda < 0 {
			return domainErrf(n.kind, "lambda must be >= 0, got %g", lambda)
		}
		if n.kind == PeriodicTest5 {
			mu := n.child(4).Mean()
			if mu < 0 {
				return domainErrf(n.kind, "mu must be >= 0, got %g", mu)
			}
		}
	case Add, Mul:
		if len(n.children) == 0 {
			return domainErrf(n.kind, "requires at least one child")
		}
	default:
		return domainErrf(n.kind, "unknown expression kind")
	}
	return nil
}

// ValidateTree validates n and every node reachable from it, returning
// the first DomainError encountered (nodes close over their children, so
// a single pass from the root is enough; there is no sharing-aware
// memoization here because validation is cheap and run once per seal).
func (n *Node) ValidateTree() error {
	if err := n.Validate(); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := c.ValidateTree(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of n and everything reachable from it, so the
// copy's per-epoch sample cache (cachedEpoch/cachedVal/cachedHas) is
// independent of n's own. memo dedupes nodes reached through more than
// one parent (or passed in as separate roots in the same call), so a
// graph where several basic events share one expression node keeps that
// sharing in the clone instead of diverging into independent draws.
// Callers that need several roots cloned consistently (e.g. one clone
// per parallel worker) must share a single memo map across all of them.
func (n *Node) Clone(memo map[*Node]*Node) *Node {
	if n == nil {
		return nil
	}
	if c, ok := memo[n]; ok {
		return c
	}
	clone := &Node{id: n.id, kind: n.kind, literal: n.literal}
	memo[n] = clone
	if len(n.children) > 0 {
		clone.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			clone.children[i] = c.Clone(memo)
		}
	}
	return clone
}
