// Package expr implements the expression graph used by basic events: a
// small DAG of composable deterministic/stochastic numeric nodes exposing
// Mean/Min/Max (interval descriptors) and Sample (a stochastic draw).
//
// Following the teacher's preference for tagged variants over class
// hierarchies (qc/gate models gate kinds the same way), every node shares
// one concrete Node type discriminated by Kind rather than a deep
// base+subclass tree.
package expr

import (
	"fmt"
	"strings"
)

// Kind discriminates the closed set of expression node types.
type Kind uint8

const (
	Unknown Kind = iota
	Const
	Param
	Exponential
	GLM
	Weibull
	PeriodicTest4 // instantaneous-repair flavor: (λ, τ, θ, t)
	PeriodicTest5 // finite-repair-rate flavor: (λ, τ, θ, t, μ)
	Add
	Mul
)

func (k Kind) String() string {
	switch k {
	case Const:
		return "Const"
	case Param:
		return "Param"
	case Exponential:
		return "Exponential"
	case GLM:
		return "GLM"
	case Weibull:
		return "Weibull"
	case PeriodicTest4:
		return "PeriodicTest4"
	case PeriodicTest5:
		return "PeriodicTest5"
	case Add:
		return "Add"
	case Mul:
		return "Mul"
	default:
		return "Unknown"
	}
}

// arity reports how many children each kind consumes, or -1 for
// variadic kinds (Add, Mul).
func (k Kind) arity() int {
	switch k {
	case Const, Param:
		return 0
	case Exponential:
		return 2 // lambda, t
	case GLM:
		return 4 // gamma, lambda, mu, t
	case Weibull:
		return 4 // alpha, beta, t0, t
	case PeriodicTest4:
		return 4 // lambda, tau, theta, t
	case PeriodicTest5:
		return 5 // lambda, tau, theta, t, mu
	case Add, Mul:
		return -1
	default:
		return -1
	}
}

// ErrUnknownKind is returned by ParseKind when the label isn't recognized.
type ErrUnknownKind struct{ Name string }

func (e ErrUnknownKind) Error() string { return "expr: unknown expression kind " + e.Name }

// ParseKind resolves an expression-kind name as the inbound builder API
// (spec §6's `add_expression(id, kind, child_ids, constants)`) accepts
// it from a caller.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "const", "constant":
		return Const, nil
	case "param", "parameter":
		return Param, nil
	case "exponential", "exp":
		return Exponential, nil
	case "glm":
		return GLM, nil
	case "weibull":
		return Weibull, nil
	case "periodictest4", "periodic_test4", "periodic-test-instant":
		return PeriodicTest4, nil
	case "periodictest5", "periodic_test5", "periodic-test-finite-repair":
		return PeriodicTest5, nil
	case "add", "sum":
		return Add, nil
	case "mul", "product":
		return Mul, nil
	}
	return Unknown, ErrUnknownKind{name}
}

// DomainError reports a parameter out of the valid range for a node kind.
type DomainError struct {
	Kind    Kind
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("expr: %s: %s", e.Kind, e.Message)
}

func domainErrf(k Kind, format string, args ...any) *DomainError {
	return &DomainError{Kind: k, Message: fmt.Sprintf(format, args...)}
}
