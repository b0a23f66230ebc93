// Package engine defines the contract between a router and the host
// navigation primitive it drives. Two implementations exist: modern, over a
// declarative host.Path, and legacy, over an imperative host.ControllerStack.
package engine

import "github.com/BrandonKowalski/waypoint/pkg/waypoint/host"

// Kind identifies an engine variant.
type Kind int

const (
	KindModern Kind = iota + 1
	KindLegacy
)

func (k Kind) String() string {
	switch k {
	case KindModern:
		return "modern"
	case KindLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Engine mutates host navigation state. Engines are confined to the UI
// context.
type Engine[R comparable] interface {
	Kind() Kind

	// Mount installs root as the base content and returns the host container
	// to embed.
	Mount(root func() host.View) any

	Push(r R)
	Pop()
	PopToRoot()
	ReplaceStack(routes []R)

	// SetRoot makes r the base of navigation with children above it. How r
	// is represented is engine specific.
	SetRoot(r R, children []R)

	// Depth is the number of routes above the root the host currently holds.
	Depth() int
}

// SizeObserver receives the host's route count (excluding the root) when it
// changes.
type SizeObserver func(n int)
