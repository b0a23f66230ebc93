package router

import "github.com/BrandonKowalski/waypoint/pkg/waypoint/route"

// PushFeature registers F's routes if needed, then pushes f.
func PushFeature[F route.FeatureRoute](r *Router[route.Any], f F) {
	r.ensure(func(reg *route.Registry) { route.EnsureRegistered[F](reg) })
	r.Push(route.Wrap(f))
}

// ReplaceFeature registers F's routes if needed, then replaces the stack.
func ReplaceFeature[F route.FeatureRoute](r *Router[route.Any], routes []F) {
	r.ensure(func(reg *route.Registry) { route.EnsureRegistered[F](reg) })
	r.ReplaceStack(wrapAll(routes))
}

// SetRootFeature registers F's routes if needed, then sets the root.
func SetRootFeature[F route.FeatureRoute](r *Router[route.Any], root F, children ...F) {
	r.ensure(func(reg *route.Registry) { route.EnsureRegistered[F](reg) })
	r.SetRoot(route.Wrap(root), wrapAll(children))
}

// SaveStack serialises the logical stack through the registry.
func SaveStack(r *Router[route.Any]) ([]byte, error) {
	reg := r.registry
	if reg == nil {
		return nil, &route.RouteError{Op: "save_stack", Err: route.ErrUnregisteredType}
	}
	return reg.MarshalStack(r.CurrentStack())
}

// RestoreStack replaces the stack with one saved by SaveStack. The stack is
// left untouched if data does not decode.
func RestoreStack(r *Router[route.Any], data []byte) error {
	reg := r.registry
	if reg == nil {
		return &route.RouteError{Op: "restore_stack", Err: route.ErrUnregisteredType}
	}
	routes, err := reg.UnmarshalStack(data)
	if err != nil {
		return err
	}
	r.ReplaceStack(routes)
	return nil
}

func (r *Router[R]) ensure(fn func(reg *route.Registry)) {
	if r.registry == nil {
		r.logger.Warn("feature route used without a registry; skipping registration")
		return
	}
	fn(r.registry)
}

func wrapAll[F comparable](routes []F) []route.Any {
	out := make([]route.Any, 0, len(routes))
	for _, f := range routes {
		out = append(out, route.Wrap(f))
	}
	return out
}
