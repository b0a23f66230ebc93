package route

// FeatureRoute is a route type that knows how to register itself. Call
// EnsureRegistered before navigating to one; the router's *Feature helpers
// do this for you.
//
//	type Profile struct{ UserID int }
//
//	func (Profile) RegisterRoutes(reg *route.Registry) {
//	    route.RegisterMain(reg, func(p Profile) route.View { return profileScreen(p) })
//	}
type FeatureRoute interface {
	comparable
	RegisterRoutes(reg *Registry)
}

// EnsureRegistered runs R's RegisterRoutes hook at most once per registry.
func EnsureRegistered[R FeatureRoute](reg *Registry) {
	var zero R
	reg.EnsureRegistered(TypeIDOf[R](), func() {
		zero.RegisterRoutes(reg)
	})
}
