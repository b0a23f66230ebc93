package route

// Placeholder is rendered in debug mode in place of a route with no
// registered builder.
type Placeholder struct {
	Message string
}

// Empty is rendered in release mode in place of a route with no registered
// builder.
type Empty struct{}

// Titled decorates registered content with the title its style derives.
type Titled struct {
	Content View
	Title   string
}

// AnyBuilder returns the default builder for erased routes. It renders the
// registered view, wrapped in Titled when the route's style has a title.
// Unregistered routes render a Placeholder in debug mode and Empty otherwise.
func AnyBuilder(reg *Registry) func(Any) View {
	return func(a Any) View {
		v, ok := reg.ResolveView(a)
		if !ok {
			if reg.debug {
				reg.logger.Error("unregistered route; was it pushed without registering its type?", "type", a.typeID)
				return Placeholder{Message: "Missing view for " + a.typeID}
			}
			return Empty{}
		}
		if title, ok := reg.ResolveTitle(a); ok {
			return Titled{Content: v, Title: title}
		}
		return v
	}
}
