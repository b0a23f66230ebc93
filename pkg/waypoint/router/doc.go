// Package router provides the navigation state holder applications talk to.
//
// A Router keeps a logical stack of the routes above the root and forwards
// every operation to one of two engines: the modern engine, which drives a
// host's declarative path, or the legacy engine, which drives an imperative
// controller stack and applies per-route styling itself. The host
// environment decides which one, once, on the first Mount or navigation
// call.
//
// # Basic Usage
//
//	type Screen struct {
//	    Name string
//	    ID   int
//	}
//
//	env := memhost.New[Screen](true)
//	r := router.New(env, func(s Screen) host.View { return render(s) })
//	r.Mount(func() host.View { return homeScreen() })
//
//	r.Push(Screen{Name: "detail", ID: 1})
//	r.CurrentStack() // [{detail 1}]
//	r.Pop()
//
// # Erased routes
//
// Feature modules that own their own route types share one router through
// route.Any. Register each type once, or let the *Feature helpers do it:
//
//	reg := route.NewRegistry()
//	r := router.NewAny(env, reg)
//	router.PushFeature(r, profile.Route{UserID: 7})
//
// # Root semantics
//
// SetRoot(root, children) always leaves CurrentStack equal to children. The
// modern engine renders root as the path's base content; the legacy engine
// puts root in the bottom frame of the controller stack. Either way root is
// not part of the logical stack. A root installed by SetRoot keeps its place
// when Mount is called afterwards; the mounted content is kept for later
// rebuilds but not shown in its place.
//
// On the legacy engine, routes pushed before Mount sit above a placeholder
// bottom frame that Mount later fills with the root content.
//
// # Reconciliation
//
// When the user navigates back without going through the router (edge
// swipe, back button, long-press menu) the host reports its new depth and
// the router trims the logical stack to match. Reports of a depth larger
// than the logical stack are ignored.
package router
