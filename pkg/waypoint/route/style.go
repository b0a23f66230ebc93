package route

import "image/color"

// Style describes how the navigation bar looks while a route of type R is
// on top. All fields are optional.
type Style[R comparable] struct {
	// Title derives the bar title for a route. Return false for no title.
	Title func(R) (string, bool)

	PrefersLargeTitles bool
	BackgroundColor    color.Color
	TitleColor         color.Color
	TintColor          color.Color

	// BackAction replaces the default back affordance. Returning true
	// consumes the back navigation; it also blocks the edge-swipe gesture.
	BackAction func(R) bool
}

// Descriptor is a Style with its route type erased. Registries hand these
// out; they are never mutated after registration.
type Descriptor struct {
	TitleFunc          func(payload any) (string, bool)
	PrefersLargeTitles bool
	BackgroundColor    color.Color
	TitleColor         color.Color
	TintColor          color.Color
	BackActionFunc     func(payload any) bool
}

// Title returns the title for the payload, if the descriptor defines one.
func (d *Descriptor) Title(payload any) (string, bool) {
	if d == nil || d.TitleFunc == nil {
		return "", false
	}
	return d.TitleFunc(payload)
}

// HasBackAction reports whether the default back affordance is overridden.
func (d *Descriptor) HasBackAction() bool {
	return d != nil && d.BackActionFunc != nil
}

// ConsumesBack runs the back predicate. False when no predicate is set.
func (d *Descriptor) ConsumesBack(payload any) bool {
	if !d.HasBackAction() {
		return false
	}
	return d.BackActionFunc(payload)
}

// HasAppearance reports whether any bar colour or title size is set.
func (d *Descriptor) HasAppearance() bool {
	if d == nil {
		return false
	}
	return d.PrefersLargeTitles || d.BackgroundColor != nil || d.TitleColor != nil || d.TintColor != nil
}

func (s Style[R]) erase(coerce func(op string, payload any) R) *Descriptor {
	d := &Descriptor{
		PrefersLargeTitles: s.PrefersLargeTitles,
		BackgroundColor:    s.BackgroundColor,
		TitleColor:         s.TitleColor,
		TintColor:          s.TintColor,
	}
	if s.Title != nil {
		title := s.Title
		d.TitleFunc = func(payload any) (string, bool) {
			return title(coerce("title", payload))
		}
	}
	if s.BackAction != nil {
		back := s.BackAction
		d.BackActionFunc = func(payload any) bool {
			return back(coerce("back", payload))
		}
	}
	return d
}
