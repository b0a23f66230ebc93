package route

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"go.uber.org/atomic"
)

// View is an opaque handle to screen content. The host decides what it is.
type View = any

// Builder renders an erased payload.
type Builder func(payload any) View

// EncodeFunc serialises an erased payload.
type EncodeFunc func(payload any) ([]byte, error)

// DecodeFunc restores an erased payload.
type DecodeFunc func(data []byte) (any, error)

// Affinity reports whether the caller is running on the UI context. The
// check only warns in debug, and implementations may approximate it; see
// uiloop.Loop.Confined.
type Affinity interface {
	Confined() bool
}

// Registry maps route type identifiers to builders, styles and codecs.
//
// Builders live in two tables: confined builders must run on the UI context,
// free builders may be invoked anywhere. Lookups check the confined table
// first, so a type registered in both resolves to its confined builder.
//
// Create one Registry per process and pass it to every router.
type Registry struct {
	mu       sync.RWMutex
	confined map[string]Builder
	free     map[string]Builder
	styles   map[string]*Descriptor
	encoders map[string]EncodeFunc
	decoders map[string]DecodeFunc
	catalog  map[string]*Descriptor

	once          sync.Map // type identifier -> *sync.Once
	registrations atomic.Int64

	debug    bool
	affinity Affinity
	logger   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithDebug selects the debug (fail loud) or release (fail soft) behaviour.
// Defaults to constants.IsDevMode.
func WithDebug(debug bool) Option {
	return func(r *Registry) { r.debug = debug }
}

// WithLogger replaces the internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithAffinity lets the registry check, in debug mode, that confined
// builders only run on the UI context.
func WithAffinity(a Affinity) Option {
	return func(r *Registry) { r.affinity = a }
}

// WithCatalog supplies styles keyed by type identifier. A catalog style is
// attached when a type is registered without an explicit style.
func WithCatalog(catalog map[string]*Descriptor) Option {
	return func(r *Registry) {
		for id, d := range catalog {
			r.catalog[id] = d
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		confined: make(map[string]Builder),
		free:     make(map[string]Builder),
		styles:   make(map[string]*Descriptor),
		encoders: make(map[string]EncodeFunc),
		decoders: make(map[string]DecodeFunc),
		catalog:  make(map[string]*Descriptor),
		debug:    constants.IsDevMode(),
		logger:   internal.GetInternalLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Debug reports whether the registry fails loud.
func (r *Registry) Debug() bool { return r.debug }

// EnsureRegistered runs register the first time it is called for typeID and
// never again for the lifetime of the registry. Concurrent callers for the
// same typeID block until the first call's register has returned. Reports
// whether this call ran register.
//
// register must not call EnsureRegistered for the same typeID.
func (r *Registry) EnsureRegistered(typeID string, register func()) bool {
	v, _ := r.once.LoadOrStore(typeID, new(sync.Once))
	ran := false
	v.(*sync.Once).Do(func() {
		ran = true
		register()
	})
	return ran
}

// Ensure is EnsureRegistered keyed by R's type identifier.
func Ensure[R comparable](r *Registry, register func()) bool {
	return r.EnsureRegistered(TypeIDOf[R](), register)
}

// RegisterOption customises a single registration.
type RegisterOption[R comparable] func(*registration[R])

type registration[R comparable] struct {
	style  *Style[R]
	encode func(R) ([]byte, error)
	decode func([]byte) (R, error)
}

// WithStyle attaches a navigation style.
func WithStyle[R comparable](s Style[R]) RegisterOption[R] {
	return func(reg *registration[R]) { reg.style = &s }
}

// WithCodec replaces the default JSON payload codec.
func WithCodec[R comparable](encode func(R) ([]byte, error), decode func([]byte) (R, error)) RegisterOption[R] {
	return func(reg *registration[R]) {
		reg.encode = encode
		reg.decode = decode
	}
}

// RegisterMain registers a builder that must run on the UI context.
func RegisterMain[R comparable](r *Registry, builder func(R) View, opts ...RegisterOption[R]) {
	register(r, true, builder, opts)
}

// RegisterNonMain registers a builder that may run off the UI context. Its
// views must still be handed back to the UI context before being rendered.
func RegisterNonMain[R comparable](r *Registry, builder func(R) View, opts ...RegisterOption[R]) {
	register(r, false, builder, opts)
}

func register[R comparable](r *Registry, confined bool, builder func(R) View, opts []RegisterOption[R]) {
	id := TypeIDOf[R]()

	reg := registration[R]{
		encode: func(v R) ([]byte, error) { return json.Marshal(v) },
		decode: func(data []byte) (R, error) {
			var v R
			err := json.Unmarshal(data, &v)
			return v, err
		},
	}
	for _, opt := range opts {
		opt(&reg)
	}

	op := "register_non_main"
	if confined {
		op = "register_main"
	}
	build := Builder(func(payload any) View {
		return builder(coerce[R](r, op, id, payload))
	})
	encode := EncodeFunc(func(payload any) ([]byte, error) {
		return reg.encode(coerce[R](r, "marshal", id, payload))
	})
	decode := DecodeFunc(func(data []byte) (any, error) {
		return reg.decode(data)
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	if confined {
		r.confined[id] = build
		if _, shadowed := r.free[id]; shadowed {
			r.logger.Warn("route type registered in both builder tables; confined builder wins", "type", id)
		}
	} else {
		r.free[id] = build
		if _, shadowed := r.confined[id]; shadowed {
			r.logger.Warn("route type registered in both builder tables; confined builder wins", "type", id)
		}
	}

	switch {
	case reg.style != nil:
		r.styles[id] = reg.style.erase(func(op string, payload any) R {
			return coerce[R](r, op, id, payload)
		})
	case r.catalog[id] != nil:
		r.styles[id] = r.catalog[id]
	}

	r.encoders[id] = encode
	r.decoders[id] = decode
	r.registrations.Inc()

	r.logger.Debug("registered route type", "type", id, "confined", confined, "styled", r.styles[id] != nil)
}

// coerce unwraps payload as R. A mismatch is a programmer error: debug
// registries panic, release registries log and convert best-effort.
func coerce[R comparable](r *Registry, op, id string, payload any) R {
	if v, ok := payload.(R); ok {
		return v
	}

	err := &RouteError{Op: op, TypeID: id, Err: fmt.Errorf("%w: got %T", ErrTypeMismatch, payload)}
	if r.debug {
		panic(err)
	}
	r.logger.Error("route payload type mismatch", "type", id, "op", op, "got", fmt.Sprintf("%T", payload))

	var zero R
	rv := reflect.ValueOf(payload)
	target := reflect.TypeFor[R]()
	if rv.IsValid() && rv.Type().ConvertibleTo(target) {
		if v, ok := rv.Convert(target).Interface().(R); ok {
			return v
		}
	}
	return zero
}

// ResolveView builds the view for a route. Returns false when the type has
// no builder in either table.
func (r *Registry) ResolveView(a Any) (View, bool) {
	r.mu.RLock()
	build, confined := r.confined[a.typeID]
	if !confined {
		var ok bool
		if build, ok = r.free[a.typeID]; !ok {
			r.mu.RUnlock()
			return nil, false
		}
	}
	r.mu.RUnlock()

	if confined && r.debug && r.affinity != nil && !r.affinity.Confined() {
		r.logger.Warn("confined route builder invoked off the UI context", "type", a.typeID)
	}
	return build(a.value), true
}

// ResolveStyle returns the navigation style registered for the route's type.
func (r *Registry) ResolveStyle(a Any) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.styles[a.typeID]
	return d, ok
}

// ResolveTitle returns the route's title from its registered style.
func (r *Registry) ResolveTitle(a Any) (string, bool) {
	d, ok := r.ResolveStyle(a)
	if !ok {
		return "", false
	}
	return d.Title(a.value)
}

// CatalogStyle returns the catalog entry for a type identifier, whether or
// not the type has been registered.
func (r *Registry) CatalogStyle(typeID string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.catalog[typeID]
	return d, ok && d != nil
}

// Encoder returns the payload encoder for a type identifier.
func (r *Registry) Encoder(typeID string) (EncodeFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	enc, ok := r.encoders[typeID]
	return enc, ok
}

// Decoder returns the payload decoder for a type identifier.
func (r *Registry) Decoder(typeID string) (DecodeFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dec, ok := r.decoders[typeID]
	return dec, ok
}

// Registered reports whether typeID has a builder in either table.
func (r *Registry) Registered(typeID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, main := r.confined[typeID]
	_, free := r.free[typeID]
	return main || free
}

// TypeIDs returns every registered type identifier, sorted.
func (r *Registry) TypeIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.confined)+len(r.free))
	for id := range r.confined {
		seen[id] = struct{}{}
	}
	for id := range r.free {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Registrations counts register calls, including overwrites.
func (r *Registry) Registrations() int64 {
	return r.registrations.Load()
}
