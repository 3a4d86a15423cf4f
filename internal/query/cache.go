package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/altovivo/client-go/internal/domain"
	"github.com/altovivo/client-go/pkg/logger"
)

// FetchFunc trae el valor de una clave desde el backend.
type FetchFunc func(ctx context.Context) (any, error)

// Policy política de reintento de una lectura.
type Policy int

const (
	// RetryTransient reintenta fallos transitorios (transporte, 5xx) con backoff.
	RetryTransient Policy = iota
	// TerminalOnAbsence trata el 404 como resultado terminal válido (se cachea
	// la ausencia y no se reintenta). Para lecturas donde "no hay" es normal,
	// ej. la sesión abierta de una caja.
	TerminalOnAbsence
	// NoRetry no reintenta nunca, ni siquiera fallos transitorios. Para
	// lecturas de arranque como el perfil, donde el llamador decide qué hacer.
	NoRetry
)

// Config parámetros del caché.
type Config struct {
	MaxEntries int
	TTL        time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// entry un slot del caché.
type entry struct {
	key     Key
	value   any
	absent  bool // TerminalOnAbsence: el backend confirmó que no existe
	stale   bool
	version uint64 // orden de completitud: el fetch que completa último gana
}

// watcher estado por clave: último fetcher conocido, suscriptores montados y
// si hay un refetch de invalidación en vuelo (idempotencia).
type watcher struct {
	key        Key
	fn         FetchFunc
	policy     Policy
	refs       int
	refetching bool
	subs       []*Subscription
}

// Cache caché de lecturas con invalidación declarativa. Las escrituras nunca
// tocan datos en memoria: una mutación exitosa invalida claves y los lectores
// montados refetchean en segundo plano (consistencia eventual).
type Cache struct {
	mu       sync.Mutex
	store    *lru.LRU[string, *entry]
	watchers map[string]*watcher

	group       singleflight.Group
	completions atomic.Uint64 // sello de completitud global
	refetches   sync.WaitGroup

	maxRetries int
	backoff    time.Duration
	hits       atomic.Uint64
	misses     atomic.Uint64
	log        *logger.Logger
}

// NewCache crea el caché. Valores no positivos toman defaults razonables.
func NewCache(cfg Config, log *logger.Logger) *Cache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 512
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 250 * time.Millisecond
	}
	return &Cache{
		store:      lru.NewLRU[string, *entry](cfg.MaxEntries, nil, cfg.TTL),
		watchers:   make(map[string]*watcher),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
		log:        log,
	}
}

// Option opción por lectura.
type Option func(*fetchOptions)

type fetchOptions struct {
	policy Policy
}

// WithPolicy fija la política de reintento de la lectura.
func WithPolicy(p Policy) Option {
	return func(o *fetchOptions) { o.policy = p }
}

// Fetch devuelve el valor cacheado fresco de key, o lo trae con fn y lo
// cachea. Peticiones concurrentes de la misma clave colapsan en un solo
// viaje al backend. Una ausencia terminal devuelve (nil, nil).
func (c *Cache) Fetch(ctx context.Context, key Key, fn FetchFunc, opts ...Option) (any, error) {
	var o fetchOptions
	for _, opt := range opts {
		opt(&o)
	}
	ks := key.String()

	c.mu.Lock()
	c.remember(ks, key, fn, o.policy)
	if e, ok := c.store.Get(ks); ok && !e.stale {
		v, absent := e.value, e.absent
		c.mu.Unlock()
		c.hits.Add(1)
		if absent {
			return nil, nil
		}
		return v, nil
	}
	c.mu.Unlock()
	c.misses.Add(1)

	v, err, _ := c.group.Do(ks, func() (any, error) {
		return c.fetch(ctx, ks, key, fn, o.policy)
	})
	return v, err
}

// FetchAs azúcar tipada sobre Cache.Fetch.
func FetchAs[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	}, opts...)
	if err != nil || v == nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Prime siembra el valor de una clave sin viaje al backend, por ejemplo el
// perfil que el login acaba de devolver. Respeta el orden por completitud.
func (c *Cache) Prime(key Key, v any) {
	c.commit(key.String(), key, v, false)
}

// Subscribe registra un lector montado de key: mientras la suscripción viva,
// invalidar la clave dispara un refetch en segundo plano y notifica por Ch.
func (c *Cache) Subscribe(key Key) *Subscription {
	ks := key.String()
	s := &Subscription{cache: c, ks: ks, ch: make(chan struct{}, 1)}
	c.mu.Lock()
	w := c.watchers[ks]
	if w == nil {
		w = &watcher{key: key}
		c.watchers[ks] = w
	}
	w.refs++
	w.subs = append(w.subs, s)
	c.mu.Unlock()
	return s
}

// Subscription lector montado de una clave.
type Subscription struct {
	cache  *Cache
	ks     string
	ch     chan struct{}
	closed bool
}

// Updates canal que recibe una señal cuando un refetch de la clave completa.
func (s *Subscription) Updates() <-chan struct{} { return s.ch }

// Close desmonta el lector. Idempotente. Un refetch en vuelo puede seguir
// poblando el slot; simplemente ya nadie lo observa.
func (s *Subscription) Close() {
	c := s.cache
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	w := c.watchers[s.ks]
	if w == nil {
		return
	}
	w.refs--
	for i, sub := range w.subs {
		if sub == s {
			w.subs = append(w.subs[:i], w.subs[i+1:]...)
			break
		}
	}
	if w.refs <= 0 && !w.refetching {
		delete(c.watchers, s.ks)
	}
}

// Invalidate marca obsoletas todas las entradas cuya clave tenga el prefijo
// dado y agenda un refetch en segundo plano por cada clave con lectores
// montados. Idempotente: invalidar dos veces seguidas no duplica refetches
// en vuelo. Nunca toca datos en memoria de forma síncrona.
func (c *Cache) Invalidate(ctx context.Context, prefix Key) {
	c.mu.Lock()
	var pending []*watcher
	seen := make(map[string]bool)

	for _, ks := range c.store.Keys() {
		e, ok := c.store.Peek(ks)
		if !ok || !e.key.HasPrefix(prefix) {
			continue
		}
		e.stale = true
		seen[ks] = true
		// Una clave sembrada con Prime puede tener suscriptores sin fetcher
		// conocido todavía; queda obsoleta y se refresca en la próxima lectura.
		if w := c.watchers[ks]; w != nil && w.refs > 0 && !w.refetching && w.fn != nil {
			w.refetching = true
			pending = append(pending, w)
		}
	}
	// Claves suscritas cuyo slot fue expulsado del LRU: también refetchean.
	for ks, w := range c.watchers {
		if seen[ks] || !w.key.HasPrefix(prefix) {
			continue
		}
		if w.refs > 0 && !w.refetching && w.fn != nil {
			w.refetching = true
			pending = append(pending, w)
		}
	}
	c.mu.Unlock()

	for _, w := range pending {
		c.refetches.Add(1)
		go c.refetch(context.WithoutCancel(ctx), w)
	}
}

// InvalidateAfter aplica la fila del grafo de invalidación de la mutación
// dada. Debe llamarse solo tras el éxito de la llamada remota: una mutación
// fallida deja el caché intacto.
func (c *Cache) InvalidateAfter(ctx context.Context, m Mutation, s Scope) {
	keys := KeysFor(m, s)
	c.log.Debug().Str("mutation", string(m)).Int("keys", len(keys)).Msg("invalidando tras mutación")
	for _, k := range keys {
		c.Invalidate(ctx, k)
	}
}

// Clear vacía el caché completo (logout).
func (c *Cache) Clear() {
	c.mu.Lock()
	c.store.Purge()
	c.mu.Unlock()
}

// Wait bloquea hasta que terminen los refetch en segundo plano. Para tests.
func (c *Cache) Wait() { c.refetches.Wait() }

// Stats contadores acumulados de aciertos y fallos de caché.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// remember guarda el último fetcher conocido de la clave. Requiere c.mu.
func (c *Cache) remember(ks string, key Key, fn FetchFunc, policy Policy) {
	w := c.watchers[ks]
	if w == nil {
		w = &watcher{key: key}
		c.watchers[ks] = w
	}
	w.fn = fn
	w.policy = policy
}

func (c *Cache) refetch(ctx context.Context, w *watcher) {
	defer c.refetches.Done()
	ks := w.key.String()
	_, err, _ := c.group.Do(ks, func() (any, error) {
		return c.fetch(ctx, ks, w.key, w.fn, w.policy)
	})
	if err != nil {
		c.log.Warn().Err(err).Str("key", ks).Msg("refetch tras invalidación falló")
	}

	c.mu.Lock()
	w.refetching = false
	if w.refs <= 0 {
		delete(c.watchers, ks)
	}
	subs := make([]*Subscription, len(w.subs))
	copy(subs, w.subs)
	c.mu.Unlock()

	for _, s := range subs {
		select {
		case s.ch <- struct{}{}:
		default: // el suscriptor ya tiene una señal pendiente
		}
	}
}

// fetch trae la clave aplicando la política de reintento y cachea el
// resultado con sello de completitud. Un error no cachea nada.
func (c *Cache) fetch(ctx context.Context, ks string, key Key, fn FetchFunc, policy Policy) (any, error) {
	var (
		v   any
		err error
	)
	attempts := c.maxRetries + 1
	if policy == NoRetry {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		v, err = fn(ctx)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrNotFound) && policy == TerminalOnAbsence {
			// Ausencia esperada: resultado terminal, no un fallo.
			c.commit(ks, key, nil, true)
			return nil, nil
		}
		if !transient(err) || i == attempts-1 {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff << uint(i)):
		}
	}
	c.commit(ks, key, v, false)
	return v, nil
}

// commit escribe el resultado con orden por completitud: un fetch rezagado
// cuyo sello sea anterior al de la entrada vigente no la pisa.
func (c *Cache) commit(ks string, key Key, v any, absent bool) {
	ver := c.completions.Add(1)
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.store.Peek(ks); ok && e.version > ver {
		return
	}
	c.store.Add(ks, &entry{key: key, value: v, absent: absent, version: ver})
}

// transient distingue fallos reintentables de resultados definitivos del
// backend (4xx semánticos).
func transient(err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicate):
		return false
	}
	return true
}
