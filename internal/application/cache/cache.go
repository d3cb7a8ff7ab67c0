package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Recursos cacheados. La clave final siempre incluye la empresa (ver Key).
const (
	ResourceProducts  = "companyProducts"
	ResourceUsers     = "companyUsers"
	ResourceSuppliers = "companySuppliers"
)

// DefaultTTL tiempo de vida de los listados en caché.
const DefaultTTL = 1800 * time.Second

// ErrMiss lo devuelve Store.Get cuando la clave no existe.
var ErrMiss = errors.New("cache: clave inexistente")

// Store puerto clave/valor con expiración (lo implementa infrastructure/redis).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Observer recibe el resultado de cada lectura (hit, miss, error). Opcional.
type Observer interface {
	ObserveCache(resource, result string)
}

// Key construye la clave de un listado de recurso para una empresa.
func Key(resource string, companyID int64) string {
	return resource + ":" + strconv.FormatInt(companyID, 10)
}

// CompanyKeys devuelve las claves de todos los listados de una empresa.
func CompanyKeys(companyID int64) []string {
	return []string{
		Key(ResourceProducts, companyID),
		Key(ResourceUsers, companyID),
		Key(ResourceSuppliers, companyID),
	}
}

// Policy aplica lectura a través de caché e invalidación. Los fallos de la caché nunca
// abortan la petición: se registra y se continúa contra el almacén.
type Policy struct {
	store    Store
	ttl      time.Duration
	log      zerolog.Logger
	observer Observer
}

// NewPolicy construye la política. ttl <= 0 usa DefaultTTL.
func NewPolicy(store Store, ttl time.Duration, log zerolog.Logger) *Policy {
	if store == nil {
		store = NopStore{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Policy{store: store, ttl: ttl, log: log}
}

// WithObserver registra un observador de métricas.
func (p *Policy) WithObserver(o Observer) *Policy {
	p.observer = o
	return p
}

// TTL devuelve el tiempo de vida configurado.
func (p *Policy) TTL() time.Duration { return p.ttl }

// Fetch lee key de la caché. Si no está, o la caché falla, ejecuta load y guarda su resultado
// sin que un fallo de escritura afecte a la respuesta.
func Fetch[T any](ctx context.Context, p *Policy, resource, key string, load func(context.Context) (T, error)) (T, error) {
	raw, err := p.store.Get(ctx, key)
	switch {
	case err == nil:
		var out T
		jerr := json.Unmarshal(raw, &out)
		if jerr == nil {
			p.observe(resource, "hit")
			return out, nil
		}
		p.log.Warn().Err(jerr).Str("key", key).Msg("valor en caché corrupto, se ignora")
		p.observe(resource, "error")
	case errors.Is(err, ErrMiss):
		p.observe(resource, "miss")
	default:
		p.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida, se consulta el almacén")
		p.observe(resource, "error")
	}

	out, err := load(ctx)
	if err != nil {
		return out, err
	}
	if data, jerr := json.Marshal(out); jerr == nil {
		if serr := p.store.Set(ctx, key, data, p.ttl); serr != nil {
			p.log.Warn().Err(serr).Str("key", key).Msg("escritura en caché fallida")
		}
	}
	return out, nil
}

// Invalidate elimina las claves. Un fallo solo se registra: la siguiente lectura expira por TTL.
func (p *Policy) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := p.store.Delete(ctx, keys...); err != nil {
		p.log.Error().Err(err).Strs("keys", keys).Msg("invalidación de caché fallida")
	}
}

func (p *Policy) observe(resource, result string) {
	if p.observer != nil {
		p.observer.ObserveCache(resource, result)
	}
}

// NopStore caché que nunca guarda nada (sin Redis o en pruebas).
type NopStore struct{}

func (NopStore) Get(context.Context, string) ([]byte, error)              { return nil, ErrMiss }
func (NopStore) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopStore) Delete(context.Context, ...string) error                  { return nil }
