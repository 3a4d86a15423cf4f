package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Key identifica un resultado cacheado: una tupla ordenada de segmentos de
// ruta (ej. businesses/5/clients). Dos lecturas con tuplas estructuralmente
// iguales direccionan el mismo slot del caché.
type Key struct {
	segs []string
}

// Params filtros de una lectura. Forman parte de la clave para que cada
// combinación de filtros cachee por separado. Los valores nil se omiten.
type Params map[string]any

// NewKey construye una clave a partir de segmentos (strings e IDs numéricos).
func NewKey(parts ...any) Key {
	k := Key{segs: make([]string, 0, len(parts))}
	return k.With(parts...)
}

// With devuelve una clave extendida con más segmentos. No muta la original.
func (k Key) With(parts ...any) Key {
	segs := make([]string, len(k.segs), len(k.segs)+len(parts))
	copy(segs, k.segs)
	for _, p := range parts {
		segs = append(segs, segment(p))
	}
	return Key{segs: segs}
}

// WithParams devuelve la clave con un segmento canónico de filtros al final.
// Parámetros iguales producen claves estructuralmente iguales: las entradas
// se ordenan por nombre y los valores se escapan. Un mapa nil no agrega nada.
func (k Key) WithParams(p Params) Key {
	if p == nil {
		return k
	}
	names := make([]string, 0, len(p))
	for name, v := range p {
		if v == nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fmt.Sprint(p[name])))
	}
	b.WriteByte('}')
	return k.With(b.String())
}

// String forma canónica de la clave. Segmento a segmento, separada por '/';
// los valores de filtros van escapados, así que '/' no puede colarse en un
// segmento y romper la correspondencia prefijo↔jerarquía.
func (k Key) String() string {
	return strings.Join(k.segs, "/")
}

// Len cantidad de segmentos.
func (k Key) Len() int { return len(k.segs) }

// Equal igualdad estructural.
func (k Key) Equal(o Key) bool {
	if len(k.segs) != len(o.segs) {
		return false
	}
	for i := range k.segs {
		if k.segs[i] != o.segs[i] {
			return false
		}
	}
	return true
}

// HasPrefix indica si p es prefijo (segmento a segmento) de k. Toda clave es
// prefijo de sí misma. Es la relación que usa la invalidación: invalidar
// businesses/5/clients alcanza también businesses/5/clients/9/stats.
func (k Key) HasPrefix(p Key) bool {
	if len(p.segs) > len(k.segs) {
		return false
	}
	for i := range p.segs {
		if k.segs[i] != p.segs[i] {
			return false
		}
	}
	return true
}

func segment(p any) string {
	switch v := p.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
