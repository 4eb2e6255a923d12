// Package ids genera identificadores legibles con el formato PREFIJO-YYYYMMDD-HHMMSS-xxxx.
// Ejemplo: PRD-20251112-153045-8f3a
//
// Los IDs ordenan lexicográficamente por fecha de creación (resolución de segundos).
// La unicidad real la garantiza la restricción de clave primaria en la base relacional;
// ante una colisión el llamador debe regenerar y reintentar.
package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// Kind identifica el tipo de entidad y determina el prefijo.
type Kind string

// Prefijos fijos por tipo de entidad.
const (
	KindUser     Kind = "USR"
	KindClient   Kind = "CLI"
	KindProduct  Kind = "PRD"
	KindFeedback Kind = "FBK"
)

// suffixBytes bytes aleatorios del sufijo (4 caracteres hex).
const suffixBytes = 2

// Generator produce IDs a partir de un reloj y una fuente de entropía.
type Generator struct {
	now  func() time.Time
	rand io.Reader
}

// New construye un generador con reloj del sistema y crypto/rand.
func New() *Generator {
	return &Generator{now: time.Now, rand: rand.Reader}
}

// NewWith permite inyectar reloj y fuente aleatoria (tests, herramientas offline).
func NewWith(now func() time.Time, r io.Reader) *Generator {
	if now == nil {
		now = time.Now
	}
	if r == nil {
		r = rand.Reader
	}
	return &Generator{now: now, rand: r}
}

// Generate devuelve un nuevo ID para kind.
func (g *Generator) Generate(kind Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("ids: tipo desconocido %q", string(kind))
	}
	buf := make([]byte, suffixBytes)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("ids: leer entropía: %w", err)
	}
	return Format(kind, g.now(), hex.EncodeToString(buf)), nil
}

// Format compone el ID sin aleatoriedad propia; útil para validar y para tests.
func Format(kind Kind, t time.Time, suffix string) string {
	return fmt.Sprintf("%s-%s-%s-%s", kind, t.Format("20060102"), t.Format("150405"), suffix)
}

// Valid indica si kind es uno de los cuatro prefijos conocidos.
func (k Kind) Valid() bool {
	switch k {
	case KindUser, KindClient, KindProduct, KindFeedback:
		return true
	}
	return false
}
