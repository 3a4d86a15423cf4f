package session

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/pkg/jwt"
	"github.com/altovivo/client-go/pkg/logger"
)

// Store estado de sesión del proceso: usuario + par de tokens.
// Todas las escrituras pasan por Login/Logout/SetTokens/SetUser; las lecturas
// reflejan la última escritura de forma síncrona (mutex, sin ventana de staleness).
type Store struct {
	mu           sync.RWMutex
	user         *entity.User
	accessToken  string
	refreshToken string

	path string // archivo de persistencia; vacío = solo memoria
	log  *logger.Logger
}

// persisted forma serializada en disco. Se guardan los tres campos y el
// usuario se revalida contra /auth/me al arrancar.
type persisted struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// NewStore crea el store. path vacío deshabilita la persistencia (tests).
func NewStore(path string, log *logger.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load restaura la sesión persistida. Un archivo ausente o corrupto deja el
// store vacío sin reportar error: arrancar sin sesión es un estado válido.
func (s *Store) Load() {
	if s.path == "" {
		return
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.Warn().Err(err).Str("file", s.path).Msg("archivo de sesión corrupto, se ignora")
		return
	}
	s.mu.Lock()
	s.user = p.User
	s.accessToken = p.AccessToken
	s.refreshToken = p.RefreshToken
	s.mu.Unlock()
}

// Login establece usuario y tokens de forma atómica y persiste.
func (s *Store) Login(user *entity.User, access, refresh string) {
	s.mu.Lock()
	s.user = user
	s.accessToken = access
	s.refreshToken = refresh
	s.mu.Unlock()
	s.persist()
}

// Logout limpia usuario y tokens de forma atómica y elimina la persistencia.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.mu.Unlock()
	if s.path != "" {
		_ = os.Remove(s.path)
	}
}

// SetTokens reemplaza el par de tokens (flujo de refresh) conservando el usuario.
func (s *Store) SetTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	s.mu.Unlock()
	s.persist()
}

// SetUser actualiza el usuario cargado (respuesta de /auth/me).
func (s *Store) SetUser(user *entity.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.persist()
}

// User devuelve el usuario actual (nil si no hay sesión o aún no se cargó).
func (s *Store) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AccessToken devuelve el access token vigente ("" si no hay).
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken devuelve el refresh token vigente ("" si no hay).
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// IsAuthenticated exige credencial no vacía Y usuario cargado.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != "" && s.user != nil
}

// TokenExpiresAt expiración declarada del access token (tiempo cero si no aplica).
func (s *Store) TokenExpiresAt() time.Time {
	s.mu.RLock()
	tok := s.accessToken
	s.mu.RUnlock()
	if tok == "" {
		return time.Time{}
	}
	return jwt.ExpiresAt(tok)
}

func (s *Store) persist() {
	if s.path == "" {
		return
	}
	s.mu.RLock()
	p := persisted{User: s.user, AccessToken: s.accessToken, RefreshToken: s.refreshToken}
	s.mu.RUnlock()
	raw, err := json.Marshal(p)
	if err != nil {
		s.log.Error().Err(err).Msg("serializar sesión")
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		s.log.Error().Err(err).Str("file", s.path).Msg("persistir sesión")
	}
}
