// Package apitest levanta un backend falso sobre un puerto real para probar
// el cliente de punta a punta: emite tokens HS256 de verdad, exige bearer en
// las rutas protegidas y deja registrar respuestas por ruta desde cada test.
package apitest

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/pkg/jwt"
)

const tokenMinutes = 30

// Server backend falso. Las rutas de auth vienen montadas; el resto las
// registra cada test con Handle/JSON/Fail antes de disparar la petición.
type Server struct {
	App    *fiber.App
	URL    string
	Secret string

	User     entity.User
	Password string

	mu          sync.Mutex
	hits        map[string]int
	refreshes   map[string]bool
	failRefresh bool
	ln          net.Listener
}

// New arranca el servidor en un puerto efímero y lo apaga al terminar el test.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		Secret: "secreto-de-pruebas",
		User: entity.User{
			ID:         42,
			Email:      "maria@altovivo.test",
			Username:   "maria",
			FullName:   "María Pérez",
			SystemRole: entity.SystemRoleUser,
			IsActive:   true,
		},
		Password:  "clave123",
		hits:      make(map[string]int),
		refreshes: make(map[string]bool),
	}
	s.App = fiber.New(fiber.Config{DisableStartupMessage: true})
	s.mountAuth()
	s.App.Use(s.requireBearer)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("apitest: no se pudo abrir el listener: %v", err)
	}
	s.ln = ln
	s.URL = "http://" + ln.Addr().String()
	go func() { _ = s.App.Listener(ln) }()
	t.Cleanup(func() { _ = s.App.Shutdown() })
	return s
}

// Handle registra un handler protegido por bearer.
func (s *Server) Handle(method, path string, h fiber.Handler) {
	s.App.Add(method, path, h)
}

// JSON registra una ruta que responde 200 con el valor dado.
func (s *Server) JSON(method, path string, v any) {
	s.Handle(method, path, func(c *fiber.Ctx) error {
		return c.JSON(v)
	})
}

// Fail registra una ruta que responde siempre el error dado.
func (s *Server) Fail(method, path string, status int, code, message string) {
	s.Handle(method, path, func(c *fiber.Ctx) error {
		return c.Status(status).JSON(fiber.Map{"code": code, "message": message})
	})
}

// Hits cuántas veces llegó una petición method path al servidor.
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// SetFailRefresh hace que /auth/refresh rechace todo refresh token.
func (s *Server) SetFailRefresh(fail bool) {
	s.mu.Lock()
	s.failRefresh = fail
	s.mu.Unlock()
}

// IssueTokens emite un par válido para el usuario del servidor, como si el
// login ya hubiera ocurrido.
func (s *Server) IssueTokens(t *testing.T) (access, refresh string) {
	t.Helper()
	access, err := jwt.Generate(s.Secret, s.User.ID, s.User.SystemRole, "apitest", tokenMinutes)
	if err != nil {
		t.Fatalf("apitest: emitir access token: %v", err)
	}
	refresh = uuid.New().String()
	s.mu.Lock()
	s.refreshes[refresh] = true
	s.mu.Unlock()
	return access, refresh
}

// ExpiredToken emite un access token ya vencido.
func (s *Server) ExpiredToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.Generate(s.Secret, s.User.ID, s.User.SystemRole, "apitest", -5)
	if err != nil {
		t.Fatalf("apitest: emitir token vencido: %v", err)
	}
	return tok
}

func (s *Server) mountAuth() {
	s.App.Use(func(c *fiber.Ctx) error {
		s.mu.Lock()
		s.hits[c.Method()+" "+c.Path()]++
		s.mu.Unlock()
		return c.Next()
	})

	s.App.Post("/auth/login", func(c *fiber.Ctx) error {
		var form struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&form); err != nil {
			return unauthorized(c, "credenciales ilegibles")
		}
		if form.Email != s.User.Email || form.Password != s.Password {
			return unauthorized(c, "credenciales inválidas")
		}
		return s.tokenPair(c)
	})

	s.App.Post("/auth/refresh", func(c *fiber.Ctx) error {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		s.mu.Lock()
		ok := s.refreshes[body.RefreshToken] && !s.failRefresh
		if ok {
			delete(s.refreshes, body.RefreshToken)
		}
		s.mu.Unlock()
		if !ok {
			return unauthorized(c, "refresh token inválido")
		}
		return s.tokenPair(c)
	})

	s.App.Post("/auth/register", func(c *fiber.Ctx) error {
		return c.JSON(s.User)
	})
}

func (s *Server) tokenPair(c *fiber.Ctx) error {
	access, err := jwt.Generate(s.Secret, s.User.ID, s.User.SystemRole, "apitest", tokenMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"code": "TOKEN", "message": err.Error()})
	}
	refresh := uuid.New().String()
	s.mu.Lock()
	s.refreshes[refresh] = true
	s.mu.Unlock()
	return c.JSON(entity.TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"})
}

// requireBearer exige un token HS256 vigente firmado con el secreto del
// servidor en todo lo que no sea /auth/login, /auth/refresh o /auth/register.
func (s *Server) requireBearer(c *fiber.Ctx) error {
	raw := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if raw == "" {
		return unauthorized(c, "falta el bearer token")
	}
	_, err := jwtlib.ParseWithClaims(raw, &jwt.Claims{}, func(tok *jwtlib.Token) (any, error) {
		if _, ok := tok.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", tok.Header["alg"])
		}
		return []byte(s.Secret), nil
	})
	if err != nil {
		return unauthorized(c, "token inválido o vencido")
	}

	// /auth/me es la única ruta protegida que viene montada.
	if c.Method() == fiber.MethodGet && c.Path() == "/auth/me" {
		return c.JSON(s.User)
	}
	return c.Next()
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"code": "UNAUTHORIZED", "message": msg})
}
