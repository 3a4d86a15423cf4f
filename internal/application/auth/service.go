// Package auth orquesta el ciclo de sesión contra el backend: login,
// registro, perfil y logout. Es el único servicio que escribe en el
// session.Store; el resto solo lee de él a través del cliente REST.
package auth

import (
	"context"

	"github.com/altovivo/client-go/internal/application/dto"
	"github.com/altovivo/client-go/internal/domain"
	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/internal/infrastructure/rest"
	"github.com/altovivo/client-go/internal/query"
	"github.com/altovivo/client-go/internal/session"
	"github.com/altovivo/client-go/pkg/logger"
)

type Service struct {
	api   *rest.Client
	cache *query.Cache
	store *session.Store
	log   *logger.Logger
}

func NewService(api *rest.Client, cache *query.Cache, store *session.Store, log *logger.Logger) *Service {
	return &Service{api: api, cache: cache, store: store, log: log}
}

// Login intercambia credenciales por tokens, carga el perfil y deja la sesión
// establecida de forma atómica. Si el perfil no se puede cargar, la sesión
// queda como estaba antes del intento.
func (s *Service) Login(ctx context.Context, form dto.LoginForm) (*entity.User, error) {
	var pair entity.TokenPair
	if err := s.api.Post(ctx, "/auth/login", form, &pair); err != nil {
		return nil, err
	}

	// Los tokens entran al store antes de pedir el perfil para que el cliente
	// REST los inyecte en /auth/me.
	s.store.SetTokens(pair.AccessToken, pair.RefreshToken)
	var user entity.User
	if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		s.store.Logout()
		return nil, err
	}

	s.store.Login(&user, pair.AccessToken, pair.RefreshToken)
	s.cache.Prime(query.MeKey(), &user)
	s.log.Info().Int64("user_id", user.ID).Msg("sesión iniciada")
	return &user, nil
}

// Register crea la cuenta. No inicia sesión: el registro exige un login
// explícito después.
func (s *Service) Register(ctx context.Context, form dto.RegisterForm) (*entity.User, error) {
	var user entity.User
	if err := s.api.Post(ctx, "/auth/register", form, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me devuelve el perfil del usuario autenticado, cacheado bajo MeKey.
func (s *Service) Me(ctx context.Context) (*entity.User, error) {
	if s.store.AccessToken() == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return query.FetchAs(ctx, s.cache, query.MeKey(), func(ctx context.Context) (*entity.User, error) {
		var user entity.User
		if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
			return nil, err
		}
		s.store.SetUser(&user)
		return &user, nil
	}, query.WithPolicy(query.NoRetry))
}

// UpdateProfile actualiza los datos propios y resiembra el perfil cacheado.
func (s *Service) UpdateProfile(ctx context.Context, form dto.ProfileForm) (*entity.User, error) {
	var user entity.User
	if err := s.api.Patch(ctx, "/users/me", form, &user); err != nil {
		return nil, err
	}
	s.store.SetUser(&user)
	s.cache.Prime(query.MeKey(), &user)
	return &user, nil
}

// ChangePassword cambia la contraseña de la cuenta autenticada.
func (s *Service) ChangePassword(ctx context.Context, form dto.ChangePasswordForm) error {
	return s.api.Post(ctx, "/auth/change-password", form, nil)
}

// Logout limpia la sesión y vacía el caché completo. No llama al backend.
func (s *Service) Logout() {
	s.store.Logout()
	s.cache.Clear()
	s.log.Info().Msg("sesión cerrada")
}
