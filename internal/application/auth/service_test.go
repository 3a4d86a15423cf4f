package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altovivo/client-go/internal/apitest"
	"github.com/altovivo/client-go/internal/application/auth"
	"github.com/altovivo/client-go/internal/application/dto"
	"github.com/altovivo/client-go/internal/domain"
	"github.com/altovivo/client-go/internal/infrastructure/rest"
	"github.com/altovivo/client-go/internal/query"
	"github.com/altovivo/client-go/internal/session"
	"github.com/altovivo/client-go/pkg/config"
	"github.com/altovivo/client-go/pkg/logger"
)

func newService(t *testing.T) (*auth.Service, *session.Store, *query.Cache, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	store := session.NewStore("", logger.Nop())
	api := rest.New(config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, store, logger.Nop())
	cache := query.NewCache(query.Config{MaxEntries: 64, TTL: time.Minute}, logger.Nop())
	return auth.NewService(api, cache, store, logger.Nop()), store, cache, srv
}

func TestLogin_EstableceSesionCompleta(t *testing.T) {
	svc, store, _, srv := newService(t)

	user, err := svc.Login(context.Background(), dto.LoginForm{
		Email:    srv.User.Email,
		Password: srv.Password,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, srv.User.ID, user.ID)

	// La sesión queda completa: usuario y tokens, de una sola vez.
	require.True(t, store.IsAuthenticated())
	assert.NotEmpty(t, store.AccessToken())
	assert.NotEmpty(t, store.RefreshToken())
	assert.Equal(t, srv.User.Email, store.User().Email)

	// El token emitido declara expiración futura.
	assert.True(t, store.TokenExpiresAt().After(time.Now()), "el access token debe declarar exp futura")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	svc, store, _, srv := newService(t)

	_, err := svc.Login(context.Background(), dto.LoginForm{
		Email:    srv.User.Email,
		Password: "equivocada",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, store.IsAuthenticated(), "un login fallido no deja sesión a medias")
	assert.Empty(t, store.AccessToken())
}

func TestMe_SirveDelCacheTrasLogin(t *testing.T) {
	svc, _, _, srv := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginForm{Email: srv.User.Email, Password: srv.Password})
	require.NoError(t, err)
	meHits := srv.Hits("GET", "/auth/me")

	// El login ya sembró el perfil: Me no vuelve al backend.
	user, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, srv.User.ID, user.ID)
	assert.Equal(t, meHits, srv.Hits("GET", "/auth/me"), "el perfil sembrado por el login debe servirse del caché")
}

func TestMe_SinSesion(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.Me(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestLogout_LimpiaSesionYCache(t *testing.T) {
	svc, store, cache, srv := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginForm{Email: srv.User.Email, Password: srv.Password})
	require.NoError(t, err)

	svc.Logout()
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.User())

	// El caché quedó vacío: pedir el perfil exige sesión de nuevo.
	_, err = svc.Me(ctx)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	hits, _ := cache.Stats()
	assert.Zero(t, hits, "tras el logout no debe quedar nada que acertar")
}
