package rest_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altovivo/client-go/internal/apitest"
	"github.com/altovivo/client-go/internal/domain"
	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/internal/infrastructure/rest"
	"github.com/altovivo/client-go/internal/session"
	"github.com/altovivo/client-go/pkg/config"
	"github.com/altovivo/client-go/pkg/logger"
)

func newClient(t *testing.T, srv *apitest.Server) (*rest.Client, *session.Store) {
	t.Helper()
	store := session.NewStore("", logger.Nop())
	cfg := config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}
	return rest.New(cfg, store, logger.Nop()), store
}

func TestClient_InyectaBearerYDecodifica(t *testing.T) {
	srv := apitest.New(t)
	api, store := newClient(t, srv)

	access, refresh := srv.IssueTokens(t)
	store.SetTokens(access, refresh)

	srv.JSON(fiber.MethodGet, "/businesses", []entity.Business{{ID: 5, Name: "Tienda Centro"}})

	var out []entity.Business
	require.NoError(t, api.Get(context.Background(), "/businesses", nil, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Tienda Centro", out[0].Name)
}

func TestClient_SinTokenRecibe401(t *testing.T) {
	srv := apitest.New(t)
	api, _ := newClient(t, srv)

	srv.JSON(fiber.MethodGet, "/businesses", []entity.Business{})

	err := api.Get(context.Background(), "/businesses", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_RefrescaUnaVezYReintenta(t *testing.T) {
	srv := apitest.New(t)
	api, store := newClient(t, srv)

	// Access vencido pero refresh válido: el 401 debe disparar un único
	// refresh y el reintento debe salir con el token nuevo.
	_, refresh := srv.IssueTokens(t)
	expired := srv.ExpiredToken(t)
	store.SetUser(&srv.User)
	store.SetTokens(expired, refresh)

	srv.JSON(fiber.MethodGet, "/businesses", []entity.Business{{ID: 5}})

	var out []entity.Business
	require.NoError(t, api.Get(context.Background(), "/businesses", nil, &out))
	require.Len(t, out, 1)

	assert.Equal(t, 1, srv.Hits(fiber.MethodPost, "/auth/refresh"), "exactamente un refresh")
	assert.Equal(t, 2, srv.Hits(fiber.MethodGet, "/businesses"), "la petición original más el reintento")
	assert.NotEqual(t, expired, store.AccessToken(), "el par de tokens debe rotar")
	assert.True(t, store.IsAuthenticated(), "la sesión sobrevive al refresh")
}

func TestClient_RefreshFallidoCierraSesion(t *testing.T) {
	srv := apitest.New(t)
	api, store := newClient(t, srv)

	_, refresh := srv.IssueTokens(t)
	store.SetUser(&srv.User)
	store.SetTokens(srv.ExpiredToken(t), refresh)
	srv.SetFailRefresh(true)

	srv.JSON(fiber.MethodGet, "/businesses", []entity.Business{})

	err := api.Get(context.Background(), "/businesses", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, store.IsAuthenticated(), "un refresh fallido debe cerrar la sesión")
	assert.Empty(t, store.AccessToken())
}

func TestClient_SinRefreshTokenNoIntentaRefrescar(t *testing.T) {
	srv := apitest.New(t)
	api, store := newClient(t, srv)

	store.SetUser(&srv.User)
	store.SetTokens(srv.ExpiredToken(t), "")

	srv.JSON(fiber.MethodGet, "/businesses", []entity.Business{})

	err := api.Get(context.Background(), "/businesses", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 0, srv.Hits(fiber.MethodPost, "/auth/refresh"))
	assert.False(t, store.IsAuthenticated())
}

func TestClient_MapeaErroresADominio(t *testing.T) {
	srv := apitest.New(t)
	api, store := newClient(t, srv)

	access, refresh := srv.IssueTokens(t)
	store.SetTokens(access, refresh)

	srv.Fail(fiber.MethodGet, "/inexistente", fiber.StatusNotFound, "NOT_FOUND", "no existe")
	srv.Fail(fiber.MethodPost, "/duplicado", fiber.StatusConflict, "DUPLICATE", "ya existe")
	srv.Fail(fiber.MethodGet, "/roto", fiber.StatusInternalServerError, "INTERNAL", "se rompió")

	ctx := context.Background()

	// Caso 1: 404 → ErrNotFound, con el APIError accesible vía errors.As.
	err := api.Get(ctx, "/inexistente", nil, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "no existe", apiErr.Message)

	// Caso 2: 409 → ErrDuplicate.
	assert.ErrorIs(t, api.Post(ctx, "/duplicado", nil, nil), domain.ErrDuplicate)

	// Caso 3: 5xx → ErrUnavailable.
	assert.ErrorIs(t, api.Get(ctx, "/roto", nil, nil), domain.ErrUnavailable)
}

func TestClient_FalloDeTransporte(t *testing.T) {
	store := session.NewStore("", logger.Nop())
	api := rest.New(config.APIConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1}, store, logger.Nop())

	err := api.Get(context.Background(), "/businesses", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable, "sin backend el error es transitorio, no semántico")
}
