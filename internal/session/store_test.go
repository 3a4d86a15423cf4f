package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altovivo/client-go/internal/domain/entity"
	"github.com/altovivo/client-go/internal/session"
	"github.com/altovivo/client-go/pkg/logger"
)

func testUser() *entity.User {
	return &entity.User{ID: 42, Email: "maria@altovivo.test", FullName: "María Pérez"}
}

func TestStore_LoginYLogoutAtomicos(t *testing.T) {
	s := session.NewStore("", logger.Nop())

	// Caso 1: store recién creado, sin sesión.
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.AccessToken())

	// Caso 2: login deja usuario y tokens en una sola operación.
	s.Login(testUser(), "acceso", "refresco")
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, int64(42), s.User().ID)
	assert.Equal(t, "acceso", s.AccessToken())
	assert.Equal(t, "refresco", s.RefreshToken())

	// Caso 3: logout limpia todo junto.
	s.Logout()
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())
}

func TestStore_TokenSinUsuarioNoEsSesion(t *testing.T) {
	s := session.NewStore("", logger.Nop())

	// SetTokens solo (flujo de refresh al arrancar): credencial sin perfil.
	s.SetTokens("acceso", "refresco")
	assert.False(t, s.IsAuthenticated(), "IsAuthenticated exige token y usuario cargado")

	s.SetUser(testUser())
	assert.True(t, s.IsAuthenticated())
}

func TestStore_PersistenciaIdaYVuelta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sesion.json")

	s := session.NewStore(path, logger.Nop())
	s.Login(testUser(), "acceso", "refresco")

	// El archivo queda con permisos restrictivos.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Un store nuevo restaura la sesión completa.
	restored := session.NewStore(path, logger.Nop())
	restored.Load()
	require.True(t, restored.IsAuthenticated())
	assert.Equal(t, "maria@altovivo.test", restored.User().Email)
	assert.Equal(t, "acceso", restored.AccessToken())
	assert.Equal(t, "refresco", restored.RefreshToken())

	// Logout elimina el archivo.
	restored.Logout()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "el logout debe borrar la sesión persistida")
}

func TestStore_ArchivoAusenteOCorrupto(t *testing.T) {
	// Caso 1: archivo inexistente → store vacío sin error.
	s := session.NewStore(filepath.Join(t.TempDir(), "no-existe.json"), logger.Nop())
	s.Load()
	assert.False(t, s.IsAuthenticated())

	// Caso 2: archivo corrupto → también store vacío.
	path := filepath.Join(t.TempDir(), "corrupto.json")
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0o600))
	s = session.NewStore(path, logger.Nop())
	s.Load()
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}
