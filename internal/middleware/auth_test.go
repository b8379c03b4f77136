package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "clave-de-prueba"

func init() {
	gin.SetMode(gin.TestMode)
}

func firmarToken(t *testing.T, secret, tipo string, esAdmin bool, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  int64(1),
		"nombre":   "Operador Uno",
		"tipo":     tipo,
		"es_admin": esAdmin,
		"exp":      exp.Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{JWTAuth(testSecret)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"nombre": GetClaims(c).Nombre})
	})
	r.GET("/protegida", chain...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthTokenValido(t *testing.T) {
	r := newProtectedRouter()
	token := firmarToken(t, testSecret, "operador", false, time.Now().Add(time.Hour))

	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Operador Uno")
}

func TestJWTAuthRechazos(t *testing.T) {
	r := newProtectedRouter()

	// Sin header.
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Firmado con otra clave.
	w = doRequest(r, firmarToken(t, "otra-clave", "operador", false, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Expirado.
	w = doRequest(r, firmarToken(t, testSecret, "operador", false, time.Now().Add(-time.Hour)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Basura.
	w = doRequest(r, "no-es-un-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireTipo(t *testing.T) {
	r := newProtectedRouter(RequireTipo("operador"))

	w := doRequest(r, firmarToken(t, testSecret, "operador", false, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusOK, w.Code)

	// Un token de cliente no pasa a rutas de operador.
	w = doRequest(r, firmarToken(t, testSecret, "cliente", false, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newProtectedRouter(RequireAdmin())

	w := doRequest(r, firmarToken(t, testSecret, "operador", true, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, firmarToken(t, testSecret, "operador", false, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// es_admin en un token de cliente no otorga acceso.
	w = doRequest(r, firmarToken(t, testSecret, "cliente", true, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
