package web

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w4tchme/w4tchme/internal/db"
	"github.com/w4tchme/w4tchme/internal/model"
)

const testTemplates = `
{{define "index.html"}}wizard shell{{end}}
{{define "admin.html"}}admin panel{{end}}
{{define "notfound.html"}}screen not found{{end}}
{{define "view.html"}}view {{.Screen.ID}}{{end}}
`

func newPagesRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))
	NewPages(store).Register(r)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndexAndAdminPages(t *testing.T) {
	r := newPagesRouter(db.NewMemStore())

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wizard shell")

	w = get(r, "/admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin panel")
}

func TestViewScreenRoutes(t *testing.T) {
	store := db.NewMemStore()
	require.NoError(t, store.CreateScreen(&model.Screen{
		ID: "abc123defg", MediaURL: "https://cdn.example/media/loop.gif", MediaType: model.MediaGIF,
	}))
	r := newPagesRouter(store)

	// canonical and short share links resolve identically
	for _, path := range []string{"/view/abc123defg", "/abc123defg"} {
		w := get(r, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "view abc123defg")
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	}
}

func TestViewScreenNotFound(t *testing.T) {
	r := newPagesRouter(db.NewMemStore())

	w := get(r, "/view/nosuchid00")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "screen not found")
}

func TestViewScreenExpired(t *testing.T) {
	store := db.NewMemStore()
	expiresAt := time.Now().Add(-time.Minute)
	require.NoError(t, store.CreateScreen(&model.Screen{ID: "expired001", ExpiresAt: &expiresAt}))
	r := newPagesRouter(store)

	w := get(r, "/view/expired001")
	assert.Equal(t, http.StatusNotFound, w.Code, "expired links render the 404 page")
}
