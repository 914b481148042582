package endpoints

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w4tchme/w4tchme/internal/db"
	"github.com/w4tchme/w4tchme/internal/http/api"
	"github.com/w4tchme/w4tchme/internal/http/middleware"
	"github.com/w4tchme/w4tchme/internal/model"
)

const testSecret = "s3cr3t"

type fakeGateway struct {
	emptied  []string
	failures map[string]error
}

func (g *fakeGateway) SaveFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	return "", errors.New("not used")
}

func (g *fakeGateway) EmptyFolder(folder string) error {
	g.emptied = append(g.emptied, folder)
	return g.failures[folder]
}

func newPurgeRouter(store db.Store, gateway *fakeGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix:      "/api/admin",
		AdminSecret: testSecret,
	}, PurgeModule(store, gateway))
	return r
}

func doPurge(r *gin.Engine, action, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/"+action, nil)
	if secret != "" {
		req.Header.Set(middleware.HeaderAdminSecret, secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPurgeRequiresSecret(t *testing.T) {
	r := newPurgeRouter(db.NewMemStore(), &fakeGateway{})

	w := doPurge(r, "clearTables", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doPurge(r, "clearTables", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
}

func TestPurgeInvalidAction(t *testing.T) {
	r := newPurgeRouter(db.NewMemStore(), &fakeGateway{})

	w := doPurge(r, "dropEverything", testSecret)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid action"}`, w.Body.String())
}

func TestClearBuckets(t *testing.T) {
	gateway := &fakeGateway{}
	r := newPurgeRouter(db.NewMemStore(), gateway)

	w := doPurge(r, "clearBuckets", testSecret)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"All bucket objects cleared."}`, w.Body.String())
	assert.Equal(t, []string{"backgrounds", "media", "audio"}, gateway.emptied)
}

func TestClearBucketsPartialFailure(t *testing.T) {
	gateway := &fakeGateway{failures: map[string]error{
		"media": errors.New("listing failed"),
	}}
	r := newPurgeRouter(db.NewMemStore(), gateway)

	w := doPurge(r, "clearBuckets", testSecret)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 folder(s) failed")
	// every folder was still attempted
	assert.Len(t, gateway.emptied, 3)
}

func TestClearBucketsTotalFailure(t *testing.T) {
	boom := errors.New("storage unreachable")
	gateway := &fakeGateway{failures: map[string]error{
		"backgrounds": boom, "media": boom, "audio": boom,
	}}
	r := newPurgeRouter(db.NewMemStore(), gateway)

	w := doPurge(r, "clearBuckets", testSecret)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Error clearing data"}`, w.Body.String())
}

func TestClearTables(t *testing.T) {
	store := db.NewMemStore()
	require.NoError(t, store.CreateScreen(&model.Screen{ID: "abc123defg"}))
	require.NoError(t, store.CreateScreen(&model.Screen{ID: "xyz789hijk"}))
	r := newPurgeRouter(store, &fakeGateway{})

	w := doPurge(r, "clearTables", testSecret)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"All tables cleared."}`, w.Body.String())
	assert.Zero(t, store.Len())
}

func TestClearTablesFailure(t *testing.T) {
	store := db.NewMemStore()
	store.FailClear = errors.New("deadlock detected")
	r := newPurgeRouter(store, &fakeGateway{})

	w := doPurge(r, "clearTables", testSecret)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Error clearing data"}`, w.Body.String())
}
