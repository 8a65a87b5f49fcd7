package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"school_transport/internal/messaging"
	"school_transport/internal/middleware"
	"school_transport/internal/models"
	"school_transport/internal/services"
	"school_transport/internal/storage"
	"school_transport/internal/testutil"
)

type outbox struct {
	mu   sync.Mutex
	sent []messaging.Message
}

func (o *outbox) Send(_ context.Context, msg messaging.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

type testServer struct {
	router     *gin.Engine
	db         *gorm.DB
	users      *services.UserService
	tokens     *middleware.TokenManager
	dispatcher *messaging.Dispatcher
	mail       *outbox
	uploadDir  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	log := testutil.DiscardLogger()
	tokens := middleware.NewTokenManager("test-secret", time.Hour)
	dispatcher := messaging.NewDispatcher(log, time.Second)
	mail := &outbox{}

	uploadDir := t.TempDir()
	store, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	users := services.NewUserService(db)
	router, err := SetupRouter(Deps{
		Log:    log,
		Tokens: tokens,
		Users:  users,
		Drivers: services.NewDriverService(db),
		Trips:   services.NewTripService(db),
		Resets: services.NewResetService(db, dispatcher, mail, mail,
			services.WithCodeGenerator(func() (string, error) { return "4821", nil })),
		Incidents:     services.NewIncidentService(db),
		Notifications: services.NewNotificationService(db),
		Dashboard:     services.NewDashboardService(db),
		Schools:       services.NewSchoolService(db),
		Store:         store,
	})
	require.NoError(t, err)

	return &testServer{
		router:     router,
		db:         db,
		users:      users,
		tokens:     tokens,
		dispatcher: dispatcher,
		mail:       mail,
		uploadDir:  uploadDir,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createUser(t *testing.T, name, email string, role models.Role) *models.User {
	t.Helper()
	created, err := s.users.Create(context.Background(), services.CreateUserInput{
		Name:  name,
		Email: email,
		Phone: "+22177" + email[:3],
		Role:  string(role),
	})
	require.NoError(t, err)
	return &created.User
}

func (s *testServer) token(t *testing.T, u *models.User) string {
	t.Helper()
	tok, err := s.tokens.Issue(u.ID, u.Role)
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthAndPreflight(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodOptions, "/trips/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/anything/else", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/auth/register-parent", map[string]string{
		"name": "Awa Diop", "email": "awa@example.com", "phone": "+221770000001", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	registered := decode(t, w)
	assert.Equal(t, "parent", registered["role"])
	assert.NotContains(t, registered, "password")

	w = s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "awa@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode(t, w)
	token, _ := login["token"].(string)
	require.NotEmpty(t, token)

	w = s.do(t, http.MethodGet, "/auth", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode(t, w)
	assert.Equal(t, "Awa", profile["firstName"])
	assert.Equal(t, "Diop", profile["lastName"])

	w = s.do(t, http.MethodGet, "/auth", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/auth/register-parent", map[string]string{
		"name": "Awa", "email": "awa@example.com", "password": "secret1",
	}, "")

	w := s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "nobody@example.com", "password": "x"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "awa@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	require.NoError(t, s.db.Model(&models.User{}).Where("email = ?", "awa@example.com").
		Update("status", models.UserInactive).Error)
	w = s.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "awa@example.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserEndpointsRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := s.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	parent := s.createUser(t, "Awa", "awa@example.com", models.RoleParent)

	w := s.do(t, http.MethodGet, "/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/users", nil, s.token(t, parent))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/users", nil, s.token(t, admin))
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	w = s.do(t, http.MethodDelete, "/users/"+jsonID(parent.ID), nil, s.token(t, parent))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateDriverUserProvisionsDriver(t *testing.T) {
	s := newTestServer(t)
	admin := s.createUser(t, "Root", "root@example.com", models.RoleAdmin)

	w := s.do(t, http.MethodPost, "/users", map[string]string{
		"name": "Moussa Fall", "email": "moussa@example.com", "role": "driver",
	}, s.token(t, admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "driver123", decode(t, w)["generatedPassword"])

	w = s.do(t, http.MethodPost, "/users", map[string]string{
		"name": "Typo", "email": "typo@example.com", "status": "actve",
	}, s.token(t, admin))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/drivers", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var drivers []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drivers))
	require.Len(t, drivers, 1)
	assert.Equal(t, "Moussa Fall", drivers[0]["name"])
}

func TestAssignDriverOverHTTP(t *testing.T) {
	s := newTestServer(t)
	first := s.createUser(t, "Moussa", "moussa@example.com", models.RoleDriver)
	second := s.createUser(t, "Ibra", "ibra@example.com", models.RoleDriver)
	firstDriver := driverIDFor(t, s.db, first.ID)
	secondDriver := driverIDFor(t, s.db, second.ID)

	w := s.do(t, http.MethodPost, "/trips", map[string]interface{}{
		"start_point": "Plateau", "end_point": "Ecole Mermoz",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tripID := jsonID(uint(decode(t, w)["id"].(float64)))

	w = s.do(t, http.MethodPatch, "/trips/"+tripID, map[string]uint{"driver_id": firstDriver}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, firstDriver, decode(t, w)["driver_id"])

	w = s.do(t, http.MethodPatch, "/trips/"+tripID, map[string]uint{"driver_id": secondDriver}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Trip not found or already assigned", decode(t, w)["message"])

	w = s.do(t, http.MethodPatch, "/trips/"+tripID, map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/trips/abc", map[string]uint{"driver_id": secondDriver}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/trips/9999", map[string]uint{"driver_id": secondDriver}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/trips", map[string]interface{}{"start_point": "Yoff", "end_point": "Ecole Mermoz"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	freeTrip := jsonID(uint(decode(t, w)["id"].(float64)))
	w = s.do(t, http.MethodPatch, "/trips/"+freeTrip, map[string]uint{"driver_id": 424242}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/trips/with-driver", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var assigned []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assigned))
	require.Len(t, assigned, 1)
	assert.Equal(t, "Moussa", assigned[0]["driver_name"])
}

func TestPasswordResetFlow(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "Awa", "awa@example.com", models.RoleParent)

	w := s.do(t, http.MethodPost, "/auth/forgot-password", map[string]string{"contact": "awa@example.com"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	s.dispatcher.Wait()

	s.mail.mu.Lock()
	require.Len(t, s.mail.sent, 1)
	assert.Equal(t, "awa@example.com", s.mail.sent[0].To)
	assert.Contains(t, s.mail.sent[0].Body, "4821")
	s.mail.mu.Unlock()
	assert.NotContains(t, w.Body.String(), "4821")

	verify := map[string]interface{}{"userId": user.ID, "code": "4821"}
	for i := 0; i < 2; i++ {
		w = s.do(t, http.MethodPost, "/auth/verify-otp", verify, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "4821", decode(t, w)["code"])
	}

	w = s.do(t, http.MethodPost, "/auth/verify-otp", map[string]interface{}{"userId": jsonID(user.ID), "code": 4821}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "4821", decode(t, w)["code"])

	w = s.do(t, http.MethodPost, "/auth/verify-otp", map[string]interface{}{"userId": user.ID, "code": "0000"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/auth/forgot-password", map[string]string{"contact": "ghost@example.com"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploads(t *testing.T) {
	s := newTestServer(t)
	user := s.createUser(t, "Moussa", "moussa@example.com", models.RoleDriver)

	require.NoError(t, os.MkdirAll(filepath.Join(s.uploadDir, "documents"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.uploadDir, "documents", "license.pdf"), []byte("%PDF-1.4"), 0o644))

	w := s.do(t, http.MethodGet, "/uploads/documents/license.pdf", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", w.Header().Get("Cache-Control"))
	assert.Equal(t, "%PDF-1.4", w.Body.String())

	w = s.do(t, http.MethodGet, "/uploads/../../etc/passwd", nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/uploads/documents/missing.png", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "vehicle.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	upload := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/uploads", bytes.NewReader(body.Bytes()))
		req.Header.Set("Content-Type", mw.FormDataContentType())
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, upload("").Code)

	rec := upload(s.token(t, user))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	uploaded := decode(t, rec)
	url, _ := uploaded["url"].(string)
	require.NotEmpty(t, url)

	w = s.do(t, http.MethodGet, url, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestSchoolWritesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	admin := s.createUser(t, "Root", "root@example.com", models.RoleAdmin)
	parent := s.createUser(t, "Awa", "awa@example.com", models.RoleParent)

	school := map[string]string{"name": "Ecole Mermoz", "address": "Mermoz"}
	w := s.do(t, http.MethodPost, "/schools", school, s.token(t, parent))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/schools", school, s.token(t, admin))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, models.SchoolActive, decode(t, w)["status"])

	w = s.do(t, http.MethodGet, "/schools", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/dashboard", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode(t, w)
	assert.Equal(t, true, dash["success"])
	assert.EqualValues(t, 1, dash["schools"])
}

func driverIDFor(t *testing.T, db *gorm.DB, userID uint) uint {
	t.Helper()
	var d models.Driver
	require.NoError(t, db.Where("user_id = ?", userID).First(&d).Error)
	return d.ID
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
