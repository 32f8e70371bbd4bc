package api

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/api/handler"
	"TaylorDAM/internal/pkg/security"
	"TaylorDAM/internal/service"
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type emptyBlacklist struct{}

func (emptyBlacklist) Get(context.Context, string) (string, error) { return "", nil }

// 只实现用到的方法，其余调用会 panic
type stubMediaService struct {
	service.MediaService
	lastQuery *dto.MediaQueryDTO
}

func (s *stubMediaService) GetMediaList(_ context.Context, actor service.Actor, query *dto.MediaQueryDTO) (*dto.MediaListDTO, error) {
	s.lastQuery = query
	if query.Scope == "all" && !actor.IsAdmin() {
		return nil, service.ErrScopeForbidden
	}
	return &dto.MediaListDTO{Items: []*dto.MediaDTO{}, Limit: 50}, nil
}

func (s *stubMediaService) CreateMedia(_ context.Context, actor service.Actor, in *dto.CreateMediaDTO) (*dto.MediaDTO, error) {
	return &dto.MediaDTO{ID: uuid.NewString(), OwnerUserID: actor.ID, BlobURL: in.BlobURL, Tags: in.Tags}, nil
}

func (s *stubMediaService) StarMedia(_ context.Context, id string, in *dto.StarMediaDTO) (*dto.MediaDTO, error) {
	if in.IsStarred == nil {
		return nil, service.ErrStarValueInvalid
	}
	return &dto.MediaDTO{ID: id, IsStarred: *in.IsStarred}, nil
}

func (s *stubMediaService) BulkDelete(_ context.Context, in *dto.BulkDeleteDTO) (*dto.BulkResultDTO, error) {
	return &dto.BulkResultDTO{Affected: int64(len(in.IDs))}, nil
}

type stubUploadService struct {
	service.UploadService
	calls int
}

func (s *stubUploadService) UploadFile(_ context.Context, _ service.Actor, filename string, file io.ReadSeeker, size int64) (*dto.UploadResultDTO, error) {
	s.calls++
	return &dto.UploadResultDTO{Pathname: "media/" + filename, MimeType: "image/png", FileSize: size}, nil
}

type stubUserService struct {
	service.UserService
}

func (stubUserService) Login(context.Context, *dto.LoginDTO) (*dto.LoginResultDTO, error) {
	return nil, service.ErrInvalidCredentials
}

const testMaxUpload = 1024

func newTestRouter(media *stubMediaService) *gin.Engine {
	return newTestRouterWithUpload(media, &stubUploadService{})
}

func newTestRouterWithUpload(media *stubMediaService, upload *stubUploadService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(&HandlersGroup{
		UserHandler:    handler.NewUserHandler(stubUserService{}, nil),
		MediaHandler:   handler.NewMediaHandler(media),
		UploadHandler:  handler.NewUploadHandler(upload, testMaxUpload),
		TokenBlacklist: emptyBlacklist{},
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, _, err := security.GenerateToken(security.SessionUser{ID: uuid.NewString(), Role: role})
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token
}

func do(r *gin.Engine, method, path, auth, body string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestPing(t *testing.T) {
	r := newTestRouter(&stubMediaService{})
	w, resp := do(r, http.MethodGet, "/api/ping", "", "")
	if w.Code != http.StatusOK || resp.Data != "pong" {
		t.Fatalf("ping: %d %+v", w.Code, resp)
	}
}

func TestMediaRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(&stubMediaService{})
	if w, _ := do(r, http.MethodGet, "/api/media", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestMediaListScope(t *testing.T) {
	media := &stubMediaService{}
	r := newTestRouter(media)

	w, resp := do(r, http.MethodGet, "/api/media?scope=all", bearer(t, "sales"), "")
	if w.Code != http.StatusForbidden || resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d %+v", w.Code, resp)
	}

	w, _ = do(r, http.MethodGet, "/api/media?scope=all&tag=beach&limit=20&starred_only=true", bearer(t, "admin"), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if media.lastQuery.Tag != "beach" || media.lastQuery.Limit != 20 || !media.lastQuery.StarredOnly {
		t.Fatalf("query not bound: %+v", media.lastQuery)
	}

	w, _ = do(r, http.MethodGet, "/api/media?sort_by=password", bearer(t, "admin"), "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown sort column should be rejected, got %d", w.Code)
	}

	for _, q := range []string{"limit=-1", "offset=-5"} {
		if w, _ = do(r, http.MethodGet, "/api/media?"+q, bearer(t, "admin"), ""); w.Code != http.StatusBadRequest {
			t.Fatalf("%s should be rejected, got %d", q, w.Code)
		}
	}
	if w, _ = do(r, http.MethodGet, "/api/media?limit=500", bearer(t, "admin"), ""); w.Code != http.StatusOK || media.lastQuery.Limit != 500 {
		t.Fatalf("large limit is clamped by the service, not rejected: %d", w.Code)
	}
}

func TestCreateMediaRoute(t *testing.T) {
	r := newTestRouter(&stubMediaService{})

	w, resp := do(r, http.MethodPost, "/api/media", bearer(t, "sales"),
		`{"blob_url":"http://cdn.test/dam-media/media/x.png","mime_type":"image/png","file_size":10,"tags":["a"]}`)
	if w.Code != http.StatusCreated || resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %+v", w.Code, resp)
	}

	w, _ = do(r, http.MethodPost, "/api/media", bearer(t, "sales"), `{"blob_url":"not a url","mime_type":"image/png","file_size":10}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	w, _ = do(r, http.MethodPost, "/api/media", bearer(t, "sales"), "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty body should be 400, got %d", w.Code)
	}
}

func TestAdminMediaRoutes(t *testing.T) {
	r := newTestRouter(&stubMediaService{})
	id := uuid.NewString()

	if w, _ := do(r, http.MethodPatch, "/api/media/"+id+"/star", bearer(t, "sales"), `{"is_starred":true}`); w.Code != http.StatusForbidden {
		t.Fatalf("sales cannot star, got %d", w.Code)
	}
	if w, _ := do(r, http.MethodPatch, "/api/media/"+id+"/star", bearer(t, "admin"), `{"is_starred":"yes"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("non-bool star should be 400, got %d", w.Code)
	}
	if w, _ := do(r, http.MethodPatch, "/api/media/"+id+"/star", bearer(t, "admin"), `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing star should be 400, got %d", w.Code)
	}
	if w, _ := do(r, http.MethodPatch, "/api/media/"+id+"/star", bearer(t, "admin"), `{"is_starred":true}`); w.Code != http.StatusOK {
		t.Fatalf("admin star should succeed, got %d", w.Code)
	}

	if w, _ := do(r, http.MethodPost, "/api/media/bulk/delete", bearer(t, "admin"), `{"ids":[]}`); w.Code != http.StatusBadRequest {
		t.Fatalf("empty ids should be 400, got %d", w.Code)
	}
	if w, _ := do(r, http.MethodPost, "/api/media/bulk/delete", bearer(t, "admin"), `{"ids":["nope"]}`); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid uuid should be 400, got %d", w.Code)
	}
	w, resp := do(r, http.MethodPost, "/api/media/bulk/delete", bearer(t, "admin"), `{"ids":["`+id+`"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("bulk delete failed: %d %+v", w.Code, resp)
	}
}

func TestLoginFailure(t *testing.T) {
	r := newTestRouter(&stubMediaService{})

	w, resp := do(r, http.MethodPost, "/api/auth/login", "", `{"email":"a@example.com","password":"bad"}`)
	if w.Code != http.StatusUnauthorized || resp.Message != service.ErrInvalidCredentials.Error() {
		t.Fatalf("expected 401, got %d %+v", w.Code, resp)
	}
	if w, _ = do(r, http.MethodPost, "/api/auth/login", "", `{"email":`); w.Code != http.StatusBadRequest {
		t.Fatalf("broken json should be 400, got %d", w.Code)
	}
}

func multipartUpload(t *testing.T, auth string, size int) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = part.Write(bytes.Repeat([]byte{'x'}, size)); err != nil {
		t.Fatal(err)
	}
	if err = mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", auth)
	return req
}

func TestUploadBodyLimit(t *testing.T) {
	upload := &stubUploadService{}
	r := newTestRouterWithUpload(&stubMediaService{}, upload)
	token := bearer(t, "sales")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, token, 100))
	if w.Code != http.StatusOK || upload.calls != 1 {
		t.Fatalf("small upload: status=%d calls=%d", w.Code, upload.calls)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartUpload(t, token, 2<<20))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized upload should be 413, got %d", w.Code)
	}
	if upload.calls != 1 {
		t.Fatal("oversized upload must not reach the service")
	}
}
