package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/promo-quoter/internal/auth"
	handler "github.com/rogerio-castellano/promo-quoter/internal/http/handlers"
	"github.com/rogerio-castellano/promo-quoter/internal/http/router"
	"github.com/rogerio-castellano/promo-quoter/internal/importer"
	"github.com/rogerio-castellano/promo-quoter/internal/quoting"
	"github.com/rogerio-castellano/promo-quoter/internal/repo"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "secret123"
)

var (
	token         string
	jwtManager    *auth.JWTManager
	productRepo   *repo.InMemoryProductRepository
	techniqueRepo *repo.InMemoryTechniqueRepository
	quoteRepo     *repo.InMemoryQuoteRepository
)

func init() {
	setupTestRepos()
	r := newRouter()

	var err error
	token, err = registerUser(r, adminEmail, "admin", adminPassword)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos() {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	techniqueRepo = repo.NewInMemoryTechniqueRepository()
	handler.SetTechniqueRepo(techniqueRepo)

	quoteRepo = repo.NewInMemoryQuoteRepository()
	handler.SetQuoteEngine(quoting.NewEngine(productRepo, techniqueRepo, quoteRepo))
	handler.SetStatsRepo(repo.NewCountingStatsRepository(productRepo, techniqueRepo, quoteRepo))
	handler.SetImporter(importer.New(productRepo))

	jwtManager = auth.NewJWTManager("test-secret", time.Hour)
	userRepo := repo.NewInMemoryUserRepository()
	handler.SetAuthService(auth.NewAuthService(userRepo, jwtManager, auth.NewMemoryRefreshTokenStore(), time.Hour))
}

func newRouter() http.Handler {
	return router.NewRouter(router.Options{JWT: jwtManager, CORSOrigins: []string{"*"}})
}

func clearAll() {
	productRepo.Clear()
	techniqueRepo.Clear()
	quoteRepo.Clear()
}

func registerUser(r http.Handler, email, username, password string) (string, error) {
	w := doJSON(r, http.MethodPost, "/api/auth/register", "", handler.RegisterRequest{Email: email, Username: username, Password: password})
	if w.Code != http.StatusOK {
		return "", fmt.Errorf("register returned %d: %s", w.Code, w.Body.String())
	}

	var resp handler.TokenResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.AccessToken, nil
}

// otherUserToken registers a fresh user and returns its access token.
func otherUserToken(r http.Handler) (string, error) {
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	return registerUser(r, email, "other", "secret123")
}

// doJSON sends body as JSON (nil for no body) with bearer tok when non-empty.
func doJSON(r http.Handler, method, path, tok string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/products", token, p)
}

func createTechnique(r http.Handler, t handler.TechniqueRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/marking-techniques", token, t)
}

func multipartFile(content []byte, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	_, _ = part.Write(content)

	_ = writer.Close()
	return &buf, writer.FormDataContentType()
}

func upload(r http.Handler, content []byte, filename string) *httptest.ResponseRecorder {
	body, contentType := multipartFile(content, filename)
	req := httptest.NewRequest(http.MethodPost, "/api/products/upload-excel", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func price(v float64) *float64 {
	return &v
}

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}
