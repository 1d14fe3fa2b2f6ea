package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
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
	adminEmail    = "integration-admin@example.com"
	adminPassword = "secret123"
	queryTimeout  = 3 * time.Second
)

var (
	token      string
	database   *sql.DB
	jwtManager *auth.JWTManager
)

func setupTestRepos() {
	productRepo := repo.NewPostgresProductRepository(database, queryTimeout)
	techniqueRepo := repo.NewPostgresTechniqueRepository(database, queryTimeout)
	quoteRepo := repo.NewPostgresQuoteRepository(database, queryTimeout)

	handler.SetProductRepo(productRepo)
	handler.SetTechniqueRepo(techniqueRepo)
	handler.SetQuoteEngine(quoting.NewEngine(productRepo, techniqueRepo, quoteRepo))
	handler.SetStatsRepo(repo.NewCountingStatsRepository(productRepo, techniqueRepo, quoteRepo))
	handler.SetImporter(importer.New(productRepo))
	handler.SetHealthCheck(database.PingContext)

	jwtManager = auth.NewJWTManager("integration-secret", time.Hour)
	handler.SetAuthService(auth.NewAuthService(
		repo.NewPostgresUserRepository(database, queryTimeout),
		jwtManager,
		auth.NewMemoryRefreshTokenStore(),
		time.Hour,
	))
}

func newRouter() http.Handler {
	return router.NewRouter(router.Options{JWT: jwtManager, CORSOrigins: []string{"*"}})
}

func truncate(table string) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := database.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
		fmt.Println(fmt.Errorf("failed to truncate %s table: %w", table, err))
	}
}

func clearAll() {
	for _, table := range []string{"quotes", "marking_techniques", "products"} {
		truncate(table)
	}
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

func upload(r http.Handler, content []byte, filename string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", filename)
	_, _ = part.Write(content)
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/products/upload-excel", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
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
