package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/socialman/internal/logger"
	"github.com/hitoshi/socialman/internal/membertype"
	"github.com/hitoshi/socialman/internal/metrics"
	"github.com/hitoshi/socialman/internal/middleware"
	"github.com/hitoshi/socialman/internal/post"
	"github.com/hitoshi/socialman/internal/profile"
	"github.com/hitoshi/socialman/internal/repository"
	"github.com/hitoshi/socialman/internal/security"
	"github.com/hitoshi/socialman/internal/user"
)

// newTestRouter は実サービスをワイヤリングしたルーターを構築する。
// HTTP境界からカスケード削除までの一連の動作を検証するための統合テスト用。
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	userRepo := repository.NewMemoryUserRepo()
	profileRepo := repository.NewMemoryProfileRepo()
	postRepo := repository.NewMemoryPostRepo()
	memberTypeRepo, err := repository.NewMemoryMemberTypeRepo()
	if err != nil {
		t.Fatalf("failed to seed member types: %v", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	sanitizer := security.NewContentSanitizer()

	rl := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	t.Cleanup(rl.Stop)

	deps := &RouterDeps{
		Logger:            logger.Setup(io.Discard, slog.LevelInfo),
		CORSAllowedOrigin: "http://localhost:3000",
		RateLimiter:       rl,

		Collector: collector,
		Gatherer:  registry,

		UserService:       user.NewService(userRepo, profileRepo, postRepo, collector),
		ProfileService:    profile.NewService(profileRepo, userRepo, memberTypeRepo, collector),
		PostService:       post.NewService(postRepo, userRepo, sanitizer, collector),
		MemberTypeService: membertype.NewService(memberTypeRepo),
	}

	return NewRouter(deps)
}

// doJSON はJSONボディ付きリクエストを実行するヘルパー。
func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeUser はレスポンスボディからuserResponseをデコードするヘルパー。
func decodeUser(t *testing.T, w *httptest.ResponseRecorder) userResponse {
	t.Helper()
	var resp userResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode user response: %v", err)
	}
	return resp
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// 1件作成してからメトリクスを確認する
	doJSON(t, router, http.MethodPost, "/api/users", map[string]string{
		"first_name": "太郎", "last_name": "山田", "email": "taro@example.com",
	})

	w := doJSON(t, router, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body, _ := io.ReadAll(w.Body)
	if !bytes.Contains(body, []byte("socialman_entity_created_total")) {
		t.Error("expected socialman_entity_created_total in metrics output")
	}
}

func TestRouter_UserCRUDFlow(t *testing.T) {
	router := newTestRouter(t)

	// 作成
	w := doJSON(t, router, http.MethodPost, "/api/users", map[string]string{
		"first_name": "太郎", "last_name": "山田", "email": "taro@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", w.Code, http.StatusCreated)
	}
	created := decodeUser(t, w)

	// 取得
	w = doJSON(t, router, http.MethodGet, "/api/users/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", w.Code, http.StatusOK)
	}

	// 部分更新
	w = doJSON(t, router, http.MethodPatch, "/api/users/"+created.ID, map[string]string{
		"email": "taro2@example.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want %d", w.Code, http.StatusOK)
	}
	updated := decodeUser(t, w)
	if updated.Email != "taro2@example.com" {
		t.Errorf("Email = %q, want %q", updated.Email, "taro2@example.com")
	}
	if updated.FirstName != "太郎" {
		t.Errorf("FirstName = %q, want %q", updated.FirstName, "太郎")
	}

	// 未知IDの取得は404
	w = doJSON(t, router, http.MethodGet, "/api/users/no-such-id", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get missing status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestRouter_CascadeDeleteFlow(t *testing.T) {
	router := newTestRouter(t)

	// ユーザー2人を作成
	doomed := decodeUser(t, doJSON(t, router, http.MethodPost, "/api/users", map[string]string{
		"first_name": "doomed", "last_name": "d", "email": "doomed@example.com",
	}))
	subscriber := decodeUser(t, doJSON(t, router, http.MethodPost, "/api/users", map[string]string{
		"first_name": "sub", "last_name": "s", "email": "sub@example.com",
	}))

	// doomedのプロフィールと投稿を作成
	w := doJSON(t, router, http.MethodPost, "/api/profiles", map[string]any{
		"user_id": doomed.ID, "member_type_id": "basic", "city": "Tokyo",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("profile create status = %d, want %d", w.Code, http.StatusCreated)
	}

	w = doJSON(t, router, http.MethodPost, "/api/posts", map[string]any{
		"user_id": doomed.ID, "title": "post", "content": "<p>body</p>",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("post create status = %d, want %d", w.Code, http.StatusCreated)
	}

	// subscriberがdoomedを購読
	w = doJSON(t, router, http.MethodPost, "/api/users/"+subscriber.ID+"/subscribe", map[string]string{
		"user_id": doomed.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("subscribe status = %d, want %d", w.Code, http.StatusOK)
	}

	// doomedを削除
	w = doJSON(t, router, http.MethodDelete, "/api/users/"+doomed.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusOK)
	}

	// プロフィールと投稿が消えていること
	var profiles []profileResponse
	w = doJSON(t, router, http.MethodGet, "/api/profiles", nil)
	json.NewDecoder(w.Body).Decode(&profiles)
	if len(profiles) != 0 {
		t.Errorf("len(profiles) = %d, want 0", len(profiles))
	}

	var posts []postResponse
	w = doJSON(t, router, http.MethodGet, "/api/posts", nil)
	json.NewDecoder(w.Body).Decode(&posts)
	if len(posts) != 0 {
		t.Errorf("len(posts) = %d, want 0", len(posts))
	}

	// 購読者のリストから削除ユーザーのIDが取り除かれていること
	w = doJSON(t, router, http.MethodGet, "/api/users/"+subscriber.ID, nil)
	after := decodeUser(t, w)
	if len(after.SubscribedToUserIDs) != 0 {
		t.Errorf("SubscribedToUserIDs = %v, want empty", after.SubscribedToUserIDs)
	}
}

func TestRouter_ProfileReferentialIntegrity(t *testing.T) {
	router := newTestRouter(t)

	// 存在しない所有ユーザーでのプロフィール作成は400
	w := doJSON(t, router, http.MethodPost, "/api/profiles", map[string]any{
		"user_id": "no-such-user", "member_type_id": "basic",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	// 存在しない会員種別でのプロフィール作成は400
	owner := decodeUser(t, doJSON(t, router, http.MethodPost, "/api/users", map[string]string{
		"first_name": "太郎", "last_name": "山田", "email": "taro@example.com",
	}))
	w = doJSON(t, router, http.MethodPost, "/api/profiles", map[string]any{
		"user_id": owner.ID, "member_type_id": "premium",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRouter_MemberTypesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/member-types", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var types []memberTypeResponse
	if err := json.NewDecoder(w.Body).Decode(&types); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("len(types) = %d, want 2", len(types))
	}

	// 作成ルートは提供されない
	w = doJSON(t, router, http.MethodPost, "/api/member-types", map[string]any{
		"id": "premium",
	})
	if w.Code != http.StatusMethodNotAllowed && w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 405 or 404", w.Code)
	}
}
