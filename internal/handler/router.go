package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/socialman/internal/metrics"
	"github.com/hitoshi/socialman/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// メトリクス
	Collector metrics.MetricsCollector
	Gatherer  prometheus.Gatherer

	// ドメインサービス
	UserService       UserServiceInterface
	ProfileService    ProfileServiceInterface
	PostService       PostServiceInterface
	MemberTypeService MemberTypeServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → Metrics → RateLimit(General)
//
// /health と /metrics はAPI用ミドルウェアチェーンの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	userHandler := NewUserHandler(deps.UserService)
	profileHandler := NewProfileHandler(deps.ProfileService)
	postHandler := NewPostHandler(deps.PostService)
	memberTypeHandler := NewMemberTypeHandler(deps.MemberTypeService)

	// --- 運用用ルート ---

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))

	// --- APIルート ---
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSecurityHeadersMiddleware())
		r.Use(middleware.NewRecoveryMiddleware())
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
		r.Use(middleware.NewMetricsMiddleware(deps.Collector))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// ユーザー管理
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			// POST /api/users - ユーザー登録（作成専用レート制限を追加）
			r.With(deps.RateLimiter.MutationMiddleware()).Post("/", userHandler.CreateUser)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.GetUser)
				r.Patch("/", userHandler.UpdateUser)
				r.Delete("/", userHandler.DeleteUser)

				// 購読グラフの操作
				r.Post("/subscribe", userHandler.SubscribeTo)
				r.Post("/unsubscribe", userHandler.UnsubscribeFrom)
			})
		})

		// プロフィール管理
		r.Route("/api/profiles", func(r chi.Router) {
			r.Get("/", profileHandler.ListProfiles)
			r.With(deps.RateLimiter.MutationMiddleware()).Post("/", profileHandler.CreateProfile)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Patch("/", profileHandler.UpdateProfile)
				r.Delete("/", profileHandler.DeleteProfile)
			})
		})

		// 投稿管理
		r.Route("/api/posts", func(r chi.Router) {
			r.Get("/", postHandler.ListPosts)
			r.With(deps.RateLimiter.MutationMiddleware()).Post("/", postHandler.CreatePost)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", postHandler.GetPost)
				r.Patch("/", postHandler.UpdatePost)
				r.Delete("/", postHandler.DeletePost)
			})
		})

		// 会員種別管理（シード済みの閉じた集合。作成・削除ルートは提供しない）
		r.Route("/api/member-types", func(r chi.Router) {
			r.Get("/", memberTypeHandler.ListMemberTypes)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", memberTypeHandler.GetMemberType)
				r.Patch("/", memberTypeHandler.UpdateMemberType)
			})
		})
	})

	return r
}
