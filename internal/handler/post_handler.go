package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/post"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	// List は登録順で全投稿を返す。
	List(ctx context.Context) ([]*model.Post, error)
	// Get はIDで投稿を取得する。
	Get(ctx context.Context, id string) (*model.Post, error)
	// Create は所有ユーザーを検証したうえで投稿を作成する。
	Create(ctx context.Context, input post.CreatePostInput) (*model.Post, error)
	// Update は投稿を部分更新する。
	Update(ctx context.Context, id string, patch model.PostPatch) (*model.Post, error)
	// Delete は投稿を削除する。
	Delete(ctx context.Context, id string) (*model.Post, error)
}

// PostHandler は投稿管理のHTTPハンドラー。
type PostHandler struct {
	service PostServiceInterface
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

// createPostRequest は投稿作成リクエストのボディ。
type createPostRequest struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updatePostRequest は投稿更新リクエストのボディ。
// nilのフィールドは既存値を維持する。user_idは更新不可。
type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// postResponse は投稿情報のAPIレスポンス。
type postResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListPosts は全投稿の一覧を返す。
// GET /api/posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, toPostResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetPost は投稿詳細を取得する。
// GET /api/posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	p, err := h.service.Get(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// CreatePost は投稿作成を処理する。
// POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	if req.UserID == "" {
		writeMissingFieldError(w, "user_id")
		return
	}
	if req.Title == "" {
		writeMissingFieldError(w, "title")
		return
	}

	p, err := h.service.Create(r.Context(), post.CreatePostInput{
		UserID:  req.UserID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(p))
}

// UpdatePost は投稿の部分更新を処理する。
// PATCH /api/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	patch := model.PostPatch{
		Title:   req.Title,
		Content: req.Content,
	}

	p, err := h.service.Update(r.Context(), postID, patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// DeletePost は投稿削除を処理する。削除直前のスナップショットを返す。
// DELETE /api/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")

	p, err := h.service.Delete(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
}

// toPostResponse はmodel.PostからAPIレスポンスに変換する。
func toPostResponse(p *model.Post) postResponse {
	return postResponse{
		ID:      p.ID,
		UserID:  p.UserID,
		Title:   p.Title,
		Content: p.Content,
	}
}
