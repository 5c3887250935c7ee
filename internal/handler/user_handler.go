package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/socialman/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// List は登録順で全ユーザーを返す。
	List(ctx context.Context) ([]*model.User, error)
	// Get はIDでユーザーを取得する。
	Get(ctx context.Context, id string) (*model.User, error)
	// Create は新しいユーザーを登録する。
	Create(ctx context.Context, firstName, lastName, email string) (*model.User, error)
	// Update はユーザーを部分更新する。
	Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	// Delete はユーザーを削除し、関連エンティティの連鎖クリーンアップを実行する。
	Delete(ctx context.Context, id string) (*model.User, error)
	// Subscribe はactorの購読リストにtargetを追加する。
	Subscribe(ctx context.Context, actorID, targetID string) (*model.User, error)
	// Unsubscribe はactorの購読リストからtargetを除去する。
	Unsubscribe(ctx context.Context, actorID, targetID string) (*model.User, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// createUserRequest はユーザー作成リクエストのボディ。
type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// updateUserRequest はユーザー更新リクエストのボディ。
// nilのフィールドは既存値を維持する。subscribed_to_user_idsは
// 指定された場合に配列全体を置換する。
type updateUserRequest struct {
	FirstName           *string  `json:"first_name"`
	LastName            *string  `json:"last_name"`
	Email               *string  `json:"email"`
	SubscribedToUserIDs []string `json:"subscribed_to_user_ids"`
}

// subscribeRequest は購読・購読解除リクエストのボディ。
type subscribeRequest struct {
	UserID string `json:"user_id"`
}

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID                  string   `json:"id"`
	FirstName           string   `json:"first_name"`
	LastName            string   `json:"last_name"`
	Email               string   `json:"email"`
	SubscribedToUserIDs []string `json:"subscribed_to_user_ids"`
}

// ListUsers は全ユーザーの一覧を返す。
// GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetUser はユーザー詳細を取得する。
// GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// CreateUser はユーザー登録を処理する。
// POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	if req.FirstName == "" {
		writeMissingFieldError(w, "first_name")
		return
	}
	if req.LastName == "" {
		writeMissingFieldError(w, "last_name")
		return
	}
	if req.Email == "" {
		writeMissingFieldError(w, "email")
		return
	}

	user, err := h.service.Create(r.Context(), req.FirstName, req.LastName, req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// UpdateUser はユーザーの部分更新を処理する。
// PATCH /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	patch := model.UserPatch{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		SubscribedToUserIDs: req.SubscribedToUserIDs,
	}

	user, err := h.service.Update(r.Context(), userID, patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// DeleteUser はユーザー削除と連鎖クリーンアップを処理する。
// 削除直前のスナップショットを返す。
// DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	user, err := h.service.Delete(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// SubscribeTo は購読を処理する。パスのIDが購読する側（actor）、
// ボディのuser_idが購読される側（target）。
// POST /api/users/{id}/subscribe
func (h *UserHandler) SubscribeTo(w http.ResponseWriter, r *http.Request) {
	actorID := chi.URLParam(r, "id")

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}
	if req.UserID == "" {
		writeMissingFieldError(w, "user_id")
		return
	}

	user, err := h.service.Subscribe(r.Context(), actorID, req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UnsubscribeFrom は購読解除を処理する。
// POST /api/users/{id}/unsubscribe
func (h *UserHandler) UnsubscribeFrom(w http.ResponseWriter, r *http.Request) {
	actorID := chi.URLParam(r, "id")

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}
	if req.UserID == "" {
		writeMissingFieldError(w, "user_id")
		return
	}

	user, err := h.service.Unsubscribe(r.Context(), actorID, req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
func toUserResponse(user *model.User) userResponse {
	subscribed := user.SubscribedToUserIDs
	if subscribed == nil {
		subscribed = []string{}
	}

	return userResponse{
		ID:                  user.ID,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		Email:               user.Email,
		SubscribedToUserIDs: subscribed,
	}
}
