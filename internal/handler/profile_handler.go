package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/profile"
)

// ProfileServiceInterface はプロフィールハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	// List は登録順で全プロフィールを返す。
	List(ctx context.Context) ([]*model.Profile, error)
	// Get はIDでプロフィールを取得する。
	Get(ctx context.Context, id string) (*model.Profile, error)
	// Create は参照整合性を検証したうえでプロフィールを作成する。
	Create(ctx context.Context, input profile.CreateProfileInput) (*model.Profile, error)
	// Update はプロフィールを部分更新する。
	Update(ctx context.Context, id string, patch model.ProfilePatch) (*model.Profile, error)
	// Delete はプロフィールを削除する。
	Delete(ctx context.Context, id string) (*model.Profile, error)
}

// ProfileHandler はプロフィール管理のHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		service: service,
	}
}

// createProfileRequest はプロフィール作成リクエストのボディ。
type createProfileRequest struct {
	UserID       string `json:"user_id"`
	MemberTypeID string `json:"member_type_id"`
	Avatar       string `json:"avatar"`
	Sex          string `json:"sex"`
	Birthday     int64  `json:"birthday"`
	Country      string `json:"country"`
	Street       string `json:"street"`
	City         string `json:"city"`
}

// updateProfileRequest はプロフィール更新リクエストのボディ。
// nilのフィールドは既存値を維持する。user_idは更新不可。
type updateProfileRequest struct {
	MemberTypeID *string `json:"member_type_id"`
	Avatar       *string `json:"avatar"`
	Sex          *string `json:"sex"`
	Birthday     *int64  `json:"birthday"`
	Country      *string `json:"country"`
	Street       *string `json:"street"`
	City         *string `json:"city"`
}

// profileResponse はプロフィール情報のAPIレスポンス。
type profileResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	MemberTypeID string `json:"member_type_id"`
	Avatar       string `json:"avatar"`
	Sex          string `json:"sex"`
	Birthday     int64  `json:"birthday"`
	Country      string `json:"country"`
	Street       string `json:"street"`
	City         string `json:"city"`
}

// ListProfiles は全プロフィールの一覧を返す。
// GET /api/profiles
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, toProfileResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetProfile はプロフィール詳細を取得する。
// GET /api/profiles/{id}
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	p, err := h.service.Get(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// CreateProfile はプロフィール作成を処理する。
// POST /api/profiles
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	if req.UserID == "" {
		writeMissingFieldError(w, "user_id")
		return
	}
	if req.MemberTypeID == "" {
		writeMissingFieldError(w, "member_type_id")
		return
	}

	p, err := h.service.Create(r.Context(), profile.CreateProfileInput{
		UserID:       req.UserID,
		MemberTypeID: req.MemberTypeID,
		Avatar:       req.Avatar,
		Sex:          req.Sex,
		Birthday:     req.Birthday,
		Country:      req.Country,
		Street:       req.Street,
		City:         req.City,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProfileResponse(p))
}

// UpdateProfile はプロフィールの部分更新を処理する。
// PATCH /api/profiles/{id}
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	patch := model.ProfilePatch{
		MemberTypeID: req.MemberTypeID,
		Avatar:       req.Avatar,
		Sex:          req.Sex,
		Birthday:     req.Birthday,
		Country:      req.Country,
		Street:       req.Street,
		City:         req.City,
	}

	p, err := h.service.Update(r.Context(), profileID, patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// DeleteProfile はプロフィール削除を処理する。削除直前のスナップショットを返す。
// DELETE /api/profiles/{id}
func (h *ProfileHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	p, err := h.service.Delete(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// toProfileResponse はmodel.ProfileからAPIレスポンスに変換する。
func toProfileResponse(p *model.Profile) profileResponse {
	return profileResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		MemberTypeID: p.MemberTypeID,
		Avatar:       p.Avatar,
		Sex:          p.Sex,
		Birthday:     p.Birthday,
		Country:      p.Country,
		Street:       p.Street,
		City:         p.City,
	}
}
