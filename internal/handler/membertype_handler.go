package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/socialman/internal/model"
)

// MemberTypeServiceInterface は会員種別ハンドラーが必要とするサービスインターフェース。
// 会員種別はシードされた閉じた集合のため、作成・削除の操作は存在しない。
type MemberTypeServiceInterface interface {
	// List は全会員種別を返す。
	List(ctx context.Context) ([]*model.MemberType, error)
	// Get はIDで会員種別を取得する。
	Get(ctx context.Context, id string) (*model.MemberType, error)
	// Update は会員種別の属性を部分更新する。
	Update(ctx context.Context, id string, patch model.MemberTypePatch) (*model.MemberType, error)
}

// MemberTypeHandler は会員種別管理のHTTPハンドラー。
type MemberTypeHandler struct {
	service MemberTypeServiceInterface
}

// NewMemberTypeHandler はMemberTypeHandlerを生成する。
func NewMemberTypeHandler(service MemberTypeServiceInterface) *MemberTypeHandler {
	return &MemberTypeHandler{
		service: service,
	}
}

// updateMemberTypeRequest は会員種別更新リクエストのボディ。
type updateMemberTypeRequest struct {
	Discount        *int `json:"discount"`
	MonthPostsLimit *int `json:"month_posts_limit"`
}

// memberTypeResponse は会員種別情報のAPIレスポンス。
type memberTypeResponse struct {
	ID              string `json:"id"`
	Discount        int    `json:"discount"`
	MonthPostsLimit int    `json:"month_posts_limit"`
}

// ListMemberTypes は全会員種別の一覧を返す。
// GET /api/member-types
func (h *MemberTypeHandler) ListMemberTypes(w http.ResponseWriter, r *http.Request) {
	memberTypes, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]memberTypeResponse, 0, len(memberTypes))
	for _, mt := range memberTypes {
		resp = append(resp, toMemberTypeResponse(mt))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetMemberType は会員種別詳細を取得する。
// GET /api/member-types/{id}
func (h *MemberTypeHandler) GetMemberType(w http.ResponseWriter, r *http.Request) {
	memberTypeID := chi.URLParam(r, "id")

	mt, err := h.service.Get(r.Context(), memberTypeID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberTypeResponse(mt))
}

// UpdateMemberType は会員種別の部分更新を処理する。
// PATCH /api/member-types/{id}
func (h *MemberTypeHandler) UpdateMemberType(w http.ResponseWriter, r *http.Request) {
	memberTypeID := chi.URLParam(r, "id")

	var req updateMemberTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyError(w)
		return
	}

	patch := model.MemberTypePatch{
		Discount:        req.Discount,
		MonthPostsLimit: req.MonthPostsLimit,
	}

	mt, err := h.service.Update(r.Context(), memberTypeID, patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMemberTypeResponse(mt))
}

// toMemberTypeResponse はmodel.MemberTypeからAPIレスポンスに変換する。
func toMemberTypeResponse(mt *model.MemberType) memberTypeResponse {
	return memberTypeResponse{
		ID:              mt.ID,
		Discount:        mt.Discount,
		MonthPostsLimit: mt.MonthPostsLimit,
	}
}
