// Package membertype は会員種別管理のドメインロジックを提供する。
// 会員種別は起動時にシードされる閉じた集合で、作成・削除の操作は公開しない。
package membertype

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/repository"
	"github.com/hitoshi/socialman/internal/store"
)

// Service は会員種別管理のサービス層。
type Service struct {
	memberTypeRepo repository.MemberTypeRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(memberTypeRepo repository.MemberTypeRepository) *Service {
	return &Service{memberTypeRepo: memberTypeRepo}
}

// List は全会員種別をシード順で返す。
func (s *Service) List(ctx context.Context) ([]*model.MemberType, error) {
	types, err := s.memberTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("会員種別一覧の取得に失敗しました: %w", err)
	}
	return types, nil
}

// Get は指定IDの会員種別を返す。
func (s *Service) Get(ctx context.Context, id string) (*model.MemberType, error) {
	memberType, err := s.memberTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("会員種別の取得に失敗しました: %w", err)
	}
	if memberType == nil {
		return nil, model.NewMemberTypeNotFoundError(id)
	}
	return memberType, nil
}

// Update は会員種別を部分更新する。
func (s *Service) Update(ctx context.Context, id string, patch model.MemberTypePatch) (*model.MemberType, error) {
	updated, err := s.memberTypeRepo.Update(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.NewMemberTypeNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("会員種別の更新に失敗しました: %w", err)
	}
	return updated, nil
}
