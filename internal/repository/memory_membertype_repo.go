package repository

import (
	"context"
	"fmt"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/store"
)

// MemoryMemberTypeRepo はインメモリストアを使用した会員種別リポジトリ。
// 構築時に閉じた識別子集合（basic, business）をシードする。
type MemoryMemberTypeRepo struct {
	store *store.Store[model.MemberType]
}

// NewMemoryMemberTypeRepo はシード済みのMemoryMemberTypeRepoを生成する。
func NewMemoryMemberTypeRepo() (*MemoryMemberTypeRepo, error) {
	r := &MemoryMemberTypeRepo{store: store.New[model.MemberType]()}

	seeds := []model.MemberType{
		{ID: model.MemberTypeBasic, Discount: 0, MonthPostsLimit: 20},
		{ID: model.MemberTypeBusiness, Discount: 5, MonthPostsLimit: 100},
	}
	for _, seed := range seeds {
		if _, err := r.store.Insert(context.Background(), seed); err != nil {
			return nil, fmt.Errorf("会員種別のシードに失敗しました: %w", err)
		}
	}
	return r, nil
}

// List は全会員種別をシード順で返す。
func (r *MemoryMemberTypeRepo) List(ctx context.Context) ([]*model.MemberType, error) {
	records := r.store.FindMany(ctx)
	types := make([]*model.MemberType, len(records))
	for i := range records {
		m := records[i]
		types[i] = &m
	}
	return types, nil
}

// FindByID は指定IDの会員種別を取得する。見つからない場合はnilを返す。
func (r *MemoryMemberTypeRepo) FindByID(ctx context.Context, id string) (*model.MemberType, error) {
	rec, ok := r.store.FindByID(ctx, id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Update はpatchの非nilフィールドをマージして更新後の会員種別を返す。
func (r *MemoryMemberTypeRepo) Update(ctx context.Context, id string, patch model.MemberTypePatch) (*model.MemberType, error) {
	updated, err := r.store.Update(ctx, id, func(m model.MemberType) model.MemberType {
		if patch.Discount != nil {
			m.Discount = *patch.Discount
		}
		if patch.MonthPostsLimit != nil {
			m.MonthPostsLimit = *patch.MonthPostsLimit
		}
		return m
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
