package repository

import (
	"context"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/store"
)

// MemoryProfileRepo はインメモリストアを使用したプロフィールリポジトリ。
type MemoryProfileRepo struct {
	store *store.Store[model.Profile]
}

// NewMemoryProfileRepo はMemoryProfileRepoを生成する。
func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{store: store.New[model.Profile]()}
}

// List は全プロフィールを挿入順で返す。
func (r *MemoryProfileRepo) List(ctx context.Context) ([]*model.Profile, error) {
	records := r.store.FindMany(ctx)
	profiles := make([]*model.Profile, len(records))
	for i := range records {
		p := records[i]
		profiles[i] = &p
	}
	return profiles, nil
}

// FindByID は指定IDのプロフィールを取得する。見つからない場合はnilを返す。
func (r *MemoryProfileRepo) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	rec, ok := r.store.FindByID(ctx, id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// FindByUserID は所有ユーザーIDでプロフィールを検索する。見つからない場合はnilを返す。
func (r *MemoryProfileRepo) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	rec, ok := r.store.FindOne(ctx, store.Eq(
		func(p model.Profile) string { return p.UserID },
		userID,
	))
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Create はプロフィールを作成する。識別子はストアが採番する。
func (r *MemoryProfileRepo) Create(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	created := r.store.Create(ctx, *profile)
	return &created, nil
}

// Update はpatchの非nilフィールドをマージして更新後のプロフィールを返す。
func (r *MemoryProfileRepo) Update(ctx context.Context, id string, patch model.ProfilePatch) (*model.Profile, error) {
	updated, err := r.store.Update(ctx, id, func(p model.Profile) model.Profile {
		if patch.MemberTypeID != nil {
			p.MemberTypeID = *patch.MemberTypeID
		}
		if patch.Avatar != nil {
			p.Avatar = *patch.Avatar
		}
		if patch.Sex != nil {
			p.Sex = *patch.Sex
		}
		if patch.Birthday != nil {
			p.Birthday = *patch.Birthday
		}
		if patch.Country != nil {
			p.Country = *patch.Country
		}
		if patch.Street != nil {
			p.Street = *patch.Street
		}
		if patch.City != nil {
			p.City = *patch.City
		}
		return p
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete は指定IDのプロフィールを削除し、削除前のスナップショットを返す。
func (r *MemoryProfileRepo) Delete(ctx context.Context, id string) (*model.Profile, error) {
	deleted, err := r.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}
