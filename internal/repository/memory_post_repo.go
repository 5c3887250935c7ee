package repository

import (
	"context"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/store"
)

// MemoryPostRepo はインメモリストアを使用した投稿リポジトリ。
type MemoryPostRepo struct {
	store *store.Store[model.Post]
}

// NewMemoryPostRepo はMemoryPostRepoを生成する。
func NewMemoryPostRepo() *MemoryPostRepo {
	return &MemoryPostRepo{store: store.New[model.Post]()}
}

// List は全投稿を挿入順で返す。
func (r *MemoryPostRepo) List(ctx context.Context) ([]*model.Post, error) {
	return toPostPointers(r.store.FindMany(ctx)), nil
}

// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
func (r *MemoryPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	rec, ok := r.store.FindByID(ctx, id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// ListByUserID は所有ユーザーの投稿一覧を挿入順で返す。
func (r *MemoryPostRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Post, error) {
	records := r.store.FindMany(ctx, store.Eq(
		func(p model.Post) string { return p.UserID },
		userID,
	))
	return toPostPointers(records), nil
}

// Create は投稿を作成する。識別子はストアが採番する。
func (r *MemoryPostRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	created := r.store.Create(ctx, *post)
	return &created, nil
}

// Update はpatchの非nilフィールドをマージして更新後の投稿を返す。
func (r *MemoryPostRepo) Update(ctx context.Context, id string, patch model.PostPatch) (*model.Post, error) {
	updated, err := r.store.Update(ctx, id, func(p model.Post) model.Post {
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		return p
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete は指定IDの投稿を削除し、削除前のスナップショットを返す。
func (r *MemoryPostRepo) Delete(ctx context.Context, id string) (*model.Post, error) {
	deleted, err := r.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func toPostPointers(records []model.Post) []*model.Post {
	posts := make([]*model.Post, len(records))
	for i := range records {
		p := records[i]
		posts[i] = &p
	}
	return posts
}
