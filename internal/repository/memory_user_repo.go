package repository

import (
	"context"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/store"
)

// MemoryUserRepo はインメモリストアを使用したユーザーリポジトリ。
type MemoryUserRepo struct {
	store *store.Store[model.User]
}

// NewMemoryUserRepo はMemoryUserRepoを生成する。
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{store: store.New[model.User]()}
}

// List は全ユーザーを挿入順で返す。
func (r *MemoryUserRepo) List(ctx context.Context) ([]*model.User, error) {
	records := r.store.FindMany(ctx)
	users := make([]*model.User, len(records))
	for i, rec := range records {
		users[i] = cloneUser(rec)
	}
	return users, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *MemoryUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	rec, ok := r.store.FindByID(ctx, id)
	if !ok {
		return nil, nil
	}
	return cloneUser(rec), nil
}

// Create はユーザーを作成する。識別子はストアが採番する。
// SubscribedToUserIDs が未初期化の場合は空リストとして格納する。
func (r *MemoryUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	rec := *user
	rec.SubscribedToUserIDs = append([]string{}, user.SubscribedToUserIDs...)
	created := r.store.Create(ctx, rec)
	return cloneUser(created), nil
}

// Update はpatchの非nilフィールドをマージして更新後のユーザーを返す。
func (r *MemoryUserRepo) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	updated, err := r.store.Update(ctx, id, func(u model.User) model.User {
		if patch.FirstName != nil {
			u.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			u.LastName = *patch.LastName
		}
		if patch.Email != nil {
			u.Email = *patch.Email
		}
		if patch.SubscribedToUserIDs != nil {
			// 配列フィールドは追記ではなく全置換
			u.SubscribedToUserIDs = append([]string{}, patch.SubscribedToUserIDs...)
		}
		return u
	})
	if err != nil {
		return nil, err
	}
	return cloneUser(updated), nil
}

// Delete は指定IDのユーザーを削除し、削除前のスナップショットを返す。
func (r *MemoryUserRepo) Delete(ctx context.Context, id string) (*model.User, error) {
	deleted, err := r.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return cloneUser(deleted), nil
}

// ListSubscribersOf はSubscribedToUserIDsにuserIDを含む全ユーザーを返す。
func (r *MemoryUserRepo) ListSubscribersOf(ctx context.Context, userID string) ([]*model.User, error) {
	records := r.store.FindMany(ctx, store.Contains(
		func(u model.User) []string { return u.SubscribedToUserIDs },
		userID,
	))
	users := make([]*model.User, len(records))
	for i, rec := range records {
		users[i] = cloneUser(rec)
	}
	return users, nil
}

// cloneUser はストア内のレコードと購読リストの共有を断ったコピーを返す。
func cloneUser(u model.User) *model.User {
	u.SubscribedToUserIDs = append([]string{}, u.SubscribedToUserIDs...)
	return &u
}
