// Package repository はエンティティデータアクセスのインターフェースを定義する。
//
// Find系メソッドは見つからない場合に(nil, nil)を返す。
// 識別子を指定する更新・削除は対象が存在しない場合にstore.ErrNotFoundを返す。
package repository

import (
	"context"

	"github.com/hitoshi/socialman/internal/model"
)

// UserRepository はユーザーデータアクセスのインターフェース。
type UserRepository interface {
	// List は全ユーザーを挿入順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// Create はユーザーを作成する。識別子はストアが採番する。
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// Update はpatchの非nilフィールドをマージして更新後のユーザーを返す。
	// SubscribedToUserIDs は非nilの場合に全置換される。
	Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)

	// Delete は指定IDのユーザーを削除し、削除前のスナップショットを返す。
	Delete(ctx context.Context, id string) (*model.User, error)

	// ListSubscribersOf はSubscribedToUserIDsにuserIDを含む全ユーザーを返す。
	// カスケード削除時のエッジ修復対象の列挙に使用する。
	ListSubscribersOf(ctx context.Context, userID string) ([]*model.User, error)
}

// ProfileRepository はプロフィールデータアクセスのインターフェース。
type ProfileRepository interface {
	// List は全プロフィールを挿入順で返す。
	List(ctx context.Context) ([]*model.Profile, error)

	// FindByID は指定IDのプロフィールを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Profile, error)

	// FindByUserID は所有ユーザーIDでプロフィールを検索する。見つからない場合はnilを返す。
	// プロフィール重複チェックとカスケード削除に使用する。
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)

	// Create はプロフィールを作成する。識別子はストアが採番する。
	// 参照整合性の事前条件はサービス層で検証済みであることを前提とする。
	Create(ctx context.Context, profile *model.Profile) (*model.Profile, error)

	// Update はpatchの非nilフィールドをマージして更新後のプロフィールを返す。
	Update(ctx context.Context, id string, patch model.ProfilePatch) (*model.Profile, error)

	// Delete は指定IDのプロフィールを削除し、削除前のスナップショットを返す。
	Delete(ctx context.Context, id string) (*model.Profile, error)
}

// PostRepository は投稿データアクセスのインターフェース。
type PostRepository interface {
	// List は全投稿を挿入順で返す。
	List(ctx context.Context) ([]*model.Post, error)

	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// ListByUserID は所有ユーザーの投稿一覧を挿入順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Post, error)

	// Create は投稿を作成する。識別子はストアが採番する。
	Create(ctx context.Context, post *model.Post) (*model.Post, error)

	// Update はpatchの非nilフィールドをマージして更新後の投稿を返す。
	Update(ctx context.Context, id string, patch model.PostPatch) (*model.Post, error)

	// Delete は指定IDの投稿を削除し、削除前のスナップショットを返す。
	Delete(ctx context.Context, id string) (*model.Post, error)
}

// MemberTypeRepository は会員種別データアクセスのインターフェース。
// 会員種別は起動時にシードされる読み取り中心のエンティティで、作成・削除の経路を持たない。
type MemberTypeRepository interface {
	// List は全会員種別をシード順で返す。
	List(ctx context.Context) ([]*model.MemberType, error)

	// FindByID は指定IDの会員種別を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.MemberType, error)

	// Update はpatchの非nilフィールドをマージして更新後の会員種別を返す。
	Update(ctx context.Context, id string, patch model.MemberTypePatch) (*model.MemberType, error)
}
