// Package user はユーザー管理のドメインロジックを提供する。
//
// 購読グラフ（SubscribedToUserIDs）の管理とユーザー削除時のカスケード削除を含む。
// 購読エッジの向きは「購読する側のレコードに購読相手のIDを保持する」で統一する:
// Subscribe(actor, target) は actor の SubscribedToUserIDs に target を追加する。
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitoshi/socialman/internal/metrics"
	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/repository"
	"github.com/hitoshi/socialman/internal/store"
)

// Service はユーザー管理のサービス層。
// CRUD、購読グラフの操作、カスケード削除のビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	collector   metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// collectorはnil許容で、nilの場合はメトリクスを記録しない。
func NewService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		collector:   collector,
	}
}

// List は全ユーザーを挿入順で返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return users, nil
}

// Get は指定IDのユーザーを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(id)
	}
	return user, nil
}

// Create はユーザーを作成する。識別子はストアが採番する。
func (s *Service) Create(ctx context.Context, firstName, lastName, email string) (*model.User, error) {
	created, err := s.userRepo.Create(ctx, &model.User{
		FirstName:           firstName,
		LastName:            lastName,
		Email:               email,
		SubscribedToUserIDs: []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordEntityCreated("user")
	}
	return created, nil
}

// Update はユーザーを部分更新する。
func (s *Service) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	updated, err := s.userRepo.Update(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.NewUserNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの更新に失敗しました: %w", err)
	}
	return updated, nil
}

// Subscribe はactorの購読リストにtargetを追加し、更新後のactorを返す。
//
// 事前条件: targetが存在すること。存在しない場合はバリデーションエラーを返す。
// 同一相手への重複購読は抑止しない（リストは重複を許容する配列として扱う）。
func (s *Service) Subscribe(ctx context.Context, actorID, targetID string) (*model.User, error) {
	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("購読対象の取得に失敗しました: %w", err)
	}
	if target == nil {
		return nil, model.NewSubscribeTargetNotFoundError(targetID)
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("購読元ユーザーの取得に失敗しました: %w", err)
	}
	if actor == nil {
		return nil, model.NewUserNotFoundError(actorID)
	}

	updated, err := s.userRepo.Update(ctx, actorID, model.UserPatch{
		SubscribedToUserIDs: append(actor.SubscribedToUserIDs, targetID),
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.NewUserNotFoundError(actorID)
	}
	if err != nil {
		return nil, fmt.Errorf("購読リストの更新に失敗しました: %w", err)
	}
	return updated, nil
}

// Unsubscribe はactorの購読リストからtargetを取り除き、更新後のactorを返す。
//
// 事前条件: actorが存在し、その購読リストにtargetが含まれていること。
// エッジが存在しない購読解除は冪等に成功させず、明示的に失敗させる。
func (s *Service) Unsubscribe(ctx context.Context, actorID, targetID string) (*model.User, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("購読元ユーザーの取得に失敗しました: %w", err)
	}
	if actor == nil {
		return nil, model.NewUserNotFoundError(actorID)
	}

	if !containsID(actor.SubscribedToUserIDs, targetID) {
		return nil, model.NewNotSubscribedError(targetID)
	}

	updated, err := s.userRepo.Update(ctx, actorID, model.UserPatch{
		SubscribedToUserIDs: removeID(actor.SubscribedToUserIDs, targetID),
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.NewUserNotFoundError(actorID)
	}
	if err != nil {
		return nil, fmt.Errorf("購読リストの更新に失敗しました: %w", err)
	}
	return updated, nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// removeID はidを除いた新しいスライスを返す。元のスライスは変更しない。
func removeID(ids []string, id string) []string {
	filtered := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
