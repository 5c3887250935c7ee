// Package profile はプロフィール管理のドメインロジックを提供する。
package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hitoshi/socialman/internal/metrics"
	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/repository"
	"github.com/hitoshi/socialman/internal/store"
)

// CreateProfileInput はプロフィール作成の入力。
// 形式的な検証（必須フィールドの有無）はハンドラー層で完了していることを前提とする。
type CreateProfileInput struct {
	UserID       string
	MemberTypeID string
	Avatar       string
	Sex          string
	Birthday     int64
	Country      string
	Street       string
	City         string
}

// Service はプロフィール管理のサービス層。
// 作成時の参照整合性の事前条件チェックを含む。
type Service struct {
	profileRepo    repository.ProfileRepository
	userRepo       repository.UserRepository
	memberTypeRepo repository.MemberTypeRepository
	collector      metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// collectorはnil許容で、nilの場合はメトリクスを記録しない。
func NewService(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	memberTypeRepo repository.MemberTypeRepository,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		profileRepo:    profileRepo,
		userRepo:       userRepo,
		memberTypeRepo: memberTypeRepo,
		collector:      collector,
	}
}

// List は全プロフィールを挿入順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("プロフィール一覧の取得に失敗しました: %w", err)
	}
	return profiles, nil
}

// Get は指定IDのプロフィールを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの取得に失敗しました: %w", err)
	}
	if profile == nil {
		return nil, model.NewProfileNotFoundError(id)
	}
	return profile, nil
}

// Create はプロフィールを作成する。
//
// 事前条件:
//   - 所有ユーザーが存在すること
//   - 所有ユーザーがまだプロフィールを持っていないこと
//   - 指定された会員種別が存在すること
//
// プロフィール重複と会員種別の2つのチェックは互いに独立のため並行に評価する。
// チェックと後続の書き込みをまたぐロックは存在せず、並行リクエスト間の
// 競合窓は意図的に閉じていない。
func (s *Service) Create(ctx context.Context, input CreateProfileInput) (*model.Profile, error) {
	owner, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("所有ユーザーの取得に失敗しました: %w", err)
	}
	if owner == nil {
		return nil, model.NewInvalidProfileOwnerError(input.UserID)
	}

	var (
		wg         sync.WaitGroup
		existing   *model.Profile
		memberType *model.MemberType
		existErr   error
		mtErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		existing, existErr = s.profileRepo.FindByUserID(ctx, input.UserID)
	}()
	go func() {
		defer wg.Done()
		memberType, mtErr = s.memberTypeRepo.FindByID(ctx, input.MemberTypeID)
	}()
	wg.Wait()

	if existErr != nil {
		return nil, fmt.Errorf("プロフィール重複チェックに失敗しました: %w", existErr)
	}
	if mtErr != nil {
		return nil, fmt.Errorf("会員種別の取得に失敗しました: %w", mtErr)
	}
	if existing != nil {
		return nil, model.NewProfileExistsError(input.UserID)
	}
	if memberType == nil {
		return nil, model.NewInvalidMemberTypeError(input.MemberTypeID)
	}

	created, err := s.profileRepo.Create(ctx, &model.Profile{
		UserID:       input.UserID,
		MemberTypeID: input.MemberTypeID,
		Avatar:       input.Avatar,
		Sex:          input.Sex,
		Birthday:     input.Birthday,
		Country:      input.Country,
		Street:       input.Street,
		City:         input.City,
	})
	if err != nil {
		return nil, fmt.Errorf("プロフィールの作成に失敗しました: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordEntityCreated("profile")
	}
	return created, nil
}

// Update はプロフィールを部分更新する。
// MemberTypeID の参照先は作成時のみ検証され、更新時には再検証されない。
func (s *Service) Update(ctx context.Context, id string, patch model.ProfilePatch) (*model.Profile, error) {
	updated, err := s.profileRepo.Update(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.NewProfileNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("プロフィールの更新に失敗しました: %w", err)
	}
	return updated, nil
}

// Delete はプロフィールを削除し、削除前のスナップショットを返す。
func (s *Service) Delete(ctx context.Context, id string) (*model.Profile, error) {
	deleted, err := s.profileRepo.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.NewProfileNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("プロフィールの削除に失敗しました: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordEntityDeleted("profile")
	}
	return deleted, nil
}
