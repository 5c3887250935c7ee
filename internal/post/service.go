// Package post は投稿管理のドメインロジックを提供する。
package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitoshi/socialman/internal/metrics"
	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/repository"
	"github.com/hitoshi/socialman/internal/security"
	"github.com/hitoshi/socialman/internal/store"
)

// CreatePostInput は投稿作成の入力。
type CreatePostInput struct {
	UserID  string
	Title   string
	Content string
}

// Service は投稿管理のサービス層。
// 投稿本文はXSS対策のため保存前にサニタイズされる。
type Service struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	sanitizer security.ContentSanitizerService
	collector metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// sanitizerとcollectorはnil許容。
func NewService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	sanitizer security.ContentSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		postRepo:  postRepo,
		userRepo:  userRepo,
		sanitizer: sanitizer,
		collector: collector,
	}
}

// List は全投稿を挿入順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("投稿一覧の取得に失敗しました: %w", err)
	}
	return posts, nil
}

// Get は指定IDの投稿を返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("投稿の取得に失敗しました: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(id)
	}
	return post, nil
}

// Create は投稿を作成する。
//
// 事前条件: 所有ユーザーが作成時点で存在すること。
// 所有ユーザーの存在は作成後に再検証されない（ユーザー削除時のカスケードが
// 従属投稿を削除するため、参照切れは発生しない）。
func (s *Service) Create(ctx context.Context, input CreatePostInput) (*model.Post, error) {
	owner, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("所有ユーザーの取得に失敗しました: %w", err)
	}
	if owner == nil {
		return nil, model.NewInvalidPostOwnerError(input.UserID)
	}

	created, err := s.postRepo.Create(ctx, &model.Post{
		UserID:  input.UserID,
		Title:   input.Title,
		Content: s.sanitize(input.Content),
	})
	if err != nil {
		return nil, fmt.Errorf("投稿の作成に失敗しました: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordEntityCreated("post")
	}
	return created, nil
}

// Update は投稿を部分更新する。本文が更新される場合は再サニタイズする。
func (s *Service) Update(ctx context.Context, id string, patch model.PostPatch) (*model.Post, error) {
	if patch.Content != nil {
		sanitized := s.sanitize(*patch.Content)
		patch.Content = &sanitized
	}

	updated, err := s.postRepo.Update(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.NewPostNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("投稿の更新に失敗しました: %w", err)
	}
	return updated, nil
}

// Delete は投稿を削除し、削除前のスナップショットを返す。
func (s *Service) Delete(ctx context.Context, id string) (*model.Post, error) {
	deleted, err := s.postRepo.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.NewPostNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("投稿の削除に失敗しました: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordEntityDeleted("post")
	}
	return deleted, nil
}

func (s *Service) sanitize(content string) string {
	if s.sanitizer == nil {
		return content
	}
	return s.sanitizer.Sanitize(content)
}
