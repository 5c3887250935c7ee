package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/store"
)

// Delete はユーザーを削除し、参照していた全レコードを1つの論理的な単位として
// 削除・修復する。戻り値は削除前のユーザーのスナップショット。
//
// 手順:
//  1. ユーザー本体を削除する（存在しない場合は操作全体が失敗する）
//  2. 所有プロフィールがあれば削除する
//  3. 所有投稿と、このユーザーを購読している全ユーザーを列挙する
//  4. 投稿の削除と購読エッジの修復を並行バッチで実行し、全件の完了を待つ
//
// バッチ内の1件の失敗は操作全体の失敗として呼び出し元に伝播するが、
// 既にコミット済みの他のクリーンアップはロールバックされない（部分失敗の露出）。
func (s *Service) Delete(ctx context.Context, id string) (*model.User, error) {
	deleted, err := s.userRepo.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, model.NewUserNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}

	slog.Info("カスケード削除を開始します",
		slog.String("user_id", id),
	)

	cleanups := 0

	// 所有プロフィールの削除
	profile, err := s.profileRepo.FindByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("プロフィールの検索に失敗しました: %w", err)
	}
	if profile != nil {
		if _, err := s.profileRepo.Delete(ctx, profile.ID); err != nil {
			return nil, fmt.Errorf("プロフィールの削除に失敗しました: %w", err)
		}
		cleanups++
	}

	// 従属レコードの列挙
	posts, err := s.postRepo.ListByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("投稿一覧の取得に失敗しました: %w", err)
	}
	subscribers, err := s.userRepo.ListSubscribersOf(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("購読者一覧の取得に失敗しました: %w", err)
	}

	// 投稿削除とエッジ修復は互いに独立のため、並行バッチとして実行し全件を待つ
	var wg sync.WaitGroup
	errCh := make(chan error, len(posts)+len(subscribers))

	for _, post := range posts {
		wg.Add(1)
		go func(postID string) {
			defer wg.Done()
			if _, err := s.postRepo.Delete(ctx, postID); err != nil {
				errCh <- fmt.Errorf("投稿の削除に失敗しました: %s: %w", postID, err)
			}
		}(post.ID)
	}

	for _, sub := range subscribers {
		wg.Add(1)
		go func(subscriber *model.User) {
			defer wg.Done()
			_, err := s.userRepo.Update(ctx, subscriber.ID, model.UserPatch{
				SubscribedToUserIDs: removeID(subscriber.SubscribedToUserIDs, id),
			})
			if err != nil {
				errCh <- fmt.Errorf("購読エッジの修復に失敗しました: %s: %w", subscriber.ID, err)
			}
		}(sub)
	}

	wg.Wait()
	close(errCh)

	// 最初の失敗をバッチ全体の失敗として伝播する。ロールバックは行わない。
	if err := <-errCh; err != nil {
		return nil, err
	}

	cleanups += len(posts) + len(subscribers)

	if s.collector != nil {
		s.collector.RecordEntityDeleted("user")
		s.collector.RecordCascadeDelete(cleanups)
	}

	slog.Info("カスケード削除が完了しました",
		slog.String("user_id", id),
		slog.Int("cleanups", cleanups),
	)

	return deleted, nil
}
