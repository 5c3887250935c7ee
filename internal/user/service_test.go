package user

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/repository"
)

// newTestService はインメモリリポジトリを使ったテスト用のServiceを構築する。
func newTestService() (*Service, *repository.MemoryUserRepo, *repository.MemoryProfileRepo, *repository.MemoryPostRepo) {
	userRepo := repository.NewMemoryUserRepo()
	profileRepo := repository.NewMemoryProfileRepo()
	postRepo := repository.NewMemoryPostRepo()
	svc := NewService(userRepo, profileRepo, postRepo, nil)
	return svc, userRepo, profileRepo, postRepo
}

// assertAPIErrorCode はエラーが指定コードのAPIErrorであることを検証するヘルパー。
func assertAPIErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %v", err)
	}
	if apiErr.Code != wantCode {
		t.Errorf("error code = %q, want %q", apiErr.Code, wantCode)
	}
}

func TestService_Create_InitializesEmptySubscriptionList(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "太郎", "山田", "taro@example.com")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.SubscribedToUserIDs == nil {
		t.Error("expected empty subscription list, got nil")
	}
	if len(created.SubscribedToUserIDs) != 0 {
		t.Errorf("len(SubscribedToUserIDs) = %d, want 0", len(created.SubscribedToUserIDs))
	}
}

func TestService_Get_Miss_ReturnsUserNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Get(context.Background(), "no-such-user")
	assertAPIErrorCode(t, err, model.ErrCodeUserNotFound)
}

func TestService_Update_Miss_ReturnsUserNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Update(context.Background(), "no-such-user", model.UserPatch{})
	assertAPIErrorCode(t, err, model.ErrCodeUserNotFound)
}

func TestService_Subscribe_AddsTargetToActorList(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	actor, _ := svc.Create(ctx, "actor", "a", "actor@example.com")
	target, _ := svc.Create(ctx, "target", "t", "target@example.com")

	updated, err := svc.Subscribe(ctx, actor.ID, target.ID)
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	// 購読する側（actor）のリストにtargetが追加されること
	if len(updated.SubscribedToUserIDs) != 1 || updated.SubscribedToUserIDs[0] != target.ID {
		t.Errorf("actor.SubscribedToUserIDs = %v, want [%s]", updated.SubscribedToUserIDs, target.ID)
	}

	// 購読される側（target）のリストは変化しないこと
	targetAfter, _ := svc.Get(ctx, target.ID)
	if len(targetAfter.SubscribedToUserIDs) != 0 {
		t.Errorf("target.SubscribedToUserIDs = %v, want empty", targetAfter.SubscribedToUserIDs)
	}
}

func TestService_Subscribe_MissingTarget_ReturnsValidationError(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	actor, _ := svc.Create(ctx, "actor", "a", "actor@example.com")

	_, err := svc.Subscribe(ctx, actor.ID, "no-such-user")
	assertAPIErrorCode(t, err, model.ErrCodeSubscribeTargetGone)

	// 失敗した購読でactorのリストが変化しないこと
	after, _ := svc.Get(ctx, actor.ID)
	if len(after.SubscribedToUserIDs) != 0 {
		t.Errorf("actor.SubscribedToUserIDs = %v, want empty", after.SubscribedToUserIDs)
	}
}

func TestService_Subscribe_MissingActor_ReturnsUserNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	target, _ := svc.Create(ctx, "target", "t", "target@example.com")

	_, err := svc.Subscribe(ctx, "no-such-user", target.ID)
	assertAPIErrorCode(t, err, model.ErrCodeUserNotFound)
}

func TestService_Subscribe_DuplicateIsAllowed(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	actor, _ := svc.Create(ctx, "actor", "a", "actor@example.com")
	target, _ := svc.Create(ctx, "target", "t", "target@example.com")

	svc.Subscribe(ctx, actor.ID, target.ID)
	updated, err := svc.Subscribe(ctx, actor.ID, target.ID)
	if err != nil {
		t.Fatalf("second Subscribe returned error: %v", err)
	}

	// リストは重複を許容する配列として扱う
	if len(updated.SubscribedToUserIDs) != 2 {
		t.Errorf("len(SubscribedToUserIDs) = %d, want 2", len(updated.SubscribedToUserIDs))
	}
}

func TestService_Unsubscribe_RemovesEdge(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	actor, _ := svc.Create(ctx, "actor", "a", "actor@example.com")
	target, _ := svc.Create(ctx, "target", "t", "target@example.com")
	other, _ := svc.Create(ctx, "other", "o", "other@example.com")

	svc.Subscribe(ctx, actor.ID, target.ID)
	svc.Subscribe(ctx, actor.ID, other.ID)

	updated, err := svc.Unsubscribe(ctx, actor.ID, target.ID)
	if err != nil {
		t.Fatalf("Unsubscribe returned error: %v", err)
	}
	if len(updated.SubscribedToUserIDs) != 1 || updated.SubscribedToUserIDs[0] != other.ID {
		t.Errorf("SubscribedToUserIDs = %v, want [%s]", updated.SubscribedToUserIDs, other.ID)
	}
}

func TestService_Unsubscribe_WithoutEdge_ReturnsNotSubscribed(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	actor, _ := svc.Create(ctx, "actor", "a", "actor@example.com")
	target, _ := svc.Create(ctx, "target", "t", "target@example.com")

	// 購読していない相手への購読解除は冪等に成功せず、明示的に失敗する
	_, err := svc.Unsubscribe(ctx, actor.ID, target.ID)
	assertAPIErrorCode(t, err, model.ErrCodeNotSubscribed)
}

func TestService_Unsubscribe_MissingActor_ReturnsUserNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Unsubscribe(context.Background(), "no-such-user", "whoever")
	assertAPIErrorCode(t, err, model.ErrCodeUserNotFound)
}

func TestService_Unsubscribe_RemovesAllDuplicateEdges(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	actor, _ := svc.Create(ctx, "actor", "a", "actor@example.com")
	target, _ := svc.Create(ctx, "target", "t", "target@example.com")

	svc.Subscribe(ctx, actor.ID, target.ID)
	svc.Subscribe(ctx, actor.ID, target.ID)

	updated, err := svc.Unsubscribe(ctx, actor.ID, target.ID)
	if err != nil {
		t.Fatalf("Unsubscribe returned error: %v", err)
	}
	if len(updated.SubscribedToUserIDs) != 0 {
		t.Errorf("SubscribedToUserIDs = %v, want empty", updated.SubscribedToUserIDs)
	}
}
