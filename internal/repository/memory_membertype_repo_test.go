package repository

import (
	"context"
	"testing"

	"github.com/hitoshi/socialman/internal/model"
	"github.com/hitoshi/socialman/internal/store"
)

func TestNewMemoryMemberTypeRepo_SeedsClosedSet(t *testing.T) {
	repo, err := NewMemoryMemberTypeRepo()
	if err != nil {
		t.Fatalf("NewMemoryMemberTypeRepo returned error: %v", err)
	}

	types, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("len(types) = %d, want 2", len(types))
	}

	if types[0].ID != model.MemberTypeBasic {
		t.Errorf("types[0].ID = %q, want %q", types[0].ID, model.MemberTypeBasic)
	}
	if types[0].Discount != 0 || types[0].MonthPostsLimit != 20 {
		t.Errorf("basic = {%d, %d}, want {0, 20}", types[0].Discount, types[0].MonthPostsLimit)
	}

	if types[1].ID != model.MemberTypeBusiness {
		t.Errorf("types[1].ID = %q, want %q", types[1].ID, model.MemberTypeBusiness)
	}
	if types[1].Discount != 5 || types[1].MonthPostsLimit != 100 {
		t.Errorf("business = {%d, %d}, want {5, 100}", types[1].Discount, types[1].MonthPostsLimit)
	}
}

func TestMemoryMemberTypeRepo_FindByID(t *testing.T) {
	repo, _ := NewMemoryMemberTypeRepo()
	ctx := context.Background()

	mt, err := repo.FindByID(ctx, model.MemberTypeBasic)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if mt == nil {
		t.Fatal("expected basic member type to be found")
	}

	missing, err := repo.FindByID(ctx, "premium")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown member type ID")
	}
}

func TestMemoryMemberTypeRepo_Update_MergesFields(t *testing.T) {
	repo, _ := NewMemoryMemberTypeRepo()
	ctx := context.Background()

	discount := 10
	updated, err := repo.Update(ctx, model.MemberTypeBusiness, model.MemberTypePatch{
		Discount: &discount,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Discount != 10 {
		t.Errorf("Discount = %d, want 10", updated.Discount)
	}
	// 未指定フィールドは既存値を維持すること
	if updated.MonthPostsLimit != 100 {
		t.Errorf("MonthPostsLimit = %d, want 100", updated.MonthPostsLimit)
	}
}

func TestMemoryMemberTypeRepo_Update_Miss_ReturnsErrNotFound(t *testing.T) {
	repo, _ := NewMemoryMemberTypeRepo()

	_, err := repo.Update(context.Background(), "premium", model.MemberTypePatch{})
	if err != store.ErrNotFound {
		t.Errorf("err = %v, want store.ErrNotFound", err)
	}
}
