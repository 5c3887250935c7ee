// Package store はエンティティ種別ごとのインメモリストアを提供する。
//
// 永続化は行わず、プロセス内のマップが唯一の正となる。
// 参照整合性はこの層では一切強制せず、サービス層の事前条件チェックに委ねる。
// 各操作は個別にミューテックスで保護されるが、読み取り（事前条件チェック）と
// 後続の書き込みをまたぐロックは存在しない。
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Record はストアに格納できるレコードの制約。
// レコードは値として格納され、識別子の設定はコピーを返すことで行う。
type Record[T any] interface {
	RecordID() string
	WithRecordID(id string) T
}

// Store は1エンティティ種別のレコード集合を保持するインメモリストア。
// 挿入順を保持し、FindManyは常に挿入順で結果を返す。
type Store[T Record[T]] struct {
	mu      sync.RWMutex
	records map[string]T
	order   []string
	newID   func() string
}

// New は空のStoreを生成する。識別子はUUIDv4で採番される。
func New[T Record[T]]() *Store[T] {
	return &Store[T]{
		records: make(map[string]T),
		newID:   uuid.NewString,
	}
}

// Create は新しい識別子を採番してレコードを挿入し、格納後のレコードを返す。
// この層では一意性制約を強制しないため、通常の条件下で失敗しない。
func (s *Store[T]) Create(ctx context.Context, rec T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := rec.WithRecordID(s.newID())
	s.records[stored.RecordID()] = stored
	s.order = append(s.order, stored.RecordID())
	return stored
}

// Insert は呼び出し側が識別子を指定してレコードを挿入する。
// 会員種別のような閉じた識別子集合のシードに使用する。
// 既存の識別子の場合はErrAlreadyExistsを返す。
func (s *Store[T]) Insert(ctx context.Context, rec T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	id := rec.RecordID()
	if _, ok := s.records[id]; ok {
		return zero, ErrAlreadyExists
	}
	s.records[id] = rec
	s.order = append(s.order, id)
	return rec, nil
}

// FindByID は指定IDのレコードを返す。見つからない場合は第2戻り値がfalseになる。
func (s *Store[T]) FindByID(ctx context.Context, id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	return rec, ok
}

// FindOne は挿入順で走査し、フィルタを満たす最初のレコードを返す。
func (s *Store[T]) FindOne(ctx context.Context, filter Filter[T]) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if rec := s.records[id]; filter(rec) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// FindMany はフィルタを全て満たすレコードを挿入順で返す。
// フィルタなしの場合は全レコードを返す。
func (s *Store[T]) FindMany(ctx context.Context, filters ...Filter[T]) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]T, 0, len(s.order))
	for _, id := range s.order {
		rec := s.records[id]
		if matchAll(rec, filters) {
			results = append(results, rec)
		}
	}
	return results
}

// Update は指定IDのレコードにapplyを適用して置き換え、更新後のレコードを返す。
// 部分更新のマージ規則（nilフィールドは維持、配列は全置換）はapplyを組み立てる
// 呼び出し側が決める。レコードが存在しない場合はErrNotFoundを返す。
// 挿入順における位置は更新後も変わらない。
func (s *Store[T]) Update(ctx context.Context, id string, apply func(T) T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	rec, ok := s.records[id]
	if !ok {
		return zero, ErrNotFound
	}

	updated := apply(rec).WithRecordID(id)
	s.records[id] = updated
	return updated, nil
}

// Delete は指定IDのレコードを削除し、削除前のスナップショットを返す。
// レコードが存在しない場合はErrNotFoundを返す。
// 削除された識別子が再利用されることはない。
func (s *Store[T]) Delete(ctx context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	rec, ok := s.records[id]
	if !ok {
		return zero, ErrNotFound
	}

	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return rec, nil
}

// Len は格納されているレコード数を返す。
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func matchAll[T any](rec T, filters []Filter[T]) bool {
	for _, f := range filters {
		if !f(rec) {
			return false
		}
	}
	return true
}
