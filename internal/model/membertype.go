// Package model はドメインモデルを定義する。
package model

// MemberType は会員種別を表す。
// 識別子は起動時にシードされる閉じた集合（basic, business）で、作成・削除の経路は存在しない。
type MemberType struct {
	ID              string
	Discount        int
	MonthPostsLimit int
}

// シードされる会員種別の識別子。
const (
	MemberTypeBasic    = "basic"
	MemberTypeBusiness = "business"
)

// RecordID はストアのキーとなる識別子を返す。
func (m MemberType) RecordID() string { return m.ID }

// WithRecordID は識別子を設定したコピーを返す。
func (m MemberType) WithRecordID(id string) MemberType {
	m.ID = id
	return m
}

// MemberTypePatch は会員種別の部分更新を表す。
// nilフィールドは変更せず、既存の値を維持する。
type MemberTypePatch struct {
	Discount        *int
	MonthPostsLimit *int
}
