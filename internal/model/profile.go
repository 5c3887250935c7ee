// Package model はドメインモデルを定義する。
package model

// Profile はユーザーのプロフィールを表す。
// UserID は所有ユーザーと1:1で対応し、1ユーザーにつき最大1件しか存在しない。
// MemberTypeID は作成時点で存在するMemberTypeを参照しなければならない。
type Profile struct {
	ID           string
	UserID       string
	MemberTypeID string
	Avatar       string
	Sex          string
	Birthday     int64
	Country      string
	Street       string
	City         string
}

// RecordID はストアのキーとなる識別子を返す。
func (p Profile) RecordID() string { return p.ID }

// WithRecordID は識別子を設定したコピーを返す。
func (p Profile) WithRecordID(id string) Profile {
	p.ID = id
	return p
}

// ProfilePatch はプロフィールの部分更新を表す。
// nilフィールドは変更せず、既存の値を維持する。
// MemberTypeID の参照先は作成時のみ検証され、更新時には再検証されない。
type ProfilePatch struct {
	MemberTypeID *string
	Avatar       *string
	Sex          *string
	Birthday     *int64
	Country      *string
	Street       *string
	City         *string
}
