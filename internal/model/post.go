// Package model はドメインモデルを定義する。
package model

// Post はユーザーの投稿を表す。
// UserID は作成時点で存在するユーザーを参照しなければならない（多対1、作成後の再検証なし）。
type Post struct {
	ID      string
	UserID  string
	Title   string
	Content string
}

// RecordID はストアのキーとなる識別子を返す。
func (p Post) RecordID() string { return p.ID }

// WithRecordID は識別子を設定したコピーを返す。
func (p Post) WithRecordID(id string) Post {
	p.ID = id
	return p
}

// PostPatch は投稿の部分更新を表す。
// nilフィールドは変更せず、既存の値を維持する。
type PostPatch struct {
	Title   *string
	Content *string
}
