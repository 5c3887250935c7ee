// Package model はドメインモデルを定義する。
package model

// User はサービス利用ユーザーを表す。
// SubscribedToUserIDs はこのユーザーが購読している相手ユーザーIDの順序付きリスト。
type User struct {
	ID                  string
	FirstName           string
	LastName            string
	Email               string
	SubscribedToUserIDs []string
}

// RecordID はストアのキーとなる識別子を返す。
func (u User) RecordID() string { return u.ID }

// WithRecordID は識別子を設定したコピーを返す。
func (u User) WithRecordID(id string) User {
	u.ID = id
	return u
}

// UserPatch はユーザーの部分更新を表す。
// nilフィールドは変更せず、既存の値を維持する。
// SubscribedToUserIDs は非nilの場合、追記ではなく全置換される。
type UserPatch struct {
	FirstName           *string
	LastName            *string
	Email               *string
	SubscribedToUserIDs []string
}
