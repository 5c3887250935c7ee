// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: resource, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeProfileNotFound     = "PROFILE_NOT_FOUND"
	ErrCodePostNotFound        = "POST_NOT_FOUND"
	ErrCodeMemberTypeNotFound  = "MEMBER_TYPE_NOT_FOUND"
	ErrCodeProfileExists       = "PROFILE_EXISTS"
	ErrCodeInvalidMemberType   = "INVALID_MEMBER_TYPE"
	ErrCodeInvalidPostOwner    = "INVALID_POST_OWNER"
	ErrCodeInvalidProfileOwner = "INVALID_PROFILE_OWNER"
	ErrCodeSubscribeTargetGone = "SUBSCRIBE_TARGET_NOT_FOUND"
	ErrCodeNotSubscribed       = "NOT_SUBSCRIBED"
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
)

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(userID string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("指定されたユーザーが見つかりません: %s", userID),
		Category: "resource",
		Action:   "ユーザーIDを確認してください。",
	}
}

// NewProfileNotFoundError はプロフィール未検出エラーを生成する。
func NewProfileNotFoundError(profileID string) *APIError {
	return &APIError{
		Code:     ErrCodeProfileNotFound,
		Message:  fmt.Sprintf("指定されたプロフィールが見つかりません: %s", profileID),
		Category: "resource",
		Action:   "プロフィールIDを確認してください。",
	}
}

// NewPostNotFoundError は投稿未検出エラーを生成する。
func NewPostNotFoundError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された投稿が見つかりません: %s", postID),
		Category: "resource",
		Action:   "投稿IDを確認してください。",
	}
}

// NewMemberTypeNotFoundError は会員種別未検出エラーを生成する。
func NewMemberTypeNotFoundError(memberTypeID string) *APIError {
	return &APIError{
		Code:     ErrCodeMemberTypeNotFound,
		Message:  fmt.Sprintf("指定された会員種別が見つかりません: %s", memberTypeID),
		Category: "resource",
		Action:   "会員種別IDを確認してください。",
	}
}

// NewProfileExistsError はプロフィール重複作成エラーを生成する。
// 1ユーザーにつきプロフィールは最大1件という不変条件の違反を表す。
func NewProfileExistsError(userID string) *APIError {
	return &APIError{
		Code:     ErrCodeProfileExists,
		Message:  fmt.Sprintf("このユーザーには既にプロフィールが存在します: %s", userID),
		Category: "validation",
		Action:   "既存のプロフィールを更新するか、削除してから再作成してください。",
	}
}

// NewInvalidMemberTypeError はプロフィール作成時の会員種別参照エラーを生成する。
func NewInvalidMemberTypeError(memberTypeID string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMemberType,
		Message:  fmt.Sprintf("存在しない会員種別が指定されました: %s", memberTypeID),
		Category: "validation",
		Action:   "basic または business を指定してください。",
	}
}

// NewInvalidPostOwnerError は投稿作成時の所有ユーザー参照エラーを生成する。
func NewInvalidPostOwnerError(userID string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidPostOwner,
		Message:  fmt.Sprintf("投稿の所有者として存在しないユーザーが指定されました: %s", userID),
		Category: "validation",
		Action:   "存在するユーザーのIDを指定してください。",
	}
}

// NewInvalidProfileOwnerError はプロフィール作成時の所有ユーザー参照エラーを生成する。
func NewInvalidProfileOwnerError(userID string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidProfileOwner,
		Message:  fmt.Sprintf("プロフィールの所有者として存在しないユーザーが指定されました: %s", userID),
		Category: "validation",
		Action:   "存在するユーザーのIDを指定してください。",
	}
}

// NewSubscribeTargetNotFoundError は購読対象ユーザーの参照エラーを生成する。
func NewSubscribeTargetNotFoundError(targetID string) *APIError {
	return &APIError{
		Code:     ErrCodeSubscribeTargetGone,
		Message:  fmt.Sprintf("購読対象のユーザーが見つかりません: %s", targetID),
		Category: "validation",
		Action:   "購読対象のユーザーIDを確認してください。",
	}
}

// NewNotSubscribedError は購読していない相手への購読解除エラーを生成する。
// 購読解除は冪等ではなく、エッジが存在しない場合は明示的に失敗する。
func NewNotSubscribedError(targetID string) *APIError {
	return &APIError{
		Code:     ErrCodeNotSubscribed,
		Message:  fmt.Sprintf("このユーザーを購読していません: %s", targetID),
		Category: "validation",
		Action:   "購読中のユーザーに対してのみ購読解除を実行してください。",
	}
}
