package store

import "errors"

var (
	// ErrNotFound は識別子に対応するレコードが存在しない場合に返される。
	ErrNotFound = errors.New("store: record not found")

	// ErrAlreadyExists は既存の識別子でInsertしようとした場合に返される。
	ErrAlreadyExists = errors.New("store: record already exists")
)
