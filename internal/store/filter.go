package store

// Filter はレコードに対する述語。FindOne/FindManyの絞り込みに使用する。
// ドメインのクエリ要件は等値比較と配列メンバーシップの2種類に限られるため、
// コンストラクタはEqとContainsのみを提供する。
type Filter[T any] func(T) bool

// Eq はフィールド値の等値比較フィルタを生成する。
func Eq[T any, V comparable](get func(T) V, want V) Filter[T] {
	return func(rec T) bool {
		return get(rec) == want
	}
}

// Contains は配列フィールドのメンバーシップフィルタを生成する。
// 「このIDを購読しているユーザーはどれか」のような逆参照の問い合わせに使用する。
func Contains[T any, V comparable](get func(T) []V, want V) Filter[T] {
	return func(rec T) bool {
		for _, v := range get(rec) {
			if v == want {
				return true
			}
		}
		return false
	}
}
