package repository

import "errors"

var ErrNotFound = errors.New("not found")

// 制約違反（一意・CHECK・FKなど）。DB実装側でSQLSTATEから変換する
var ErrConstraint = errors.New("constraint violation")
