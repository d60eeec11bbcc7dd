package usecase

import "github.com/google/uuid"

// uuid列に形式違いの文字列を渡すとDBエラーになるので先に弾く
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
