package repository

import (
	"errors"
	"strings"

	repo "github.com/miigangls/restaurant-tickets/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// gorm/pgのエラーをrepositoryの番兵エラーへ寄せる
// SQLSTATE class 23（integrity constraint violation）と22（桁あふれなどdata exception）はErrConstraint
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (strings.HasPrefix(pgErr.Code, "23") || strings.HasPrefix(pgErr.Code, "22")) {
		return errors.Join(repo.ErrConstraint, err)
	}
	return err
}
