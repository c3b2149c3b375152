package postgre

import (
	"followup-srv/internal/audit/repository"
	"followup-srv/pkg/log"

	"github.com/jmoiron/sqlx"
)

type implRepository struct {
	db *sqlx.DB
	l  log.Logger
}

func New(db *sqlx.DB, l log.Logger) repository.PostgresRepository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
