package postgre

import (
	"followup-srv/internal/reminder/repository"
	"followup-srv/pkg/encrypter"
	"followup-srv/pkg/log"

	"github.com/jmoiron/sqlx"
)

type implRepository struct {
	db  *sqlx.DB
	enc encrypter.Encrypter
	l   log.Logger
}

// New creates the Postgres repository. enc opens the site credential bags.
func New(db *sqlx.DB, enc encrypter.Encrypter, l log.Logger) repository.PostgresRepository {
	return &implRepository{
		db:  db,
		enc: enc,
		l:   l,
	}
}
