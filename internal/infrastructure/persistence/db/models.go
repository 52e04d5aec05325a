package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	Username     string
	PasswordHash pgtype.Text
	ProfileImg   pgtype.Text
	GoogleAuth   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
