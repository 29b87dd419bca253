package admin

import (
	"context"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	model "github.com/glkeru/plagadmin/internal/models"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Таблица пользователей принадлежит бэкенду бота, здесь только чтение
type UsersDB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewUsersDB(logger *zap.Logger) (*UsersDB, error) {
	// config
	purl := os.Getenv("ADMIN_DB")
	if purl == "" {
		return nil, fmt.Errorf("env ADMIN_DB is not set")
	}
	port := os.Getenv("ADMIN_DB_PORT")
	if port == "" {
		return nil, fmt.Errorf("env ADMIN_DB_PORT is not set")
	}
	user := os.Getenv("ADMIN_DB_USER")
	if user == "" {
		return nil, fmt.Errorf("env ADMIN_DB_USER is not set")
	}
	password := os.Getenv("ADMIN_DB_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("env ADMIN_DB_PASSWORD is not set")
	}
	database := os.Getenv("ADMIN_DB_BASE")
	if database == "" {
		return nil, fmt.Errorf("env ADMIN_DB_BASE is not set")
	}
	dsn := "postgres://" + user + ":" + password + "@" + purl + ":" + port + "/" + database

	pool, err := pgxpool.New(context.Background(), dsn)
	return &UsersDB{pool, logger}, err
}

func (u *UsersDB) LoadUsers(ctx context.Context) ([]model.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	sql, args, err := sq.Select("userid", "username", "joindate", "balance", "spent").
		From("users").
		OrderBy("joindate").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		u.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
		)
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		u.logger.Error("SQL error",
			zap.Error(err),
			zap.String("query", sql),
			zap.Any("args", args),
		)
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		var username pgtype.Text
		err = rows.Scan(&user.ID, &username, &user.JoinDate, &user.BonusBalance, &user.TotalSpent)
		if err != nil {
			return nil, err
		}
		user.Username = username.String
		users = append(users, user)
	}
	return users, nil
}
