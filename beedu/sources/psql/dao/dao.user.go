package dao

import (
	"context"
	"errors"

	"beedu/beedu/sources/psql"
	"beedu/beedu/sources/psql/models"

	"gorm.io/gorm"
)

// ErrDuplicateEmail is returned when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

type UserDAO struct {
	db *psql.Database
}

func NewUserDAO(db *psql.Database) *UserDAO {
	return &UserDAO{db: db}
}

// CreateUser persists a new user. The email must already be normalized by
// the caller; the unique index backs up the pre-insert duplicate check.
func (dao *UserDAO) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	db, err := dao.db.Get(ctx)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := dao.db.Get(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

