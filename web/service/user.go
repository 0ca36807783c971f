package service

import (
	"time"

	"lotto-ui/database"
	"lotto-ui/database/model"
	"lotto-ui/logger"
	"lotto-ui/util/common"

	"github.com/xlzd/gotp"
	"golang.org/x/crypto/bcrypt"
)

var ErrWrongCredentials = common.NewError("wrong username or password")

type UserService struct{}

func (s *UserService) Login(username string, password string, twoFactorCode string) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).Where("username = ?", username).First(user).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrWrongCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrWrongCredentials
	}

	if user.TotpSecret != "" {
		totp := gotp.NewDefaultTOTP(user.TotpSecret)
		if !totp.Verify(twoFactorCode, time.Now().Unix()) {
			return nil, common.NewError("invalid two-factor code")
		}
	}

	return user, nil
}

func (s *UserService) GetUser(id int64) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).First(user, id).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) AddUser(username string, password string, isAdmin bool) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: username,
		Password: string(hash),
		IsAdmin:  isAdmin,
	}
	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdatePassword(id int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	db := database.GetDB()
	err = db.Model(model.User{}).Where("id = ?", id).Update("password", string(hash)).Error
	if err != nil {
		return err
	}
	logger.Infof("password updated for user %d", id)
	return nil
}
