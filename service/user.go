package service

import (
	"errors"
	"log"
	"time"

	"expensor/database"
	"expensor/models"

	"gorm.io/gorm"
)

var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("用户不存在")
	// ErrSaveUser 用户写入失败
	ErrSaveUser = errors.New("保存用户失败")
)

// FindOrCreateByTelegram 按外部身份解析用户，首次出现时创建
// 已存在时同步平台侧可能变化的资料（用户名、昵称），并刷新最后登录时间
func FindOrCreateByTelegram(tg *TelegramUser) (*models.User, error) {
	now := time.Now()

	var user models.User
	err := database.DB.Where("telegram_id = ?", tg.ID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			TelegramID:  tg.ID,
			Username:    tg.Username,
			FirstName:   tg.FirstName,
			LastName:    tg.LastName,
			IsActive:    true,
			LastLoginAt: &now,
		}
		if tg.LanguageCode != "" {
			user.Language = tg.LanguageCode
		}
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("创建用户失败 (telegram_id=%d): %v", tg.ID, err)
			return nil, ErrSaveUser
		}
		log.Printf("新用户注册: telegram_id=%d", tg.ID)
		return &user, nil
	}
	if err != nil {
		log.Printf("查询用户失败 (telegram_id=%d): %v", tg.ID, err)
		return nil, ErrSaveUser
	}

	updates := map[string]interface{}{
		"username":      tg.Username,
		"first_name":    tg.FirstName,
		"last_name":     tg.LastName,
		"last_login_at": now,
	}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("更新用户登录信息失败 (telegram_id=%d): %v", tg.ID, err)
		return nil, ErrSaveUser
	}
	user.Username = tg.Username
	user.FirstName = tg.FirstName
	user.LastName = tg.LastName
	user.LastLoginAt = &now
	return &user, nil
}

// GetByTelegramID 按外部身份读取用户
func GetByTelegramID(telegramID int64) (*models.User, error) {
	var user models.User
	err := database.DB.Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Printf("查询用户失败 (telegram_id=%d): %v", telegramID, err)
		return nil, ErrSaveUser
	}
	return &user, nil
}

// AddTokens 为用户增加代币余额，返回新余额
// 余额在数据库侧累加，并发入账（如 Stripe webhook 重试）不会互相覆盖
func AddTokens(telegramID int64, amount int) (int, error) {
	result := database.DB.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("tokens", gorm.Expr("tokens + ?", amount))
	if result.Error != nil {
		log.Printf("更新代币余额失败 (telegram_id=%d): %v", telegramID, result.Error)
		return 0, ErrSaveUser
	}
	if result.RowsAffected == 0 {
		return 0, ErrUserNotFound
	}

	var user models.User
	if err := database.DB.Select("tokens").Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		log.Printf("查询代币余额失败 (telegram_id=%d): %v", telegramID, err)
		return 0, ErrSaveUser
	}
	return user.Tokens, nil
}
