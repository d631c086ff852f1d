package service

import (
	"errors"
	"fmt"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// TelegramUser 经 initData 签名校验后的平台用户信息
type TelegramUser struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
}

// ValidateInitData 校验 Telegram 小程序 initData 的签名并解析其中的用户
// expireIn 为 initData 的最大有效期，0 表示不校验 auth_date
func ValidateInitData(raw, botToken string, expireIn time.Duration) (*TelegramUser, error) {
	if botToken == "" {
		return nil, errors.New("未配置 bot_token，无法校验 initData")
	}
	if err := initdata.Validate(raw, botToken, expireIn); err != nil {
		return nil, fmt.Errorf("initData 签名校验失败: %w", err)
	}

	data, err := initdata.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("initData 解析失败: %w", err)
	}
	if data.User.ID == 0 {
		return nil, errors.New("initData 中缺少用户信息")
	}

	return &TelegramUser{
		ID:           data.User.ID,
		Username:     data.User.Username,
		FirstName:    data.User.FirstName,
		LastName:     data.User.LastName,
		LanguageCode: data.User.LanguageCode,
	}, nil
}
