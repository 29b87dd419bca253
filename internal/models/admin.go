package admin

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// Пользователь сервиса (создается ботом, здесь только читаем и корректируем баланс)
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	JoinDate     time.Time `json:"join_date"`
	BonusBalance int       `json:"bonus_balance"`
	TotalSpent   int       `json:"total_spent"`
}

// Промокод
type PromoCode struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	UsageCount  int       `json:"usage_count"`
	MaxUses     int       `json:"max_uses"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsMultiUse  bool      `json:"is_multi_use"`
	BonusAmount int       `json:"bonus_amount"`
}

type ExpirationStatus string

const (
	StatusExpired      ExpirationStatus = "expired"
	StatusExpiringSoon ExpirationStatus = "expiring_soon"
	StatusActive       ExpirationStatus = "active"
)

type PromoStats struct {
	ActiveCodes        int `json:"active_codes"`
	TotalRedemptions   int `json:"total_redemptions"`
	BonusesDistributed int `json:"bonuses_distributed"`
}

type PricingMode string

const (
	PricingFixed   PricingMode = "fixed"
	PricingPerUnit PricingMode = "per-unit"
)

// Настройки тарификации и реферальной программы
type PricingConfig struct {
	Mode          PricingMode `json:"mode" bson:"mode"`
	BasePrice     float64     `json:"base_price" bson:"base_price"`
	PricePerUnit  float64     `json:"price_per_unit" bson:"price_per_unit"`
	MaxBonusUsage int         `json:"max_bonus_usage" bson:"max_bonus_usage"`
	InviterReward int         `json:"inviter_reward" bson:"inviter_reward"`
	InviteeReward int         `json:"invitee_reward" bson:"invitee_reward"`
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Mode:          PricingFixed,
		BasePrice:     129,
		PricePerUnit:  0.15,
		MaxBonusUsage: 15,
		InviterReward: 30,
		InviteeReward: 10,
	}
}

type CheckStatus string

const (
	CheckProcessing CheckStatus = "processing"
	CheckCompleted  CheckStatus = "completed"
	CheckError      CheckStatus = "error"
)

// Запись журнала проверок (приходит из пайплайна проверок)
type CheckEntry struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	Status    CheckStatus `json:"status"`
	Message   string      `json:"message"`
	Duration  int         `json:"duration,omitempty"` // миллисекунды, 0 если проверка не завершена
	Cost      int         `json:"cost,omitempty"`
}

type CheckCounts struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Processing int `json:"processing"`
	Errors     int `json:"errors"`
}

type DashboardSummary struct {
	RevenueToday  int `json:"revenue_today"`
	ChecksToday   int `json:"checks_today"`
	NewUsersToday int `json:"new_users_today"`
	QueueLength   int `json:"queue_length"`
}
