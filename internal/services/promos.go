package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	model "github.com/glkeru/plagadmin/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PromoRegistry struct {
	codes  []model.PromoCode
	logger *zap.Logger
	mu     sync.Mutex
}

func NewPromoRegistry(seed []model.PromoCode, logger *zap.Logger) *PromoRegistry {
	return &PromoRegistry{codes: seed, logger: logger}
}

// Параметры нового промокода, числовые поля приходят из формы текстом
type PromoSpec struct {
	Code        string `json:"code"`
	IsMultiUse  bool   `json:"is_multi_use"`
	MaxUses     string `json:"max_uses"`
	BonusAmount string `json:"bonus_amount"`
	ExpiresIn   string `json:"expires_in"` // часы
}

func (r *PromoRegistry) All() []model.PromoCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.PromoCode(nil), r.codes...)
}

// Создание промокода: код приводится к верхнему регистру, запись добавляется в начало списка
func (r *PromoRegistry) Create(spec PromoSpec) (model.PromoCode, error) {
	if spec.Code == "" {
		return model.PromoCode{}, fmt.Errorf("%w: code is required", model.ErrValidation)
	}
	bonus, err := strconv.Atoi(spec.BonusAmount)
	if err != nil || bonus <= 0 {
		return model.PromoCode{}, fmt.Errorf("%w: bonus amount %q must be a positive integer", model.ErrValidation, spec.BonusAmount)
	}
	hours, err := strconv.Atoi(spec.ExpiresIn)
	if err != nil || hours <= 0 {
		return model.PromoCode{}, fmt.Errorf("%w: expiration %q must be a positive number of hours", model.ErrValidation, spec.ExpiresIn)
	}
	// для одноразового кода лимит всегда 1, поле maxUses игнорируется
	maxUses := 1
	if spec.IsMultiUse {
		maxUses, err = strconv.Atoi(spec.MaxUses)
		if err != nil || maxUses <= 0 {
			return model.PromoCode{}, fmt.Errorf("%w: max uses %q must be a positive integer", model.ErrValidation, spec.MaxUses)
		}
	}

	promo := model.PromoCode{
		ID:          uuid.New(),
		Code:        strings.ToUpper(spec.Code),
		UsageCount:  0,
		MaxUses:     maxUses,
		ExpiresAt:   time.Now().Add(time.Duration(hours) * time.Hour),
		IsMultiUse:  spec.IsMultiUse,
		BonusAmount: bonus,
	}

	r.mu.Lock()
	r.codes = append([]model.PromoCode{promo}, r.codes...)
	r.mu.Unlock()

	r.logger.Info("promo code created",
		zap.String("id", promo.ID.String()),
		zap.String("code", promo.Code),
	)
	return promo, nil
}

func (r *PromoRegistry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.codes {
		if c.ID == id {
			r.codes = append(r.codes[:i], r.codes[i+1:]...)
			r.logger.Info("promo code deleted",
				zap.String("id", id.String()),
				zap.String("code", c.Code),
			)
			return nil
		}
	}
	return fmt.Errorf("promo code %s %w", id.String(), model.ErrNotFound)
}

// Фиксация использования, приходит от внешнего сервиса погашения
// Лимиты и уникальность кодов контролирует сервис погашения, здесь только учет
func (r *PromoRegistry) RecordUse(code string) (model.PromoCode, error) {
	canonical := strings.ToUpper(code)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.codes {
		if c.Code == canonical {
			c.UsageCount++
			r.codes[i] = c
			return c, nil
		}
	}
	return model.PromoCode{}, fmt.Errorf("promo code %s %w", canonical, model.ErrNotFound)
}

// Доля использований, 0 при maxUses <= 0 - на ноль не делим
func (r *PromoRegistry) UsageRatio(promo model.PromoCode) float64 {
	if promo.MaxUses <= 0 {
		return 0
	}
	return float64(promo.UsageCount) / float64(promo.MaxUses)
}

// Статус истечения - чистая функция от записи и текущего времени, не кэшируется
func (r *PromoRegistry) Status(promo model.PromoCode, now time.Time) model.ExpirationStatus {
	daysLeft := int(math.Ceil(promo.ExpiresAt.Sub(now).Hours() / 24))
	switch {
	case daysLeft < 0:
		return model.StatusExpired
	case daysLeft <= 3:
		return model.StatusExpiringSoon
	default:
		return model.StatusActive
	}
}

// Агрегаты по всем кодам, пересчитываются по запросу
func (r *PromoRegistry) Stats(ctx context.Context) (model.PromoStats, error) {
	codes := r.All()

	var redemptions, distributed int
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, c := range codes {
			redemptions += c.UsageCount
		}
		return nil
	})
	g.Go(func() error {
		for _, c := range codes {
			distributed += c.UsageCount * c.BonusAmount
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.PromoStats{}, err
	}

	return model.PromoStats{
		ActiveCodes:        len(codes),
		TotalRedemptions:   redemptions,
		BonusesDistributed: distributed,
	}, nil
}

// Событие погашения из очереди
type RedeemEvent struct {
	Code     string `json:"code"`
	UserID   string `json:"userId"`
	RedeemID string `json:"redeemId"`
}

func ParseRedeemEvent(eventJson string) (RedeemEvent, error) {
	event := RedeemEvent{}
	err := json.Unmarshal([]byte(eventJson), &event)
	if err != nil {
		return RedeemEvent{}, err
	}
	if event.Code == "" {
		return RedeemEvent{}, fmt.Errorf("invalid redeem event: code field is required")
	}
	if event.UserID == "" {
		return RedeemEvent{}, fmt.Errorf("invalid redeem event: userId field is required")
	}
	return event, nil
}
