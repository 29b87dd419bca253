package admin

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	interf "github.com/glkeru/plagadmin/internal/interfaces"
	model "github.com/glkeru/plagadmin/internal/models"
	"go.uber.org/zap"
)

type PricingService struct {
	cfg    model.PricingConfig
	dirty  bool
	store  interf.ConfigStorage
	logger *zap.Logger
	mu     sync.Mutex
}

func NewPricingService(store interf.ConfigStorage, logger *zap.Logger) (*PricingService, error) {
	cfg, err := store.LoadConfig(context.Background())
	if err != nil {
		return nil, err
	}
	return &PricingService{cfg: cfg, store: store, logger: logger}, nil
}

// Текущий конфиг и флаг несохраненных изменений
func (s *PricingService) Config() (model.PricingConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, s.dirty
}

func (s *PricingService) SetMode(mode string) error {
	m := model.PricingMode(mode)
	if m != model.PricingFixed && m != model.PricingPerUnit {
		return fmt.Errorf("%w: unknown pricing mode %q", model.ErrValidation, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Mode = m
	s.dirty = true
	return nil
}

func (s *PricingService) SetBasePrice(value string) error {
	price, err := parsePrice(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.BasePrice = price
	s.dirty = true
	return nil
}

func (s *PricingService) SetPricePerUnit(value string) error {
	price, err := parsePrice(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.PricePerUnit = price
	s.dirty = true
	return nil
}

// Лимит оплаты бонусами, значение обрезается до диапазона [0, 30]
func (s *PricingService) SetMaxBonusUsage(percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 30 {
		percent = 30
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.MaxBonusUsage = percent
	s.dirty = true
	return nil
}

func (s *PricingService) SetInviterReward(value string) error {
	reward, err := parseReward(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.InviterReward = reward
	s.dirty = true
	return nil
}

func (s *PricingService) SetInviteeReward(value string) error {
	reward, err := parseReward(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.InviteeReward = reward
	s.dirty = true
	return nil
}

// Сохранение во внешнее хранилище
// При ошибке флаг несохраненных изменений остается, ошибка возвращается как есть
func (s *PricingService) Save(ctx context.Context) error {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	if err := s.store.SaveConfig(ctx, cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()

	s.logger.Info("pricing configuration saved",
		zap.String("mode", string(cfg.Mode)),
	)
	return nil
}

func parsePrice(value string) (float64, error) {
	price, err := strconv.ParseFloat(value, 64)
	if err != nil || price < 0 {
		return 0, fmt.Errorf("%w: price %q must be a non-negative number", model.ErrValidation, value)
	}
	return price, nil
}

func parseReward(value string) (int, error) {
	reward, err := strconv.Atoi(value)
	if err != nil || reward < 0 {
		return 0, fmt.Errorf("%w: reward %q must be a non-negative integer", model.ErrValidation, value)
	}
	return reward, nil
}
