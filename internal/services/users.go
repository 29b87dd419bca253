package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	interf "github.com/glkeru/plagadmin/internal/interfaces"
	model "github.com/glkeru/plagadmin/internal/models"
	"go.uber.org/zap"
)

type UserLedger struct {
	users  []model.User
	logger *zap.Logger
	mu     sync.Mutex
}

func NewUserLedger(source interf.UserSource, logger *zap.Logger) (*UserLedger, error) {
	users, err := source.LoadUsers(context.Background())
	if err != nil {
		return nil, err
	}
	return &UserLedger{users: users, logger: logger}, nil
}

// Поиск по @username (без учета регистра) или по ID
// Пустой запрос - весь список в исходном порядке
func (s *UserLedger) Search(query string) []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query == "" {
		return append([]model.User(nil), s.users...)
	}
	q := strings.ToLower(query)
	found := []model.User{}
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(u.ID, query) {
			found = append(found, u)
		}
	}
	return found
}

// Корректировка баланса: новый баланс = max(0, текущий + delta)
// Отрицательный баланс невозможен, списание сверх остатка обрезается до нуля
func (s *UserLedger) AdjustBalance(userID string, delta string, reason string) (model.User, error) {
	amount, err := strconv.Atoi(delta)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: adjustment amount %q is not an integer", model.ErrValidation, delta)
	}
	if reason == "" {
		return model.User{}, fmt.Errorf("%w: adjustment reason is required", model.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID != userID {
			continue
		}
		balance := u.BonusBalance + amount
		if balance < 0 {
			balance = 0
		}
		u.BonusBalance = balance
		s.users[i] = u
		s.logger.Info("balance adjusted",
			zap.String("user", u.ID),
			zap.Int("delta", amount),
			zap.String("reason", reason),
			zap.Int("balance", balance),
		)
		return u, nil
	}
	return model.User{}, fmt.Errorf("user %s %w", userID, model.ErrNotFound)
}

// Кол-во пользователей, зарегистрированных в указанную дату
func (s *UserLedger) JoinedOn(day time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	y, m, d := day.Date()
	count := 0
	for _, u := range s.users {
		uy, um, ud := u.JoinDate.Date()
		if uy == y && um == m && ud == d {
			count++
		}
	}
	return count
}
