package admin

import (
	"context"
	"testing"
	"time"

	model "github.com/glkeru/plagadmin/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreatePromo(t *testing.T) {
	registry := NewPromoRegistry(model.SeedPromoCodes(), zap.NewNop())

	promo, err := registry.Create(PromoSpec{
		Code:        "summer25",
		IsMultiUse:  true,
		MaxUses:     "50",
		BonusAmount: "20",
		ExpiresIn:   "48",
	})
	require.NoError(t, err)
	require.Equal(t, "SUMMER25", promo.Code)
	require.Equal(t, 0, promo.UsageCount)
	require.Equal(t, 50, promo.MaxUses)
	require.True(t, promo.IsMultiUse)
	require.Equal(t, 20, promo.BonusAmount)
	require.NotEqual(t, uuid.Nil, promo.ID)
	require.WithinDuration(t, time.Now().Add(48*time.Hour), promo.ExpiresAt, time.Minute)

	// новая запись в начале списка
	codes := registry.All()
	require.Len(t, codes, 5)
	require.Equal(t, promo.ID, codes[0].ID)
}

func TestCreatePromoSingleUse(t *testing.T) {
	registry := NewPromoRegistry(nil, zap.NewNop())

	// для одноразового кода maxUses игнорируется
	promo, err := registry.Create(PromoSpec{
		Code:        "vip-bob-001",
		IsMultiUse:  false,
		MaxUses:     "not a number",
		BonusAmount: "100",
		ExpiresIn:   "24",
	})
	require.NoError(t, err)
	require.Equal(t, "VIP-BOB-001", promo.Code)
	require.Equal(t, 1, promo.MaxUses)
}

func TestCreatePromoErrors(t *testing.T) {
	tests := []struct {
		name string
		spec PromoSpec
	}{
		{"empty code", PromoSpec{Code: "", IsMultiUse: true, MaxUses: "50", BonusAmount: "20", ExpiresIn: "48"}},
		{"bad bonus", PromoSpec{Code: "X", IsMultiUse: true, MaxUses: "50", BonusAmount: "twenty", ExpiresIn: "48"}},
		{"zero bonus", PromoSpec{Code: "X", IsMultiUse: true, MaxUses: "50", BonusAmount: "0", ExpiresIn: "48"}},
		{"bad max uses", PromoSpec{Code: "X", IsMultiUse: true, MaxUses: "-1", BonusAmount: "20", ExpiresIn: "48"}},
		{"bad expiration", PromoSpec{Code: "X", IsMultiUse: true, MaxUses: "50", BonusAmount: "20", ExpiresIn: "0"}},
	}

	registry := NewPromoRegistry(model.SeedPromoCodes(), zap.NewNop())
	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			_, err := registry.Create(ts.spec)
			require.ErrorIs(t, err, model.ErrValidation)
			// коллекция не изменилась
			require.Len(t, registry.All(), 4)
		})
	}
}

func TestDeletePromo(t *testing.T) {
	registry := NewPromoRegistry(model.SeedPromoCodes(), zap.NewNop())
	target := registry.All()[1]

	err := registry.Delete(target.ID)
	require.NoError(t, err)

	codes := registry.All()
	require.Len(t, codes, 3)
	for _, c := range codes {
		require.NotEqual(t, target.ID, c.ID)
	}

	// повторное удаление и неизвестный id
	require.ErrorIs(t, registry.Delete(target.ID), model.ErrNotFound)
	require.ErrorIs(t, registry.Delete(uuid.New()), model.ErrNotFound)
	require.Len(t, registry.All(), 3)
}

func TestExpirationStatus(t *testing.T) {
	registry := NewPromoRegistry(nil, zap.NewNop())
	now := time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expected  model.ExpirationStatus
	}{
		{"expired yesterday", now.Add(-24 * time.Hour), model.StatusExpired},
		{"expired long ago", now.Add(-240 * time.Hour), model.StatusExpired},
		{"expires in two days", now.Add(48 * time.Hour), model.StatusExpiringSoon},
		{"expires on third day", now.Add(72 * time.Hour), model.StatusExpiringSoon},
		{"expires today", now, model.StatusExpiringSoon},
		{"expires in ten days", now.Add(240 * time.Hour), model.StatusActive},
	}

	for _, ts := range tests {
		promo := model.PromoCode{ExpiresAt: ts.expiresAt}
		require.Equal(t, ts.expected, registry.Status(promo, now), ts.name)
	}
}

func TestUsageRatio(t *testing.T) {
	registry := NewPromoRegistry(nil, zap.NewNop())

	require.Equal(t, 0.45, registry.UsageRatio(model.PromoCode{UsageCount: 45, MaxUses: 100}))
	require.Equal(t, 1.0, registry.UsageRatio(model.PromoCode{UsageCount: 1, MaxUses: 1}))
	// деления на ноль нет
	require.Equal(t, 0.0, registry.UsageRatio(model.PromoCode{UsageCount: 45, MaxUses: 0}))
}

func TestRecordUse(t *testing.T) {
	registry := NewPromoRegistry(model.SeedPromoCodes(), zap.NewNop())

	promo, err := registry.RecordUse("welcome2025")
	require.NoError(t, err)
	require.Equal(t, 46, promo.UsageCount)

	_, err = registry.RecordUse("NOSUCHCODE")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestPromoStats(t *testing.T) {
	registry := NewPromoRegistry(model.SeedPromoCodes(), zap.NewNop())

	stats, err := registry.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, stats.ActiveCodes)
	require.Equal(t, 45+12+1+89, stats.TotalRedemptions)
	require.Equal(t, 45*20+12*30+1*100+89*50, stats.BonusesDistributed)

	// агрегаты пересчитываются после create/delete
	created, err := registry.Create(PromoSpec{Code: "extra", IsMultiUse: true, MaxUses: "10", BonusAmount: "5", ExpiresIn: "24"})
	require.NoError(t, err)
	stats, err = registry.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, stats.ActiveCodes)
	require.Equal(t, 45+12+1+89, stats.TotalRedemptions)

	require.NoError(t, registry.Delete(created.ID))
	target := registry.All()[0] // WELCOME2025: 45 использований по 20 бонусов
	require.NoError(t, registry.Delete(target.ID))
	stats, err = registry.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, stats.ActiveCodes)
	require.Equal(t, 12+1+89, stats.TotalRedemptions)
	require.Equal(t, 12*30+1*100+89*50, stats.BonusesDistributed)
}

func TestParseRedeemEvent(t *testing.T) {
	event, err := ParseRedeemEvent(`{"code":"WELCOME2025","userId":"847291034","redeemId":"r-1"}`)
	require.NoError(t, err)
	require.Equal(t, "WELCOME2025", event.Code)
	require.Equal(t, "847291034", event.UserID)
	require.Equal(t, "r-1", event.RedeemID)

	_, err = ParseRedeemEvent(`{"userId":"847291034"}`)
	require.Error(t, err)
	_, err = ParseRedeemEvent(`{"code":"WELCOME2025"}`)
	require.Error(t, err)
	_, err = ParseRedeemEvent(`not json`)
	require.Error(t, err)
}
