package admin

import (
	"time"

	"github.com/google/uuid"
)

// Стартовые данные для работы без подключения к бэкенду бота

func SeedUsers() []User {
	return []User{
		{ID: "847291034", Username: "@student_alex", JoinDate: date(2024, 12, 15), BonusBalance: 45, TotalSpent: 2340},
		{ID: "293847561", Username: "@maria_dev", JoinDate: date(2024, 11, 28), BonusBalance: 120, TotalSpent: 5670},
		{ID: "182736450", Username: "@ivan_123", JoinDate: date(2025, 1, 2), BonusBalance: 0, TotalSpent: 890},
		{ID: "394857261", Username: "@power_user", JoinDate: date(2024, 10, 5), BonusBalance: 340, TotalSpent: 12450},
		{ID: "583746291", Username: "@new_student", JoinDate: date(2025, 1, 14), BonusBalance: 10, TotalSpent: 129},
		{ID: "673829104", Username: "@edu_helper", JoinDate: date(2024, 9, 20), BonusBalance: 85, TotalSpent: 7890},
	}
}

func SeedPromoCodes() []PromoCode {
	return []PromoCode{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Code: "WELCOME2025", UsageCount: 45, MaxUses: 100, ExpiresAt: date(2025, 2, 1), IsMultiUse: true, BonusAmount: 20},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Code: "SESSION2026", UsageCount: 12, MaxUses: 50, ExpiresAt: date(2025, 1, 20), IsMultiUse: true, BonusAmount: 30},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Code: "VIP-ALEX-001", UsageCount: 1, MaxUses: 1, ExpiresAt: date(2025, 1, 18), IsMultiUse: false, BonusAmount: 100},
		{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Code: "STUDENT50", UsageCount: 89, MaxUses: 200, ExpiresAt: date(2025, 3, 15), IsMultiUse: true, BonusAmount: 50},
	}
}

func SeedChecks() []CheckEntry {
	return []CheckEntry{
		{ID: "log-001", Timestamp: stamp("2025-01-16 14:32:15"), UserID: "847291034", Username: "@student_alex", Status: CheckCompleted, Message: "Check completed successfully", Duration: 2340, Cost: 129},
		{ID: "log-002", Timestamp: stamp("2025-01-16 14:31:58"), UserID: "293847561", Username: "@maria_dev", Status: CheckProcessing, Message: "Analyzing document..."},
		{ID: "log-003", Timestamp: stamp("2025-01-16 14:31:42"), UserID: "182736450", Username: "@ivan_123", Status: CheckCompleted, Message: "Check completed successfully", Duration: 1890, Cost: 129},
		{ID: "log-004", Timestamp: stamp("2025-01-16 14:31:21"), UserID: "394857261", Username: "@power_user", Status: CheckError, Message: "Document parsing failed: Invalid format"},
		{ID: "log-005", Timestamp: stamp("2025-01-16 14:30:55"), UserID: "583746291", Username: "@new_student", Status: CheckCompleted, Message: "Check completed successfully", Duration: 3120, Cost: 129},
		{ID: "log-006", Timestamp: stamp("2025-01-16 14:30:12"), UserID: "673829104", Username: "@edu_helper", Status: CheckCompleted, Message: "Check completed successfully", Duration: 2450, Cost: 129},
		{ID: "log-007", Timestamp: stamp("2025-01-16 14:29:48"), UserID: "847291034", Username: "@student_alex", Status: CheckError, Message: "Rate limit exceeded"},
		{ID: "log-008", Timestamp: stamp("2025-01-16 14:29:15"), UserID: "293847561", Username: "@maria_dev", Status: CheckCompleted, Message: "Check completed successfully", Duration: 1980, Cost: 129},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stamp(s string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}
