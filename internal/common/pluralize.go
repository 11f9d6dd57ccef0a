// Package common — pluralize.go содержит функции склонения русских числительных
// для текстов уведомлений.
package common

import (
	"fmt"
	"math"
)

// Pluralize выбирает форму слова для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → one (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → few (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → many (0, 5-20, 25-30, 100, ...)
func Pluralize(n int, one, few, many string) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return one
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return few
	}
	return many
}

// PluralizeDays возвращает правильную форму слова «день» для числа n.
//
// Примеры:
//
//	PluralizeDays(1)  → "день"
//	PluralizeDays(3)  → "дня"
//	PluralizeDays(11) → "дней"
func PluralizeDays(n int) string {
	return Pluralize(n, "день", "дня", "дней")
}

// FormatStreak создаёт строку вида "8 дней".
func FormatStreak(days int) string {
	return fmt.Sprintf("%d %s", days, PluralizeDays(days))
}
