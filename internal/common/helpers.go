// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: календарные дни в заданном часовом поясе, плюрализация, JSON-ответы.
package common

import (
	"time"
)

// DateIn возвращает полночь календарного дня, в который попадает t, в зоне loc.
//
// Два момента времени относятся к одному дню тогда и только тогда,
// когда DateIn для них совпадает. Время суток и исходная зона t не важны.
func DateIn(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay сообщает, попадают ли a и b в один календарный день зоны loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DateIn(a, loc).Equal(DateIn(b, loc))
}

// Yesterday возвращает полночь дня, предшествующего дню now.
// AddDate вместо Add(-24h), чтобы переходы на летнее время не сдвигали дату.
func Yesterday(now time.Time, loc *time.Location) time.Time {
	return DateIn(now, loc).AddDate(0, 0, -1)
}

// FormatDate форматирует дату в формат "2006-01-02" в зоне loc.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
