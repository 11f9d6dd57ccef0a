// Package common — errors.go определяет доменные ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отдавать клиенту правильный HTTP-статус.
package common

import "errors"

// Ошибки поиска (NotFound)
var (
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrHabitNotFound — привычка не существует, удалена или принадлежит другому пользователю
	ErrHabitNotFound = errors.New("привычка не найдена")
	// ErrItemNotFound — предмет инвентаря не найден
	ErrItemNotFound = errors.New("предмет не найден")
)

// Ошибки стриков и наград
var (
	// ErrAlreadyCompleted — привычка уже выполнена сегодня (отказ, а не сбой)
	ErrAlreadyCompleted = errors.New("привычка уже выполнена сегодня")
)

// Ошибки валидации
var (
	// ErrInvalidInput — общий случай некорректного запроса
	ErrInvalidInput = errors.New("некорректные данные")
	// ErrHabitNameRequired — пустое имя привычки
	ErrHabitNameRequired = errors.New("имя привычки обязательно")
	// ErrUsernameTaken — имя пользователя занято
	ErrUsernameTaken = errors.New("имя пользователя уже занято")
	// ErrEmailTaken — email уже зарегистрирован
	ErrEmailTaken = errors.New("email уже зарегистрирован")
)

// Ошибки аутентификации
var (
	// ErrInvalidCredentials — неверный email или пароль
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	// ErrInvalidRefreshToken — refresh-токен истёк, отозван или подделан
	ErrInvalidRefreshToken = errors.New("refresh-токен недействителен")
	// ErrUnauthorized — нет или неверный access-токен
	ErrUnauthorized = errors.New("требуется авторизация")
)
