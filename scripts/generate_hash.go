//go:build ignore

// generate_hash.go — утилита для генерации Argon2id хеша пароля.
// Запуск: go run scripts/generate_hash.go новый_пароль
//
// Нужна для ручного сброса пароля пользователя:
//
//	UPDATE users SET password_hash = '<хеш>', refresh_token = NULL WHERE email = '...';
package main

import (
	"fmt"
	"os"

	"serotonyl.ru/habit-casino/internal/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Использование: go run scripts/generate_hash.go <пароль>")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Printf("Ошибка хеширования: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Хеш пароля (вставьте в users.password_hash):")
	fmt.Println(hash)
}
