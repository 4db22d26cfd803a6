package model

import "time"

// User — учётная запись оператора дашборда.
// Хранится в таблице users, провиженится внешним процессом,
// с точки зрения сервиса — только чтение.
type User struct {
	// Name — уникальное имя пользователя
	Name string
	// PasswordHash — bcrypt-хэш пароля
	PasswordHash string
	// CreatedAt — время создания записи
	CreatedAt time.Time
}
