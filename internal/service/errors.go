// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import "errors"

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrInvalidCredentials — неверное имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	// ErrInvalidAction — неизвестное действие над заявкой.
	ErrInvalidAction = errors.New("некорректное действие: допустимые значения — processed, unprocessed, delete")
	// ErrInvalidToken — токен отсутствует, повреждён или просрочен.
	ErrInvalidToken = errors.New("невалидный или просроченный токен")
)
