// Пакет static — встроенные статические ресурсы дашборда.
// Содержит страницы login/dashboard, CSS и JS.
// Файлы встраиваются в бинарник через //go:embed и раздаются через HTTP.
package static

import (
	"embed"
	"net/http"
)

// content — встроенная файловая система со всеми статическими ресурсами.
//
//go:embed *.html css/*.css js/*.js
var content embed.FS

// FileSystem возвращает http.FileSystem для обработки запросов к статике.
// Файлы доступны по путям вида /dashboard.html, /css/style.css, /js/app.js.
func FileSystem() http.FileSystem {
	return http.FS(content)
}
