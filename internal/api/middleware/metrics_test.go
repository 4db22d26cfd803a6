package middleware

import "testing"

// TestNormalizePath проверяет нормализацию путей для лейблов метрик.
func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "статический health",
			input:    "/health/live",
			expected: "/health/live",
		},
		{
			name:     "статический login",
			input:    "/api/login",
			expected: "/api/login",
		},
		{
			name:     "список заявок",
			input:    "/api/records",
			expected: "/api/records",
		},
		{
			name:     "действие над заявкой — id заменяется",
			input:    "/api/records/a1b2c3d4-e5f6-7890-abcd-ef1234567890/action",
			expected: "/api/records/{id}/action",
		},
		{
			name:     "css агрегируется",
			input:    "/css/style.css",
			expected: "/static",
		},
		{
			name:     "js агрегируется",
			input:    "/js/app.js",
			expected: "/static",
		},
		{
			name:     "html страница как есть",
			input:    "/dashboard.html",
			expected: "/dashboard.html",
		},
		{
			name:     "корень как есть",
			input:    "/",
			expected: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePath(tt.input); got != tt.expected {
				t.Errorf("normalizePath(%q) = %q, ожидалось %q", tt.input, got, tt.expected)
			}
		})
	}
}
