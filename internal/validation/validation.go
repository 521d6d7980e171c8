// Package validation содержит функции валидации входных данных витрины.
package validation

import (
	"strings"
	"unicode"
)

// Sanitize очищает пользовательский ввод: обрезает пробелы и удаляет
// угловые скобки и кавычки.
func Sanitize(input string) string {
	trimmed := strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'':
			return -1
		}
		return r
	}, trimmed)
}

// IsValidEmail проверяет базовую форму адреса local@domain без пробелов
// и с точкой в доменной части.
func IsValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\n") {
		return false
	}

	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}

	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}

	return true
}

// NormalizePhone оставляет в номере только цифры.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone проверяет, что номер содержит не менее 10 цифр.
func IsValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) >= 10
}
