package domain

import (
	"regexp"
	"unicode"
)

// Логин: 4-32 символа, латиница/цифры/подчёркивание, начинается с буквы
var loginRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{3,31}$`)

func ValidLogin(s string) bool {
	return loginRe.MatchString(s)
}

// ValidPassword: минимум 8 символов, обе буквы регистров, цифра и
// спецсимвол. Точные тексты ошибок отдаёт HTTP-слой.
func ValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit, sym bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			sym = true
		}
	}
	return upper && lower && digit && sym
}
