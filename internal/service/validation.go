package service

import (
	"net/url"
	"unicode"
)

// validPassword accepts passwords of length >= 6 containing at least one
// uppercase and one lowercase letter.
func validPassword(password string) bool {
	if len(password) < 6 {
		return false
	}
	var hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	return hasUpper && hasLower
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
