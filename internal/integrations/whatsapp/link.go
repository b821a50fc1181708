package whatsapp

import (
	"errors"
	"net/url"
	"strings"
	"unicode"
)

const baseURL = "https://wa.me/"

var ErrEmptyPhone = errors.New("whatsapp: empty phone number")

// BuildLink собирает ссылку wa.me с предзаполненным текстом
// Из номера остаются только цифры: "+56 9 1234 5678" -> "56912345678"
func BuildLink(phone, text string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", ErrEmptyPhone
	}

	link := baseURL + digits
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link, nil
}
