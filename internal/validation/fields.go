package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// EmailPattern упрощённая проверка формата email
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ServerNamePattern определяет допустимый формат имени официанта
// Буквы любого алфавита, цифры, пробел, точка, дефис, апостроф
var ServerNamePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .'\-]*$`)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxServerNameLen максимальная длина имени официанта
	MaxServerNameLen = 64
	// MaxBarNameLen максимальная длина названия бара
	MaxBarNameLen = 120
)

// PaymentMethods допустимые способы оплаты
var PaymentMethods = []string{"cash", "card", "transfer", "other"}

// ValidateEmail проверяет формат email
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email %q is not valid", email)
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ValidateServerName проверяет имя официанта, как его вводят на кассе
func ValidateServerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("server name cannot be empty")
	}

	if utf8.RuneCountInString(name) > MaxServerNameLen {
		return fmt.Errorf("server name must not exceed %d characters", MaxServerNameLen)
	}

	if !ServerNamePattern.MatchString(name) {
		return fmt.Errorf("server name can only contain letters, numbers, spaces, dots, dashes and apostrophes")
	}

	return nil
}

// ValidateBarName проверяет название бара
func ValidateBarName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("bar name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxBarNameLen {
		return fmt.Errorf("bar name must not exceed %d characters", MaxBarNameLen)
	}
	return nil
}

// ValidatePaymentMethod проверяет способ оплаты
func ValidatePaymentMethod(method string) error {
	for _, m := range PaymentMethods {
		if method == m {
			return nil
		}
	}
	return fmt.Errorf("payment method must be one of %s", strings.Join(PaymentMethods, ", "))
}
