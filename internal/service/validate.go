package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BorgesHen/MochilaOk/internal/domain"
)

// minNameLength applies to destination titles, category names and item titles.
const minNameLength = 2

// requireTrimmed trims value and checks it has at least min characters.
func requireTrimmed(field, value string, min int) (string, error) {
	v := strings.TrimSpace(value)
	if utf8.RuneCountInString(v) < min {
		return "", fmt.Errorf("%w: %s is required (min. %d characters)", domain.ErrValidation, field, min)
	}
	return v, nil
}
