package domain

import "strings"

// NormalizeText recorta espacios; un texto vacío se guarda como NULL.
func NormalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
