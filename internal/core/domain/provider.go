package domain

import (
	"fmt"
	"strings"
)

type ProviderType string

const (
	ProviderTypeProfessional ProviderType = "professional"
	ProviderTypePlace        ProviderType = "place"
)

func ParseProviderType(str string) (ProviderType, error) {
	switch ProviderType(strings.ToLower(str)) {
	case ProviderTypeProfessional:
		return ProviderTypeProfessional, nil
	case ProviderTypePlace:
		return ProviderTypePlace, nil
	}
	return "", fmt.Errorf("%w: unknown provider type %q", ErrInvalidProvider, str)
}

type ProviderRef struct {
	Type ProviderType `json:"providerType"`
	ID   string       `json:"providerId"`
}

func NewProviderRef(providerType string, providerID string) (ProviderRef, error) {
	pt, err := ParseProviderType(providerType)
	if err != nil {
		return ProviderRef{}, err
	}
	if strings.TrimSpace(providerID) == "" {
		return ProviderRef{}, fmt.Errorf("%w: empty provider id", ErrInvalidProvider)
	}
	return ProviderRef{Type: pt, ID: providerID}, nil
}

// Key: ключ провайдера для кэшей, например "professional:42"
func (p ProviderRef) Key() string {
	return string(p.Type) + ":" + p.ID
}
