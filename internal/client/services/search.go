package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/colisroute/colis/internal/client/models"
)

// SearchCriteria is the sender's search form. All three fields are required.
type SearchCriteria struct {
	CollectionCity string
	DeliveryCity   string
	Date           string
}

const (
	MsgCollectionCity = "Veuillez saisir la ville de collecte"
	MsgDeliveryCity   = "Veuillez saisir la ville de livraison"
	MsgSearchDate     = "Veuillez saisir la date"
)

// Validate reports the first missing field only.
func (c SearchCriteria) Validate() error {
	switch {
	case strings.TrimSpace(c.CollectionCity) == "":
		return &FormError{Fields: []string{"collectionCity"}, Message: MsgCollectionCity}
	case strings.TrimSpace(c.DeliveryCity) == "":
		return &FormError{Fields: []string{"deliveryCity"}, Message: MsgDeliveryCity}
	case strings.TrimSpace(c.Date) == "":
		return &FormError{Fields: []string{"date"}, Message: MsgSearchDate}
	}
	return nil
}

// Params normalizes the criteria into query parameters.
func (c SearchCriteria) Params() models.SearchParams {
	return models.SearchParams{
		DepartureCity: NormalizeCity(c.CollectionCity),
		ArrivalCity:   NormalizeCity(c.DeliveryCity),
		Date:          strings.TrimSpace(c.Date),
	}
}

// NormalizeCity trims s and capitalizes its first letter, lower-casing the
// rest: "tUNIS " -> "Tunis".
func NormalizeCity(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
