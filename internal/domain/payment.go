package domain

import "strings"

// NormalizePaymentTerms canonicalizes a seller's offered payment terms:
// uppercased, trimmed, deduplicated, with the cash term always offered even
// when the configured list omits it.
func NormalizePaymentTerms(terms []string) []string {
	var normalized []string
	seen := make(map[string]struct{}, len(terms)+1)
	for _, term := range terms {
		value := strings.ToUpper(strings.TrimSpace(term))
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		normalized = append(normalized, value)
	}

	if _, ok := seen[PaymentTermCash]; !ok {
		normalized = append([]string{PaymentTermCash}, normalized...)
	}
	return normalized
}
