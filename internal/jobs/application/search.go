package application

import (
	"strings"

	"github.com/samber/lo"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

// MatchListings keeps listings whose title, company name, description or any skill
// contains term, case-insensitively. Order is preserved. A blank term keeps everything.
func MatchListings(term string, listings []domain.Listing) []domain.Listing {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return append([]domain.Listing{}, listings...)
	}
	return lo.Filter(listings, func(listing domain.Listing, _ int) bool {
		return listingMatches(listing, needle)
	})
}

func listingMatches(listing domain.Listing, needle string) bool {
	for _, field := range []string{listing.Title, listing.CompanyName, listing.Description} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return lo.SomeBy(listing.Skills, func(skill string) bool {
		return strings.Contains(strings.ToLower(skill), needle)
	})
}
