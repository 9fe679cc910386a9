package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/itnr/itnr-api/internal/domain"
	"github.com/itnr/itnr-api/internal/infrastructure/logger"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CityResolver maps free-text city names to IATA codes.
//
// Lookup order: static table, literal IATA code, cache, provider reference data.
// Cache and provider are optional; a nil cache is skipped and a nil provider
// turns every unknown name into a ResolutionError.
type CityResolver struct {
	provider domain.LocationProvider
	cache    domain.LocationCache
}

// NewCityResolver creates a CityResolver.
func NewCityResolver(provider domain.LocationProvider, cache domain.LocationCache) *CityResolver {
	return &CityResolver{
		provider: provider,
		cache:    cache,
	}
}

// Resolve returns the location for name.
func (r *CityResolver) Resolve(ctx context.Context, name string) (domain.ResolvedLocation, error) {
	normalized := NormalizeCityName(name)
	if normalized == "" {
		return domain.ResolvedLocation{}, domain.NewValidationError("city", "city name is required")
	}

	if entry, ok := lookupCity(normalized); ok {
		return domain.ResolvedLocation{
			Query:      name,
			Code:       entry.Code,
			Name:       entry.Name,
			Alternates: alternatesFor(entry.Code, entry.Airports),
			Source:     domain.SourceTable,
		}, nil
	}

	if code := strings.TrimSpace(name); isIATACode(code) {
		return domain.ResolvedLocation{
			Query:  name,
			Code:   code,
			Source: domain.SourceCode,
		}, nil
	}

	log := logger.FromContext(ctx)

	if r.cache != nil {
		loc, found, err := r.cache.GetLocation(ctx, normalized)
		if err != nil {
			log.Warn().Err(err).Str("city", normalized).Msg("location cache read failed")
		} else if found {
			loc.Query = name
			loc.Source = domain.SourceCache
			return loc, nil
		}
	}

	if r.provider == nil {
		return domain.ResolvedLocation{}, domain.NewResolutionError(name)
	}

	locations, err := r.provider.LookupLocations(ctx, strings.ToUpper(normalized))
	if err != nil {
		return domain.ResolvedLocation{}, fmt.Errorf("resolve %q: %w", name, err)
	}

	loc, ok := pickLocation(locations)
	if !ok {
		return domain.ResolvedLocation{}, domain.NewResolutionError(name)
	}
	loc.Query = name

	log.Debug().
		Str("city", normalized).
		Str("code", loc.Code).
		Strs("alternates", loc.Alternates).
		Msg("city resolved by provider")

	if r.cache != nil {
		if err := r.cache.SetLocation(ctx, normalized, loc); err != nil {
			log.Warn().Err(err).Str("city", normalized).Msg("location cache write failed")
		}
	}

	return loc, nil
}

// pickLocation prefers the first CITY entry, else the first entry.
// All other distinct codes become alternates.
func pickLocation(locations []domain.Location) (domain.ResolvedLocation, bool) {
	primary := -1
	for i, l := range locations {
		if l.IATACode == "" {
			continue
		}
		if l.SubType == domain.SubTypeCity {
			primary = i
			break
		}
		if primary < 0 {
			primary = i
		}
	}
	if primary < 0 {
		return domain.ResolvedLocation{}, false
	}

	chosen := locations[primary]
	codes := make([]string, 0, len(locations))
	for _, l := range locations {
		codes = append(codes, l.IATACode)
	}

	name := chosen.Name
	if chosen.CityName != "" {
		name = chosen.CityName
	}

	return domain.ResolvedLocation{
		Code:       chosen.IATACode,
		Name:       name,
		Alternates: alternatesFor(chosen.IATACode, codes),
		Source:     domain.SourceProvider,
	}, true
}

// alternatesFor returns the distinct non-empty codes other than primary, in order.
func alternatesFor(primary string, codes []string) []string {
	seen := map[string]struct{}{primary: {}}
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeCityName trims, folds case, strips diacritics and collapses
// whitespace, so that "  São   Paulo " and "sao paulo" compare equal.
func NormalizeCityName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
