package universe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wonny/vulture/internal/external/naver"
	"github.com/wonny/vulture/pkg/logger"
	"github.com/wonny/vulture/pkg/redis"
)

// Known market segments
const (
	SegmentAll    = "all"
	SegmentKOSPI  = "kospi"
	SegmentKOSDAQ = "kosdaq"
	SegmentQuick  = "quick" // volume-surge ranking, bounded and uncached
)

// quickLimit bounds the quick-scan universe
const quickLimit = 300

// Provider resolves named market segments to code lists, caching listings
// so repeated scans within a day do not re-page the upstream listing API
// ⭐ SSOT: 스캔 유니버스 생성은 여기서만
type Provider struct {
	naverClient *naver.Client
	cache       *redis.Cache
	listingTTL  time.Duration
	logger      *logger.Logger
}

// NewProvider creates a new universe provider
func NewProvider(naverClient *naver.Client, cache *redis.Cache, listingTTL time.Duration, log *logger.Logger) *Provider {
	return &Provider{
		naverClient: naverClient,
		cache:       cache,
		listingTTL:  listingTTL,
		logger:      log.WithField("module", "universe"),
	}
}

// BySegment implements contracts.UniverseProvider
func (p *Provider) BySegment(ctx context.Context, segment string) ([]string, error) {
	switch strings.ToLower(segment) {
	case SegmentKOSPI:
		return p.marketCodes(ctx, "KOSPI")
	case SegmentKOSDAQ:
		return p.marketCodes(ctx, "KOSDAQ")
	case SegmentAll:
		kospi, err := p.marketCodes(ctx, "KOSPI")
		if err != nil {
			return nil, err
		}
		kosdaq, err := p.marketCodes(ctx, "KOSDAQ")
		if err != nil {
			return nil, err
		}
		return append(kospi, kosdaq...), nil
	case SegmentQuick:
		// Ranking shifts minute to minute; never cached
		return p.naverClient.FetchVolumeSurgeCodes(ctx, quickLimit)
	default:
		return nil, fmt.Errorf("unknown market segment: %q", segment)
	}
}

// marketCodes fetches a full market listing with a daily cache in front
func (p *Provider) marketCodes(ctx context.Context, market string) ([]string, error) {
	cacheKey := fmt.Sprintf("listing:%s", market)

	var cached []string
	found, err := p.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		p.logger.WithError(err).Warn("Listing cache read failed")
	}
	if found && len(cached) > 0 {
		p.logger.WithFields(map[string]interface{}{
			"market": market,
			"count":  len(cached),
		}).Debug("Listing served from cache")
		return cached, nil
	}

	codes, err := p.naverClient.FetchMarketCodes(ctx, market)
	if err != nil {
		return nil, fmt.Errorf("fetch %s listing: %w", market, err)
	}

	if err := p.cache.Set(ctx, cacheKey, codes, p.listingTTL); err != nil {
		p.logger.WithError(err).Warn("Listing cache write failed")
	}

	return codes, nil
}
