package store

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"platter/internal/discogs"
	"platter/internal/logging"
)

// PriceSource tags where an item's price came from.
type PriceSource string

const (
	PriceOverride PriceSource = "override"
	PriceMedian   PriceSource = "median"
	PriceHighSold PriceSource = "high_sold"
	PriceDefault  PriceSource = "default"
)

// ChoosePrice resolves a price through the strict fallback chain:
// override verbatim, then median, then high-sold, then the default.
// Market values are rounded to the nearest dollar and clamped to the
// floor. hasMedian/hasHigh distinguish absent values from zero, which
// never produces a zero-price listing.
func ChoosePrice(override string, median float64, hasMedian bool, highSold float64, hasHigh bool, floor, def int) (string, PriceSource) {
	if override != "" {
		return override, PriceOverride
	}
	if hasMedian && median > 0 {
		return strconv.Itoa(clampFloor(roundDollars(median), floor)), PriceMedian
	}
	if hasHigh && highSold > 0 {
		return strconv.Itoa(clampFloor(roundDollars(highSold), floor)), PriceHighSold
	}
	return strconv.Itoa(def), PriceDefault
}

func roundDollars(value float64) int {
	return int(math.Round(value))
}

func clampFloor(value, floor int) int {
	if value < floor {
		return floor
	}
	return value
}

// MarketClient is the slice of the Discogs API pricing needs.
type MarketClient interface {
	PriceSuggestion(ctx context.Context, releaseID int) (discogs.PriceResult, error)
	MarketplaceMedian(ctx context.Context, releaseID int) (discogs.PriceResult, error)
}

// Pricer prices groups from marketplace data.
type Pricer struct {
	client MarketClient
	floor  int
	logger *slog.Logger
}

// NewPricer builds a Pricer with the configured floor price.
func NewPricer(client MarketClient, floor int, logger *slog.Logger) *Pricer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pricer{
		client: client,
		floor:  floor,
		logger: logging.NewComponentLogger(logger, "pricing"),
	}
}

// PriceGroup resolves a market price for one group using its first
// release id: the graded price suggestion first, the marketplace
// median as fallback, the floor when neither yields a value. Counter
// updates land in stats. Floor-clamped values count as missing since
// the market signal was below a listable price.
func (p *Pricer) PriceGroup(ctx context.Context, group *Group, stats *Stats) (string, error) {
	releaseID, err := strconv.Atoi(group.Item.ReleaseID)
	if err != nil {
		stats.MedianErrors++
		return strconv.Itoa(p.floor), nil
	}

	suggestion, err := p.client.PriceSuggestion(ctx, releaseID)
	if err != nil {
		return "", err
	}
	if suggestion.OK {
		price := roundDollars(suggestion.Value)
		if price < p.floor {
			stats.MedianMissing++
			return strconv.Itoa(p.floor), nil
		}
		stats.MedianOK++
		return strconv.Itoa(price), nil
	}

	median, err := p.client.MarketplaceMedian(ctx, releaseID)
	if err != nil {
		return "", err
	}
	if median.Status >= 400 {
		stats.CountStatus(median.Status)
	}
	if !median.OK {
		if median.Status == 0 || median.Status >= 400 {
			stats.MedianErrors++
		} else {
			stats.MedianMissing++
		}
		p.logger.Debug("no market signal, using floor",
			logging.Int("release_id", releaseID),
			logging.Int("status", median.Status))
		return strconv.Itoa(p.floor), nil
	}

	price := roundDollars(median.Value)
	if price < p.floor {
		stats.MedianMissing++
		return strconv.Itoa(p.floor), nil
	}
	stats.MedianOK++
	return strconv.Itoa(price), nil
}
