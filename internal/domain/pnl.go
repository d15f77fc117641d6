package domain

import (
	"math"
	"sort"
)

// PnLPoint is one step of the cumulative profit/loss series, emitted for
// every distinct transaction date. Values are rounded to 2 decimal places.
type PnLPoint struct {
	Date       string  `json:"date"`
	Realized   float64 `json:"realized"`
	Unrealized float64 `json:"unrealized"`
}

type holding struct {
	qty float64
	avg float64
}

// ComputePnLSeries replays the wallet in date order and emits cumulative
// realized and unrealized P&L per transaction date.
//
// Within a date, all buys are applied before all sells, across every coin,
// so a same-day buy funds a same-day sell's cost basis. Buys fold into a
// weighted-average cost; a sell realizes (sellPrice - avg) * quantity and
// reduces the holding, clamped at zero (selling more than held drops the
// excess rather than going short). Unrealized P&L is recomputed from scratch
// after each date against the caller's spot price snapshot. The snapshot is a
// single point in time applied uniformly across all dates, a known
// approximation carried over from the dashboard this series feeds.
func ComputePnLSeries(entries []WalletEntry, spotPrices map[string]float64) []PnLPoint {
	seen := make(map[string]bool)
	var dates []string
	for _, e := range entries {
		if e.BuyDate != "" && !seen[e.BuyDate] {
			seen[e.BuyDate] = true
			dates = append(dates, e.BuyDate)
		}
		if e.SellDate != "" && !seen[e.SellDate] {
			seen[e.SellDate] = true
			dates = append(dates, e.SellDate)
		}
	}
	sort.Strings(dates)

	holdings := make(map[string]*holding)
	realized := 0.0
	points := make([]PnLPoint, 0, len(dates))

	for _, date := range dates {
		// Buys first so a same-day sell sees the updated average.
		for _, e := range entries {
			if e.BuyDate != date {
				continue
			}
			h := holdings[e.CoinID]
			if h == nil {
				h = &holding{}
				holdings[e.CoinID] = h
			}
			totalCost := h.avg*h.qty + e.BuyPrice*e.Quantity
			h.qty += e.Quantity
			if h.qty != 0 {
				h.avg = totalCost / h.qty
			} else {
				h.avg = 0
			}
		}
		for _, e := range entries {
			if e.SellDate != date || e.SellPrice == nil {
				continue
			}
			h := holdings[e.CoinID]
			if h == nil {
				h = &holding{}
				holdings[e.CoinID] = h
			}
			realized += (*e.SellPrice - h.avg) * e.Quantity
			h.qty -= e.Quantity
			if h.qty < 0 {
				h.qty = 0
			}
		}

		unrealized := 0.0
		for coinID, h := range holdings {
			unrealized += (spotPrices[coinID] - h.avg) * h.qty
		}

		points = append(points, PnLPoint{
			Date:       date,
			Realized:   round2(realized),
			Unrealized: round2(unrealized),
		})
	}
	return points
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
