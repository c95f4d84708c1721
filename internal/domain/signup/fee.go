package signup

import (
	"math"
	"strconv"

	"github.com/riskibarqy/club-backoffice/internal/domain/league"
)

// TotalFee prices a signup. Singles pay the division cost per player.
// Doubles pay it twice plus the sanction fee for each player who has not
// paid it yet. No division means nothing is due.
func TotalFee(division *league.Division, doubles, captainPaidNDA, teammatePaidNDA bool) float64 {
	if division == nil {
		return 0
	}
	if !doubles {
		return roundCents(division.CostPerPlayer)
	}

	total := division.CostPerPlayer * 2
	if !captainPaidNDA {
		total += division.SanctionFee
	}
	if !teammatePaidNDA {
		total += division.SanctionFee
	}
	return roundCents(total)
}

// FormatAmount renders a fee with two decimals, e.g. "15.00".
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
