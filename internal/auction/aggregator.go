// Package auction holds the sealed-bid settlement core: per-item winner
// selection and award application against in-memory team state.
package auction

import "motormarket/internal/models"

// SelectWinners groups a league's bids by item and picks exactly one winning
// bid per item: highest amount first, equal amounts broken by earliest
// placement. For bids identical on both keys the first one in input order
// wins, which keeps the outcome deterministic for a given fetch.
//
// There is no runner-up promotion: if the winner is later rejected by the
// award step the item simply goes unawarded this round.
func SelectWinners(bids []models.Bid) map[string]models.Bid {
	winners := make(map[string]models.Bid, len(bids))
	for _, bid := range bids {
		current, contested := winners[bid.ItemID]
		if !contested || beats(bid, current) {
			winners[bid.ItemID] = bid
		}
	}
	return winners
}

func beats(challenger, incumbent models.Bid) bool {
	switch challenger.Amount.Cmp(incumbent.Amount) {
	case 1:
		return true
	case -1:
		return false
	}
	return challenger.CreatedAt.Before(incumbent.CreatedAt)
}
