// Package classify maps notes to verb phrases and render-ready descriptors
package classify

import "github.com/benya7/rss3-widget/internal/core/notes"

// verbs is the exhaustive (category, subtype) phrase table
var verbs = map[notes.Category]map[notes.Subtype]string{
	notes.CategoryTransaction: {
		notes.SubtypeTransfer: "sent to",
		notes.SubtypeMint:     "mint",
		notes.SubtypeBurn:     "burn",
		notes.SubtypeBridge:   "bridge",
	},
	notes.CategorySocial: {
		notes.SubtypePost:    "posted a note",
		notes.SubtypeRevise:  "revise",
		notes.SubtypeComment: "made a comment on",
		notes.SubtypeShare:   "shared a note",
		notes.SubtypeProfile: "profile",
	},
	notes.CategoryCollectible: {
		notes.SubtypeTransfer: "sent an NFT to",
		notes.SubtypeTrade:    "sold an NFT to",
		notes.SubtypeMint:     "minted an NFT",
		notes.SubtypeBurn:     "burn",
		notes.SubtypePoap:     "poap",
	},
	notes.CategoryDonation: {
		notes.SubtypeLaunch: "launch",
		notes.SubtypeDonate: "donated",
	},
	notes.CategoryExchange: {
		notes.SubtypeWithdraw:  "withdrew liquidity on",
		notes.SubtypeDeposit:   "deposit",
		notes.SubtypeSwap:      "swaped on",
		notes.SubtypeLiquidity: "supplied liquidity on",
	},
	notes.CategoryGovernance: {
		notes.SubtypePropose: "propose",
		notes.SubtypeVote:    "voted a proposal on",
	},
}

// categoryDefaults holds the phrase for unknown subtypes of a known category
var categoryDefaults = map[notes.Category]string{
	notes.CategorySocial: "posted a note",
}

// Verb returns the phrase for (c, s). Unknown pairs yield the category default or ""
func Verb(c notes.Category, s notes.Subtype) string {
	if bySub, ok := verbs[c]; ok {
		if v, ok := bySub[s]; ok {
			return v
		}
	}
	return categoryDefaults[c]
}
