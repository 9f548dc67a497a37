// Package notes holds the activity record model returned by the RSS3 notes API
package notes

import (
	"encoding/json"
	"time"
)

// Category is the top level classification of a note or action (the API "tag")
type Category string

// Subtype refines a category (the API "type")
type Subtype string

// Known categories
const (
	CategoryTransaction Category = "transaction"
	CategorySocial      Category = "social"
	CategoryCollectible Category = "collectible"
	CategoryDonation    Category = "donation"
	CategoryExchange    Category = "exchange"
	CategoryGovernance  Category = "governance"
)

// Known subtypes, shared across categories where the API reuses a name
const (
	SubtypeTransfer  Subtype = "transfer"
	SubtypeMint      Subtype = "mint"
	SubtypeBurn      Subtype = "burn"
	SubtypeBridge    Subtype = "bridge"
	SubtypePost      Subtype = "post"
	SubtypeRevise    Subtype = "revise"
	SubtypeComment   Subtype = "comment"
	SubtypeShare     Subtype = "share"
	SubtypeProfile   Subtype = "profile"
	SubtypeTrade     Subtype = "trade"
	SubtypePoap      Subtype = "poap"
	SubtypeLaunch    Subtype = "launch"
	SubtypeDonate    Subtype = "donate"
	SubtypeWithdraw  Subtype = "withdraw"
	SubtypeDeposit   Subtype = "deposit"
	SubtypeSwap      Subtype = "swap"
	SubtypeLiquidity Subtype = "liquidity"
	SubtypePropose   Subtype = "propose"
	SubtypeVote      Subtype = "vote"
)

// Note is one aggregated feed entry. Actions[0] is the primary action
type Note struct {
	Actions     []Action  `json:"actions"`
	AddressFrom string    `json:"address_from"`
	AddressTo   string    `json:"address_to,omitempty"`
	Fee         string    `json:"fee,omitempty"`
	Hash        string    `json:"hash"`
	Network     string    `json:"network"`
	Owner       string    `json:"owner,omitempty"`
	Success     bool      `json:"success"`
	Tag         Category  `json:"tag"`
	Type        Subtype   `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
}

// Primary returns the first action, ok=false when the note carries none
func (n Note) Primary() (Action, bool) {
	if len(n.Actions) == 0 {
		return Action{}, false
	}
	return n.Actions[0], true
}

// Source returns the primary action source, falling back to the note source
func (n Note) Source() string {
	if a, ok := n.Primary(); ok && a.AddressFrom != "" {
		return a.AddressFrom
	}
	return n.AddressFrom
}

// Destination returns the primary action destination, falling back to the note destination
func (n Note) Destination() string {
	if a, ok := n.Primary(); ok && a.AddressTo != "" {
		return a.AddressTo
	}
	return n.AddressTo
}

// Action is one atomic effect inside a note
type Action struct {
	AddressFrom string   `json:"address_from"`
	AddressTo   string   `json:"address_to,omitempty"`
	Index       int      `json:"index"`
	Metadata    Metadata `json:"metadata,omitempty"`
	Platform    string   `json:"platform,omitempty"`
	RelatedURLs []string `json:"related_urls,omitempty"`
	Tag         Category `json:"tag"`
	Type        Subtype  `json:"type"`
}

// RelatedURL returns the i-th related link or "" when absent
func (a Action) RelatedURL(i int) string {
	if i < 0 || i >= len(a.RelatedURLs) {
		return ""
	}
	return a.RelatedURLs[i]
}

// wireAction mirrors Action with metadata left undecoded
type wireAction struct {
	AddressFrom string          `json:"address_from"`
	AddressTo   string          `json:"address_to"`
	Index       int             `json:"index"`
	Metadata    json.RawMessage `json:"metadata"`
	Platform    string          `json:"platform"`
	RelatedURLs []string        `json:"related_urls"`
	Tag         Category        `json:"tag"`
	Type        Subtype         `json:"type"`
}

// UnmarshalJSON decodes the action and picks the metadata shape from (tag, type)
func (a *Action) UnmarshalJSON(b []byte) error {
	var w wireAction
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*a = Action{
		AddressFrom: w.AddressFrom,
		AddressTo:   w.AddressTo,
		Index:       w.Index,
		Platform:    w.Platform,
		RelatedURLs: w.RelatedURLs,
		Tag:         w.Tag,
		Type:        w.Type,
	}
	a.Metadata = DecodeMetadata(w.Tag, w.Type, w.Metadata)
	return nil
}
