package notes

import (
	"bytes"
	"encoding/json"
)

// Metadata is the per action payload. The concrete type is selected by the
// action's (category, subtype) pair, never by the payload's shape
type Metadata interface {
	metadata()
}

// Token is a fungible token amount
type Token struct {
	Decimals     int    `json:"decimals,omitempty"`
	Image        string `json:"image,omitempty"`
	Name         string `json:"name,omitempty"`
	Standard     string `json:"standard,omitempty"`
	Symbol       string `json:"symbol,omitempty"`
	Value        string `json:"value,omitempty"`
	ValueDisplay string `json:"value_display,omitempty"`
}

// TokenMeta backs transaction transfer, mint, burn, bridge and exchange deposit
type TokenMeta struct {
	Token
}

// SwapMeta backs exchange swap
type SwapMeta struct {
	From     Token  `json:"from"`
	To       Token  `json:"to"`
	Protocol string `json:"protocol,omitempty"`
}

// LiquidityMeta backs exchange liquidity and withdraw
type LiquidityMeta struct {
	Action   string  `json:"action,omitempty"`
	Protocol string  `json:"protocol,omitempty"`
	Tokens   []Token `json:"tokens,omitempty"`
}

// Media is one attachment on a social post
type Media struct {
	Address  string `json:"address"`
	MimeType string `json:"mime_type,omitempty"`
}

// PostMeta backs every social subtype. Target is the post being commented on or shared
type PostMeta struct {
	Author         []string  `json:"author,omitempty"`
	Title          string    `json:"title,omitempty"`
	Body           string    `json:"body,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	Media          []Media   `json:"media,omitempty"`
	TargetURL      string    `json:"target_url,omitempty"`
	TypeOnPlatform []string  `json:"type_on_platform,omitempty"`
	Target         *PostMeta `json:"target,omitempty"`
}

// DonationMeta backs donation launch and donate
type DonationMeta struct {
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Title       string `json:"title,omitempty"`
	Token       Token  `json:"token"`
}

// CollectibleMeta backs every collectible subtype
type CollectibleMeta struct {
	Attributes      []json.RawMessage `json:"attributes,omitempty"`
	Collection      string            `json:"collection,omitempty"`
	ContractAddress string            `json:"contract_address,omitempty"`
	Cost            *Token            `json:"cost,omitempty"`
	Description     string            `json:"description,omitempty"`
	ID              string            `json:"id,omitempty"`
	Image           string            `json:"image,omitempty"`
	Name            string            `json:"name,omitempty"`
	Standard        string            `json:"standard,omitempty"`
	Symbol          string            `json:"symbol,omitempty"`
	Value           string            `json:"value,omitempty"`
	ValueDisplay    string            `json:"value_display,omitempty"`
}

// Organization is the DAO a proposal belongs to
type Organization struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// ProposalMeta backs governance propose and is nested in votes
type ProposalMeta struct {
	Body         string       `json:"body,omitempty"`
	EndAt        string       `json:"end_at,omitempty"`
	ID           string       `json:"id,omitempty"`
	Options      []string     `json:"options,omitempty"`
	Organization Organization `json:"organization"`
	StartAt      string       `json:"start_at,omitempty"`
	Title        string       `json:"title,omitempty"`
}

// VoteMeta backs governance vote
type VoteMeta struct {
	Choice         json.RawMessage `json:"choice,omitempty"`
	Proposal       *ProposalMeta   `json:"proposal,omitempty"`
	TypeOnPlatform []string        `json:"type_on_platform,omitempty"`
}

// RawMeta keeps payloads for pairs with no known shape, or that failed to decode
type RawMeta struct {
	Raw json.RawMessage
}

// MarshalJSON emits the original payload
func (m RawMeta) MarshalJSON() ([]byte, error) {
	if len(m.Raw) == 0 {
		return []byte("null"), nil
	}
	return m.Raw, nil
}

func (TokenMeta) metadata()       {}
func (SwapMeta) metadata()        {}
func (LiquidityMeta) metadata()   {}
func (PostMeta) metadata()        {}
func (DonationMeta) metadata()    {}
func (CollectibleMeta) metadata() {}
func (ProposalMeta) metadata()    {}
func (VoteMeta) metadata()        {}
func (RawMeta) metadata()         {}

type pair struct {
	c Category
	s Subtype
}

// decoders maps exact (category, subtype) pairs to a shape
var decoders = map[pair]func([]byte) (Metadata, error){
	{CategoryTransaction, SubtypeTransfer}: decodeAs[TokenMeta],
	{CategoryTransaction, SubtypeMint}:     decodeAs[TokenMeta],
	{CategoryTransaction, SubtypeBurn}:     decodeAs[TokenMeta],
	{CategoryTransaction, SubtypeBridge}:   decodeAs[TokenMeta],

	{CategoryExchange, SubtypeSwap}:      decodeAs[SwapMeta],
	{CategoryExchange, SubtypeLiquidity}: decodeAs[LiquidityMeta],
	{CategoryExchange, SubtypeWithdraw}:  decodeAs[LiquidityMeta],
	{CategoryExchange, SubtypeDeposit}:   decodeAs[TokenMeta],

	{CategoryDonation, SubtypeDonate}: decodeAs[DonationMeta],
	{CategoryDonation, SubtypeLaunch}: decodeAs[DonationMeta],

	{CategoryGovernance, SubtypeVote}:    decodeAs[VoteMeta],
	{CategoryGovernance, SubtypePropose}: decodeAs[ProposalMeta],
}

// categoryDecoders covers categories whose every subtype shares one shape
var categoryDecoders = map[Category]func([]byte) (Metadata, error){
	CategorySocial:      decodeAs[PostMeta],
	CategoryCollectible: decodeAs[CollectibleMeta],
}

func decodeAs[T Metadata](b []byte) (Metadata, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeMetadata turns a raw payload into the shape owned by (c, s).
// Empty payloads yield nil; unknown pairs and undecodable payloads yield RawMeta
func DecodeMetadata(c Category, s Subtype, raw json.RawMessage) Metadata {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	dec, ok := decoders[pair{c, s}]
	if !ok {
		dec, ok = categoryDecoders[c]
	}
	if !ok {
		return RawMeta{Raw: append(json.RawMessage(nil), trimmed...)}
	}
	m, err := dec(trimmed)
	if err != nil {
		return RawMeta{Raw: append(json.RawMessage(nil), trimmed...)}
	}
	return m
}
