package classify

import (
	"github.com/benya7/rss3-widget/internal/core/format"
	"github.com/benya7/rss3-widget/internal/core/notes"
)

// Kind is the presentation shape chosen for a note
type Kind string

// Presentation shapes. KindUnsupported is the default arm for every other pair
const (
	KindTransfer        Kind = "transfer"
	KindMint            Kind = "mint"
	KindBurn            Kind = "burn"
	KindSwap            Kind = "swap"
	KindLiquidity       Kind = "liquidity"
	KindSocial          Kind = "social"
	KindDonation        Kind = "donation"
	KindCollectible     Kind = "collectible"
	KindCollectibleMint Kind = "collectible_mint"
	KindVote            Kind = "vote"
	KindUnsupported     Kind = "unsupported"
)

// donationAmountWidth is how many characters of a donation amount are shown
const donationAmountWidth = 5

// Party is an address with its display form
type Party struct {
	Address string `json:"address"`
	Display string `json:"display"`
}

// TokenView is one token leg
type TokenView struct {
	Image  string `json:"image,omitempty"`
	Amount string `json:"amount,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Link   string `json:"link,omitempty"`
}

// SwapView holds both legs of a swap
type SwapView struct {
	From TokenView `json:"from"`
	To   TokenView `json:"to"`
}

// MediaView is a displayable attachment
type MediaView struct {
	URL      string    `json:"url"`
	MimeType string    `json:"mime_type,omitempty"`
	Kind     MediaKind `json:"kind"`
}

// PostView is the social shape
type PostView struct {
	Text       string     `json:"text,omitempty"`
	TargetBody string     `json:"target_body,omitempty"`
	Media      *MediaView `json:"media,omitempty"`
}

// DonationView is the donation shape
type DonationView struct {
	Amount      string `json:"amount,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// CollectibleView is one NFT movement
type CollectibleView struct {
	From        Party      `json:"from"`
	To          *Party     `json:"to,omitempty"`
	Cost        *TokenView `json:"cost,omitempty"`
	Media       *MediaView `json:"media,omitempty"`
	Collection  string     `json:"collection,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Link        string     `json:"link,omitempty"`
}

// VoteView is the governance vote shape
type VoteView struct {
	Organization string `json:"organization,omitempty"`
	Title        string `json:"title,omitempty"`
	Body         string `json:"body,omitempty"`
}

// Descriptor is the uniform render-ready form of a note
type Descriptor struct {
	Kind     Kind           `json:"kind"`
	Category notes.Category `json:"category"`
	Subtype  notes.Subtype  `json:"subtype"`
	Verb     string         `json:"verb"`

	Actor  Party  `json:"actor"`
	Target *Party `json:"target,omitempty"`
	// Subject is the name printed after the verb (protocol, platform, organization)
	Subject string `json:"subject,omitempty"`
	Link    string `json:"link,omitempty"`

	Tokens       []TokenView       `json:"tokens,omitempty"`
	Swap         *SwapView         `json:"swap,omitempty"`
	Post         *PostView         `json:"post,omitempty"`
	Donation     *DonationView     `json:"donation,omitempty"`
	Collectibles []CollectibleView `json:"collectibles,omitempty"`
	Vote         *VoteView         `json:"vote,omitempty"`
}

// MediaURLs lists every attachment that still needs a media type probe
func (d Descriptor) MediaURLs() []string {
	var out []string
	if d.Post != nil && d.Post.Media != nil && d.Post.Media.Kind == MediaLoading {
		out = append(out, d.Post.Media.URL)
	}
	for _, c := range d.Collectibles {
		if c.Media != nil && c.Media.Kind == MediaLoading {
			out = append(out, c.Media.URL)
		}
	}
	return out
}

// ApplyMedia sets probed kinds on pending attachments
func (d *Descriptor) ApplyMedia(kindOf func(url string) MediaKind) {
	if d.Post != nil && d.Post.Media != nil && d.Post.Media.Kind == MediaLoading {
		d.Post.Media.Kind = kindOf(d.Post.Media.URL)
	}
	for i := range d.Collectibles {
		m := d.Collectibles[i].Media
		if m != nil && m.Kind == MediaLoading {
			m.Kind = kindOf(m.URL)
		}
	}
}

type describer func(n notes.Note, primary notes.Action, names format.NameLookup) Descriptor

type shapeKey struct {
	c notes.Category
	s notes.Subtype
}

// shapes is the closed dispatch table. Social matches any subtype via socialShape
var shapes = map[shapeKey]describer{
	{notes.CategoryTransaction, notes.SubtypeTransfer}: describeTransfer,
	{notes.CategoryTransaction, notes.SubtypeMint}:     describeMint,
	{notes.CategoryTransaction, notes.SubtypeBurn}:     describeBurn,
	{notes.CategoryExchange, notes.SubtypeSwap}:        describeSwap,
	{notes.CategoryExchange, notes.SubtypeLiquidity}:   describeLiquidity,
	{notes.CategoryExchange, notes.SubtypeWithdraw}:    describeLiquidity,
	{notes.CategoryCollectible, notes.SubtypeTransfer}: describeCollectibles,
	{notes.CategoryCollectible, notes.SubtypeTrade}:    describeCollectibles,
	{notes.CategoryCollectible, notes.SubtypeMint}:     describeCollectibleMint,
	{notes.CategoryGovernance, notes.SubtypeVote}:      describeVote,
}

// categoryShapes cover whole categories
var categoryShapes = map[notes.Category]describer{
	notes.CategorySocial:   describeSocial,
	notes.CategoryDonation: describeDonation,
}

// Describe classifies a note by its primary action. It never fails: notes without
// actions, unknown pairs and mismatched metadata all yield KindUnsupported
func Describe(n notes.Note, names format.NameLookup) Descriptor {
	primary, ok := n.Primary()
	if !ok {
		return Descriptor{
			Kind:     KindUnsupported,
			Category: n.Tag,
			Subtype:  n.Type,
			Verb:     Verb(n.Tag, n.Type),
			Actor:    party(n.AddressFrom, names),
		}
	}

	fn, ok := shapes[shapeKey{primary.Tag, primary.Type}]
	if !ok {
		fn, ok = categoryShapes[primary.Tag]
	}
	if !ok {
		fn = describeUnsupported
	}
	d := fn(n, primary, names)
	d.Category = primary.Tag
	d.Subtype = primary.Type
	d.Verb = Verb(primary.Tag, primary.Type)
	return d
}

func describeUnsupported(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	return Descriptor{Kind: KindUnsupported, Actor: party(source(n, a), names)}
}

func describeTransfer(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	d := Descriptor{
		Kind:   KindTransfer,
		Actor:  party(source(n, a), names),
		Target: partyPtr(n.Destination(), names),
		Link:   a.RelatedURL(0),
	}
	if m, ok := a.Metadata.(notes.TokenMeta); ok {
		d.Tokens = []TokenView{tokenView(m.Token, "")}
	}
	return d
}

func describeMint(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	d := Descriptor{
		Kind:  KindMint,
		Actor: party(source(n, a), names),
		Link:  a.RelatedURL(0),
	}
	if m, ok := a.Metadata.(notes.TokenMeta); ok {
		d.Tokens = []TokenView{tokenView(m.Token, "")}
	}
	return d
}

func describeBurn(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	d := Descriptor{Kind: KindBurn, Actor: party(source(n, a), names)}
	for _, act := range n.Actions {
		if act.Type != notes.SubtypeBurn {
			continue
		}
		tv := TokenView{Link: act.RelatedURL(0)}
		if m, ok := act.Metadata.(notes.TokenMeta); ok {
			tv = tokenView(m.Token, act.RelatedURL(0))
		}
		d.Tokens = append(d.Tokens, tv)
	}
	return d
}

func describeSwap(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	d := Descriptor{
		Kind:  KindSwap,
		Actor: party(source(n, a), names),
		Link:  a.RelatedURL(0),
	}
	if m, ok := a.Metadata.(notes.SwapMeta); ok {
		d.Subject = m.Protocol
		d.Swap = &SwapView{From: tokenView(m.From, ""), To: tokenView(m.To, "")}
	}
	return d
}

func describeLiquidity(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	d := Descriptor{
		Kind:  KindLiquidity,
		Actor: party(source(n, a), names),
		Link:  a.RelatedURL(0),
	}
	if m, ok := a.Metadata.(notes.LiquidityMeta); ok {
		d.Subject = m.Protocol
		for _, t := range m.Tokens {
			d.Tokens = append(d.Tokens, tokenView(t, ""))
		}
	}
	return d
}

func describeSocial(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	d := Descriptor{
		Kind:    KindSocial,
		Actor:   party(source(n, a), names),
		Subject: a.Platform,
		Post:    &PostView{},
	}
	m, _ := a.Metadata.(notes.PostMeta)

	if a.Type == notes.SubtypePost {
		if len(a.RelatedURLs) > 1 {
			d.Link = a.RelatedURLs[1]
		} else {
			d.Link = a.RelatedURL(0)
		}
	} else if m.Target != nil {
		d.Link = m.Target.TargetURL
	}

	d.Post.Text = m.Title
	if d.Post.Text == "" {
		d.Post.Text = m.Body
	}
	if m.Target != nil {
		d.Post.TargetBody = m.Target.Body
		if len(m.Target.Media) > 0 {
			d.Post.Media = mediaView(m.Target.Media[0].Address, m.Target.Media[0].MimeType)
		}
	}
	return d
}

func describeDonation(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	d := Descriptor{
		Kind:  KindDonation,
		Actor: party(source(n, a), names),
		Link:  a.RelatedURL(1),
	}
	if m, ok := a.Metadata.(notes.DonationMeta); ok {
		d.Subject = m.Platform
		d.Donation = &DonationView{
			Amount:      format.Truncate(m.Token.ValueDisplay, donationAmountWidth),
			Symbol:      m.Token.Symbol,
			Logo:        m.Logo,
			Title:       m.Title,
			Description: m.Description,
		}
	}
	return d
}

func describeCollectibles(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	d := Descriptor{
		Kind:   KindCollectible,
		Actor:  party(source(n, a), names),
		Target: partyPtr(n.Destination(), names),
		Link:   a.RelatedURL(1),
	}
	for _, act := range n.Actions {
		if act.Tag != notes.CategoryCollectible {
			continue
		}
		cv := CollectibleView{
			From: party(act.AddressFrom, names),
			To:   partyPtr(act.AddressTo, names),
			Link: act.RelatedURL(1),
		}
		if m, ok := act.Metadata.(notes.CollectibleMeta); ok {
			fillCollectible(&cv, m)
			if act.Type == notes.SubtypeTrade && m.Cost != nil {
				cost := tokenView(*m.Cost, "")
				cv.Cost = &cost
			}
		}
		d.Collectibles = append(d.Collectibles, cv)
	}
	return d
}

func describeCollectibleMint(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	// the minter is the receiving address
	subject := a.AddressTo
	if subject == "" {
		subject = n.Destination()
	}
	cv := CollectibleView{From: party(subject, names), Link: a.RelatedURL(1)}
	if m, ok := a.Metadata.(notes.CollectibleMeta); ok {
		fillCollectible(&cv, m)
	}
	return Descriptor{
		Kind:         KindCollectibleMint,
		Actor:        party(subject, names),
		Link:         cv.Link,
		Collectibles: []CollectibleView{cv},
	}
}

func describeVote(n notes.Note, a notes.Action, names format.NameLookup) Descriptor {
	d := Descriptor{
		Kind:  KindVote,
		Actor: party(source(n, a), names),
		Link:  a.RelatedURL(0),
		Vote:  &VoteView{},
	}
	if m, ok := a.Metadata.(notes.VoteMeta); ok && m.Proposal != nil {
		d.Subject = m.Proposal.Organization.Name
		d.Vote = &VoteView{
			Organization: m.Proposal.Organization.Name,
			Title:        m.Proposal.Title,
			Body:         m.Proposal.Body,
		}
	}
	return d
}

func fillCollectible(cv *CollectibleView, m notes.CollectibleMeta) {
	cv.Collection = m.Collection
	cv.Name = m.Name
	cv.Description = m.Description
	if m.Image != "" {
		cv.Media = mediaView(m.Image, "")
	}
}

func source(n notes.Note, a notes.Action) string {
	if a.AddressFrom != "" {
		return a.AddressFrom
	}
	return n.AddressFrom
}

func party(addr string, names format.NameLookup) Party {
	return Party{Address: addr, Display: format.Account(addr, names)}
}

func partyPtr(addr string, names format.NameLookup) *Party {
	if addr == "" {
		return nil
	}
	p := party(addr, names)
	return &p
}

func tokenView(t notes.Token, link string) TokenView {
	return TokenView{
		Image:  IPFSGateway(t.Image),
		Amount: format.Value(t.ValueDisplay),
		Symbol: t.Symbol,
		Link:   link,
	}
}

// mediaView rewrites ipfs URLs and classifies by mime type when the payload carries one
func mediaView(addr, mime string) *MediaView {
	if addr == "" {
		return nil
	}
	kind := MediaLoading
	if mime != "" {
		kind = KindFromContentType(mime)
	}
	return &MediaView{URL: IPFSGateway(addr), MimeType: mime, Kind: kind}
}
