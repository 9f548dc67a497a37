package notes

import (
	"encoding/json"
	"testing"
)

const sampleNote = `{
  "timestamp": "2022-10-12T08:30:00Z",
  "hash": "0xabc",
  "owner": "0xowner",
  "address_from": "0xfrom",
  "address_to": "0xto",
  "network": "ethereum",
  "tag": "exchange",
  "type": "swap",
  "success": true,
  "fee": "0.001",
  "actions": [
    {
      "tag": "exchange",
      "type": "swap",
      "index": 0,
      "address_from": "0xfrom",
      "address_to": "",
      "platform": "Uniswap",
      "related_urls": ["https://etherscan.io/tx/0xabc"],
      "metadata": {
        "protocol": "Uniswap",
        "from": {"symbol": "ETH", "value_display": "1.5", "image": "https://img/eth"},
        "to": {"symbol": "USDC", "value_display": "2000.123", "decimals": 6}
      }
    }
  ]
}`

func TestNote_DecodeSelectsShapeByPair(t *testing.T) {
	var n Note
	if err := json.Unmarshal([]byte(sampleNote), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.Tag != CategoryExchange || n.Type != SubtypeSwap {
		t.Fatalf("unexpected tag/type %q/%q", n.Tag, n.Type)
	}
	if n.Timestamp.IsZero() {
		t.Fatalf("timestamp not parsed")
	}
	a, ok := n.Primary()
	if !ok {
		t.Fatalf("expected a primary action")
	}
	m, ok := a.Metadata.(SwapMeta)
	if !ok {
		t.Fatalf("metadata type = %T, want SwapMeta", a.Metadata)
	}
	if m.From.Symbol != "ETH" || m.To.Symbol != "USDC" || m.To.Decimals != 6 {
		t.Fatalf("unexpected swap legs %+v", m)
	}
	if m.Protocol != "Uniswap" {
		t.Fatalf("protocol = %q", m.Protocol)
	}
}

func TestNote_DestinationFallsBackToNote(t *testing.T) {
	var n Note
	if err := json.Unmarshal([]byte(sampleNote), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := n.Destination(); got != "0xto" {
		t.Fatalf("Destination() = %q, want note address_to", got)
	}
	if got := n.Source(); got != "0xfrom" {
		t.Fatalf("Source() = %q", got)
	}

	n.Actions[0].AddressTo = "0xaction"
	if got := n.Destination(); got != "0xaction" {
		t.Fatalf("Destination() = %q, want action address_to", got)
	}
}

func TestNote_NoActions(t *testing.T) {
	n := Note{AddressFrom: "0xa", AddressTo: "0xb"}
	if _, ok := n.Primary(); ok {
		t.Fatalf("expected no primary action")
	}
	if n.Source() != "0xa" || n.Destination() != "0xb" {
		t.Fatalf("fallbacks not applied: %q %q", n.Source(), n.Destination())
	}
}

func TestDecodeMetadata_Table(t *testing.T) {
	tests := []struct {
		name string
		c    Category
		s    Subtype
		raw  string
		want string
	}{
		{"transfer", CategoryTransaction, SubtypeTransfer, `{"symbol":"ETH","value_display":"1"}`, "notes.TokenMeta"},
		{"burn", CategoryTransaction, SubtypeBurn, `{"symbol":"X"}`, "notes.TokenMeta"},
		{"liquidity", CategoryExchange, SubtypeLiquidity, `{"protocol":"Curve","tokens":[{"symbol":"A"}]}`, "notes.LiquidityMeta"},
		{"withdraw", CategoryExchange, SubtypeWithdraw, `{"tokens":[]}`, "notes.LiquidityMeta"},
		{"social any subtype", CategorySocial, Subtype("unheard-of"), `{"body":"gm"}`, "notes.PostMeta"},
		{"comment", CategorySocial, SubtypeComment, `{"body":"nice","target":{"target_url":"https://x"}}`, "notes.PostMeta"},
		{"donation", CategoryDonation, SubtypeDonate, `{"title":"Gitcoin","token":{"symbol":"DAI"}}`, "notes.DonationMeta"},
		{"collectible trade", CategoryCollectible, SubtypeTrade, `{"name":"Punk","cost":{"symbol":"ETH"}}`, "notes.CollectibleMeta"},
		{"vote", CategoryGovernance, SubtypeVote, `{"choice":"1","proposal":{"title":"T","organization":{"name":"DAO"}}}`, "notes.VoteMeta"},
		{"propose", CategoryGovernance, SubtypePropose, `{"title":"T"}`, "notes.ProposalMeta"},
		{"unknown pair", Category("weird"), Subtype("thing"), `{"a":1}`, "notes.RawMeta"},
		{"bad shape", CategoryExchange, SubtypeSwap, `{"from":"not-an-object"}`, "notes.RawMeta"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := DecodeMetadata(tc.c, tc.s, json.RawMessage(tc.raw))
			if got := typeName(m); got != tc.want {
				t.Fatalf("DecodeMetadata(%s,%s) = %s, want %s", tc.c, tc.s, got, tc.want)
			}
		})
	}
}

func TestDecodeMetadata_EmptyIsNil(t *testing.T) {
	for _, raw := range []string{"", "null", "  "} {
		if m := DecodeMetadata(CategoryTransaction, SubtypeTransfer, json.RawMessage(raw)); m != nil {
			t.Fatalf("raw %q: expected nil metadata, got %T", raw, m)
		}
	}
}

func TestRawMeta_RoundTripsPayload(t *testing.T) {
	var a Action
	in := `{"tag":"mystery","type":"x","index":2,"address_from":"0x1","metadata":{"k":"v"}}`
	if err := json.Unmarshal([]byte(in), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	md, _ := back["metadata"].(map[string]any)
	if md["k"] != "v" {
		t.Fatalf("raw metadata not preserved: %s", b)
	}
}

func TestAction_RelatedURL(t *testing.T) {
	a := Action{RelatedURLs: []string{"a", "b"}}
	if a.RelatedURL(0) != "a" || a.RelatedURL(1) != "b" {
		t.Fatalf("unexpected related urls")
	}
	if a.RelatedURL(2) != "" || a.RelatedURL(-1) != "" {
		t.Fatalf("out of range should be empty")
	}
}

func typeName(m Metadata) string {
	switch m.(type) {
	case TokenMeta:
		return "notes.TokenMeta"
	case SwapMeta:
		return "notes.SwapMeta"
	case LiquidityMeta:
		return "notes.LiquidityMeta"
	case PostMeta:
		return "notes.PostMeta"
	case DonationMeta:
		return "notes.DonationMeta"
	case CollectibleMeta:
		return "notes.CollectibleMeta"
	case VoteMeta:
		return "notes.VoteMeta"
	case ProposalMeta:
		return "notes.ProposalMeta"
	case RawMeta:
		return "notes.RawMeta"
	case nil:
		return "nil"
	default:
		return "other"
	}
}
