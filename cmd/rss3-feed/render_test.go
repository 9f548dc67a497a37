package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/benya7/rss3-widget/internal/core/classify"
	"github.com/benya7/rss3-widget/internal/core/format"
	"github.com/benya7/rss3-widget/internal/core/notes"
	"github.com/benya7/rss3-widget/internal/platform/testkit"
	"github.com/benya7/rss3-widget/internal/services/feed/domain"
)

func describe(t *testing.T, raw string, names format.Names) classify.Descriptor {
	t.Helper()
	var n notes.Note
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatalf("decode note: %v", err)
	}
	return classify.Describe(n, names)
}

func TestWriteState_Text(t *testing.T) {
	transfer := describe(t, `{
	  "address_from":"0x1111111111aaaa","address_to":"0x2222222222bbbb","tag":"transaction","type":"transfer",
	  "actions":[{"tag":"transaction","type":"transfer","address_from":"0x1111111111aaaa",
	    "metadata":{"symbol":"USDC","value_display":"12.5"}}]}`,
		format.Names{"0x1111111111aaaa": "alice.eth"})

	st := domain.State{
		HasMore: true,
		Items:   []domain.Item{{Network: "polygon", When: "3 days ago", Descriptor: transfer}},
	}
	var buf bytes.Buffer
	if err := writeState(&buf, "text", st); err != nil {
		t.Fatalf("writeState: %v", err)
	}
	out := buf.String()
	testkit.MustContain(t, out, "3 days ago")
	testkit.MustContain(t, out, "polygon")
	testkit.MustContain(t, out, "alice.eth sent to 0x2222...bbbb (12.5 USDC)")
	testkit.MustContain(t, out, "more available")
}

func TestSummary_Sentences(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "nft transfer",
			raw: `{"address_from":"0x1111111111aaaa","address_to":"0x2222222222bbbb","tag":"collectible","type":"transfer",
			  "actions":[{"tag":"collectible","type":"transfer","address_from":"0x1111111111aaaa","address_to":"0x2222222222bbbb",
			    "metadata":{"name":"Punk #1"}}]}`,
			want: "0x1111...aaaa sent an NFT to 0x2222...bbbb",
		},
		{
			name: "comment",
			raw: `{"address_from":"0x1111111111aaaa","tag":"social","type":"comment",
			  "actions":[{"tag":"social","type":"comment","address_from":"0x1111111111aaaa","platform":"Crossbell",
			    "metadata":{"body":"nice"}}]}`,
			want: `0x1111...aaaa made a comment on Crossbell "nice"`,
		},
	}
	for _, c := range cases {
		got := summary(domain.Item{Descriptor: describe(t, c.raw, nil)})
		if got != c.want {
			t.Errorf("%s: summary = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestWriteState_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := writeState(&buf, "text", domain.State{}); err != nil {
		t.Fatalf("writeState: %v", err)
	}
	if buf.String() != "no activity\n" {
		t.Fatalf("out = %q", buf.String())
	}
}

func TestEncode_Unknown(t *testing.T) {
	var buf bytes.Buffer
	if err := encode(&buf, "toml", struct{}{}); err == nil {
		t.Fatal("expected error")
	}
}
