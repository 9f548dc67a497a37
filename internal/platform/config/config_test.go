package config

import (
	"reflect"
	"testing"
	"time"
)

func TestPrefix_Key(t *testing.T) {
	api := New().Prefix("FEED_").Prefix("API_")
	if got := api.Key("ADDR"); got != "FEED_API_ADDR" {
		t.Fatalf("Key = %q", got)
	}
}

func TestMayReaders(t *testing.T) {
	c := New().Prefix("CFGTEST_")
	t.Setenv("CFGTEST_BASE_URL", "  https://pregod.rss3.dev/v1 ")
	t.Setenv("CFGTEST_LIMIT", "25")
	t.Setenv("CFGTEST_RPS", "2.5")
	t.Setenv("CFGTEST_DEBUG", "true")
	t.Setenv("CFGTEST_TIMEOUT", "750ms")
	t.Setenv("CFGTEST_BAD_INT", "ten")
	t.Setenv("CFGTEST_BAD_DUR", "soon")
	t.Setenv("CFGTEST_BAD_BOOL", "maybe")
	t.Setenv("CFGTEST_BAD_FLOAT", "fast")

	if got := c.MayString("BASE_URL", ""); got != "https://pregod.rss3.dev/v1" {
		t.Errorf("MayString = %q", got)
	}
	if got := c.MayString("UNSET", "def"); got != "def" {
		t.Errorf("MayString unset = %q", got)
	}
	if got := c.MayInt("LIMIT", 10); got != 25 {
		t.Errorf("MayInt = %d", got)
	}
	if got := c.MayInt("BAD_INT", 10); got != 10 {
		t.Errorf("MayInt invalid = %d", got)
	}
	if got := c.MayFloat64("RPS", 1); got != 2.5 {
		t.Errorf("MayFloat64 = %v", got)
	}
	if got := c.MayFloat64("BAD_FLOAT", 1); got != 1 {
		t.Errorf("MayFloat64 invalid = %v", got)
	}
	if !c.MayBool("DEBUG", false) || c.MayBool("BAD_BOOL", false) {
		t.Error("MayBool mismatch")
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 750*time.Millisecond {
		t.Errorf("MayDuration = %v", got)
	}
	if got := c.MayDuration("BAD_DUR", time.Second); got != time.Second {
		t.Errorf("MayDuration invalid = %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CFGTEST_")
	def := []string{"vitalik.eth"}
	cases := []struct {
		val  string
		want []string
	}{
		{"", def},
		{" , ,", def},
		{"0xabc, diygod.csb ,,ethereum", []string{"0xabc", "diygod.csb", "ethereum"}},
	}
	for _, tc := range cases {
		t.Setenv("CFGTEST_ACCOUNTS", tc.val)
		if got := c.MayCSV("ACCOUNTS", def); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("MayCSV(%q) = %v", tc.val, got)
		}
	}
}
