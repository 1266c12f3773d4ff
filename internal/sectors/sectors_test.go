package sectors

import (
	"math"
	"strings"
	"testing"

	"github.com/guregu/null/v6"
)

func TestDefault_EmbeddedCatalog(t *testing.T) {
	c := Default()

	if c.Version != "v3_full_list" {
		t.Fatalf("unexpected version %q", c.Version)
	}
	wantIDs := []string{"monetary", "precious", "industrial", "energy", "agriculture"}
	ids := c.IDs()
	if strings.Join(ids, ",") != strings.Join(wantIDs, ",") {
		t.Fatalf("ids=%v want %v", ids, wantIDs)
	}

	etfs := c.AllETFSymbols()
	want := "GLD,TLT,SLV,GDX,COPX,XME,XLE,USO,DBA,MOO"
	if strings.Join(etfs, ",") != want {
		t.Fatalf("etfs=%v want %s", etfs, want)
	}

	for _, id := range wantIDs {
		if len(c.DefaultWatchlist[id]) < 14 {
			t.Fatalf("default watchlist for %s too short: %v", id, c.DefaultWatchlist[id])
		}
	}
}

func TestByID(t *testing.T) {
	c := Default()
	s, ok := c.ByID("energy")
	if !ok || s.NameEn != "Energy" || s.LeadETF() != "XLE" {
		t.Fatalf("unexpected sector %+v ok=%v", s, ok)
	}
	if _, ok := c.ByID("crypto"); ok {
		t.Fatalf("unknown id must not resolve")
	}
	if c.Has("crypto") || !c.Has("precious") {
		t.Fatalf("Has mismatch")
	}
}

func TestDefaults_IsACopy(t *testing.T) {
	c := Default()
	d := c.Defaults()
	d["energy"][0] = "MUTATED"
	if c.DefaultWatchlist["energy"][0] == "MUTATED" {
		t.Fatalf("Defaults must not alias catalog data")
	}
}

func TestLabel(t *testing.T) {
	c := Default()
	if got := c.Label("GLD", "SPDR Gold"); got != "黄金ETF" {
		t.Fatalf("label=%q", got)
	}
	if got := c.Label("ZZZZ", "Some Corp"); got != "Some Corp" {
		t.Fatalf("label fallback=%q", got)
	}
	if got := c.Label("ZZZZ", ""); got != "ZZZZ" {
		t.Fatalf("label symbol fallback=%q", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "sectors: [::"},
		{"no sectors", "version: v1\nsectors: []"},
		{"no version", "sectors:\n  - id: a"},
		{"missing id", "version: v1\nsectors:\n  - name: x"},
		{"duplicate id", "version: v1\nsectors:\n  - id: a\n  - id: a"},
		{"unknown watchlist sector", "version: v1\nsectors:\n  - id: a\ndefault_watchlist:\n  b: [X]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load([]byte(tc.doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTemperature(t *testing.T) {
	cases := []struct {
		dd   null.Float
		want string
	}{
		{null.Float{}, Unknown},
		{null.FloatFrom(math.NaN()), Unknown},
		{null.FloatFrom(0), Hot},
		{null.FloatFrom(-4.99), Hot},
		{null.FloatFrom(-5), Warm},
		{null.FloatFrom(-15), Warm},
		{null.FloatFrom(-15.01), Cold},
		{null.FloatFrom(-40), Cold},
		{null.FloatFrom(3), Hot},
	}
	for _, c := range cases {
		if got := Temperature(c.dd); got != c.want {
			t.Fatalf("Temperature(%v)=%s want %s", c.dd, got, c.want)
		}
	}
}
