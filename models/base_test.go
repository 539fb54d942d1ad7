package models

import (
	"testing"

	"bitbucket.org/ksar/surveillance_backend/config"
)

func TestUnitTreeCacheKeys(t *testing.T) {
	if got := unitTreeGenKey(7); got != "UnitTreeGen:7" {
		t.Fatalf("generation key %q", got)
	}
	if got := unitTreeCacheKey(7, 3); got != "UnitTree:7:3" {
		t.Fatalf("cache key %q", got)
	}
	if unitTreeCacheKey(7, 3) == unitTreeCacheKey(7, 4) {
		t.Fatalf("generations must not share a cache key")
	}
}

func TestUnitTreeGenerationWithoutRedis(t *testing.T) {
	config.UseRedis(nil)
	gen, err := config.GetRedisCounter(unitTreeGenKey(1))
	if err != nil || gen != 0 {
		t.Fatalf("expected generation 0 without redis, got %d %v", gen, err)
	}
	if err := RemoveUnitTreeCache(1); err != nil {
		t.Fatalf("invalidate without redis: %v", err)
	}
}

func TestNormalizeUsername(t *testing.T) {
	cases := map[string]string{
		"admin":           "admin",
		"  admin \t":      "admin",
		`o'brien & <ops>`: `o'brien & <ops>`,
		` "quoted" `:      `"quoted"`,
	}
	for in, want := range cases {
		if got := normalizeUsername(in); got != want {
			t.Fatalf("normalizeUsername(%q) = %q, want %q", in, got, want)
		}
	}
}
