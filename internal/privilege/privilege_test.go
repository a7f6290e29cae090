package privilege

import "testing"

func TestBytesRoundTrip(t *testing.T) {
	s := Of(UserAuthenticate, UserViewPrivateProfile, Privilege(100))
	got, err := FromBytes(s.Bytes())
	if err != nil {
		t.Fatalf("from bytes: %v", err)
	}
	if got != s {
		t.Fatalf("round trip mismatch: %v != %v", got, s)
	}
	if len(s.Bytes()) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(s.Bytes()))
	}
	if !got.Has(Privilege(100)) {
		t.Fatalf("high bit lost")
	}
}

func TestLittleEndianLayout(t *testing.T) {
	b := Of(UserAuthenticate).Bytes()
	if b[0] != 1 {
		t.Fatalf("bit 0 should be the lowest bit of byte 0, got %v", b)
	}
	for _, x := range b[1:] {
		if x != 0 {
			t.Fatalf("unexpected bits: %v", b)
		}
	}
}

func TestMaskAndRestore(t *testing.T) {
	s := Default.Mask(Restricted)
	if s.Has(UserProfilePublic) || s.Has(MessagesSend) {
		t.Fatalf("restriction left bits: %v", s)
	}
	if !s.Has(UserAuthenticate) {
		t.Fatalf("restriction removed authenticate")
	}
	if s.Union(Restricted) != Default.Union(Restricted) {
		t.Fatalf("restore mismatch")
	}
}

func TestScanShortInput(t *testing.T) {
	var s Set
	if err := s.Scan([]byte{0x03}); err != nil {
		t.Fatal(err)
	}
	if !s.Has(UserAuthenticate) || !s.Has(UserProfilePublic) || s.Has(UserStarLeaderboardPublic) {
		t.Fatalf("unexpected set %v", s)
	}
	if err := s.Scan(make([]byte, 17)); err == nil {
		t.Fatalf("expected error for 17 bytes")
	}
}

func TestParse(t *testing.T) {
	p, ok := Parse(" level_rate_stars ")
	if !ok || p != LevelRateStars {
		t.Fatalf("Parse = %v, %v", p, ok)
	}
	if _, ok := Parse("NOT_A_PRIVILEGE"); ok {
		t.Fatal("unknown name parsed")
	}
}
