package codec

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gdps-go/gdps/internal/ports"
)

func TestEncodeSortsKeys(t *testing.T) {
	r := Record{}.Set(3, "c").Set(1, "a").SetInt(2, 7)
	if got := Encode(r, ""); got != "1:a:2:7:3:c" {
		t.Fatalf("Encode = %q", got)
	}
	if got := Encode(r, SongSep); got != "1~|~a~|~2~|~7~|~3~|~c" {
		t.Fatalf("Encode song = %q", got)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	u := &ports.User{ID: 12, Username: "Player", Stars: 40, CommentColour: "0,0,0"}
	shapes := []Record{
		Profile(u, ProfileView{Rank: 3, Now: time.Now()}),
		ScoreEntry(u, 1),
		RelationshipEntry(u, true),
	}
	for i, r := range shapes {
		got, err := DecodeRecord(Encode(r, Sep), Sep)
		if err != nil {
			t.Fatalf("shape %d: %v", i, err)
		}
		if len(got) != len(r) {
			t.Fatalf("shape %d: %d keys, want %d", i, len(got), len(r))
		}
		for k, v := range r {
			if got[k] != v {
				t.Fatalf("shape %d key %d: %q, want %q", i, k, got[k], v)
			}
		}
	}
}

func TestDecodeOddTokens(t *testing.T) {
	if _, err := DecodeRecord("1:a:2", Sep); !errors.Is(err, ErrOddTokens) {
		t.Fatalf("err = %v, want ErrOddTokens", err)
	}
}

func TestDecodeCasts(t *testing.T) {
	m, err := Decode("1:10:2:20", Sep, strconv.Atoi, strconv.Atoi)
	if err != nil {
		t.Fatal(err)
	}
	if m[1] != 10 || m[2] != 20 {
		t.Fatalf("decoded %v", m)
	}
	if _, err := Decode("x:1", Sep, strconv.Atoi, strconv.Atoi); err == nil {
		t.Fatal("expected key cast error")
	}
}

func TestEncodeList(t *testing.T) {
	got := EncodeList([]Record{{1: "a"}, {1: "b"}}, Sep, ListSep)
	if got != "1:a|1:b" {
		t.Fatalf("EncodeList = %q", got)
	}
}

func TestXORInvolution(t *testing.T) {
	inputs := []string{"", "a", "hello world", strings.Repeat("\x00\xff", 33)}
	keys := []string{KeyGJP, KeyMessage, KeyLevelPassword, KeyChest, KeyQuest, "k"}
	for _, in := range inputs {
		for _, k := range keys {
			if got := string(XOR(XOR([]byte(in), k), k)); got != in {
				t.Fatalf("xor(xor(%q, %q)) = %q", in, k, got)
			}
		}
	}
}

func TestBase64Tolerance(t *testing.T) {
	for _, in := range []string{"SGVsbG8=", "SGVsbG8", " SGVsbG8= "} {
		got, err := DecodeBase64String(in)
		if err != nil || got != "Hello" {
			t.Fatalf("DecodeBase64String(%q) = %q, %v", in, got, err)
		}
	}
	if EncodeBase64String("Hello") != "SGVsbG8=" {
		t.Fatal("unexpected padding")
	}
}

func TestGJPRoundTrip(t *testing.T) {
	enc := EncodeGJP("secret1")
	got, err := DecodeGJP(enc)
	if err != nil || got != "secret1" {
		t.Fatalf("DecodeGJP = %q, %v", got, err)
	}
}

func TestGJP2(t *testing.T) {
	got := GJP2("secret1")
	if got != SHA1Hex("secret1mI29fmAnxgTs") {
		t.Fatalf("GJP2 = %s", got)
	}
	if !IsGJP2(got) || IsGJP2("secret1") {
		t.Fatal("IsGJP2 misclassified")
	}
}

func TestLevelDataHashSamples(t *testing.T) {
	short := "abc"
	if LevelDataHash(short) != SHA1Hex(short+ProtocolPepper) {
		t.Fatal("short body should hash whole")
	}
	long := strings.Repeat("0123456789", 10)
	var sampled strings.Builder
	for i := 0; i < 40; i++ {
		sampled.WriteByte(long[i*(len(long)/40)])
	}
	if LevelDataHash(long) != SHA1Hex(sampled.String()+ProtocolPepper) {
		t.Fatal("long body hash mismatch")
	}
}

func TestSearchHash(t *testing.T) {
	got := SearchHash([]SearchHashEntry{{ID: 128, Stars: 5, CoinsVerified: true}, {ID: 7, Stars: 0}})
	if got != SHA1Hex("18517700"+ProtocolPepper) {
		t.Fatalf("SearchHash = %s", got)
	}
}

func TestChestEnvelope(t *testing.T) {
	prefix := RandomPrefix()
	if len(prefix) != ChestPrefixLen {
		t.Fatalf("prefix %q", prefix)
	}
	enc, body := EncodeChest(prefix, "1:2:3")
	if !strings.HasPrefix(body, prefix+enc+"|") {
		t.Fatalf("body %q", body)
	}
	if !strings.HasSuffix(body, SHA1Hex(enc+ProtocolPepper)) {
		t.Fatal("security suffix mismatch")
	}
	plain, err := DecodeCheck(prefix+enc, KeyChest)
	if err != nil || plain != "1:2:3" {
		t.Fatalf("DecodeCheck = %q, %v", plain, err)
	}
	if _, err := DecodeCheck("abc", KeyChest); err == nil {
		t.Fatal("short check accepted")
	}
}

func TestChestRewards(t *testing.T) {
	tests := []struct {
		name string
		c    ports.DailyChest
		want string
	}{
		{"empty", ports.DailyChest{Mana: 20, Diamonds: 1}, "20,1,0,0"},
		{"key only", ports.DailyChest{Mana: 20, Diamonds: 1, DemonKeys: 1}, "20,1,6,0"},
		{"two shards", ports.DailyChest{Mana: 200, Diamonds: 5, FireShards: 1, LavaShards: 1}, "200,5,1,5"},
		{"same shard twice", ports.DailyChest{Mana: 100, Diamonds: 4, IceShards: 2}, "100,4,2,2"},
		{"key before shards", ports.DailyChest{Mana: 200, Diamonds: 5, FireShards: 1, LavaShards: 1, DemonKeys: 1}, "200,5,6,1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChestRewards(&tt.c); got != tt.want {
				t.Fatalf("ChestRewards = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFullLevelKeys(t *testing.T) {
	song := 3
	l := &ports.Level{ID: 9, Name: "Test", OfficialSongID: &song, Length: ports.LengthMedium, CopyPassword: 0}
	r := FullLevel(l, LevelView{Data: "DATA", Now: time.Now()})
	if r[2] != "Test" || r[4] != "DATA" || r[12] != "3" || r[35] != "0" || r[27] != "0" {
		t.Fatalf("unexpected record %v", r)
	}
	if _, ok := r[41]; ok {
		t.Fatal("key 41 set without schedule")
	}
}

func TestSongURLEscaped(t *testing.T) {
	s := &ports.Song{ID: 1, Name: "x", DownloadURL: "https://a.b/c d"}
	if got := Song(s)[10]; got != "https%3A%2F%2Fa.b%2Fc+d" {
		t.Fatalf("key 10 = %q", got)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cases := map[time.Duration]string{
		0:                    "0 seconds",
		time.Second:          "1 second",
		3 * time.Hour:        "3 hours",
		50 * time.Hour:       "2 days",
		400 * 24 * time.Hour: "1 year",
	}
	for d, want := range cases {
		if got := Age(now.Add(-d), now); got != want {
			t.Fatalf("Age(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestLevelMetaHash(t *testing.T) {
	for _, c := range []struct {
		got, want string
	}{
		{LevelMetaHash(1, 5, false, 42, true, 0, "0", 0), "73974fb5fdba188178fc8dd2f162e0f72c9a6537"},
		{LevelMetaHash(7, 10, true, 128, false, 3, "1123456", 100001), "29d9df6dba6b6132f01b0c896176e17741e31bbe"},
	} {
		if c.got != c.want {
			t.Errorf("hash = %s, want %s", c.got, c.want)
		}
	}
}

func TestChestPlainRoundsUp(t *testing.T) {
	for _, c := range []struct {
		left time.Duration
		want string
	}{
		{0, "0"},
		{time.Nanosecond, "1"},
		{2 * time.Second, "2"},
		{2*time.Second + time.Millisecond, "3"},
	} {
		f := strings.Split(ChestPlain(ChestState{SmallRemaining: c.left, LargeRemaining: c.left}), ":")
		if f[5] != c.want || f[8] != c.want {
			t.Errorf("%v left = %s/%s, want %s", c.left, f[5], f[8], c.want)
		}
	}
}
