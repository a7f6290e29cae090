package ctl

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	dom "github.com/gdps-go/gdps/internal/ports"
	"github.com/gdps-go/gdps/internal/service"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

const baseConfig = `
Name: gdps
Port: 8888
Log:
  Level: severe
Database:
  DataSource: file:%s
Redis:
  Addr: %s
Storage:
  Driver: memory
PubSub:
  Driver: %s
RateLimit:
  Driver: memory
profiles:
  bus:
    PubSub:
      Driver: redis
`

func writeConfig(t *testing.T, driver string) string {
	t.Helper()
	mr := miniredis.RunT(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "gdps.yaml")
	body := fmt.Sprintf(baseConfig, filepath.Join(dir, "gdps.db"), mr.Addr(), driver)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("gdpsctl %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestConfigTest(t *testing.T) {
	good := writeConfig(t, "local")
	if out := mustRun(t, "-f", good, "config", "test"); !strings.Contains(out, "config OK") {
		t.Fatalf("out = %q", out)
	}

	bad := writeConfig(t, "nats")
	if _, err := run(t, "-f", bad, "config", "test"); err == nil || !strings.Contains(err.Error(), "pubsub") {
		t.Fatalf("err = %v", err)
	}
	if _, err := run(t, "-f", filepath.Join(t.TempDir(), "missing.yaml"), "config", "test"); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestConfigPrintLayers(t *testing.T) {
	path := writeConfig(t, "local")
	if out := mustRun(t, "-f", path, "config", "print"); !strings.Contains(out, "driver: local") {
		t.Fatalf("plain = %q", out)
	}
	if out := mustRun(t, "-f", path, "--profile", "bus", "config", "print"); !strings.Contains(out, "driver: redis") || strings.Contains(out, "profiles") {
		t.Fatalf("profile = %q", out)
	}

	t.Setenv("GDPS_PUBSUB_DRIVER", "kafka")
	if out := mustRun(t, "-f", path, "config", "print"); !strings.Contains(out, "driver: kafka") {
		t.Fatalf("env = %q", out)
	}
}

func TestMigrateAndSongs(t *testing.T) {
	path := writeConfig(t, "local")
	if out := mustRun(t, "-f", path, "migrate"); !strings.Contains(out, "schema up to date") {
		t.Fatalf("migrate = %q", out)
	}
	mustRun(t, "-f", path, "song", "add", "--id", "7001", "--name", "Theory", "--author", "Dex", "--url", "https://cdn.example/7001.mp3", "--size", "4.2")

	out := mustRun(t, "-f", path, "song", "show", "7001")
	if !strings.Contains(out, `"Theory"`) || !strings.Contains(out, "4.20 MB") {
		t.Fatalf("show = %q", out)
	}
	if _, err := run(t, "-f", path, "song", "add", "--name", "x"); err == nil {
		t.Fatal("song without id accepted")
	}
}

func TestUserModeration(t *testing.T) {
	path := writeConfig(t, "local")
	o := &options{configFile: path}
	err := o.withServices(context.Background(), func(ctx context.Context, s *svc.ServiceContext) error {
		_, err := s.Services.Auth.Register(ctx, "Player", "secret1", "p@x.io")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, "-f", path, "user", "grant", "1", "level_rate_stars", "LEVEL_ENQUEUE_DAILY")
	if !strings.Contains(out, "LEVEL_RATE_STARS") || !strings.Contains(out, "LEVEL_ENQUEUE_DAILY") {
		t.Fatalf("grant = %q", out)
	}
	out = mustRun(t, "-f", path, "user", "revoke", "1", "LEVEL_ENQUEUE_DAILY")
	if strings.Contains(out, "LEVEL_ENQUEUE_DAILY") || !strings.Contains(out, "LEVEL_RATE_STARS") {
		t.Fatalf("revoke = %q", out)
	}
	out = mustRun(t, "-f", path, "user", "restrict", "1")
	if strings.Contains(out, "USER_STAR_LEADERBOARD_PUBLIC") || strings.Contains(out, "USER_PROFILE_PUBLIC") {
		t.Fatalf("restrict = %q", out)
	}
	out = mustRun(t, "-f", path, "user", "unrestrict", "1")
	if !strings.Contains(out, "USER_STAR_LEADERBOARD_PUBLIC") {
		t.Fatalf("unrestrict = %q", out)
	}

	if _, err := run(t, "-f", path, "user", "grant", "1", "FLY"); err == nil {
		t.Fatal("unknown privilege accepted")
	}
	if _, err := run(t, "-f", path, "user", "show", "abc"); err == nil {
		t.Fatal("bad id accepted")
	}
}

func TestScheduleEnqueue(t *testing.T) {
	path := writeConfig(t, "local")
	o := &options{configFile: path}
	var levelID int
	err := o.withServices(context.Background(), func(ctx context.Context, s *svc.ServiceContext) error {
		u, err := s.Services.Auth.Register(ctx, "Player", "secret1", "p@x.io")
		if err != nil {
			return err
		}
		l, err := s.Services.Levels.Upload(ctx, u.ID, uploadFixture())
		if err != nil {
			return err
		}
		levelID = l.ID
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if out := mustRun(t, "-f", path, "schedule", "current"); !strings.Contains(out, "daily: none") {
		t.Fatalf("current = %q", out)
	}
	out := mustRun(t, "-f", path, "schedule", "enqueue", "--weekly", fmt.Sprint(levelID))
	if !strings.HasPrefix(out, "slot 100001: level") {
		t.Fatalf("enqueue = %q", out)
	}
	if out := mustRun(t, "-f", path, "schedule", "current"); !strings.Contains(out, "weekly: slot 100001") {
		t.Fatalf("current = %q", out)
	}
	if _, err := run(t, "-f", path, "schedule", "enqueue", "999"); err == nil {
		t.Fatal("missing level accepted")
	}
}

func TestSyncAndPublish(t *testing.T) {
	local := writeConfig(t, "local")
	if out := mustRun(t, "-f", local, "sync", "levels"); !strings.HasPrefix(out, "synced 0 levels") {
		t.Fatalf("sync = %q", out)
	}
	if out := mustRun(t, "-f", local, "sync", "stars"); !strings.HasPrefix(out, "synced 0 stars") {
		t.Fatalf("sync = %q", out)
	}
	if _, err := run(t, "-f", local, "sync", "everything"); err == nil {
		t.Fatal("unknown target accepted")
	}
	if _, err := run(t, "-f", local, "publish", "ping"); err == nil {
		t.Fatal("local publish accepted")
	}

	bus := writeConfig(t, "redis")
	if out := mustRun(t, "-f", bus, "publish", "ping", `{"from":"test"}`); out != "published ping\n" {
		t.Fatalf("publish = %q", out)
	}
	if out := mustRun(t, "-f", bus, "sync", "--remote", "users"); out != "published users:sync_meili\n" {
		t.Fatalf("remote sync = %q", out)
	}
	if _, err := run(t, "-f", bus, "publish", "ping", "{not json"); err == nil {
		t.Fatal("bad payload accepted")
	}
}

func uploadFixture() service.LevelUpload {
	return service.LevelUpload{Name: "Queued", OfficialSongID: 1, Length: dom.LengthMedium, Data: "DATA"}
}
