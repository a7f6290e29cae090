package config

import (
	"time"

	"github.com/zeromicro/go-zero/rest"

	"github.com/gdps-go/gdps/internal/analytics"
	"github.com/gdps-go/gdps/internal/objstore"
	"github.com/gdps-go/gdps/internal/pubsub"
	"github.com/gdps-go/gdps/internal/ratelimit"
	redisrepo "github.com/gdps-go/gdps/internal/repo/redis"
	"github.com/gdps-go/gdps/internal/search"
	"github.com/gdps-go/gdps/internal/upstream"
)

type Config struct {
	rest.RestConf

	Game struct {
		Prefix           string `json:",default=/database"`
		PublicURL        string `json:",default=http://127.0.0.1:8888"`
		CustomContentURL string `json:",default=https://geometrydashfiles.b-cdn.net"`
	} `json:",optional"`

	Database struct {
		DataSource  string `json:",optional"`
		AutoMigrate bool   `json:",default=true"`
	} `json:",optional"`

	UserCache struct {
		Enabled bool          `json:",default=true"`
		TTL     time.Duration `json:",default=5m"`
		Limit   int           `json:",default=10000"`
	} `json:",optional"`

	Redis     redisrepo.Config `json:",optional"`
	Search    search.Config    `json:",optional"`
	Storage   objstore.Config  `json:",optional"`
	PubSub    pubsub.Config    `json:",optional"`
	RateLimit ratelimit.Config `json:",optional"`
	Upstream  upstream.Config  `json:",optional"`
	Analytics analytics.Config `json:",optional"`
}
