package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"

	"github.com/gdps-go/gdps/services/gdps/internal/config"
	"github.com/gdps-go/gdps/services/gdps/internal/handler"
	"github.com/gdps-go/gdps/services/gdps/internal/svc"
)

var configFile = flag.String("f", "etc/gdps.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c, conf.UseEnv())

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(c)
	defer ctx.Close()
	handler.RegisterHandlers(server, ctx)

	routerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logx.Must(ctx.Router.Start(routerCtx))

	fmt.Printf("Starting gdps server at %s:%d%s...\n", c.Host, c.Port, c.Game.Prefix)
	server.Start()
}
