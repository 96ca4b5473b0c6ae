package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cupogo/andvari/utils/zlog"

	"github.com/nikhildevireddy/cf-ai-swe-project/htdocs"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/services/session"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/services/stores"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/settings"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/web"
)

func main() {
	var usage bool
	flag.BoolVar(&usage, "usage", false, "show usage")
	flag.Parse()
	if usage {
		_ = settings.Usage()
		return
	}

	var zlogger *zap.Logger
	if settings.InDevelop() {
		zlogger, _ = zap.NewDevelopment()
	} else {
		zlogger, _ = zap.NewProduction()
	}
	sugar := zlogger.Sugar()
	zlog.Set(sugar)

	ctx := context.Background()
	rc, err := stores.NewRedisClient(ctx, settings.Current.RedisURI)
	if err != nil {
		sugar.Fatalw("connect primary redis fail", "err", err)
	}
	sc, err := stores.NewRedisClient(ctx, settings.Current.ShadowRedisURI)
	if err != nil {
		sugar.Fatalw("connect shadow redis fail", "err", err)
	}
	kv := stores.NewRedisKV(sc)

	// the page is served out of the content store; seed it from the
	// embedded copy so a fresh store still answers GET /
	if b, err := fs.ReadFile(htdocs.FS(), "index.html"); err == nil {
		if err = kv.Put(ctx, "index.html", b); err != nil {
			sugar.Infow("seed index fail", "err", err)
		}
	} else {
		sugar.Infow("read embedded index fail", "err", err)
	}

	preset, _ := stores.LoadPreset()
	sysPrompt := settings.Current.SystemPrompt
	if len(preset.SystemPrompt) > 0 {
		sysPrompt = preset.SystemPrompt
	}
	cmodel := settings.Current.ChatModel
	if len(preset.Model) > 0 {
		cmodel = preset.Model
	}

	reg := session.NewRegistry(session.Config{
		Inference:    stores.NewOpenAIChat(settings.Current.OpenAIAPIKey, settings.Current.OpenAIBaseURI, cmodel),
		Primary:      rc,
		Shadow:       kv,
		SystemPrompt: sysPrompt,
	})

	srv := web.New(web.Config{
		Addr:     settings.Current.HTTPListen,
		Debug:    settings.InDevelop(),
		Registry: reg,
		Content:  kv,
		Preset:   preset,
	})

	idleClosed := make(chan struct{})
	go func() {
		quit := make(chan os.Signal, 2)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		sugar.Info("shuting down server...")
		if err := srv.Stop(ctx); err != nil {
			sugar.Infow("server shutdown:", "err", err)
		}
		close(idleClosed)
	}()

	if err := srv.Serve(ctx); err != nil {
		sugar.Infow("serve fali", "err", err)
	}

	<-idleClosed
}
