package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sora-estate/maisoku/internal/config"
	"github.com/sora-estate/maisoku/internal/export"
	"github.com/sora-estate/maisoku/internal/extract"
	"github.com/sora-estate/maisoku/internal/fetch"
	"github.com/sora-estate/maisoku/internal/listing"
	"github.com/sora-estate/maisoku/internal/server"
	"github.com/sora-estate/maisoku/internal/session"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var extractor extract.Extractor
	if missing := cfg.MissingKeys(); len(missing) > 0 {
		// The server still starts so the UI can show the configuration
		// failure; every convert refuses until the key is set.
		log.Warn().Str("missing", strings.Join(missing, ", ")).Msg("starting without API credential")
		extractor = extract.Unconfigured{}
	} else {
		gemini, err := extract.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create extractor")
		}
		extractor = extract.NewCachedExtractor(gemini)
	}

	sess := session.New(extractor, export.NewPDFExporter(), listing.LanguageChinese)
	srv := server.New(cfg, sess, fetch.NewDownloader())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}
