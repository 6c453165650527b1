// One-shot converter: reads a flyer image, extracts and translates it, and
// writes the rendered document to a file (HTML, or PDF when the output path
// ends in .pdf).
package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sora-estate/maisoku/internal/config"
	"github.com/sora-estate/maisoku/internal/export"
	"github.com/sora-estate/maisoku/internal/extract"
	"github.com/sora-estate/maisoku/internal/flyer"
	"github.com/sora-estate/maisoku/internal/listing"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	imagePath := flag.String("image", "", "path to the flyer image")
	langFlag := flag.String("lang", "zh-Hant", "target language (zh-Hant, en)")
	outPath := flag.String("out", "flyer.html", "output path (.html or .pdf)")
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "usage: convert -image flyer.jpg [-lang en] [-out flyer.pdf]")
		os.Exit(1)
	}

	lang, err := listing.ParseLanguage(*langFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid language")
	}

	data, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read image")
	}
	mimeType := http.DetectContentType(data)

	config.LoadEnvFile()
	cfg := config.FromEnv()

	ctx := context.Background()
	gemini, err := extract.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create extractor")
	}

	rec, err := gemini.Extract(ctx, data, mimeType, lang)
	if err != nil {
		kind := extract.KindOf(err)
		log.Fatal().Err(err).Str("kind", kind.String()).Msg(extract.UserMessage(kind, lang))
	}

	imageRef := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
	doc := flyer.Compose(rec, imageRef, lang)
	html, err := flyer.RenderHTML(doc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to render document")
	}

	out := html
	if strings.HasSuffix(*outPath, ".pdf") {
		out, err = export.NewPDFExporter().PrintHTML(ctx, html)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to print pdf")
		}
	}

	if err := os.WriteFile(*outPath, out, 0644); err != nil {
		log.Fatal().Err(err).Msg("failed to write output")
	}
	log.Info().Str("out", *outPath).Str("property", rec.PropertyName).Msg("flyer converted")
}
