package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sora-estate/maisoku/internal/extract"
	"github.com/sora-estate/maisoku/internal/listing"
	"github.com/sora-estate/maisoku/internal/session"
)

// maxUploadSize caps flyer uploads at 10MB.
const maxUploadSize = 10 * 1024 * 1024

// sourceFetcher stages a flyer from a URL.
type sourceFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

type handler struct {
	sess       *session.Session
	downloader sourceFetcher
}

func newHandler(sess *session.Session, downloader sourceFetcher) *handler {
	return &handler{sess: sess, downloader: downloader}
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) upload(c *gin.Context) {
	file, err := c.FormFile("flyer")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no flyer file provided"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil || int64(len(data)) > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.Index(mimeType, ";"); i != -1 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !strings.HasPrefix(mimeType, "image/") && mimeType != "application/pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type: " + mimeType})
		return
	}

	h.sess.UploadSource(data, mimeType)
	c.JSON(http.StatusOK, gin.H{"staged": true, "bytes": len(data)})
}

func (h *handler) stageURL(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	data, mimeType, err := h.downloader.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		log.Warn().Err(err).Str("url", req.URL).Msg("failed to stage flyer by url")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to download flyer"})
		return
	}

	h.sess.UploadSource(data, mimeType)
	c.JSON(http.StatusOK, gin.H{"staged": true, "bytes": len(data)})
}

func (h *handler) setLanguage(c *gin.Context) {
	var req struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language is required"})
		return
	}
	lang, err := listing.ParseLanguage(req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.sess.SetLanguage(lang); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang})
}

func (h *handler) convert(c *gin.Context) {
	var req struct {
		Language string `json:"language"`
	}
	// Body is optional; a language given here applies before converting.
	if err := c.ShouldBindJSON(&req); err == nil && req.Language != "" {
		lang, err := listing.ParseLanguage(req.Language)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := h.sess.SetLanguage(lang); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	doc, err := h.sess.Convert(c.Request.Context())
	if err != nil {
		h.renderConvertError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": h.sess.Record(), "language": doc.Language})
}

func (h *handler) renderConvertError(c *gin.Context, err error) {
	lang := h.sess.Language()
	switch {
	case errors.Is(err, session.ErrNoSource):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no flyer staged"})
	case errors.Is(err, session.ErrConvertInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "conversion already in progress"})
	case errors.Is(err, session.ErrCooldownActive):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      extract.UserMessage(extract.KindQuotaExhausted, lang),
			"retryAfter": h.sess.CooldownRemaining(),
		})
	case errors.Is(err, session.ErrStaleResult):
		c.JSON(http.StatusConflict, gin.H{"error": "source replaced during conversion"})
	default:
		kind := extract.KindOf(err)
		log.Error().Err(err).Str("kind", kind.String()).Msg("conversion failed")
		status := http.StatusBadGateway
		switch kind {
		case extract.KindConfigurationMissing:
			status = http.StatusServiceUnavailable
		case extract.KindQuotaExhausted:
			status = http.StatusTooManyRequests
		case extract.KindEmptyResponse, extract.KindMalformedResponse:
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": extract.UserMessage(kind, lang), "kind": kind.String()})
	}
}

func (h *handler) getListing(c *gin.Context) {
	rec := h.sess.Record()
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no listing converted yet"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *handler) preview(c *gin.Context) {
	html, ok, err := h.sess.RenderHTML()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render document"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no document rendered yet"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (h *handler) export(c *gin.Context) {
	var buf bytes.Buffer
	ok, err := h.sess.Export(c.Request.Context(), &buf)
	if err != nil {
		log.Error().Err(err).Msg("pdf export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "pdf export failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no document rendered yet"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="flyer.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
