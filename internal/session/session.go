// Package session implements the user-facing action surface: staging a
// source flyer, converting it, switching the target language and exporting
// the rendered document.
package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sora-estate/maisoku/internal/extract"
	"github.com/sora-estate/maisoku/internal/flyer"
	"github.com/sora-estate/maisoku/internal/listing"
)

var (
	// ErrNoSource means convert was attempted before staging a flyer.
	ErrNoSource = errors.New("no source document staged")
	// ErrConvertInFlight means a conversion is already running. A second
	// invocation is rejected, not queued.
	ErrConvertInFlight = errors.New("conversion already in progress")
	// ErrCooldownActive means the quota cooldown gate refused the convert.
	ErrCooldownActive = errors.New("cooldown active after quota exhaustion")
	// ErrStaleResult means the extraction finished after a newer flyer was
	// staged, so its result was discarded (last write wins).
	ErrStaleResult = errors.New("extraction result discarded: source replaced")
)

// Exporter hands a rendered page to the print/PDF collaborator.
type Exporter interface {
	PrintHTML(ctx context.Context, html []byte) ([]byte, error)
}

type source struct {
	data     []byte
	mimeType string
}

// Session holds one user's staged flyer, current record and rendered
// document. All methods are safe for concurrent use.
type Session struct {
	extractor extract.Extractor
	exporter  Exporter
	cooldown  *Cooldown

	mu         sync.Mutex
	lang       listing.Language
	source     *source
	generation uint64
	record     *listing.Record
	doc        *flyer.Document
	converting bool
}

// New creates a session with the given collaborators and initial target
// language.
func New(extractor extract.Extractor, exporter Exporter, lang listing.Language) *Session {
	return &Session{
		extractor: extractor,
		exporter:  exporter,
		cooldown:  NewCooldown(),
		lang:      lang,
	}
}

// UploadSource stages a new source flyer. The previous record and document
// are invalidated immediately; any extraction still in flight for the old
// flyer will be discarded when it completes.
func (s *Session) UploadSource(data []byte, mimeType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = &source{data: data, mimeType: mimeType}
	s.generation++
	s.record = nil
	s.doc = nil
	log.Debug().Int("bytes", len(data)).Str("mimeType", mimeType).Uint64("generation", s.generation).Msg("staged source flyer")
}

// SetLanguage selects the target language for the next conversion. When a
// record is already present, the displayed document is relabeled in place
// without re-extraction.
func (s *Session) SetLanguage(lang listing.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language: %q", lang)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
	if s.record != nil && s.doc != nil {
		s.doc = flyer.Compose(s.record, s.doc.ImageRef, lang)
	}
	return nil
}

// Language returns the current target language.
func (s *Session) Language() listing.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Record returns the current listing record, or nil before the first
// successful conversion.
func (s *Session) Record() *listing.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// Document returns the current rendered document, or nil.
func (s *Session) Document() *flyer.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// CooldownRemaining reports the seconds left on the quota cooldown gate.
func (s *Session) CooldownRemaining() int {
	return s.cooldown.Remaining()
}

// Convert runs extraction on the staged flyer and composes the document.
// It refuses when no source is staged, when a conversion is already in
// flight, or while the quota cooldown is active. On failure no prior state
// is mutated; the previously rendered document remains available.
func (s *Session) Convert(ctx context.Context) (*flyer.Document, error) {
	s.mu.Lock()
	if s.converting {
		s.mu.Unlock()
		return nil, ErrConvertInFlight
	}
	if s.cooldown.Active() {
		s.mu.Unlock()
		return nil, ErrCooldownActive
	}
	if s.source == nil {
		s.mu.Unlock()
		return nil, ErrNoSource
	}
	src := s.source
	gen := s.generation
	lang := s.lang
	s.converting = true
	s.mu.Unlock()

	rec, err := s.extractor.Extract(ctx, src.data, src.mimeType, lang)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.converting = false

	if err != nil {
		if extract.KindOf(err) == extract.KindQuotaExhausted {
			s.cooldown.Arm(CooldownSeconds)
			log.Warn().Int("cooldownSeconds", CooldownSeconds).Msg("quota exhausted, convert gate armed")
		}
		return nil, err
	}

	// A completed-late result for a replaced flyer must not overwrite the
	// newer staging (last write wins).
	if gen != s.generation {
		log.Debug().Uint64("resultGeneration", gen).Uint64("currentGeneration", s.generation).Msg("discarding stale extraction result")
		return nil, ErrStaleResult
	}

	// Labels follow the language selected now, not the one captured when
	// extraction started, so a switch made mid-flight shows up in the
	// landed document.
	imageRef := fmt.Sprintf("data:%s;base64,%s", src.mimeType, base64.StdEncoding.EncodeToString(src.data))
	s.record = rec
	s.doc = flyer.Compose(rec, imageRef, s.lang)
	return s.doc, nil
}

// RenderHTML renders the current document as an A4 HTML page. ok is false
// when nothing has been rendered yet.
func (s *Session) RenderHTML() (html []byte, ok bool, err error) {
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()
	if doc == nil {
		return nil, false, nil
	}
	html, err = flyer.RenderHTML(doc)
	if err != nil {
		return nil, true, err
	}
	return html, true, nil
}

// Export prints the current document to PDF and writes it to w. It is a
// no-op (ok=false) when no document has been rendered yet.
func (s *Session) Export(ctx context.Context, w io.Writer) (ok bool, err error) {
	html, ok, err := s.RenderHTML()
	if !ok || err != nil {
		return ok, err
	}
	pdf, err := s.exporter.PrintHTML(ctx, html)
	if err != nil {
		return true, fmt.Errorf("export flyer: %w", err)
	}
	if _, err := w.Write(pdf); err != nil {
		return true, fmt.Errorf("write pdf: %w", err)
	}
	return true, nil
}
