package extract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/sora-estate/maisoku/internal/listing"
)

func TestParseRecordText(t *testing.T) {
	payload := `{"propertyName":"Sora Heights","price":"¥45,000,000","location":"Osaka"}`

	t.Run("plain json", func(t *testing.T) {
		rec, err := parseRecordText(payload)
		require.NoError(t, err)
		assert.Equal(t, "Sora Heights", rec.PropertyName)
	})

	t.Run("markdown fenced", func(t *testing.T) {
		rec, err := parseRecordText("```json\n" + payload + "\n```")
		require.NoError(t, err)
		assert.Equal(t, "¥45,000,000", rec.Price)
	})

	t.Run("blank payload", func(t *testing.T) {
		_, err := parseRecordText("   \n")
		assert.Equal(t, KindEmptyResponse, KindOf(err))
	})

	t.Run("prose wrapper", func(t *testing.T) {
		_, err := parseRecordText("Here is the listing you asked for!")
		assert.Equal(t, KindMalformedResponse, KindOf(err))
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := parseRecordText(`{"propertyName":"Sora Heights"}`)
		assert.Equal(t, KindMalformedResponse, KindOf(err))
	})
}

func TestClassifyStructured(t *testing.T) {
	tests := []struct {
		code int
		want Kind
	}{
		{429, KindQuotaExhausted},
		{404, KindModelUnavailable},
		{401, KindAuthRejected},
		{403, KindAuthRejected},
		{500, KindUnclassified},
	}
	for _, tt := range tests {
		err := classify(fmt.Errorf("call failed: %w", genai.APIError{Code: tt.code, Message: "x"}))
		assert.Equal(t, tt.want, err.Kind, "code %d", tt.code)
	}
}

func TestClassifyMessageFallback(t *testing.T) {
	tests := []struct {
		msg  string
		want Kind
	}{
		{"rpc failed with status 429", KindQuotaExhausted},
		{"you have exceeded your quota", KindQuotaExhausted},
		{"RESOURCE_EXHAUSTED: slow down", KindQuotaExhausted},
		{"model returned 404", KindModelUnavailable},
		{"PERMISSION_DENIED", KindAuthRejected},
		{"API key not valid. Please pass a valid key.", KindAuthRejected},
		{"connection reset by peer", KindUnclassified},
	}
	for _, tt := range tests {
		got := classify(errors.New(tt.msg))
		assert.Equal(t, tt.want, got.Kind, tt.msg)
	}
}

func TestClassifyKeepsExistingClassification(t *testing.T) {
	orig := newError(KindEmptyResponse, "blank", nil)
	got := classify(fmt.Errorf("wrapped: %w", orig))
	assert.Equal(t, KindEmptyResponse, got.Kind)
}

func TestNewGeminiExtractorWithoutKey(t *testing.T) {
	_, err := NewGeminiExtractor(t.Context(), "", "")
	assert.Equal(t, KindConfigurationMissing, KindOf(err))
}

func TestUserMessageCoverage(t *testing.T) {
	kinds := []Kind{
		KindUnclassified, KindConfigurationMissing, KindQuotaExhausted,
		KindModelUnavailable, KindAuthRejected, KindEmptyResponse,
		KindMalformedResponse,
	}
	for _, lang := range listing.Languages() {
		for _, kind := range kinds {
			assert.NotEmpty(t, UserMessage(kind, lang), "%s/%s", lang, kind)
		}
	}
	// Unknown languages fall back to English rather than panicking.
	assert.NotEmpty(t, UserMessage(KindQuotaExhausted, listing.Language("fi")))
}
