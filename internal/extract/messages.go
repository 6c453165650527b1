package extract

import "github.com/sora-estate/maisoku/internal/listing"

// userMessages holds the human-readable failure text shown to users, per
// target language. Raw provider error text is never surfaced.
var userMessages = map[listing.Language]map[Kind]string{
	listing.LanguageEnglish: {
		KindConfigurationMissing: "No API key is configured. Set GEMINI_API_KEY and restart.",
		KindQuotaExhausted:       "The API quota is exhausted. The free tier only allows a few image scans per minute; please wait two minutes before trying again.",
		KindModelUnavailable:     "The AI model could not be found. Check that your API key supports the configured Gemini model.",
		KindAuthRejected:         "The API key was rejected. Check that the key is valid and authorized.",
		KindEmptyResponse:        "The AI returned an empty result. The image may be too blurry or contain restricted content; try a clearer scan.",
		KindMalformedResponse:    "The AI response could not be read. This is usually transient; please try again.",
		KindUnclassified:         "The analysis failed. Please try again.",
	},
	listing.LanguageChinese: {
		KindConfigurationMissing: "尚未設定 API Key。請檢查環境變數中的 GEMINI_API_KEY 設定。",
		KindQuotaExhausted:       "【額度已滿】免費版 API 每分鐘僅支援少量圖片辨識。請等待兩分鐘後再試一次。",
		KindModelUnavailable:     "【模型錯誤】找不到 AI 模型。請確認您的 API Key 是否支援所設定的 Gemini 模型。",
		KindAuthRejected:         "【授權錯誤】API Key 無效或未獲授權。請確認金鑰設定。",
		KindEmptyResponse:        "AI 回傳了空的結果。圖片可能太模糊或包含受限內容，請改用較清晰的圖片再試。",
		KindMalformedResponse:    "AI 回應無法解析，通常為暫時性問題，請再試一次。",
		KindUnclassified:         "分析失敗，請再試一次。",
	},
}

// UserMessage returns the localized message for a failure kind. Unknown
// languages fall back to English.
func UserMessage(kind Kind, lang listing.Language) string {
	msgs, ok := userMessages[lang]
	if !ok {
		msgs = userMessages[listing.LanguageEnglish]
	}
	if msg, ok := msgs[kind]; ok {
		return msg
	}
	return msgs[KindUnclassified]
}
