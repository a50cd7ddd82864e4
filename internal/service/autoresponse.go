package service

import "github.com/oba-crm/backend/internal/models"

// Customer-facing auto-responses keyed by sentiment, per channel. Telegram
// replies carry their own formatting.
var whatsappResponses = map[models.Sentiment]string{
	models.SentimentPositive: "Dəyərli müştərimiz, müsbət rəyiniz üçün təşəkkür edirik! OBA ailəsi olaraq sizə ən yaxşı xidməti göstərməyə davam edəcəyik.",
	models.SentimentNegative: "Hörmətli müştərimiz, narazılığınız üçün üzr istəyirik. Rəyiniz qeydə alındı və ən qısa zamanda sizinlə əlaqə saxlanılacaq.",
	models.SentimentNeutral:  "Dəyərli müştərimiz, rəyiniz üçün təşəkkür edirik! Fikirləriniz bizim üçün çox qiymətlidir. OBA-da sizi yenidən görmək arzusu ilə!",
}

var telegramResponses = map[models.Sentiment]string{
	models.SentimentPositive: "✅ Dəyərli müştərimiz, müsbət rəyiniz üçün təşəkkür edirik!\n\n💚 OBA ailəsi olaraq sizə ən yaxşı xidməti göstərməyə davam edəcəyik.",
	models.SentimentNegative: "⚠️ Hörmətli müştərimiz, narazılığınız üçün üzr istəyirik.\n\n📝 Rəyiniz qeydə alındı və ən qısa zamanda sizinlə əlaqə saxlanılacaq.",
	models.SentimentNeutral:  "📝 Dəyərli müştərimiz, rəyiniz üçün təşəkkür edirik!\n\n💚 OBA-da sizi yenidən görmək arzusu ilə!",
}

// AutoResponse returns the channel-appropriate reply template for a
// sentiment, degrading to the neutral template.
func AutoResponse(source models.Source, sentiment models.Sentiment) string {
	responses := whatsappResponses
	if source == models.SourceTelegram {
		responses = telegramResponses
	}
	if r, ok := responses[sentiment]; ok {
		return r
	}
	return responses[models.SentimentNeutral]
}
