package navigation

import (
	"fmt"
	"html"
	"strings"

	"github.com/Gritara234/BotPicsMex/bot/catalog"
	"github.com/Gritara234/BotPicsMex/bot/transport"
)

const (
	welcomeText    = "¡Bienvenido a PicsMex Photography! ¿Cómo puedo asistirte hoy?"
	secondPageText = "Página 2: Más información sobre PicsMex Photography"
	samplesText    = "Aquí tienes algunas de nuestras fotos de muestra:"
)

// withHeaderImage prefixes the text with an invisible link so Telegram
// renders the welcome image above the message.
func withHeaderImage(url, text string) string {
	if url == "" {
		return text
	}
	return fmt.Sprintf("<a href=%q>&#8205;</a>%s", url, text)
}

func mainMenuKeyboard() transport.Keyboard {
	return transport.Keyboard{
		{{Label: "Ver Precios", Data: string(TokenPrices)}},
		{{Label: "Ver Fotos de Muestra", Data: string(TokenSamples)}},
		{{Label: "Ubicación", Data: string(TokenLocation)}},
		{{Label: "Preguntas Frecuentes", Data: string(TokenFAQs)}},
		{{Label: "Agendar Cita", Data: string(TokenAppointment)}},
		{{Label: "Siguiente ➡️", Data: string(TokenNextPage)}},
	}
}

func secondPageKeyboard() transport.Keyboard {
	return transport.Keyboard{
		{{Label: "Reseñas", Data: string(TokenReviews)}},
		{{Label: "Redes Sociales", Data: string(TokenSocialMedia)}},
		{{Label: "Métodos de Pago", Data: string(TokenPaymentMethods)}},
		{{Label: "⬅️ Anterior", Data: string(TokenPrevPage)}},
	}
}

func backKeyboard() transport.Keyboard {
	return transport.Keyboard{
		{{Label: "Volver al Menú", Data: string(TokenBackToMenu)}},
	}
}

func pricesText(cat *catalog.Catalog) string {
	lines := make([]string, 0, len(cat.Prices))
	for _, p := range cat.Prices {
		lines = append(lines, fmt.Sprintf("%s: %s", p.Package, p.Price))
	}
	return "Aquí están nuestros paquetes y precios:\n\n" + strings.Join(lines, "\n")
}

func locationText(cat *catalog.Catalog) string {
	return "Nuestra ubicación:\n\n" + cat.Location
}

func faqsText(cat *catalog.Catalog) string {
	entries := make([]string, 0, len(cat.FAQs))
	for _, f := range cat.FAQs {
		entries = append(entries, f.Question+"\n"+f.Answer)
	}
	return "Preguntas Frecuentes:\n\n" + strings.Join(entries, "\n\n")
}

func reviewsText(cat *catalog.Catalog) string {
	return "Reseñas de nuestros clientes:\n\n" + strings.Join(cat.Reviews, "\n\n")
}

func socialText(cat *catalog.Catalog) string {
	lines := make([]string, 0, len(cat.SocialMedia))
	for _, s := range cat.SocialMedia {
		lines = append(lines, fmt.Sprintf("<a href=%q>%s</a> : %s", s.URL, html.EscapeString(s.Platform), html.EscapeString(s.Handle)))
	}
	return "Síguenos en redes sociales:\n\n" + strings.Join(lines, "\n")
}

func paymentsText(cat *catalog.Catalog) string {
	lines := make([]string, 0, len(cat.PaymentMethods))
	for _, m := range cat.PaymentMethods {
		lines = append(lines, "• "+m)
	}
	return "Métodos de pago aceptados:\n\n" + strings.Join(lines, "\n")
}
