// Package catalog holds the studio's static business content: price list,
// FAQs, location, sample photos, reviews, social links, payment methods and
// the service list the appointment form indexes into. The catalog is built
// once at startup and shared read-only by all sessions.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Gritara234/BotPicsMex/core/logger"
	"log/slog"
)

// MinSamplePhotos is the smallest catalog that can serve a samples request.
const MinSamplePhotos = 3

// PriceEntry is a named package with its display price.
type PriceEntry struct {
	Package string `yaml:"package"`
	Price   string `yaml:"price"`
}

// FAQ pairs a frequently asked question with its answer.
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// SocialLink describes one social-media presence.
type SocialLink struct {
	Platform string `yaml:"platform"`
	Handle   string `yaml:"handle"`
	URL      string `yaml:"url"`
}

// Catalog aggregates every content table. All fields are treated as
// immutable after Load returns.
type Catalog struct {
	WelcomeImageURL string       `yaml:"welcome_image_url"`
	Prices          []PriceEntry `yaml:"prices"`
	FAQs            []FAQ        `yaml:"faqs"`
	Location        string       `yaml:"location"`
	SamplePhotos    []string     `yaml:"sample_photos"`
	Reviews         []string     `yaml:"reviews"`
	SocialMedia     []SocialLink `yaml:"social_media"`
	PaymentMethods  []string     `yaml:"payment_methods"`
	Services        []string     `yaml:"services"`
}

// Default returns the built-in PicsMex Photography content.
func Default() *Catalog {
	return &Catalog{
		WelcomeImageURL: "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcSvRMOhhFEONDKXZ2Xyb8N-T1C7AAGklkGNIA&s",
		Prices: []PriceEntry{
			{Package: "Paquete Básico", Price: "$100"},
			{Package: "Paquete Estándar", Price: "$200"},
			{Package: "Paquete Premium", Price: "$300"},
		},
		FAQs: []FAQ{
			{
				Question: "¿Cuál es su política de reembolsos?",
				Answer:   "Ofrecemos un reembolso completo dentro de los 7 días posteriores a la compra.",
			},
			{
				Question: "¿Viajan para sesiones de fotos?",
				Answer:   "Sí, podemos viajar a su ubicación por un costo adicional.",
			},
			{
				Question: "¿Cuánto tiempo tomará recibir las fotos?",
				Answer:   "Recibirá sus fotos dentro de las 2 semanas posteriores a la sesión.",
			},
		},
		Location: "Calle Arty 226",
		SamplePhotos: []string{
			"https://i.imgur.com/1APLxNQ.png",
			"https://i.imgur.com/tQc3JMS.png",
			"https://i.imgur.com/KSORerQ.png",
			"https://i.imgur.com/dQtZGfg.png",
			"https://i.imgur.com/BA76eje.png",
			"https://i.imgur.com/S0BBzXu.png",
			"https://i.imgur.com/TpJWkpZ.png",
		},
		Reviews: []string{
			"¡Excelente servicio! Las fotos quedaron hermosas. - María G.",
			"Muy profesionales y creativos. Altamente recomendados. - Juan L.",
			"Una experiencia inolvidable. Capturaron momentos preciosos. - Ana P.",
		},
		SocialMedia: []SocialLink{
			{Platform: "Instagram", Handle: "@picsmex_photography", URL: "https://www.instagram.com/picsmex_photography"},
			{Platform: "Facebook", Handle: "PicsMex Photography", URL: "https://www.facebook.com/PicsMexPhotography"},
			{Platform: "Twitter", Handle: "@PicsMexPhoto", URL: "https://twitter.com/PicsMexPhoto"},
		},
		PaymentMethods: []string{
			"Tarjeta de crédito/débito",
			"PayPal",
			"Transferencia bancaria",
			"Efectivo (solo para pagos en persona)",
		},
		Services: []string{
			"Sesión de retrato",
			"Sesión familiar",
			"Sesión de eventos",
			"Sesión de producto",
		},
	}
}

// Load builds the catalog from the built-in defaults, overlaying the YAML
// file at path when one is configured. The result is validated; a catalog
// that cannot serve every menu panel is a startup error.
func Load(path string) (*Catalog, error) {
	cat := Default()

	source := "defaults"
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cat); err != nil {
			return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
		}
		source = path
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}

	logger.Info(logger.Background(), "catalog", "load",
		slog.String("source", source),
		slog.Int("prices", len(cat.Prices)),
		slog.Int("faqs", len(cat.FAQs)),
		slog.Int("sample_photos", len(cat.SamplePhotos)),
		slog.Int("services", len(cat.Services)),
	)
	return cat, nil
}

// Validate checks that every menu panel and the intake form have the
// content they need.
func (c *Catalog) Validate() error {
	if len(c.SamplePhotos) < MinSamplePhotos {
		return fmt.Errorf("catalog: need at least %d sample photos, have %d", MinSamplePhotos, len(c.SamplePhotos))
	}
	if len(c.Services) == 0 {
		return fmt.Errorf("catalog: service list is empty")
	}
	if len(c.Prices) == 0 {
		return fmt.Errorf("catalog: price list is empty")
	}
	if c.Location == "" {
		return fmt.Errorf("catalog: location is empty")
	}
	return nil
}
