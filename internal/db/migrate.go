package db

import (
	"time"

	"github.com/lib/pq"
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Destination{},
		&model.Activity{},
		&model.Accommodation{},
		&model.Guide{},
		&model.TourPackage{},
		&model.Review{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedDestinations(); err != nil {
		logger.Error("Failed to seed destinations", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedDestinations loads a starter Colombian catalog when the table is empty.
// Bulk imports go through cmd/seed instead.
func seedDestinations() error {
	var count int64
	if err := DB.Model(&model.Destination{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Destinations already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding starter destination catalog...")

	nextWeek := time.Now().AddDate(0, 0, 7)

	destinations := []model.Destination{
		{
			Name:        "Leticia y el Amazonas",
			Description: "Puerta de entrada a la selva amazónica colombiana, en la triple frontera con Brasil y Perú.",
			City:        "Leticia",
			Department:  "Amazonas",
			Region:      model.RegionAmazonia,
			Climate:     "tropical húmedo",
			BestSeason:  "julio a noviembre (aguas bajas)",
			Highlights:  pq.StringArray{"Parque Amacayacu", "Isla de los Micos", "Lago Tarapoto"},
			ImageURL:    "https://images.wildtour.co/destinos/leticia.jpg",
			Rating:      4.8,
			Latitude:    -4.2153,
			Longitude:   -69.9406,
			Activities: []model.Activity{
				{
					Name:          "Avistamiento de delfines rosados",
					Description:   "Recorrido en canoa por el lago Tarapoto al amanecer.",
					Category:      model.CategoryBirdwatching,
					Difficulty:    model.DifficultyEasy,
					DurationHours: 5,
					Price:         180000,
					Currency:      "COP",
					PriceUnit:     "persona",
					Rating:        4.9,
					Tags:          pq.StringArray{"fauna", "rio", "amanecer"},
					ProviderName:  "Selva Viva Tours",
					BusinessName:  "Selva Viva Expediciones SAS",
					Available:     true,
				},
				{
					Name:          "Caminata nocturna en la selva",
					Description:   "Fauna nocturna con guía local de la comunidad Tikuna.",
					Category:      model.CategoryHiking,
					Difficulty:    model.DifficultyModerate,
					DurationHours: 3,
					Price:         95000,
					Currency:      "COP",
					PriceUnit:     "persona",
					Rating:        4.7,
					Tags:          pq.StringArray{"selva", "nocturna", "comunidad"},
					ProviderName:  "Selva Viva Tours",
					BusinessName:  "Selva Viva Expediciones SAS",
					Available:     false,
					NextAvailable: &nextWeek,
				},
			},
			Accommodations: []model.Accommodation{
				{
					Name:          "Reserva Natural Tanimboca",
					Description:   "Cabañas en los árboles dentro de la reserva.",
					Kind:          model.KindEcoLodge,
					PricePerNight: 320000,
					Currency:      "COP",
					Rating:        4.6,
					Amenities:     pq.StringArray{"desayuno", "canopy", "guía local"},
					ProviderName:  "Tanimboca",
					BusinessName:  "Reserva Tanimboca SAS",
					Available:     true,
				},
			},
			Guides: []model.Guide{
				{
					Name:            "Arnulfo Cahuache",
					Bio:             "Guía Tikuna con dos décadas recorriendo el trapecio amazónico.",
					Languages:       pq.StringArray{"español", "tikuna", "portugués"},
					YearsExperience: 21,
					Rating:          4.9,
					Certified:       true,
				},
			},
			Packages: []model.TourPackage{
				{
					Name:        "Amazonas profundo 4 días",
					Description: "Leticia, Puerto Nariño y comunidades ribereñas.",
					Days:        4,
					Price:       1450000,
					Currency:    "COP",
					Includes:    pq.StringArray{"alojamiento", "alimentación", "transporte fluvial", "guía"},
					Rating:      4.8,
					ProviderName: "Selva Viva Tours",
					BusinessName: "Selva Viva Expediciones SAS",
					Available:   true,
				},
			},
		},
		{
			Name:        "Valle de Cocora",
			Description: "Bosque de palmas de cera, el árbol nacional de Colombia, en el eje cafetero.",
			City:        "Salento",
			Department:  "Quindío",
			Region:      model.RegionAndina,
			Climate:     "templado de montaña",
			BestSeason:  "diciembre a marzo",
			Highlights:  pq.StringArray{"Palmas de cera", "Mirador de Salento", "Fincas cafeteras"},
			ImageURL:    "https://images.wildtour.co/destinos/cocora.jpg",
			Rating:      4.7,
			Latitude:    4.6381,
			Longitude:   -75.4875,
			Activities: []model.Activity{
				{
					Name:          "Trekking Valle de Cocora",
					Description:   "Circuito de 12 km entre palmas de cera y bosque de niebla.",
					Category:      model.CategoryHiking,
					Difficulty:    model.DifficultyModerate,
					DurationHours: 6,
					Price:         60000,
					Currency:      "COP",
					PriceUnit:     "persona",
					Rating:        4.8,
					Tags:          pq.StringArray{"montaña", "cafetero", "palma de cera"},
					ProviderName:  "Cocora Trek",
					BusinessName:  "Cocora Trek SAS",
					Available:     true,
				},
			},
			Accommodations: []model.Accommodation{
				{
					Name:          "Finca La Esperanza",
					Description:   "Finca cafetera tradicional con tour de café incluido.",
					Kind:          model.KindFinca,
					PricePerNight: 180000,
					Currency:      "COP",
					Rating:        4.5,
					Amenities:     pq.StringArray{"desayuno", "tour de café", "wifi"},
					ProviderName:  "La Esperanza",
					BusinessName:  "Agroturismo La Esperanza",
					Available:     true,
				},
			},
		},
		{
			Name:        "Parque Tayrona",
			Description: "Playas vírgenes entre la Sierra Nevada de Santa Marta y el mar Caribe.",
			City:        "Santa Marta",
			Department:  "Magdalena",
			Region:      model.RegionCaribe,
			Climate:     "cálido seco",
			BestSeason:  "diciembre a abril",
			Highlights:  pq.StringArray{"Cabo San Juan", "Playa Cristal", "Pueblito Chairama"},
			ImageURL:    "https://images.wildtour.co/destinos/tayrona.jpg",
			Rating:      4.9,
			Latitude:    11.3072,
			Longitude:   -74.0653,
			Activities: []model.Activity{
				{
					Name:          "Buceo en Taganga",
					Description:   "Inmersión doble en los arrecifes del parque.",
					Category:      model.CategoryDiving,
					Difficulty:    model.DifficultyModerate,
					DurationHours: 4,
					Price:         250000,
					Currency:      "COP",
					PriceUnit:     "persona",
					Rating:        4.6,
					Tags:          pq.StringArray{"mar", "arrecife", "caribe"},
					ProviderName:  "Caribe Azul Dive",
					BusinessName:  "Caribe Azul Dive Center",
					Available:     true,
				},
			},
			Accommodations: []model.Accommodation{
				{
					Name:          "Ecohabs Tayrona",
					Description:   "Cabañas con vista al mar dentro del parque.",
					Kind:          model.KindEcoLodge,
					PricePerNight: 850000,
					Currency:      "COP",
					Rating:        4.7,
					Amenities:     pq.StringArray{"restaurante", "playa privada", "aire acondicionado"},
					ProviderName:  "Ecohabs",
					BusinessName:  "Ecohabs Santa Marta SAS",
					Available:     true,
				},
			},
		},
		{
			Name:        "Bahía Solano",
			Description: "Selva y mar en el Pacífico chocoano; avistamiento de ballenas jorobadas.",
			City:        "Bahía Solano",
			Department:  "Chocó",
			Region:      model.RegionPacifica,
			Climate:     "tropical muy húmedo",
			BestSeason:  "julio a octubre (ballenas)",
			Highlights:  pq.StringArray{"Ballenas jorobadas", "Playa El Almejal", "Cascadas del Tigre"},
			ImageURL:    "https://images.wildtour.co/destinos/bahia-solano.jpg",
			Rating:      4.6,
			Latitude:    6.2231,
			Longitude:   -77.4014,
			Activities: []model.Activity{
				{
					Name:          "Avistamiento de ballenas jorobadas",
					Description:   "Salida en lancha con biólogo marino, temporada de julio a octubre.",
					Category:      model.CategoryWhaleWatching,
					Difficulty:    model.DifficultyEasy,
					DurationHours: 3,
					Price:         220000,
					Currency:      "COP",
					PriceUnit:     "persona",
					Rating:        4.9,
					Tags:          pq.StringArray{"ballenas", "pacifico", "temporada"},
					ProviderName:  "Pacífico Salvaje",
					BusinessName:  "Pacífico Salvaje SAS",
					Available:     false,
					NextAvailable: &nextWeek,
				},
			},
		},
	}

	totalInserted := 0
	for _, destination := range destinations {
		if err := DB.Create(&destination).Error; err != nil {
			logger.Error("Failed to create destination", err, map[string]interface{}{
				"destination": destination.Name,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Destinations seeded successfully", map[string]interface{}{
		"total_destinations": totalInserted,
	})

	return nil
}
