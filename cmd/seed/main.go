package main

import (
	"log"
	"time"

	"github.com/barriolink/community-events-backend/config"
	"github.com/barriolink/community-events-backend/database"
	"github.com/barriolink/community-events-backend/internal/auditlog"
	"github.com/barriolink/community-events-backend/internal/event"
	"github.com/barriolink/community-events-backend/internal/review"
	"github.com/barriolink/community-events-backend/internal/rsvp"
	"github.com/barriolink/community-events-backend/internal/user"
)

// Development seeder. Wipes events, attendances and reviews, keeps any real
// users, and plants a small demo data set.
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	if err := db.AutoMigrate(
		&user.User{},
		&event.Event{},
		&rsvp.Attendance{},
		&review.Review{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Clear existing demo data, real users stay
	if err := db.Where("1 = 1").Delete(&review.Review{}).Error; err != nil {
		log.Fatalf("❌ Failed to clear reviews: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&rsvp.Attendance{}).Error; err != nil {
		log.Fatalf("❌ Failed to clear attendances: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&event.Event{}).Error; err != nil {
		log.Fatalf("❌ Failed to clear events: %v", err)
	}

	var organizer user.User
	if err := db.First(&organizer).Error; err != nil {
		name := "Juan Organizador"
		organizer = user.User{
			FirebaseUID: "test-uid-001",
			Email:       "organizador@test.com",
			DisplayName: &name,
		}
		if err := db.Create(&organizer).Error; err != nil {
			log.Fatalf("❌ Failed to create demo user: %v", err)
		}
	}

	cleanup := "Jornada de limpieza comunitaria en el parque central. Traer guantes y bolsas."
	recycling := "Aprende técnicas de reciclaje y reutilización de materiales."
	food := "Degustación de platillos típicos preparados por vecinos del barrio."
	past := "Evento ya realizado."

	events := []event.Event{
		{
			Title:       "Limpieza del Parque Central",
			Description: &cleanup,
			EventDate:   time.Date(2025, 12, 15, 9, 0, 0, 0, time.Local),
			Location:    "Parque Central, Calle Principal #123",
			OrganizerID: organizer.ID,
		},
		{
			Title:       "Taller de Reciclaje",
			Description: &recycling,
			EventDate:   time.Date(2025, 12, 20, 14, 0, 0, 0, time.Local),
			Location:    "Centro Comunitario Norte",
			OrganizerID: organizer.ID,
		},
		{
			Title:       "Feria de Comida Local",
			Description: &food,
			EventDate:   time.Date(2025, 12, 25, 12, 0, 0, 0, time.Local),
			Location:    "Plaza del Vecindario",
			OrganizerID: organizer.ID,
		},
		{
			Title:       "Plantación de Árboles (Pasado)",
			Description: &past,
			EventDate:   time.Date(2025, 10, 1, 10, 0, 0, 0, time.Local),
			Location:    "Zona Verde Este",
			OrganizerID: organizer.ID,
		},
	}

	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create event %q: %v", events[i].Title, err)
		}
	}

	pastEvent := events[3]

	attendances := []rsvp.Attendance{
		{UserID: organizer.ID, EventID: events[0].ID, Status: rsvp.StatusConfirmed},
		{UserID: organizer.ID, EventID: pastEvent.ID, Status: rsvp.StatusConfirmed},
	}
	for i := range attendances {
		if err := db.Create(&attendances[i]).Error; err != nil {
			log.Fatalf("❌ Failed to create attendance: %v", err)
		}
	}

	comment := "Excelente evento, muy bien organizado!"
	rv := review.Review{
		UserID:  organizer.ID,
		EventID: pastEvent.ID,
		Rating:  5,
		Comment: &comment,
	}
	if err := db.Create(&rv).Error; err != nil {
		log.Fatalf("❌ Failed to create review: %v", err)
	}

	log.Println("✅ Demo data created:")
	log.Printf("   - %d events", len(events))
	log.Printf("   - %d attendances", len(attendances))
	log.Println("   - 1 review")
	log.Println("Event IDs:")
	for _, e := range events {
		log.Printf("   - %d (%s)", e.ID, e.Title)
	}
}
