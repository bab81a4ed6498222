// Command seedhub upserts the fixed pickup/drop-off hubs and exits.
// Safe to run repeatedly: hubs already present by name are left alone.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Aashutosh1201/rentall-web-sub001/model"
	hubrepo "github.com/Aashutosh1201/rentall-web-sub001/repository/hub"
	hubsvc "github.com/Aashutosh1201/rentall-web-sub001/service/hub"
	"github.com/Aashutosh1201/rentall-web-sub001/util/database"
)

var hubs = []model.Hub{
	{Name: "Kathmandu Central Hub", Address: "New Road, Kathmandu", City: "Kathmandu", ContactPhone: "+977-1-4221100", Lat: 27.7040, Lng: 85.3100},
	{Name: "Patan Hub", Address: "Mangal Bazaar, Lalitpur", City: "Lalitpur", ContactPhone: "+977-1-5521200", Lat: 27.6727, Lng: 85.3250},
	{Name: "Bhaktapur Hub", Address: "Durbar Square Gate, Bhaktapur", City: "Bhaktapur", ContactPhone: "+977-1-6611300", Lat: 27.6722, Lng: 85.4280},
	{Name: "Pokhara Lakeside Hub", Address: "Lakeside Road, Pokhara", City: "Pokhara", ContactPhone: "+977-61-465400", Lat: 28.2096, Lng: 83.9856},
}

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := database.New(ctx, dsn)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	svc := hubsvc.New(hubrepo.New(db))

	created := 0
	for i := range hubs {
		h := hubs[i]
		ok, err := svc.Ensure(ctx, &h)
		if err != nil {
			log.Error("hub seed failed", "hub", h.Name, "err", err)
			os.Exit(1)
		}
		if ok {
			created++
			log.Info("hub created", "hub", h.Name, "geohash", h.Geohash)
		} else {
			log.Info("hub already present", "hub", h.Name)
		}
	}

	log.Info("hub seeding done", "created", created, "total", len(hubs))
}
