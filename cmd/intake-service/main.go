package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ndisproject/hrm-backend/internal/config"
	"github.com/ndisproject/hrm-backend/internal/db"
	"github.com/ndisproject/hrm-backend/internal/handlers"
	"github.com/ndisproject/hrm-backend/internal/storage"
	"github.com/ndisproject/hrm-backend/scripts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbConn, err := db.Connect(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := scripts.Migrate(dbConn); err != nil {
		log.Fatal(err)
	}

	store, err := storage.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()
	handlers.SetupRoutes(r, &handlers.Deps{DB: dbConn, Store: store, Cfg: cfg})

	log.Printf("Intake service listening on %s", cfg.HTTPPort)
	if err := r.Run(cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
