package main

import (
	"log"
	"os"

	"github.com/inkwellhq/inkwell/config"
	"github.com/inkwellhq/inkwell/models"
	"github.com/inkwellhq/inkwell/routes"
	"github.com/inkwellhq/inkwell/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		utils.Sugar.Fatalf("create upload dir: %v", err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Blog{},
		&models.Comment{},
		&models.BlogLike{},
		&models.CommentLike{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Notification{},
		&models.Report{},
	)

	router := routes.SetupRouter(db)

	addr := ":" + cfg.AppPort
	utils.Sugar.Infof("listening on %s", addr)
	if err := utils.GraceServer(addr, router); err != nil {
		utils.Sugar.Fatalf("server exited: %v", err)
	}
}
