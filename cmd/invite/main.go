package main

import (
	"context"
	"flag"
	"log"
	"time"

	"tsai-chat-be/internal/config"
	"tsai-chat-be/internal/entity"
	"tsai-chat-be/internal/repository/unitofwork"
	"tsai-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Mints single-use invite codes. Registration is invite-only; this tool is
// the only code issuer.
func main() {
	count := flag.Int("n", 1, "number of invite codes to mint")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DATABASE_URL is not set")
	}

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)

	for i := 0; i < *count; i++ {
		invite := &entity.InviteCode{
			Code:      uuid.New(),
			CreatedAt: time.Now(),
		}
		if err := uow.InviteCodeRepository().Create(ctx, invite); err != nil {
			log.Fatalf("Error: Failed to create invite code: %v", err)
		}
		color.Green("Invite code: %s", invite.Code)
	}
}
