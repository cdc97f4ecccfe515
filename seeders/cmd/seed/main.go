package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"rental-system/pkg/config"
	"rental-system/pkg/database/postgresql"
	"rental-system/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	runCore := flag.Bool("core", false, "Наполнить справочники прав и ролей")
	runAdmin := flag.Bool("admin", false, "Создать администратора")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	flag.Parse()

	if !*runCore && !*runAdmin && !*runAll {
		log.Println("Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if *runAll || *runCore {
		seeders.SeedCore(db)
	}
	if *runAll || *runAdmin {
		seeders.SeedAdmin(db)
	}
}
