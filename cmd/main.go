package main

import (
	"log"

	"gw-converter-cli/internal/app"
)

func main() {
	app, err := app.NewApp()
	if err != nil {
		log.Fatalf("Ошибка создания приложения: %v", err)
	}

	app.BuildAuthLayer()
	if err := app.BuildConverterLayer(); err != nil {
		log.Fatalf("Ошибка сборки приложения: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Ошибка при работе приложения: %v", err)
	}
}
