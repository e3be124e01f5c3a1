package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv pulls in a local .env file when one exists. Deployed
// environments set real environment variables instead.
func LoadEnv() {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}
}
