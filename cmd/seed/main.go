package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"ecotrack/internal/database"
	"ecotrack/internal/domain"
	"ecotrack/internal/pkg/codes"
)

// Seeds a batch of available master codes so company admins can be
// onboarded in a fresh environment.
func main() {
	count := flag.Int("n", 5, "number of master codes to create")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "ecotrack.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Println("Creating master codes...")
	for i := 0; i < *count; i++ {
		mc := domain.MasterCode{
			Code:   newMasterCode(rnd),
			Status: domain.MasterCodeAvailable,
		}
		if err := db.Create(&mc).Error; err != nil {
			log.Fatal("failed to create master code:", err)
		}
		log.Println("Master code created:", mc.Code)
	}
}

func newMasterCode(rnd *rand.Rand) string {
	const suffixLen = 8
	buf := make([]byte, 0, 4+suffixLen)
	buf = append(buf, "MST-"...)
	for i := 0; i < suffixLen; i++ {
		buf = append(buf, codes.Alphabet[rnd.Intn(len(codes.Alphabet))])
	}
	return string(buf)
}
