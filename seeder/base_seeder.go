package seed

import (
	"fmt"
	"time"

	"eyefi-app/config"
	"eyefi-app/models"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"
	"gorm.io/gorm"
)

func SeedUsers(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Println("Failed to hash seed password:", err)
		return
	}

	users := []models.User{
		{Username: "admin", Name: "Administrator", Email: "admin@eyefi.local", Role: "admin", Password: string(hash)},
		{Username: "planner", Name: "Production Planner", Email: "planner@eyefi.local", Role: "planner", Password: string(hash)},
	}

	for _, u := range users {
		var existing models.User
		if err := db.Where("username = ?", u.Username).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&u)
			}
		}
	}
}

// SeedDemoErpData fills the mirror tables with a handful of parts so the
// dashboard works without a QAD replica. Quantities get a little jitter so
// the demo shows all three statuses. Skipped when wo_mstr already has rows.
func SeedDemoErpData(db *gorm.DB) {
	var count int64
	db.Model(&models.WoMstr{}).Count(&count)
	if count > 0 {
		return
	}

	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	now := time.Now()
	domain := config.ErpDomain

	parts := []string{"EF-1001", "EF-1002", "EF-2001", "EF-3001", "EF-3002"}

	for i, part := range parts {
		baseQty := float64(100 + rng.Intn(400))

		db.Create(&models.WoMstr{
			WoNbr:     fmt.Sprintf("W%05d", 1000+i),
			WoPart:    part,
			WoQtyOrd:  baseQty,
			WoQtyComp: 0,
			WoDueDate: now.AddDate(0, 0, 5+rng.Intn(40)),
			WoStatus:  "R",
			WoDomain:  domain,
		})

		soNbr := fmt.Sprintf("S%05d", 2000+i)
		db.Create(&models.SoMstr{SoNbr: soNbr, SoStatus: "O", SoDomain: domain})
		db.Create(&models.SodDet{
			SodNbr:     soNbr,
			SodPart:    part,
			SodQtyOrd:  baseQty + float64(rng.Intn(120)) - 50,
			SodQtyShip: 0,
			SodDueDate: now.AddDate(0, 0, 10+rng.Intn(200)),
			SodDomain:  domain,
		})

		db.Create(&models.LdDet{
			LdLoc:    "100",
			LdPart:   part,
			LdSite:   "EYE1",
			LdStatus: "GOOD",
			LdQtyOh:  float64(rng.Intn(80)),
			LdQtyAll: 0,
			LdDomain: domain,
		})

		db.Create(&models.PtMstr{
			PtPart:   part,
			PtDesc1:  "Demo part " + part,
			PtDomain: domain,
		})
	}
}
