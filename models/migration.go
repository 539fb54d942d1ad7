package models

import (
	"log"

	"bitbucket.org/ksar/surveillance_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Plant{}, &Unit{},
		&ReactorVessel{}, &ReactorVesselSector{}, &Placement{},
		&CouponComplect{}, &ContainerSystem{},
		&CouponLoad{}, &CouponExtract{},
		&Document{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
