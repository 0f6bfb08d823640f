package models

import "time"

// Mirror tables replicated from QAD. The dashboard only reads them; the
// gorm models exist for demo seeding and for AutoMigrate in dev
// environments where no replica is available.

type WoMstr struct {
	ID        uint      `gorm:"primaryKey"`
	WoNbr     string    `gorm:"column:wo_nbr;index"`
	WoPart    string    `gorm:"column:wo_part;index"`
	WoQtyOrd  float64   `gorm:"column:wo_qty_ord"`
	WoQtyComp float64   `gorm:"column:wo_qty_comp"`
	WoDueDate time.Time `gorm:"column:wo_due_date"`
	WoStatus  string    `gorm:"column:wo_status"`
	WoDomain  string    `gorm:"column:wo_domain;index"`
}

func (WoMstr) TableName() string { return "wo_mstr" }

type SodDet struct {
	ID         uint      `gorm:"primaryKey"`
	SodNbr     string    `gorm:"column:sod_nbr;index"`
	SodPart    string    `gorm:"column:sod_part;index"`
	SodQtyOrd  float64   `gorm:"column:sod_qty_ord"`
	SodQtyShip float64   `gorm:"column:sod_qty_ship"`
	SodQtyPick float64   `gorm:"column:sod_qty_pick"`
	SodDueDate time.Time `gorm:"column:sod_due_date"`
	SodDomain  string    `gorm:"column:sod_domain;index"`
}

func (SodDet) TableName() string { return "sod_det" }

type SoMstr struct {
	ID       uint   `gorm:"primaryKey"`
	SoNbr    string `gorm:"column:so_nbr;index"`
	SoStatus string `gorm:"column:so_status"`
	SoDomain string `gorm:"column:so_domain;index"`
}

func (SoMstr) TableName() string { return "so_mstr" }

type LdDet struct {
	ID       uint    `gorm:"primaryKey"`
	LdLoc    string  `gorm:"column:ld_loc"`
	LdPart   string  `gorm:"column:ld_part;index"`
	LdSite   string  `gorm:"column:ld_site"`
	LdLot    string  `gorm:"column:ld_lot"`
	LdStatus string  `gorm:"column:ld_status"`
	LdQtyOh  float64 `gorm:"column:ld_qty_oh"`
	LdQtyAll float64 `gorm:"column:ld_qty_all"`
	LdDomain string  `gorm:"column:ld_domain;index"`
}

func (LdDet) TableName() string { return "ld_det" }

type PtMstr struct {
	ID       uint   `gorm:"primaryKey"`
	PtPart   string `gorm:"column:pt_part;index"`
	PtDesc1  string `gorm:"column:pt_desc1"`
	PtDesc2  string `gorm:"column:pt_desc2"`
	PtDomain string `gorm:"column:pt_domain;index"`
}

func (PtMstr) TableName() string { return "pt_mstr" }
