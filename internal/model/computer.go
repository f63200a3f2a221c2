package model

import "time"

type ComputerType string

const (
	ComputerTypeWorkstation ComputerType = "workstation"
	ComputerTypeServer      ComputerType = "server"
)

const ComputerStatusActive = "active"

// Computer is an inventoried machine. It has at most one assignment and any number of installations.
type Computer struct {
	ComputerID      int64        `gorm:"column:computer_id;primaryKey;autoIncrement" json:"computer_id"`
	InventoryNumber string       `gorm:"column:inventory_number;type:varchar(50);uniqueIndex;not null" json:"inventory_number"`
	ComputerType    ComputerType `gorm:"column:computer_type;type:varchar(20);not null;check:chk_computers_type,computer_type IN ('workstation','server')" json:"computer_type"`
	PurchaseDate    time.Time    `gorm:"column:purchase_date;not null" json:"purchase_date"`
	Status          string       `gorm:"type:varchar(20);not null;default:active" json:"status"`

	Assignment    *ComputerAssignment `gorm:"foreignKey:ComputerID;references:ComputerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Installations []Installation      `gorm:"foreignKey:ComputerID;references:ComputerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (Computer) TableName() string { return "computers" }
