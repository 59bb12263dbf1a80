package types

import (
	"gorm.io/datatypes"
)

// Business is a directory entry scored on sustainability metrics. Rows are
// bulk-ingested at initialization and immutable afterwards.
type Business struct {
	ID                  uint                        `gorm:"primaryKey" json:"id"`
	BrandName           string                      `gorm:"uniqueIndex;not null;column:brand_name" json:"brand_name"`
	Website             string                      `gorm:"column:website" json:"website"`
	Description         string                      `gorm:"type:text;column:description" json:"description"`
	Category            string                      `gorm:"index;column:category" json:"category"`
	Certifications      datatypes.JSONSlice[string] `gorm:"column:certifications" json:"certifications"`
	SustainabilityScore float64                     `gorm:"column:sustainability_score" json:"sustainability_score"`
	EcoMaterialsScore   float64                     `gorm:"column:eco_materials_score" json:"eco_materials_score"`
	CarbonFootprint     float64                     `gorm:"column:carbon_footprint" json:"carbon_footprint"`
	WaterUsage          float64                     `gorm:"column:water_usage" json:"water_usage"`
	WorkerWelfare       float64                     `gorm:"column:worker_welfare" json:"worker_welfare"`
	Year                int                         `gorm:"column:year" json:"year"`
	Latitude            float64                     `gorm:"column:latitude" json:"latitude"`
	Longitude           float64                     `gorm:"column:longitude" json:"longitude"`
	City                string                      `gorm:"index;column:city" json:"city"`
	State               string                      `gorm:"size:2;index;column:state" json:"state"`
	ZipCode             string                      `gorm:"column:zip_code" json:"zip_code"`
}

func (Business) TableName() string { return "businesses" }
