package models

type Ingredient struct {
	ID              uint64 `gorm:"primarykey" json:"id"`
	Name            string `gorm:"type:varchar(200);uniqueIndex:idx_ingredient_name_unit;not null" json:"name"`
	MeasurementUnit string `gorm:"type:varchar(200);uniqueIndex:idx_ingredient_name_unit;not null" json:"measurement_unit"`
}
