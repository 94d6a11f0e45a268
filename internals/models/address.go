package models

type Address struct {
	ID       uint   `gorm:"column:address_id;primaryKey" json:"id"`
	Street   string `gorm:"column:street_name" json:"street"`
	Barangay string `gorm:"column:barangay_name" json:"barangay"`
	City     string `gorm:"column:city_name" json:"city"`
	Province string `gorm:"column:province_name" json:"province"`
}

func (Address) TableName() string {
	return "address"
}
