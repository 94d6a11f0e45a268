package models

// Employee is the role profile for employee accounts. It shares its primary
// key with the owning Account row and references the Address created for it
// during the same provisioning transaction.
type Employee struct {
	AccountID  uint   `gorm:"column:employee_id;primaryKey" json:"accountId"`
	FirstName  string `gorm:"column:first_name" json:"firstName"`
	LastName   string `gorm:"column:last_name" json:"lastName"`
	MiddleName string `gorm:"column:middle_name" json:"middleName,omitempty"`
	AddressID  uint   `gorm:"column:address_id" json:"addressId"`
}

func (Employee) TableName() string {
	return "employee"
}
