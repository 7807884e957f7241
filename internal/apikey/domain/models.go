package domain

// APIKey stores the sha-256 hash of an access key. Only the admin row is
// consulted by the admin-key guard.
type APIKey struct {
	Key   string `gorm:"column:key;primaryKey;size:64"`
	Admin bool   `gorm:"column:admin;not null;default:false"`
}

func (APIKey) TableName() string { return "api_keys" }
