package user

// User is an account. Seq is the storage key and insertion order; ID is the public id.
type User struct {
	Seq          uint64 `gorm:"primaryKey;autoIncrement"`
	ID           string `gorm:"type:char(36);uniqueIndex;not null"`
	Username     string `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	PasswordSalt string `gorm:"size:16;not null"`
	CreatedAt    int64  `gorm:"autoCreateTime"`
}
