package model

// Role is the closed set of application roles. Each role maps to its own database scope.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSupervisor:
		return true
	}
	return false
}

// User is an operator of the API. Deleting a user removes their audit trail.
type User struct {
	UserID   int64  `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;check:chk_users_role,role IN ('admin','manager','supervisor')" json:"role"`
	FullName string `gorm:"type:varchar(100);not null" json:"full_name"`

	AuditLogs []AuditLog `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }
