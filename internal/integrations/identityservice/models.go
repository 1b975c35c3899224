package identityservice

// RoleAdmin роль администратора панели бронирований
const RoleAdmin = "admin"

// User модель пользователя IdentityService
type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// HasRole returns true if the user carries the given role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
