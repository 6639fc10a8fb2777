package user

import "time"

// UserResponse represents user data in API responses
type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	RoleLabel  string  `json:"roleLabel"`
	Photo      *string `json:"photo,omitempty"`
	EmployeeID *string `json:"employeeId,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		RoleLabel:  u.Role.Label(),
		Photo:      u.Photo,
		EmployeeID: u.EmployeeID,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}
