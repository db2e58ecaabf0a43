package domain

// User - запись пользователя, полученная из сервиса пользователей.
// Сервис продаж пользователей не хранит; используется только для проверки существования.
type User struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
}
