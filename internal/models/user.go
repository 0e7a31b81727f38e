package models

import "time"

// Role определяет роль пользователя
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleUser      Role = "User"
	RoleAffiliate Role = "Affiliate"
)

// PasswordKind is the discriminator of the stored password representation.
type PasswordKind string

const (
	// PasswordPlaintext is used by legacy seed accounts only.
	PasswordPlaintext PasswordKind = "plaintext"
	// PasswordBcrypt is used for every account created through registration.
	PasswordBcrypt PasswordKind = "bcrypt"
)

// Password хранит пароль вместе с типом его представления
type Password struct {
	Kind  PasswordKind `json:"kind"`
	Value string       `json:"-"` // никогда не сериализуем
}

// PlaintextPassword оборачивает пароль legacy-пользователя
func PlaintextPassword(value string) Password {
	return Password{Kind: PasswordPlaintext, Value: value}
}

// BcryptPassword оборачивает bcrypt хеш
func BcryptPassword(hash string) Password {
	return Password{Kind: PasswordBcrypt, Value: hash}
}

// User представляет пользователя в каталоге
type User struct {
	CreatedAt time.Time `json:"created_at"` // время создания
	Username  string    `json:"username"`   // логин (уникален только для зарегистрированных)
	Role      Role      `json:"role"`       // роль пользователя
	Password  Password  `json:"-"`          // пароль или bcrypt хеш
	Vehicles  []Vehicle `json:"vehicles"`   // nil если поле отсутствует (Admin/Affiliate)
}

// Clone returns a deep copy so callers never share the directory's slices.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Vehicles != nil {
		c.Vehicles = make([]Vehicle, len(u.Vehicles))
		copy(c.Vehicles, u.Vehicles)
	}
	return &c
}

// VehicleList returns the display strings of the user's vehicles.
// A user without the vehicles field gets an empty, non-nil list.
func (u *User) VehicleList() []string {
	list := make([]string, 0, len(u.Vehicles))
	for _, v := range u.Vehicles {
		list = append(list, v.String())
	}
	return list
}
