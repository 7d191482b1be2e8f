// Package domain contains the core business entities for the Reseña book-review platform.
package domain

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// profileImageCount is the number of stock profile images the front-end ships.
const profileImageCount = 8

// User represents a registered account.
// Users are created once at registration and never updated or deleted.
type User struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"usuario"`
	PasswordHash string    `json:"-"` // never serialized
	ProfileImage string    `json:"perfil"`
}

// RandomProfileImage picks one of the stock profile image paths served by
// the front-end. New users get one assigned at registration.
func RandomProfileImage() string {
	return fmt.Sprintf("/img/pfp/profile-%d.png", rand.IntN(profileImageCount)+1)
}
