package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Citizen is a reporter account. Demo citizens seeded at startup carry no
// password and log in through the role endpoint; registered citizens use
// email and password.
type Citizen struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Password  string    `bson:"password,omitempty" json:"-"`
	Points    int       `bson:"points" json:"points"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (c *Citizen) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.Password = string(hashed)
	return nil
}

func (c *Citizen) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(candidate))
	return err == nil
}
