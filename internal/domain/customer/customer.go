package customer

import (
	"errors"
	"strings"
	"time"
)

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return errors.New("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New("email is invalid")
	}
	return nil
}

// DisplayName is what pickers and PDFs show: "Name - Company" when a
// company is set, otherwise just the name.
func (c Customer) DisplayName() string {
	if c.Company != "" {
		return c.Name + " - " + c.Company
	}
	return c.Name
}
