// Package auth holds the credential allow-list, bearer tokens and the route
// guard that gate the HTTP shell.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
)

// MaxEnvUsers is the number of WEEKPLAN_USER<n>_* slots read from the
// environment.
const MaxEnvUsers = 3

// User is one allow-listed login.
type User struct {
	Username string
	Password string
}

// Credentials is a fixed allow-list of users.
type Credentials struct {
	users []User
}

// NewCredentials builds an allow-list. Entries missing a username or a
// password are dropped.
func NewCredentials(users ...User) *Credentials {
	c := &Credentials{}
	for _, u := range users {
		if strings.TrimSpace(u.Username) == "" || u.Password == "" {
			continue
		}
		c.users = append(c.users, u)
	}
	return c
}

// CredentialsFromEnv reads WEEKPLAN_USER1_USERNAME / WEEKPLAN_USER1_PASSWORD
// through WEEKPLAN_USER3_*. getenv is usually os.Getenv.
func CredentialsFromEnv(getenv func(string) string) *Credentials {
	users := make([]User, 0, MaxEnvUsers)
	for i := 1; i <= MaxEnvUsers; i++ {
		users = append(users, User{
			Username: getenv(fmt.Sprintf("WEEKPLAN_USER%d_USERNAME", i)),
			Password: getenv(fmt.Sprintf("WEEKPLAN_USER%d_PASSWORD", i)),
		})
	}
	return NewCredentials(users...)
}

// Len returns the number of usable entries.
func (c *Credentials) Len() int {
	return len(c.users)
}

// Check reports whether username and password match an entry. Every entry
// is compared so timing does not reveal which usernames exist.
func (c *Credentials) Check(username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	matched := 0
	for _, u := range c.users {
		nameOK := subtle.ConstantTimeCompare([]byte(u.Username), []byte(username))
		passOK := subtle.ConstantTimeCompare([]byte(u.Password), []byte(password))
		matched |= nameOK & passOK
	}
	return matched == 1
}
