// Package testdata keeps small fixture datasets (users and IP addresses) in
// a single JSON file, cached in memory and written back on every mutation.
package testdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("entry not found")

// User is one fixture account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
}

// IPAddress is one fixture network address.
type IPAddress struct {
	ID       int    `json:"id"`
	Address  string `json:"address"`
	Location string `json:"location"`
	Active   bool   `json:"active"`
}

type fileData struct {
	Users []User      `json:"users"`
	IPs   []IPAddress `json:"ip_addresses"`
}

// Store is the file-backed fixture store. All reads hit the in-memory copy;
// every mutation rewrites the whole file.
type Store struct {
	mu   sync.Mutex
	path string
	data fileData
	log  zerolog.Logger
}

// Open loads the store from path, starting empty when the file does not
// exist yet.
func Open(path string, log zerolog.Logger) (*Store, error) {
	s := &Store{path: path, log: log}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &s.data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) flush() error {
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) AddUser(username, email string, active bool) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := User{ID: nextUserID(s.data.Users), Username: username, Email: email, Active: active}
	s.data.Users = append(s.data.Users, u)
	if err := s.flush(); err != nil {
		s.data.Users = s.data.Users[:len(s.data.Users)-1]
		return User{}, err
	}
	s.log.Debug().Str("username", username).Msg("test user added")
	return u, nil
}

func nextUserID(users []User) int {
	max := 0
	for _, u := range users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

func (s *Store) UserByID(id int) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *Store) UserByName(username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// RandomActiveUser picks uniformly among active users.
func (s *Store) RandomActiveUser() (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []User
	for _, u := range s.data.Users {
		if u.Active {
			active = append(active, u)
		}
	}
	if len(active) == 0 {
		return User{}, ErrNotFound
	}
	return active[rand.Intn(len(active))], nil
}

func (s *Store) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]User(nil), s.data.Users...)
}

func (s *Store) AddIP(address, location string, active bool) (IPAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	max := 0
	for _, ip := range s.data.IPs {
		if ip.ID > max {
			max = ip.ID
		}
	}
	ip := IPAddress{ID: max + 1, Address: address, Location: location, Active: active}
	s.data.IPs = append(s.data.IPs, ip)
	if err := s.flush(); err != nil {
		s.data.IPs = s.data.IPs[:len(s.data.IPs)-1]
		return IPAddress{}, err
	}
	return ip, nil
}

func (s *Store) IPByID(id int) (IPAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ip := range s.data.IPs {
		if ip.ID == id {
			return ip, nil
		}
	}
	return IPAddress{}, ErrNotFound
}

// RandomActiveIP picks uniformly among active addresses.
func (s *Store) RandomActiveIP() (IPAddress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []IPAddress
	for _, ip := range s.data.IPs {
		if ip.Active {
			active = append(active, ip)
		}
	}
	if len(active) == 0 {
		return IPAddress{}, ErrNotFound
	}
	return active[rand.Intn(len(active))], nil
}

func (s *Store) IPs() []IPAddress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]IPAddress(nil), s.data.IPs...)
}

// Clear empties both datasets and rewrites the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fileData{}
	return s.flush()
}
