package testdata

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_data.json")
	s, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, path
}

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	s, _ := openTestStore(t)
	if len(s.Users()) != 0 || len(s.IPs()) != 0 {
		t.Error("expected empty store")
	}
}

func TestAddUser_PersistsAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)
	u, err := s.AddUser("alice", "alice@example.com", true)
	if err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("first id = %d", u.ID)
	}

	reopened, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.UserByName("alice")
	if err != nil {
		t.Fatalf("UserByName: %v", err)
	}
	if got.Email != "alice@example.com" || !got.Active {
		t.Errorf("user = %+v", got)
	}
}

func TestUserIDs_Increment(t *testing.T) {
	s, _ := openTestStore(t)
	for _, name := range []string{"a", "b", "c"} {
		if _, err := s.AddUser(name, name+"@example.com", true); err != nil {
			t.Fatalf("AddUser: %v", err)
		}
	}
	u, err := s.UserByID(3)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if u.Username != "c" {
		t.Errorf("user 3 = %+v", u)
	}
}

func TestLookups_NotFound(t *testing.T) {
	s, _ := openTestStore(t)
	if _, err := s.UserByID(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByID: %v", err)
	}
	if _, err := s.UserByName("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserByName: %v", err)
	}
	if _, err := s.IPByID(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("IPByID: %v", err)
	}
}

func TestRandomActiveUser_SkipsInactive(t *testing.T) {
	s, _ := openTestStore(t)
	if _, err := s.AddUser("inactive", "i@example.com", false); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if _, err := s.RandomActiveUser(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound with no active users, got %v", err)
	}

	if _, err := s.AddUser("active", "a@example.com", true); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	for i := 0; i < 10; i++ {
		u, err := s.RandomActiveUser()
		if err != nil {
			t.Fatalf("RandomActiveUser: %v", err)
		}
		if !u.Active {
			t.Fatalf("picked inactive user %+v", u)
		}
	}
}

func TestIPs(t *testing.T) {
	s, _ := openTestStore(t)
	ip, err := s.AddIP("10.0.0.1", "eu-west", true)
	if err != nil {
		t.Fatalf("AddIP: %v", err)
	}
	got, err := s.IPByID(ip.ID)
	if err != nil {
		t.Fatalf("IPByID: %v", err)
	}
	if got.Location != "eu-west" {
		t.Errorf("ip = %+v", got)
	}
	picked, err := s.RandomActiveIP()
	if err != nil || picked.Address != "10.0.0.1" {
		t.Errorf("RandomActiveIP: %+v %v", picked, err)
	}
}

func TestClear(t *testing.T) {
	s, path := openTestStore(t)
	if _, err := s.AddUser("a", "a@example.com", true); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if _, err := s.AddIP("10.0.0.1", "x", true); err != nil {
		t.Fatalf("AddIP: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	reopened, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(reopened.Users()) != 0 || len(reopened.IPs()) != 0 {
		t.Error("expected cleared store after reopen")
	}
}
