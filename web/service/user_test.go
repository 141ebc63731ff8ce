package service

import (
	"errors"
	"testing"

	"pinboard/database/model"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	account, err := users.Register("alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.PasswordHash == "secret123" || account.PasswordHash == "" {
		t.Error("password must be stored as a hash")
	}
	if !account.Active {
		t.Error("new accounts should be active")
	}
	if account.IsAdmin {
		t.Error("new accounts should not be admin")
	}
	if account.RoleId != nil {
		t.Error("new accounts should have no role")
	}

	t.Run("duplicate username", func(t *testing.T) {
		_, err := users.Register("alice", "other@example.com", "secret123")
		if !errors.Is(err, ErrDuplicateAccount) {
			t.Errorf("want ErrDuplicateAccount, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := users.Register("bob", "alice@example.com", "secret123")
		if !errors.Is(err, ErrDuplicateAccount) {
			t.Errorf("want ErrDuplicateAccount, got %v", err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		if _, err := users.Register("", "x@example.com", "secret123"); err == nil {
			t.Error("empty username should be rejected")
		}
	})
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	registerWithRole(t, db, users, "alice", "User")

	t.Run("valid credentials", func(t *testing.T) {
		account, err := users.Authenticate("alice", "secret123")
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}
		if account.Role == nil {
			t.Error("authenticated account should carry its role")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := users.Authenticate("alice", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("want ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := users.Authenticate("nobody", "secret123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("want ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("deactivated account", func(t *testing.T) {
		admin, err := users.GetAccountByUsername("admin")
		if err != nil {
			t.Fatalf("load admin: %v", err)
		}
		alice, err := users.GetAccountByUsername("alice")
		if err != nil {
			t.Fatalf("load alice: %v", err)
		}
		if _, err := users.ToggleActive(admin.Id, alice.Id); err != nil {
			t.Fatalf("deactivate: %v", err)
		}
		_, err = users.Authenticate("alice", "secret123")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("want ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestBootstrapAdmin(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	admin, err := users.Authenticate("admin", "admin")
	if err != nil {
		t.Fatalf("bootstrap admin login: %v", err)
	}
	if !admin.IsAdmin {
		t.Error("bootstrap account should be admin")
	}
}

func TestToggleActive(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	activity := NewActivityService(db)

	admin, err := users.GetAccountByUsername("admin")
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	alice := registerWithRole(t, db, users, "alice", "User")

	active, err := users.ToggleActive(admin.Id, alice.Id)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if active {
		t.Error("toggle should deactivate an active account")
	}

	active, err = users.ToggleActive(admin.Id, alice.Id)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !active {
		t.Error("second toggle should reactivate")
	}

	if _, err := users.ToggleActive(admin.Id, admin.Id); err == nil {
		t.Error("self-toggle should be rejected")
	}

	records, err := activity.Recent(10)
	if err != nil {
		t.Fatalf("recent activity: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("want 2 audit records, got %d", len(records))
	}
	for _, r := range records {
		if r.ActorId != admin.Id {
			t.Errorf("audit actor = %d, want %d", r.ActorId, admin.Id)
		}
	}
}

func TestUpdateAccount(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)

	admin, err := users.GetAccountByUsername("admin")
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	alice := registerWithRole(t, db, users, "alice", "User")
	registerWithRole(t, db, users, "bob", "User")

	t.Run("rename collision", func(t *testing.T) {
		err := users.UpdateAccount(admin.Id, alice.Id, "bob", alice.Email, alice.RoleId)
		if !errors.Is(err, ErrDuplicateAccount) {
			t.Errorf("want ErrDuplicateAccount, got %v", err)
		}
	})

	t.Run("assign and unassign role", func(t *testing.T) {
		role := &model.Role{}
		if err := db.Where("name = ?", "Moderator").First(role).Error; err != nil {
			t.Fatalf("load role: %v", err)
		}
		if err := users.AssignRole(admin.Id, alice.Id, &role.Id); err != nil {
			t.Fatalf("assign: %v", err)
		}
		reloaded, err := users.GetAccount(alice.Id)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if reloaded.Role == nil || reloaded.Role.Name != "Moderator" {
			t.Errorf("role not assigned: %+v", reloaded.Role)
		}
		if err := users.AssignRole(admin.Id, alice.Id, nil); err != nil {
			t.Fatalf("unassign: %v", err)
		}
		reloaded, err = users.GetAccount(alice.Id)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if reloaded.RoleId != nil {
			t.Error("role should be unassigned")
		}
		missing := 9999
		if err := users.AssignRole(admin.Id, alice.Id, &missing); err == nil {
			t.Error("assigning a missing role should fail")
		}
	})

	t.Run("role change applies", func(t *testing.T) {
		role := &model.Role{}
		if err := db.Where("name = ?", "Moderator").First(role).Error; err != nil {
			t.Fatalf("load role: %v", err)
		}
		if err := users.UpdateAccount(admin.Id, alice.Id, "alice", alice.Email, &role.Id); err != nil {
			t.Fatalf("update: %v", err)
		}
		reloaded, err := users.GetAccount(alice.Id)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if reloaded.Role == nil || reloaded.Role.Name != "Moderator" {
			t.Errorf("role not applied: %+v", reloaded.Role)
		}
	})
}

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	posts := NewPostService(db)
	news := NewNewsService(db)

	alice := registerWithRole(t, db, users, "alice", "Moderator")
	bob := registerWithRole(t, db, users, "bob", "Moderator")

	alicePost, err := posts.CreatePost(alice.Id, "Hello", "First post", nil, "")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	bobPost, err := posts.CreatePost(bob.Id, "Other", "Bob's post", nil, "")
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	// Bob comments on Alice's post, Alice comments on Bob's.
	if _, err := posts.AddComment(bob.Id, alicePost.Id, "nice"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := posts.AddComment(alice.Id, bobPost.Id, "thanks"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := news.CreateNews(alice.Id, "Update", "Body", "General"); err != nil {
		t.Fatalf("create news: %v", err)
	}

	if err := users.DeleteAccount(alice.Id); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := users.GetAccount(alice.Id); err == nil {
		t.Error("deleted account should be gone")
	}
	if _, err := posts.GetPost(alicePost.Id); err == nil {
		t.Error("deleted account's post should be gone")
	}
	comments, err := posts.Comments(bobPost.Id)
	if err != nil {
		t.Fatalf("comments: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("deleted account's comments should be gone, got %d", len(comments))
	}
	allNews, err := news.AllNews()
	if err != nil {
		t.Fatalf("news: %v", err)
	}
	if len(allNews) != 0 {
		t.Errorf("deleted account's news should be gone, got %d", len(allNews))
	}
	if _, err := posts.GetPost(bobPost.Id); err != nil {
		t.Errorf("bob's post should survive: %v", err)
	}
}
