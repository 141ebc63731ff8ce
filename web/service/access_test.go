package service

import (
	"testing"

	"pinboard/database/model"
)

func accountWithRole(id int, perms model.Permission) *model.Account {
	return &model.Account{
		Id:     id,
		Active: true,
		Role:   &model.Role{Permissions: perms},
	}
}

func adminAccount(id int) *model.Account {
	return &model.Account{Id: id, IsAdmin: true, Active: true}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name string
		acct *model.Account
		flag model.Permission
		want bool
	}{
		{"anonymous never passes", nil, model.PermRead, false},
		{"admin passes without role", adminAccount(1), model.PermModerate, true},
		{"admin passes despite weak role", &model.Account{Id: 1, IsAdmin: true, Role: &model.Role{Permissions: model.PermRead}}, model.PermAdmin, true},
		{"no role fails", &model.Account{Id: 2, Active: true}, model.PermRead, false},
		{"role with flag passes", accountWithRole(3, model.PermRead|model.PermComment), model.PermComment, true},
		{"role without flag fails", accountWithRole(3, model.PermRead|model.PermComment), model.PermWrite, false},
		{"moderate alone does not grant comment", accountWithRole(4, model.PermModerate), model.PermComment, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasPermission(tc.acct, tc.flag); got != tc.want {
				t.Errorf("HasPermission() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCreateGuards(t *testing.T) {
	user := accountWithRole(1, model.PermRead|model.PermComment)
	moderator := accountWithRole(2, model.PermRead|model.PermComment|model.PermWrite|model.PermModerate)

	tests := []struct {
		name    string
		d       Decision
		allowed bool
		reason  string
	}{
		{"anonymous cannot post", CanCreatePost(nil), false, "guard.writeRequired"},
		{"user without write cannot post", CanCreatePost(user), false, "guard.writeRequired"},
		{"moderator can post", CanCreatePost(moderator), true, ""},
		{"admin can post without role", CanCreatePost(adminAccount(9)), true, ""},
		{"news follows the same rule", CanCreateNews(user), false, "guard.writeRequired"},
		{"anonymous cannot comment", CanComment(nil), false, "guard.commentRequired"},
		{"user can comment", CanComment(user), true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.d.Allowed != tc.allowed {
				t.Fatalf("Allowed = %v, want %v", tc.d.Allowed, tc.allowed)
			}
			if tc.d.Reason != tc.reason {
				t.Errorf("Reason = %q, want %q", tc.d.Reason, tc.reason)
			}
		})
	}
}

func TestCanModifyOwned(t *testing.T) {
	author := accountWithRole(1, model.PermRead|model.PermComment|model.PermWrite)
	other := accountWithRole(2, model.PermRead|model.PermComment|model.PermWrite|model.PermModerate)

	if d := CanModifyOwned(author, author.Id); !d.Allowed {
		t.Error("author should modify own content")
	}
	if d := CanModifyOwned(other, author.Id); d.Allowed {
		t.Error("non-author should not modify somebody else's content")
	}
	if d := CanModifyOwned(adminAccount(3), author.Id); !d.Allowed {
		t.Error("admin should modify any content")
	}
	if d := CanModifyOwned(nil, author.Id); d.Allowed {
		t.Error("anonymous should never modify content")
	}
}

func TestCanDeleteComment(t *testing.T) {
	author := accountWithRole(1, model.PermRead|model.PermComment)
	moderator := accountWithRole(2, model.PermRead|model.PermComment|model.PermWrite|model.PermModerate)
	bystander := accountWithRole(3, model.PermRead|model.PermComment)

	if d := CanDeleteComment(author, author.Id); !d.Allowed {
		t.Error("comment author should delete own comment")
	}
	if d := CanDeleteComment(moderator, author.Id); !d.Allowed {
		t.Error("moderator should delete any comment")
	}
	if d := CanDeleteComment(bystander, author.Id); d.Allowed {
		t.Error("bystander should not delete somebody else's comment")
	}
	if d := CanDeleteComment(adminAccount(4), author.Id); !d.Allowed {
		t.Error("admin should delete any comment")
	}
}

func TestAdminGuards(t *testing.T) {
	admin := adminAccount(1)
	moderator := accountWithRole(2, model.PermRead|model.PermComment|model.PermWrite|model.PermModerate)

	if d := RequireAdmin(moderator); d.Allowed || d.Reason != "guard.adminRequired" {
		t.Errorf("moderator should not pass the admin guard, got %+v", d)
	}
	if d := RequireAdmin(nil); d.Allowed {
		t.Error("anonymous should not pass the admin guard")
	}
	if d := RequireAdmin(admin); !d.Allowed {
		t.Error("admin should pass the admin guard")
	}

	if d := CanToggleActive(admin, 5); !d.Allowed {
		t.Error("admin should toggle another account")
	}
	if d := CanToggleActive(admin, admin.Id); d.Allowed || d.Reason != "guard.selfToggle" {
		t.Errorf("self-toggle should be rejected, got %+v", d)
	}
	if d := CanToggleActive(moderator, 5); d.Allowed {
		t.Error("non-admin should not toggle accounts")
	}
}
