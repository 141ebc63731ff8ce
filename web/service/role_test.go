package service

import (
	"errors"
	"testing"

	"pinboard/database/model"
)

func TestSeededRoles(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleService(db)

	all, err := roles.AllRoles()
	if err != nil {
		t.Fatalf("all roles: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 seeded roles, got %d", len(all))
	}

	want := map[string]model.Permission{
		"User":      model.PermRead | model.PermComment,
		"Moderator": model.PermRead | model.PermComment | model.PermWrite | model.PermModerate,
		"Admin":     model.PermRead | model.PermComment | model.PermWrite | model.PermModerate | model.PermAdmin,
	}
	for _, role := range all {
		perms, ok := want[role.Name]
		if !ok {
			t.Errorf("unexpected role %q", role.Name)
			continue
		}
		if role.Permissions != perms {
			t.Errorf("role %q permissions = %d, want %d", role.Name, role.Permissions, perms)
		}
	}
}

func TestRoleCRUD(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleService(db)
	activity := NewActivityService(db)

	role, err := roles.CreateRole(1, "Reader", model.PermRead)
	if err != nil {
		t.Fatalf("create role: %v", err)
	}

	if err := roles.UpdateRole(1, role.Id, "Reader", model.PermRead|model.PermComment); err != nil {
		t.Fatalf("update role: %v", err)
	}
	reloaded, err := roles.GetRole(role.Id)
	if err != nil {
		t.Fatalf("get role: %v", err)
	}
	if !reloaded.Permissions.Has(model.PermComment) {
		t.Error("updated bitmask not applied")
	}

	if err := roles.DeleteRole(1, role.Id); err != nil {
		t.Fatalf("delete role: %v", err)
	}
	if _, err := roles.GetRole(role.Id); err == nil {
		t.Error("deleted role should be gone")
	}

	records, err := activity.Recent(10)
	if err != nil {
		t.Fatalf("recent activity: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("want 3 audit records, got %d", len(records))
	}
}

func TestDeleteRoleInUse(t *testing.T) {
	db := newTestDB(t)
	roles := NewRoleService(db)
	users := NewUserService(db)

	alice := registerWithRole(t, db, users, "alice", "User")

	err := roles.DeleteRole(1, *alice.RoleId)
	if !errors.Is(err, ErrRoleInUse) {
		t.Fatalf("want ErrRoleInUse, got %v", err)
	}

	// Unassign and retry.
	if err := db.Model(&model.Account{}).Where("id = ?", alice.Id).Update("role_id", nil).Error; err != nil {
		t.Fatalf("unassign role: %v", err)
	}
	if err := roles.DeleteRole(1, *alice.RoleId); err != nil {
		t.Fatalf("delete after unassign: %v", err)
	}
}
