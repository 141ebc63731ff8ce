package service

import (
	"pinboard/database/model"
)

// HasPermission decides whether acct holds the given permission flag.
// Rules, in order: anonymous (nil) never passes; IsAdmin passes every check
// regardless of role; no role fails; otherwise the role bitmask must contain
// every bit of flag. Pure function, no side effects.
func HasPermission(acct *model.Account, flag model.Permission) bool {
	if acct == nil {
		return false
	}
	if acct.IsAdmin {
		return true
	}
	if acct.Role == nil {
		return false
	}
	return acct.Role.Permissions.Has(flag)
}

// Decision is the tagged result of a mutation guard. Reason is a message key
// localized at the controller boundary; it is set only on denial.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CanCreatePost requires the WRITE permission.
func CanCreatePost(acct *model.Account) Decision {
	if !HasPermission(acct, model.PermWrite) {
		return deny("guard.writeRequired")
	}
	return allow()
}

// CanCreateNews requires the WRITE permission, same as posts.
func CanCreateNews(acct *model.Account) Decision {
	return CanCreatePost(acct)
}

// CanComment requires the COMMENT permission.
func CanComment(acct *model.Account) Decision {
	if !HasPermission(acct, model.PermComment) {
		return deny("guard.commentRequired")
	}
	return allow()
}

// CanModifyOwned covers edit and delete of posts, news and comment edits:
// only the author or an admin may mutate.
func CanModifyOwned(acct *model.Account, authorId int) Decision {
	if acct == nil {
		return deny("guard.modifyDenied")
	}
	if acct.IsAdmin || acct.Id == authorId {
		return allow()
	}
	return deny("guard.modifyDenied")
}

// CanDeleteComment allows the comment author, an admin, or any identity
// holding MODERATE. The MODERATE variant is the chosen moderation rule;
// without it the flag seeded into the Moderator role would gate nothing.
func CanDeleteComment(acct *model.Account, authorId int) Decision {
	if acct == nil {
		return deny("guard.modifyDenied")
	}
	if acct.IsAdmin || acct.Id == authorId || HasPermission(acct, model.PermModerate) {
		return allow()
	}
	return deny("guard.modifyDenied")
}

// RequireAdmin gates category, role and user administration.
func RequireAdmin(acct *model.Account) Decision {
	if acct == nil || !acct.IsAdmin {
		return deny("guard.adminRequired")
	}
	return allow()
}

// CanToggleActive requires an admin acting on somebody else's account;
// self-deactivation is forbidden.
func CanToggleActive(actor *model.Account, targetId int) Decision {
	if d := RequireAdmin(actor); !d.Allowed {
		return d
	}
	if actor.Id == targetId {
		return deny("guard.selfToggle")
	}
	return allow()
}
