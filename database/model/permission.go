package model

import (
	"strconv"

	"pinboard/util/common"
)

// Permission is a bitmask of atomic capability flags. Flags are independent
// bits, not a hierarchy: holding MODERATE does not imply COMMENT.
type Permission int

const (
	PermRead     Permission = 1 << iota // view content
	PermComment                         // comment on posts
	PermWrite                           // author posts and news
	PermModerate                        // remove any comment
	PermAdmin                           // reserved for role bitmasks; admin override uses Account.IsAdmin
)

const allPermissions = PermRead | PermComment | PermWrite | PermModerate | PermAdmin

// AllPermissions lists every known flag, in bit order.
func AllPermissions() []Permission {
	return []Permission{PermRead, PermComment, PermWrite, PermModerate, PermAdmin}
}

// Has reports whether p contains every bit of flag. Exact containment, so a
// combined flag like PermRead|PermWrite requires both bits.
func (p Permission) Has(flag Permission) bool {
	return p&flag == flag
}

func (p Permission) String() string {
	switch p {
	case PermRead:
		return "READ"
	case PermComment:
		return "COMMENT"
	case PermWrite:
		return "WRITE"
	case PermModerate:
		return "MODERATE"
	case PermAdmin:
		return "ADMIN"
	}
	return strconv.Itoa(int(p))
}

// ParsePermissions combines form values into a bitmask. Each value must be
// the decimal representation of exactly one known flag; anything else is
// rejected rather than stored.
func ParsePermissions(values []string) (Permission, error) {
	var perms Permission
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, common.NewError("invalid permission flag:", v)
		}
		flag := Permission(n)
		if flag&allPermissions != flag || flag == 0 || flag&(flag-1) != 0 {
			return 0, common.NewError("unknown permission flag:", v)
		}
		perms |= flag
	}
	return perms, nil
}
