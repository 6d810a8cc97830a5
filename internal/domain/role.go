package domain

// Role is the descriptive role a member holds within a stable. It is a closed
// enumeration; construct from external input via ParseRole.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
	RoleRider     Role = "rider"
	RoleFarrier   Role = "farrier"
	RoleVet       Role = "vet"
	RoleTrainer   Role = "trainer"
	RoleTherapist Role = "therapist"
	RoleGuest     Role = "guest"
)

// roleLabels is the single source of truth for role display labels.
var roleLabels = map[Role]string{
	RoleAdmin:     "Admin",
	RoleStaff:     "Staff",
	RoleRider:     "Rider",
	RoleFarrier:   "Farrier",
	RoleVet:       "Vet",
	RoleTrainer:   "Trainer",
	RoleTherapist: "Therapist",
	RoleGuest:     "Guest",
}

// IsValid checks whether the role is one of the supported enum values.
func (r Role) IsValid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the display label for the role. Unknown values fail closed to
// the raw tag so a stale or future role never crashes a caller.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

func (r Role) String() string {
	return string(r)
}

// AccessLevel is the capability tier a member holds, orthogonal to Role.
type AccessLevel string

const (
	AccessOwner AccessLevel = "owner"
	AccessEdit  AccessLevel = "edit"
	AccessView  AccessLevel = "view"
)

// accessRank orders tiers for monotonic capability checks.
var accessRank = map[AccessLevel]int{
	AccessView:  1,
	AccessEdit:  2,
	AccessOwner: 3,
}

// IsValid checks whether the access level is one of the supported tiers.
func (a AccessLevel) IsValid() bool {
	_, ok := accessRank[a]
	return ok
}

// AtLeast reports whether a grants everything tier grants. Unknown levels
// rank below every known tier.
func (a AccessLevel) AtLeast(tier AccessLevel) bool {
	return accessRank[a] >= accessRank[tier]
}

func (a AccessLevel) String() string {
	return string(a)
}
