package domain

// Project groups the users allowed to log time against it.
type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberIDs   []int  `json:"-"`
}

// HasMember reports whether userID belongs to the project.
func (p *Project) HasMember(userID int) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// RoleEntry is a role known to the system.
type RoleEntry struct {
	ID   int  `json:"id"`
	Name Role `json:"name"`
}
