package domain

// AccessScope is the set of financial rows an actor may see or modify.
//
// An unrestricted scope matches everything. Otherwise a row matches when its
// tenant's apartment lies in one of BuildingIDs, when it was created by
// CreatedBy, or when its id is in RowIDs. A scope with none of these matches
// nothing.
type AccessScope struct {
	Unrestricted bool
	BuildingIDs  []string
	CreatedBy    string
	RowIDs       []string
}

// UnrestrictedScope is the scope of an administrator.
func UnrestrictedScope() AccessScope {
	return AccessScope{Unrestricted: true}
}

// IsEmpty reports whether the scope can match no row at all.
func (s AccessScope) IsEmpty() bool {
	return !s.Unrestricted && len(s.BuildingIDs) == 0 && s.CreatedBy == "" && len(s.RowIDs) == 0
}

// ScopeFacts are the ownership attributes of a single row.
type ScopeFacts struct {
	BuildingID string
	CreatedBy  string
	RowID      string
}

// Permits evaluates the scope against one row in memory.
func (s AccessScope) Permits(f ScopeFacts) bool {
	if s.Unrestricted {
		return true
	}
	if s.IsEmpty() {
		return false
	}
	if f.BuildingID != "" {
		for _, b := range s.BuildingIDs {
			if b == f.BuildingID {
				return true
			}
		}
	}
	if s.CreatedBy != "" && f.CreatedBy == s.CreatedBy {
		return true
	}
	if f.RowID != "" {
		for _, id := range s.RowIDs {
			if id == f.RowID {
				return true
			}
		}
	}
	return false
}
