package models

// TeamMember is a person shown on the team page. ExternalID links the row to
// its upstream source of truth (an Airtable record id, for instance).
type TeamMember struct {
	ID         int64
	ExternalID *string
	Name       string
	Role       string
	Bio        string
	ImageURL   string
	Email      string
}

type NewTeamMember struct {
	ExternalID *string
	Name       string
	Role       string
	Bio        string
	ImageURL   string
	Email      string
}

type TeamMemberPatch struct {
	ExternalID Nullable[string]
	Name       *string
	Role       *string
	Bio        *string
	ImageURL   *string
	Email      *string
}

func (p TeamMemberPatch) IsEmpty() bool {
	return !p.ExternalID.Set && p.Name == nil && p.Role == nil &&
		p.Bio == nil && p.ImageURL == nil && p.Email == nil
}
