package models

// IntegrationSetting is one key/value pair of a third-party integration
// (facebook, discord, airtable, instagram, imgbb). (Service, Key) identifies
// a setting.
type IntegrationSetting struct {
	ID      int64
	Service string
	Key     string
	Value   string
	Enabled bool
}

type NewIntegrationSetting struct {
	Service string
	Key     string
	Value   string
	Enabled bool
}

type IntegrationSettingPatch struct {
	Service *string
	Key     *string
	Value   *string
	Enabled *bool
}

func (p IntegrationSettingPatch) IsEmpty() bool {
	return p.Service == nil && p.Key == nil && p.Value == nil && p.Enabled == nil
}
