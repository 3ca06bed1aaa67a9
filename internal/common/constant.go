package common

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// Activity log actions written by the service layer.
const (
	ActionUserCreate    = "user.create"
	ActionUserLogin     = "user.login"
	ActionUserLogout    = "user.logout"
	ActionImageUpload   = "image.upload"
	ActionSettingChange = "setting.change"
)
