package model

type SystemSetting struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

const (
	// SettingTypeSecurity holds the generated JWT signing secret.
	SettingTypeSecurity = "security"
)

type SystemSettingSecurity struct {
	JWTSecret string `json:"jwt_secret"`
}
