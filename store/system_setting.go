package store

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/model"
	"github.com/soundbound/soundbound-server/util"
)

func (s *Store) GetSystemSetting(name string) (*model.SystemSetting, error) {
	setting := &model.SystemSetting{}
	stmt := "SELECT name, value, description FROM system_setting WHERE name = ?"
	if err := s.db.QueryRow(stmt, name).Scan(&setting.Name, &setting.Value, &setting.Description); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *Store) UpsertSystemSetting(setting *model.SystemSetting) (*model.SystemSetting, error) {
	stmt := `
		INSERT INTO system_setting (name, value, description)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, description = excluded.description`
	if _, err := s.db.Exec(stmt, setting.Name, setting.Value, setting.Description); err != nil {
		return nil, errors.Wrap(err, "failed to upsert system setting")
	}
	return setting, nil
}

// GetOrUpsetSystemSecuritySetting returns the security setting, generating
// and persisting a JWT secret on first use.
func (s *Store) GetOrUpsetSystemSecuritySetting() (*model.SystemSettingSecurity, error) {
	setting, err := s.GetSystemSetting(model.SettingTypeSecurity)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "failed to get security setting")
	}

	securitySetting := &model.SystemSettingSecurity{}
	if setting != nil {
		if err := json.Unmarshal([]byte(setting.Value), securitySetting); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal security setting")
		}
	}
	if securitySetting.JWTSecret != "" {
		return securitySetting, nil
	}

	secret, err := util.RandomString(32)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate JWT secret")
	}
	securitySetting.JWTSecret = secret

	value, err := json.Marshal(securitySetting)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal security setting")
	}
	if _, err := s.UpsertSystemSetting(&model.SystemSetting{
		Name:        model.SettingTypeSecurity,
		Value:       string(value),
		Description: "Security settings, including the token signing secret",
	}); err != nil {
		return nil, err
	}

	return securitySetting, nil
}
