package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"StockProphet/internal/model"
)

// userFile is the on-disk layout of the user store.
type userFile struct {
	Users     map[string]*model.User `json:"users"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// LoadUsers reads the user store from a JSON file. Returns an empty store if the file doesn't exist.
func LoadUsers(filePath string) (map[string]*model.User, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*model.User{}, nil
		}
		return nil, err
	}
	var f userFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Users == nil {
		f.Users = map[string]*model.User{}
	}
	return f.Users, nil
}

// SaveUsers writes the user store to a JSON file.
func SaveUsers(filePath string, users map[string]*model.User) error {
	data, err := json.MarshalIndent(userFile{Users: users, UpdatedAt: time.Now()}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
