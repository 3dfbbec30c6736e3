package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/perimosocordiae/crossword-stats/internal/model"
)

// ErrCredential marks a missing or malformed credential file. The run fails
// on it before any network activity.
var ErrCredential = errors.New("credential error")

type credentialFile struct {
	UserID string `json:"user_id"`
	Cookie string `json:"cookie"`
}

// LoadCredential reads the user_info.json file holding the user id and the
// captured session cookie.
func LoadCredential(path string) (model.Credential, error) {
	if path == "" {
		return model.Credential{}, fmt.Errorf("%w: credential path is empty", ErrCredential)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Credential{}, fmt.Errorf("%w: failed to read %s: %v", ErrCredential, path, err)
	}
	var file credentialFile
	if err := json.Unmarshal(data, &file); err != nil {
		return model.Credential{}, fmt.Errorf("%w: failed to parse %s: %v", ErrCredential, path, err)
	}
	cred := model.Credential{
		UserID: strings.TrimSpace(file.UserID),
		Cookie: strings.TrimSpace(file.Cookie),
	}
	if cred.UserID == "" {
		return model.Credential{}, fmt.Errorf("%w: %s is missing user_id", ErrCredential, path)
	}
	if !isDigits(cred.UserID) {
		return model.Credential{}, fmt.Errorf("%w: user_id must be numeric, got %q", ErrCredential, cred.UserID)
	}
	if cred.Cookie == "" {
		return model.Credential{}, fmt.Errorf("%w: %s is missing cookie", ErrCredential, path)
	}
	return cred, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
