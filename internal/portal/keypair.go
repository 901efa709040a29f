package portal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// Keypair holds access credentials for one portal server.
type Keypair struct {
	Key    string `json:"key"`
	Secret string `json:"secret"`
	Server string `json:"server"`
}

// DefaultKeyfile returns ~/keypairs.json.
func DefaultKeyfile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "keypairs.json"
	}
	return filepath.Join(home, "keypairs.json")
}

// LoadKeypair reads the named keypair from a JSON file mapping names to
// keypairs. A leading "~/" in path is expanded.
func LoadKeypair(path, name string) (Keypair, error) {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Keypair{}, fmt.Errorf("read keyfile: %w", err)
	}

	var keys map[string]Keypair
	if err := json.Unmarshal(data, &keys); err != nil {
		return Keypair{}, fmt.Errorf("parse keyfile %s: %w", path, err)
	}

	kp, ok := keys[name]
	if !ok {
		return Keypair{}, fmt.Errorf("keyfile %s: no keypair named %q", path, name)
	}
	if kp.Server == "" {
		return Keypair{}, fmt.Errorf("keyfile %s: keypair %q has no server", path, name)
	}
	return kp, nil
}
