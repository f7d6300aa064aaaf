package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CurrentGame remembers which session the CLI is playing.
type CurrentGame struct {
	GameID      string `json:"game_id"`
	CompanyName string `json:"company_name"`
}

func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".mgl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

func gamePath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "game.json"), nil
}

func SaveCurrentGame(g CurrentGame) error {
	path, err := gamePath()
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o600)
}

func LoadCurrentGame() (CurrentGame, error) {
	path, err := gamePath()
	if err != nil {
		return CurrentGame{}, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return CurrentGame{}, err
	}
	var g CurrentGame
	if err := json.Unmarshal(body, &g); err != nil {
		return CurrentGame{}, err
	}
	if strings.TrimSpace(g.GameID) == "" {
		return CurrentGame{}, fmt.Errorf("no game id found, run `mgl new` first")
	}
	return g, nil
}

func ClearCurrentGame() error {
	path, err := gamePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return os.Remove(path)
}
