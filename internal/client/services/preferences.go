package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/repositories/kv"
)

const preferencesKey = "preferences"

// Preference names accepted by Set.
const (
	PrefEmails = "emails"
	PrefDark   = "dark"
)

// PreferenceService keeps the settings view state in the local preferences
// table. It is not touched by logout.
type PreferenceService interface {
	Load(ctx context.Context) (models.Preferences, error)
	Save(ctx context.Context, p models.Preferences) error
	Set(ctx context.Context, name string, on bool) (models.Preferences, error)
}

type preferenceService struct {
	db *sql.DB
}

func NewPreferenceService(db *sql.DB) PreferenceService {
	return &preferenceService{db: db}
}

func (s *preferenceService) repo() kv.Repository {
	return kv.NewSQLiteRepository(s.db, kv.PreferencesTable)
}

// Load returns the stored preferences, or the defaults when none were saved.
func (s *preferenceService) Load(ctx context.Context) (models.Preferences, error) {
	data, err := s.repo().Get(ctx, preferencesKey)
	if err != nil {
		return models.Preferences{}, err
	}
	if data == nil {
		return models.DefaultPreferences(), nil
	}
	var p models.Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return p, nil
}

func (s *preferenceService) Save(ctx context.Context, p models.Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	return s.repo().Set(ctx, preferencesKey, data)
}

func (s *preferenceService) Set(ctx context.Context, name string, on bool) (models.Preferences, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return models.Preferences{}, err
	}
	switch name {
	case PrefEmails:
		p.EmailNotifications = on
	case PrefDark:
		p.DarkMode = on
	default:
		return models.Preferences{}, fmt.Errorf("unknown preference %q", name)
	}
	if err := s.Save(ctx, p); err != nil {
		return models.Preferences{}, err
	}
	return p, nil
}
