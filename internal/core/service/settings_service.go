package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/port"
)

const (
	settingsKey = "smartpos_settings"
	apiBaseKey  = "smartpos_api"
)

type SettingsService struct {
	store      port.LocalStore
	log        logrus.FieldLogger
	defaultAPI string

	mu       sync.RWMutex
	settings domain.Settings
	apiBase  string
}

func NewSettingsService(store port.LocalStore, log logrus.FieldLogger, defaultAPIBase string) *SettingsService {
	return &SettingsService{
		store:      store,
		log:        log.WithField("component", "settings"),
		defaultAPI: strings.TrimSpace(defaultAPIBase),
		settings:   domain.DefaultSettings(),
		apiBase:    strings.TrimSpace(defaultAPIBase),
	}
}

// Load merges persisted settings over the defaults. Missing or unreadable
// data leaves the defaults in place; it never fails.
func (s *SettingsService) Load(ctx context.Context) domain.Settings {
	merged := domain.DefaultSettings()

	raw, ok, err := s.store.Get(ctx, settingsKey)
	switch {
	case err != nil:
		s.log.WithError(err).Warn("settings unavailable, using defaults")
	case ok && raw != "":
		candidate := merged
		if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
			s.log.WithError(err).Warn("corrupt settings, using defaults")
		} else {
			merged = candidate
		}
	}
	merged.Theme = domain.ParseTheme(string(merged.Theme))

	apiBase := s.defaultAPI
	if stored, ok, err := s.store.Get(ctx, apiBaseKey); err != nil {
		s.log.WithError(err).Warn("api base unavailable")
	} else if ok && strings.TrimSpace(stored) != "" {
		apiBase = strings.TrimSpace(stored)
	}

	s.mu.Lock()
	s.settings = merged
	s.apiBase = apiBase
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"theme": merged.Theme, "api_set": apiBase != ""}).Info("settings loaded")
	return merged
}

func (s *SettingsService) Save(ctx context.Context) error {
	s.mu.RLock()
	data, err := json.Marshal(s.settings)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := s.store.Set(ctx, settingsKey, string(data)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (s *SettingsService) Current() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetTheme applies a theme from the fixed set, green for anything else.
// Reapplying the current theme changes nothing and persists nothing.
func (s *SettingsService) SetTheme(ctx context.Context, name string) (domain.Theme, bool, error) {
	theme := domain.ParseTheme(name)

	s.mu.Lock()
	if s.settings.Theme == theme {
		s.mu.Unlock()
		return theme, false, nil
	}
	s.settings.Theme = theme
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"requested": name, "theme": theme}).Info("theme applied")
	return theme, true, s.Save(ctx)
}

func (s *SettingsService) Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	s.mu.Lock()
	s.settings = s.settings.Apply(patch)
	updated := s.settings
	s.mu.Unlock()

	return updated, s.Save(ctx)
}

func (s *SettingsService) APIBase() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiBase
}

func (s *SettingsService) SetAPIBase(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return domain.ErrAPIURLEmpty
	}

	if err := s.store.Set(ctx, apiBaseKey, url); err != nil {
		return fmt.Errorf("save api base: %w", err)
	}

	s.mu.Lock()
	s.apiBase = url
	s.mu.Unlock()
	return nil
}
