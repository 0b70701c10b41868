// Package mcp provides the Model Context Protocol server integration for
// cosmic36.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/content"
	"tableflip.dev/cosmic36/pkg/cycle"
	"tableflip.dev/cosmic36/pkg/record"
	"tableflip.dev/cosmic36/pkg/review"
	"tableflip.dev/cosmic36/pkg/settings"
)

// Service adapts the application core for the MCP server. Every mutation
// flushes the debounced saves so a tool call returns only after its write is
// durable.
type Service struct {
	App *app.Service
}

// ErrNoDate mirrors the unset reference date state for tool callers.
var ErrNoDate = errors.New("no reference date set; call update_settings with a dob first")

// NewService wraps the shared application core.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// CloseDTO is the transport projection of the close-out group.
type CloseDTO struct {
	Lesson  string `json:"lesson,omitempty"`
	Carry   string `json:"carry,omitempty"`
	Release string `json:"release,omitempty"`
}

// TodayDTO is the transport projection of the day card.
type TodayDTO struct {
	Date       string    `json:"date"`
	DayInCycle int       `json:"dayInCycle"`
	CycleIndex int       `json:"cycleIndex"`
	CycleStart string    `json:"cycleStart"`
	DaysLived  int       `json:"daysLived"`
	Role       string    `json:"role"`
	Phase      string    `json:"phase"`
	PhaseDesc  string    `json:"phaseDesc"`
	Guidance   string    `json:"guidance"`
	Done       bool      `json:"done"`
	DoneCount  int       `json:"doneCount"`
	Note       string    `json:"note,omitempty"`
	Intention  string    `json:"intention,omitempty"`
	Reflection string    `json:"reflection,omitempty"`
	Close      *CloseDTO `json:"close,omitempty"`
}

// ItemDTO is the transport projection of a review item.
type ItemDTO struct {
	CycleIndex int    `json:"cycleIndex"`
	Day        int    `json:"day,omitempty"`
	Kind       string `json:"kind"`
	Badge      string `json:"badge"`
	Preview    string `json:"preview"`
	Full       string `json:"full"`
	StoreKey   string `json:"storeKey"`
	Editable   bool   `json:"editable"`
}

// PatternStartDTO describes one upcoming entry window.
type PatternStartDTO struct {
	Day    int    `json:"day"`
	InDays int    `json:"inDays"`
	Date   string `json:"date"`
}

// GetToday assembles the current day card.
func (s *Service) GetToday(ctx context.Context) (*TodayDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	t, ok := s.App.Today()
	if !ok {
		return nil, ErrNoDate
	}
	return toTodayDTO(t), nil
}

// WriteEntry sets a content field on today's record and persists it.
func (s *Service) WriteEntry(ctx context.Context, kind, text string) (*TodayDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}

	var err error
	switch review.Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case review.KindNote:
		err = s.App.SetNote(text)
	case review.KindIntention:
		err = s.App.SetIntention(text)
	case review.KindReflection:
		err = s.App.SetReflection(text)
	default:
		return nil, fmt.Errorf("unknown entry kind %q (expected note, intention, or reflection)", kind)
	}
	if errors.Is(err, app.ErrNoDate) {
		return nil, ErrNoDate
	}
	if err != nil {
		return nil, err
	}
	if err := s.App.Flush(); err != nil {
		return nil, err
	}
	return s.GetToday(ctx)
}

// WriteClose sets the cycle close-out group and persists it.
func (s *Service) WriteClose(ctx context.Context, lesson, carry, release string) (*TodayDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	err := s.App.SetClose(record.Close{Lesson: lesson, Carry: carry, Release: release})
	if errors.Is(err, app.ErrNoDate) {
		return nil, ErrNoDate
	}
	if err != nil {
		return nil, err
	}
	if err := s.App.Flush(); err != nil {
		return nil, err
	}
	return s.GetToday(ctx)
}

// MarkToday explicitly marks or unmarks today.
func (s *Service) MarkToday(ctx context.Context, done bool) (*TodayDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	err := s.App.SetDoneToday(done)
	if errors.Is(err, app.ErrNoDate) {
		return nil, ErrNoDate
	}
	if err != nil {
		return nil, err
	}
	return s.GetToday(ctx)
}

// ReviewItems builds the filtered cross-cycle entry list.
func (s *Service) ReviewItems(ctx context.Context, scope string, kinds []string, query string, limit int) ([]ItemDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}

	sc, err := parseScope(scope)
	if err != nil {
		return nil, err
	}
	ks, err := parseKinds(kinds)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	items := s.App.Review(sc, ks, query)
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItemDTO(it))
	}
	return out, nil
}

// EditEntry rewrites one reviewable entry in place.
func (s *Service) EditEntry(ctx context.Context, storeKey string, day int, kind, text string) (*ItemDTO, error) {
	if s.App == nil {
		return nil, errors.New("service is not configured")
	}
	k := review.Kind(strings.ToLower(strings.TrimSpace(kind)))
	if err := s.App.SaveEdit(storeKey, day, k, text); err != nil {
		return nil, err
	}
	dto := ItemDTO{StoreKey: storeKey, Day: day, Kind: string(k), Full: text, Editable: true}
	return &dto, nil
}

// Export renders a plain-text export document.
func (s *Service) Export(ctx context.Context, format, scope string) (string, error) {
	if s.App == nil {
		return "", errors.New("service is not configured")
	}
	sc, err := parseScope(scope)
	if err != nil {
		return "", err
	}

	st := s.App.Settings
	now := s.App.Now()
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "notes":
		items := s.App.Review(sc, map[review.Kind]bool{review.KindNote: true}, "")
		return review.ExportNotes(items, st.DOB, st.Mode, sc, now), nil
	case "close":
		items := s.App.Review(sc, map[review.Kind]bool{review.KindClose: true}, "")
		return review.ExportClose(items, st.DOB, st.Mode, sc, now), nil
	case "full":
		items := s.App.Review(sc, review.AllKinds(), "")
		return review.ExportFull(items, st.DOB, st.Mode, sc, now), nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected notes, close, or full)", format)
	}
}

// ClearCycle discards the current cycle's record.
func (s *Service) ClearCycle(ctx context.Context) error {
	if s.App == nil {
		return errors.New("service is not configured")
	}
	err := s.App.ClearCycle()
	if errors.Is(err, app.ErrNoDate) {
		return ErrNoDate
	}
	return err
}

// GetSettings returns the active settings.
func (s *Service) GetSettings(ctx context.Context) (settings.Settings, error) {
	if s.App == nil {
		return settings.Settings{}, errors.New("service is not configured")
	}
	return s.App.Settings, nil
}

// SettingsPatch carries optional settings updates; nil fields are left
// untouched.
type SettingsPatch struct {
	DOB              *string
	Mode             *string
	Gentle           *bool
	RemindersEnabled *bool
	ReminderKinds    *string
	ReminderTime     *string
}

// UpdateSettings validates and applies a settings patch.
func (s *Service) UpdateSettings(ctx context.Context, patch SettingsPatch) (settings.Settings, error) {
	if s.App == nil {
		return settings.Settings{}, errors.New("service is not configured")
	}

	next := s.App.Settings
	if err := settings.Apply(&next, settings.Patch{
		DOB:              patch.DOB,
		Mode:             patch.Mode,
		Gentle:           patch.Gentle,
		RemindersEnabled: patch.RemindersEnabled,
		ReminderKinds:    patch.ReminderKinds,
		ReminderTime:     patch.ReminderTime,
	}); err != nil {
		return settings.Settings{}, err
	}
	if err := s.App.SaveSettings(next); err != nil {
		return settings.Settings{}, err
	}
	return next, nil
}

// PatternStarts reports the next valid entry windows.
func (s *Service) PatternStarts(ctx context.Context) (day1, day18 PatternStartDTO, err error) {
	if s.App == nil {
		return day1, day18, errors.New("service is not configured")
	}
	d1, d18, ok := s.App.PatternStarts()
	if !ok {
		return day1, day18, ErrNoDate
	}
	return toPatternStartDTO(d1), toPatternStartDTO(d18), nil
}

func toTodayDTO(t app.Today) *TodayDTO {
	day := t.Meta.DayInCycle
	dto := &TodayDTO{
		DayInCycle: day,
		CycleIndex: t.Meta.CycleIndex,
		CycleStart: t.Meta.CycleStart,
		DaysLived:  t.Meta.DaysLived,
		Role:       string(t.Role),
		Phase:      t.Phase.Name,
		PhaseDesc:  t.Phase.Desc,
		Guidance:   content.Guidance(day),
		Done:       t.Done,
		DoneCount:  t.DoneCount,
		Note:       t.Note,
		Intention:  t.Intention,
		Reflection: t.Reflection,
	}
	if t.Close.HasContent() {
		dto.Close = &CloseDTO{Lesson: t.Close.Lesson, Carry: t.Close.Carry, Release: t.Close.Release}
	}
	return dto
}

func toItemDTO(it review.Item) ItemDTO {
	return ItemDTO{
		CycleIndex: it.CycleIndex,
		Day:        it.Day,
		Kind:       string(it.Kind),
		Badge:      it.Badge,
		Preview:    it.Preview,
		Full:       it.Full,
		StoreKey:   it.StoreKey,
		Editable:   it.Editable,
	}
}

func toPatternStartDTO(ps cycle.PatternStart) PatternStartDTO {
	return PatternStartDTO{Day: ps.Day, InDays: ps.InDays, Date: ps.Date.Format("2006-01-02")}
}

func parseScope(scope string) (review.Scope, error) {
	switch strings.ToLower(strings.TrimSpace(scope)) {
	case "", string(review.ScopeCycle):
		return review.ScopeCycle, nil
	case string(review.ScopeAll):
		return review.ScopeAll, nil
	default:
		return "", fmt.Errorf("unknown scope %q (expected cycle or all)", scope)
	}
}

func parseKinds(kinds []string) (map[review.Kind]bool, error) {
	if len(kinds) == 0 {
		return review.AllKinds(), nil
	}
	out := make(map[review.Kind]bool, len(kinds))
	for _, k := range kinds {
		switch kind := review.Kind(strings.ToLower(strings.TrimSpace(k))); kind {
		case review.KindNote, review.KindIntention, review.KindReflection, review.KindClose:
			out[kind] = true
		default:
			return nil, fmt.Errorf("unknown entry kind %q", k)
		}
	}
	return out, nil
}
