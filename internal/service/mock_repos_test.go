package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"workday-attendance/backend/internal/model"
	"workday-attendance/backend/internal/repository"
)

// ── Mock WorkDayRepository ──

type mockWorkDayRepo struct {
	records   map[string]*model.WorkDay
	listErr   error // 非空时 List 直接返回该错误
	listCalls int
}

func newMockWorkDayRepo() *mockWorkDayRepo {
	return &mockWorkDayRepo{records: make(map[string]*model.WorkDay)}
}

func (m *mockWorkDayRepo) Create(_ context.Context, wd *model.WorkDay) error {
	if _, ok := m.records[wd.ID]; ok {
		return errors.New("UNIQUE constraint failed: workdays.id")
	}
	cp := *wd
	m.records[wd.ID] = &cp
	return nil
}

func (m *mockWorkDayRepo) GetByID(_ context.Context, id string) (*model.WorkDay, error) {
	if wd, ok := m.records[id]; ok {
		cp := *wd
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkDayRepo) List(_ context.Context, f repository.WorkDayFilter) ([]model.WorkDay, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}

	var end string
	if f.DateEnd != "" {
		d, _ := time.Parse(model.DateLayout, f.DateEnd)
		end = d.AddDate(0, 0, 1).Format(model.DateLayout)
	}

	result := make([]model.WorkDay, 0, len(m.records))
	for _, wd := range m.records {
		if f.DateStart != "" && wd.Date < f.DateStart {
			continue
		}
		if end != "" && wd.Date >= end {
			continue
		}
		if f.DriverNameContains != "" && !strings.Contains(wd.DriverName, f.DriverNameContains) {
			continue
		}
		result = append(result, *wd)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockWorkDayRepo) Update(_ context.Context, wd *model.WorkDay) error {
	if _, ok := m.records[wd.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *wd
	m.records[wd.ID] = &cp
	return nil
}

func (m *mockWorkDayRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockWorkDayRepo) put(records ...model.WorkDay) {
	for i := range records {
		cp := records[i]
		m.records[cp.ID] = &cp
	}
}
