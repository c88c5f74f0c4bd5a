package domain

import (
	"time"

	"shiftpay/internal/repository/sqlite"
)

// RateSettingMapper handles conversion between domain and database RateSetting models.
type RateSettingMapper struct{}

// NewRateSettingMapper creates a new RateSettingMapper instance.
func NewRateSettingMapper() *RateSettingMapper {
	return &RateSettingMapper{}
}

// ToDatabase converts a domain RateSetting to a database RateSetting.
func (m *RateSettingMapper) ToDatabase(s RateSetting) sqlite.RateSetting {
	return sqlite.RateSetting{
		ID:             s.ID,
		CurrentRate:    s.CurrentRate,
		CurrencySymbol: s.CurrencySymbol,
		CreatedAt:      s.CreatedAt,
	}
}

// FromDatabase converts a database RateSetting to a domain RateSetting.
func (m *RateSettingMapper) FromDatabase(s sqlite.RateSetting) RateSetting {
	return RateSetting{
		ID:             s.ID,
		CurrentRate:    s.CurrentRate,
		CurrencySymbol: s.CurrencySymbol,
		CreatedAt:      s.CreatedAt,
	}
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(e TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:             e.ID,
		SequenceNumber: e.SequenceNumber,
		Date:           DateOnly(e.Date),
		StartTime:      e.StartTime.Duration(),
		EndTime:        e.EndTime.Duration(),
		IsOvernight:    e.IsOvernight,
		RateAtEntry:    e.RateAtEntry,
		TotalHours:     e.TotalHours,
		TotalPay:       e.TotalPay,
		IsPaid:         e.IsPaid,
		CreatedAt:      e.CreatedAt,
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(e sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:             e.ID,
		SequenceNumber: e.SequenceNumber,
		Date:           e.Date,
		StartTime:      TimeOfDay(e.StartTime),
		EndTime:        TimeOfDay(e.EndTime),
		IsOvernight:    e.IsOvernight,
		RateAtEntry:    e.RateAtEntry,
		TotalHours:     e.TotalHours,
		TotalPay:       e.TotalPay,
		IsPaid:         e.IsPaid,
		CreatedAt:      e.CreatedAt,
	}
}

// FromDatabaseSlice converts database entries to domain entries.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []*TimeEntry {
	entries := make([]*TimeEntry, len(dbEntries))
	for i, dbEntry := range dbEntries {
		entry := m.FromDatabase(*dbEntry)
		entries[i] = &entry
	}
	return entries
}

// ToDatabaseSlice converts domain entries to database entries.
func (m *TimeEntryMapper) ToDatabaseSlice(entries []*TimeEntry) []*sqlite.TimeEntry {
	dbEntries := make([]*sqlite.TimeEntry, len(entries))
	for i, entry := range entries {
		dbEntry := m.ToDatabase(*entry)
		dbEntries[i] = &dbEntry
	}
	return dbEntries
}

// SearchOptionsMapper handles conversion between domain and database SearchOptions.
type SearchOptionsMapper struct{}

// NewSearchOptionsMapper creates a new SearchOptionsMapper instance.
func NewSearchOptionsMapper() *SearchOptionsMapper {
	return &SearchOptionsMapper{}
}

// ToDatabase converts domain SearchOptions to database SearchOptions.
func (m *SearchOptionsMapper) ToDatabase(o SearchOptions) sqlite.SearchOptions {
	return sqlite.SearchOptions{
		OnlyUnpaid: o.OnlyUnpaid,
		DateFrom:   datePtr(o.DateFrom),
		DateTo:     datePtr(o.DateTo),
	}
}

// FromDatabase converts database SearchOptions to domain SearchOptions.
func (m *SearchOptionsMapper) FromDatabase(o sqlite.SearchOptions) SearchOptions {
	return SearchOptions{
		OnlyUnpaid: o.OnlyUnpaid,
		DateFrom:   o.DateFrom,
		DateTo:     o.DateTo,
	}
}

func datePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := DateOnly(*t)
	return &d
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	RateSetting   *RateSettingMapper
	TimeEntry     *TimeEntryMapper
	SearchOptions *SearchOptionsMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		RateSetting:   NewRateSettingMapper(),
		TimeEntry:     NewTimeEntryMapper(),
		SearchOptions: NewSearchOptionsMapper(),
	}
}
