package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain"
	"shiftpay/internal/errors"
)

// SnapshotVersion identifies the backup layout written by NewSnapshot.
const SnapshotVersion = 1

// Amount is a decimal serialised as a JSON number with two fractional digits.
type Amount decimal.Decimal

// Decimal returns the underlying value.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}

// Timestamp is an instant serialised as RFC 3339. Parsing also accepts the
// zone-less ISO form written by older backups, read as UTC.
type Timestamp time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Timestamp(parsed)
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// SnapshotSetting is the backup form of a rate setting.
type SnapshotSetting struct {
	ID             int64     `json:"id,omitempty"`
	CurrentRate    Amount    `json:"current_rate"`
	CurrencySymbol string    `json:"currency_symbol"`
	CreatedAt      Timestamp `json:"created_at"`
}

// SnapshotEntry is the backup form of a time entry.
type SnapshotEntry struct {
	ID             int64     `json:"id,omitempty"`
	SequenceNumber int64     `json:"sequence_number"`
	Date           string    `json:"date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	RateAtEntry    Amount    `json:"rate_at_entry"`
	TotalHours     Amount    `json:"total_hours"`
	TotalPay       Amount    `json:"total_pay"`
	IsPaid         bool      `json:"is_paid"`
	IsOvernight    bool      `json:"is_overnight"`
	CreatedAt      Timestamp `json:"created_at"`
}

// Snapshot is the complete content of the store.
type Snapshot struct {
	Version    int        `json:"version,omitempty"`
	ExportedAt *Timestamp `json:"exported_at,omitempty"`
	// LastSequenceNumber is the highest sequence number ever issued, deleted entries included.
	LastSequenceNumber int64             `json:"last_sequence_number,omitempty"`
	Settings           []SnapshotSetting `json:"settings"`
	Entries            []SnapshotEntry   `json:"entries"`
}

// NewSnapshot captures every field of the given settings and entries.
// Entries are ordered by sequence number.
func NewSnapshot(settings []*domain.RateSetting, entries []*domain.TimeEntry, exportedAt time.Time) *Snapshot {
	snap := &Snapshot{
		Version:  SnapshotVersion,
		Settings: make([]SnapshotSetting, 0, len(settings)),
		Entries:  make([]SnapshotEntry, 0, len(entries)),
	}
	if !exportedAt.IsZero() {
		ts := Timestamp(exportedAt)
		snap.ExportedAt = &ts
	}

	for _, s := range settings {
		snap.Settings = append(snap.Settings, SnapshotSetting{
			ID:             s.ID,
			CurrentRate:    Amount(s.CurrentRate),
			CurrencySymbol: s.CurrencySymbol,
			CreatedAt:      Timestamp(s.CreatedAt),
		})
	}

	for _, e := range entries {
		snap.Entries = append(snap.Entries, SnapshotEntry{
			ID:             e.ID,
			SequenceNumber: e.SequenceNumber,
			Date:           e.Date.Format(domain.DateLayout),
			StartTime:      e.StartTime.String(),
			EndTime:        e.EndTime.String(),
			RateAtEntry:    Amount(e.RateAtEntry),
			TotalHours:     Amount(e.TotalHours),
			TotalPay:       Amount(e.TotalPay),
			IsPaid:         e.IsPaid,
			IsOvernight:    e.IsOvernight,
			CreatedAt:      Timestamp(e.CreatedAt),
		})
		if e.SequenceNumber > snap.LastSequenceNumber {
			snap.LastSequenceNumber = e.SequenceNumber
		}
	}
	sort.SliceStable(snap.Entries, func(i, j int) bool {
		return snap.Entries[i].SequenceNumber < snap.Entries[j].SequenceNumber
	})

	return snap
}

// WriteSnapshot encodes snap as indented JSON.
func WriteSnapshot(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// ParseSnapshot decodes a backup and checks that it can be restored.
func ParseSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, errors.NewValidationError("backup is not valid JSON: "+err.Error(), err)
	}
	if snap.Version > SnapshotVersion {
		return nil, errors.NewValidationError(fmt.Sprintf("backup version %d is newer than supported version %d", snap.Version, SnapshotVersion), nil)
	}

	if snap.LastSequenceNumber < 0 {
		return nil, errors.NewValidationError("last sequence number cannot be negative", nil)
	}

	seen := make(map[int64]bool, len(snap.Entries))
	seenID := make(map[int64]bool, len(snap.Entries))
	for i, e := range snap.Entries {
		if e.SequenceNumber <= 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("entry %d has no sequence number", i+1), nil)
		}
		if seen[e.SequenceNumber] {
			return nil, errors.NewValidationError(fmt.Sprintf("sequence number %d appears twice", e.SequenceNumber), nil)
		}
		seen[e.SequenceNumber] = true

		if e.ID < 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("entry #%d has a negative id", e.SequenceNumber), nil)
		}
		if e.ID > 0 {
			if seenID[e.ID] {
				return nil, errors.NewValidationError(fmt.Sprintf("entry id %d appears twice", e.ID), nil)
			}
			seenID[e.ID] = true
		}
	}

	settingIDs := make(map[int64]bool, len(snap.Settings))
	for _, ss := range snap.Settings {
		if ss.ID == 0 {
			continue
		}
		if ss.ID < 0 || settingIDs[ss.ID] {
			return nil, errors.NewValidationError(fmt.Sprintf("rate setting id %d is negative or appears twice", ss.ID), nil)
		}
		settingIDs[ss.ID] = true
	}
	return &snap, nil
}

// ToDomain converts the snapshot back into domain values.
func (s *Snapshot) ToDomain() ([]*domain.RateSetting, []*domain.TimeEntry, error) {
	settings := make([]*domain.RateSetting, 0, len(s.Settings))
	for _, ss := range s.Settings {
		if strings.TrimSpace(ss.CurrencySymbol) == "" {
			return nil, nil, errors.NewValidationError("rate setting has no currency symbol", nil)
		}
		settings = append(settings, &domain.RateSetting{
			ID:             ss.ID,
			CurrentRate:    ss.CurrentRate.Decimal(),
			CurrencySymbol: ss.CurrencySymbol,
			CreatedAt:      time.Time(ss.CreatedAt),
		})
	}

	entries := make([]*domain.TimeEntry, 0, len(s.Entries))
	for _, se := range s.Entries {
		date, err := domain.ParseDate(se.Date)
		if err != nil {
			return nil, nil, errors.NewValidationError(fmt.Sprintf("entry #%d: %v", se.SequenceNumber, err), err)
		}
		start, err := domain.ParseTimeOfDay(se.StartTime)
		if err != nil {
			return nil, nil, errors.NewValidationError(fmt.Sprintf("entry #%d: %v", se.SequenceNumber, err), err)
		}
		end, err := domain.ParseTimeOfDay(se.EndTime)
		if err != nil {
			return nil, nil, errors.NewValidationError(fmt.Sprintf("entry #%d: %v", se.SequenceNumber, err), err)
		}
		entries = append(entries, &domain.TimeEntry{
			ID:             se.ID,
			SequenceNumber: se.SequenceNumber,
			Date:           date,
			StartTime:      start,
			EndTime:        end,
			IsOvernight:    se.IsOvernight,
			RateAtEntry:    se.RateAtEntry.Decimal(),
			TotalHours:     se.TotalHours.Decimal(),
			TotalPay:       se.TotalPay.Decimal(),
			IsPaid:         se.IsPaid,
			CreatedAt:      time.Time(se.CreatedAt),
		})
	}
	return settings, entries, nil
}
