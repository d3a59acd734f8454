package backup

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Backup intervals.
const (
	IntervalOff     = "off"
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
)

// intervalDurations maps each interval to its duration. Monthly is a flat
// 30 days, not calendar-month arithmetic.
var intervalDurations = map[string]time.Duration{
	IntervalDaily:   24 * time.Hour,
	IntervalWeekly:  7 * 24 * time.Hour,
	IntervalMonthly: 30 * 24 * time.Hour,
}

// Schedule is the operator's backup schedule. It lives in a local file, not
// in either database; losing it costs nothing but a reminder.
type Schedule struct {
	Interval     string     `json:"interval" mapstructure:"interval"`
	LastBackupAt *time.Time `json:"last_backup_at" mapstructure:"last_backup_at"`
	AutoDownload bool       `json:"auto_download" mapstructure:"auto_download"`
}

// DefaultSchedule returns the initial schedule: disabled, never backed up.
func DefaultSchedule() Schedule {
	return Schedule{Interval: IntervalOff}
}

// IsDue reports whether a backup is due at now. Off is never due; a nil
// last-backup time means a backup has never run and one is due immediately;
// otherwise due means the interval has fully elapsed.
func IsDue(interval string, lastBackupAt *time.Time, now time.Time) bool {
	d, ok := intervalDurations[interval]
	if !ok {
		return false
	}
	if lastBackupAt == nil {
		return true
	}
	return now.Sub(*lastBackupAt) >= d
}

// NextDue returns the next due time, or nil when the interval is off. With
// no prior backup the epoch is used as the base, which puts the next due
// time firmly in the past.
func NextDue(interval string, lastBackupAt *time.Time) *time.Time {
	d, ok := intervalDurations[interval]
	if !ok {
		return nil
	}
	base := time.Unix(0, 0).UTC()
	if lastBackupAt != nil {
		base = *lastBackupAt
	}
	next := base.Add(d)
	return &next
}

// IsDueNow is IsDue evaluated against the schedule's own fields at now.
func (s Schedule) IsDueNow(now time.Time) bool {
	return IsDue(s.Interval, s.LastBackupAt, now)
}

// ScheduleStore persists a Schedule through an injected load/save pair so
// the policy logic stays testable without a filesystem.
type ScheduleStore struct {
	Load func() (Schedule, error)
	Save func(Schedule) error
}

// RecordBackup stamps the schedule with now as the last successful backup
// and persists it.
func (st ScheduleStore) RecordBackup(now time.Time) (Schedule, error) {
	s, err := st.Load()
	if err != nil {
		return s, err
	}
	now = now.UTC()
	s.LastBackupAt = &now
	if err := st.Save(s); err != nil {
		return s, err
	}
	return s, nil
}

// Schedule file keys.
const (
	cfgKeyInterval     = "interval"
	cfgKeyLastBackupAt = "last_backup_at"
	cfgKeyAutoDownload = "auto_download"
)

// FileScheduleStore returns a ScheduleStore backed by a YAML file at path,
// managed through viper. A missing file loads as the default schedule.
func FileScheduleStore(path string) ScheduleStore {
	return ScheduleStore{
		Load: func() (Schedule, error) {
			v := viper.New()
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				if os.IsNotExist(err) {
					return DefaultSchedule(), nil
				}
				if _, ok := err.(viper.ConfigFileNotFoundError); ok {
					return DefaultSchedule(), nil
				}
				return DefaultSchedule(), fmt.Errorf("reading schedule: %w", err)
			}

			s := DefaultSchedule()
			if iv := v.GetString(cfgKeyInterval); iv != "" {
				s.Interval = iv
			}
			s.AutoDownload = v.GetBool(cfgKeyAutoDownload)
			if raw := v.GetString(cfgKeyLastBackupAt); raw != "" {
				ts, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return s, fmt.Errorf("parsing last_backup_at: %w", err)
				}
				s.LastBackupAt = &ts
			}
			return s, nil
		},
		Save: func(s Schedule) error {
			v := viper.New()
			v.Set(cfgKeyInterval, s.Interval)
			v.Set(cfgKeyAutoDownload, s.AutoDownload)
			if s.LastBackupAt != nil {
				v.Set(cfgKeyLastBackupAt, s.LastBackupAt.UTC().Format(time.RFC3339))
			} else {
				v.Set(cfgKeyLastBackupAt, "")
			}
			if err := v.WriteConfigAs(path); err != nil {
				return fmt.Errorf("writing schedule: %w", err)
			}
			return nil
		},
	}
}
