package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dangdinh/giapha/internal/backup"
)

var (
	flagScheduleInterval string
	flagAutoDownload     bool
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show or change the automatic backup reminder",
}

var scheduleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current backup schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := scheduleStore()
		if err != nil {
			return err
		}
		sched, err := st.Load()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{
				"schedule": sched,
				"due":      sched.IsDueNow(now),
			})
		}

		fmt.Printf("Interval:      %s\n", sched.Interval)
		if sched.LastBackupAt != nil {
			fmt.Printf("Last backup:   %s\n", sched.LastBackupAt.Format(time.RFC3339))
		} else {
			fmt.Println("Last backup:   never")
		}
		fmt.Printf("Auto download: %v\n", sched.AutoDownload)
		if next := backup.NextDue(sched.Interval, sched.LastBackupAt); next != nil {
			fmt.Printf("Due:           %v (next at %s)\n", sched.IsDueNow(now), next.Format(time.RFC3339))
		}
		return nil
	},
}

var scheduleSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the backup interval",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch flagScheduleInterval {
		case backup.IntervalOff, backup.IntervalDaily, backup.IntervalWeekly, backup.IntervalMonthly:
		default:
			return fmt.Errorf("unknown interval %q (off, daily, weekly, monthly)", flagScheduleInterval)
		}

		st, err := scheduleStore()
		if err != nil {
			return err
		}
		sched, err := st.Load()
		if err != nil {
			return err
		}
		sched.Interval = flagScheduleInterval
		if cmd.Flags().Changed("auto-download") {
			sched.AutoDownload = flagAutoDownload
		}
		if err := st.Save(sched); err != nil {
			return err
		}

		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{"schedule": sched})
		}
		fmt.Printf("Backup interval set to %s\n", sched.Interval)
		return nil
	},
}

var scheduleRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Mark a backup as completed now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := scheduleStore()
		if err != nil {
			return err
		}
		sched, err := st.RecordBackup(time.Now().UTC())
		if err != nil {
			return err
		}

		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]any{"schedule": sched})
		}
		fmt.Printf("Last backup recorded at %s\n", sched.LastBackupAt.Format(time.RFC3339))
		return nil
	},
}

func init() {
	scheduleSetCmd.Flags().StringVar(&flagScheduleInterval, "interval", backup.IntervalOff, "backup interval: off, daily, weekly or monthly")
	scheduleSetCmd.Flags().BoolVar(&flagAutoDownload, "auto-download", false, "run the backup automatically when due")

	scheduleCmd.AddCommand(scheduleShowCmd)
	scheduleCmd.AddCommand(scheduleSetCmd)
	scheduleCmd.AddCommand(scheduleRecordCmd)
}
