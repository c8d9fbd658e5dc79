package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"portfolio/internal/models"
)

// TimeLogsCSV writes one row per time log. Tasks missing from the map are labelled "Unknown".
func TimeLogsCSV(w io.Writer, logs []models.TimeLog, tasks map[int64]models.Task) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Task ID", "Task", "Start", "End", "Duration (s)", "Duration", "Active"}); err != nil {
		return err
	}

	for _, l := range logs {
		title := "Unknown"
		if t, ok := tasks[l.TaskID]; ok {
			title = t.Title
		}
		endStr := ""
		if l.EndTime != nil {
			endStr = l.EndTime.UTC().Format(time.RFC3339)
		}
		row := []string{
			fmt.Sprintf("%d", l.ID),
			fmt.Sprintf("%d", l.TaskID),
			title,
			l.StartTime.UTC().Format(time.RFC3339),
			endStr,
			fmt.Sprintf("%d", l.Duration),
			formatDuration(l.Duration),
			fmt.Sprintf("%t", l.IsActive),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
