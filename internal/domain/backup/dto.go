package backup

import (
	"time"
)

type CreateBackupRequest struct {
	Name string `json:"name"`
}

type BackupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type BackupDetailResponse struct {
	BackupResponse
	Data BackupData `json:"data"`
}

type ListBackupsResponse struct {
	Backups []BackupResponse `json:"backups"`
}
