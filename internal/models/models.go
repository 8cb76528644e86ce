package models

import (
	"time"

	"github.com/hannahmoutran/ai-music-metadata/internal/dataset"
	"github.com/hannahmoutran/ai-music-metadata/internal/verify"
)

// VerifySession represents one record verified through the web interface
type VerifySession struct {
	ID        string                `json:"id"`
	Record    dataset.ReleaseRecord `json:"record"`
	Result    *verify.Result        `json:"result,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}
