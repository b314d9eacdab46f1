package db

import (
	"log"

	"github.com/go-faster/jx"
	"gorm.io/gorm"
)

// Recorder writes tool-call usage entries. A nil Recorder (no database) drops
// everything silently.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder wraps a gorm handle. Passing nil yields a nil Recorder, which
// is safe to call.
func NewRecorder(database *gorm.DB) *Recorder {
	if database == nil {
		return nil
	}
	return &Recorder{db: database}
}

// Record inserts a usage entry. Fire-and-forget: the insert happens on its
// own goroutine and failures only log.
func (r *Recorder) Record(tool, requestID string, durationMs int64, status, errMsg string) {
	if r == nil {
		return
	}

	entry := UsageLog{
		Tool:    tool,
		Details: usageDetails(durationMs, status, errMsg),
	}
	if requestID != "" {
		entry.RequestID = &requestID
	}

	go func() {
		if err := r.db.Create(&entry).Error; err != nil {
			log.Printf("usage log insert failed: %v", err)
		}
	}()
}

// usageDetails builds the JSONB payload for a usage entry.
func usageDetails(durationMs int64, status, errMsg string) JSONB {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("duration_ms")
	e.Int64(durationMs)
	e.FieldStart("status")
	e.Str(status)
	if errMsg != "" {
		e.FieldStart("error")
		e.Str(errMsg)
	}
	e.ObjEnd()
	return JSONB(e.Bytes())
}
