package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/willykudo/pionix/internal/pkg/calendar"
)

// FileService records uploads instead of storing them.
type FileService struct {
	mu       sync.Mutex
	Uploaded []string
	Deleted  []string
}

func (f *FileService) UploadAttendanceProof(ctx context.Context, attendanceID string, date calendar.Date, kind string, file io.Reader, filename string) (string, error) {
	key := fmt.Sprintf("attendance/%s/%s-%s.jpg", date, attendanceID, kind)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Uploaded = append(f.Uploaded, key)
	return key, nil
}

func (f *FileService) UploadRentalImage(ctx context.Context, rentalCode string, file io.Reader, filename string) (string, error) {
	key := fmt.Sprintf("rentals/%s/%s", rentalCode, filename)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Uploaded = append(f.Uploaded, key)
	return key, nil
}

func (f *FileService) DeleteFile(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, key)
	return nil
}

func (f *FileService) URL(key string) string {
	return "http://files.test/" + key
}
