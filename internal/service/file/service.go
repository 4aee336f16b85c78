package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/willykudo/pionix/internal/pkg/calendar"
	"github.com/willykudo/pionix/internal/pkg/storage"
	"github.com/willykudo/pionix/internal/pkg/validator"
)

// Proof kinds used in attendance photo names.
const (
	ProofCheckIn  = "checkin"
	ProofCheckOut = "checkout"
)

// Compression window for proof photos.
const (
	maxProofSize = 150 * 1024
	minProofSize = 50 * 1024
	minEdge      = 400
)

type FileService interface {
	// UploadAttendanceProof compresses a check-in/out photo to JPEG and stores it under
	// attendance/{date}/{attendanceID}-{kind}-{unix}.jpg.
	UploadAttendanceProof(ctx context.Context, attendanceID string, date calendar.Date, kind string, file io.Reader, filename string) (string, error)

	// UploadRentalImage stores an equipment photo as-is under rentals/{code}/.
	UploadRentalImage(ctx context.Context, rentalCode string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, key string) error
	URL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

func (s *fileServiceImpl) UploadAttendanceProof(ctx context.Context, attendanceID string, date calendar.Date, kind string, file io.Reader, filename string) (string, error) {
	if !validator.IsImageFile(filename) {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	compressed, err := compressImage(buffer, maxProofSize, minProofSize)
	if err != nil {
		return "", fmt.Errorf("failed to compress image: %w", err)
	}

	// Always JPEG after compression
	name := fmt.Sprintf("%s-%s-%d.jpg", attendanceID, kind, s.now().Unix())
	key := path.Join("attendance", date.String(), name)

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(compressed), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance proof: %w", err)
	}
	return uploaded, nil
}

func (s *fileServiceImpl) UploadRentalImage(ctx context.Context, rentalCode string, file io.Reader, filename string) (string, error) {
	if !validator.IsImageFile(filename) {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png allowed")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType := "image/jpeg"
	if ext == ".png" {
		contentType = "image/png"
	}

	key := path.Join("rentals", rentalCode, uuid.NewString()+ext)
	uploaded, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload rental image: %w", err)
	}
	return uploaded, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) URL(key string) string {
	return s.storage.URL(key)
}

// compressImage re-encodes buffer as JPEG, lowering quality and then resolution until it
// fits in maxSize. Buffers already inside [minSize, maxSize] are returned unchanged.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, err
		}
		if len(compressed) <= maxSize {
			return compressed, nil
		}
	}

	// Still too large: scale down, keeping the aspect ratio.
	bounds := img.Bounds()
	ratio := math.Sqrt(float64(maxSize*2/3) / float64(len(compressed)))
	width := int(float64(bounds.Dx()) * ratio)
	height := int(float64(bounds.Dy()) * ratio)
	if short := min(width, height); short < minEdge && short > 0 {
		scale := float64(minEdge) / float64(short)
		width, height = int(float64(width)*scale), int(float64(height)*scale)
	}
	if width >= bounds.Dx() || height >= bounds.Dy() {
		return compressed, nil
	}

	return encodeJPEG(resizeImage(img, width, height), 70)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
