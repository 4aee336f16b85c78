package rental

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/willykudo/pionix/internal/domain/rental"
	"github.com/willykudo/pionix/internal/domain/user"
	"github.com/willykudo/pionix/internal/pkg/pagination"
	"github.com/willykudo/pionix/internal/service/file"
)

type RentalServiceImpl struct {
	rental.RentalRepository
	fileService file.FileService
	loc         *time.Location
}

func NewRentalService(rentalRepository rental.RentalRepository, fileService file.FileService, loc *time.Location) rental.RentalService {
	return &RentalServiceImpl{
		RentalRepository: rentalRepository,
		fileService:      fileService,
		loc:              loc,
	}
}

func (s *RentalServiceImpl) toResponse(r rental.Rental) rental.RentalResponse {
	return rental.NewRentalResponse(r, s.fileService.URL)
}

func (s *RentalServiceImpl) List(ctx context.Context, filter rental.RentalFilter) (rental.ListRentalResponse, error) {
	if err := filter.Validate(); err != nil {
		return rental.ListRentalResponse{}, err
	}

	rentals, total, err := s.RentalRepository.List(ctx, filter)
	if err != nil {
		return rental.ListRentalResponse{}, fmt.Errorf("failed to list rentals: %w", err)
	}

	resp := rental.ListRentalResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pagination.TotalPages(total, filter.Limit),
		Showing:    pagination.Showing(filter.Page, filter.Limit, total),
		Rentals:    make([]rental.RentalResponse, 0, len(rentals)),
	}
	for _, r := range rentals {
		resp.Rentals = append(resp.Rentals, s.toResponse(r))
	}
	return resp, nil
}

func (s *RentalServiceImpl) Get(ctx context.Context, id string) (rental.RentalResponse, error) {
	r, err := s.RentalRepository.GetByID(ctx, id)
	if err != nil {
		return rental.RentalResponse{}, err
	}
	return s.toResponse(r), nil
}

// Create stores a rental and its optional equipment photo. A blank rental ID gets a
// generated one.
func (s *RentalServiceImpl) Create(ctx context.Context, req rental.RentalRequest) (rental.RentalResponse, error) {
	if err := requireManager(ctx); err != nil {
		return rental.RentalResponse{}, err
	}

	r, err := req.Validate(s.loc)
	if err != nil {
		return rental.RentalResponse{}, err
	}

	if r.RentalCode == "" {
		r.RentalCode = uuid.NewString()
	} else if err := s.ensureCodeFree(ctx, r.RentalCode); err != nil {
		return rental.RentalResponse{}, err
	}

	if req.File != nil && req.FileHeader != nil {
		key, err := s.fileService.UploadRentalImage(ctx, r.RentalCode, req.File, req.FileHeader.Filename)
		if err != nil {
			return rental.RentalResponse{}, fmt.Errorf("failed to upload rental image: %w", err)
		}
		r.RentalImage = &key
	}

	created, err := s.RentalRepository.Create(ctx, r)
	if err != nil {
		s.discard(ctx, r.RentalImage)
		return rental.RentalResponse{}, err
	}
	return s.toResponse(created), nil
}

// Update replaces every field of an existing rental. The stored photo is kept unless a
// new one is uploaded.
func (s *RentalServiceImpl) Update(ctx context.Context, req rental.RentalRequest) (rental.RentalResponse, error) {
	if err := requireManager(ctx); err != nil {
		return rental.RentalResponse{}, err
	}

	existing, err := s.RentalRepository.GetByID(ctx, req.ID)
	if err != nil {
		return rental.RentalResponse{}, err
	}

	r, err := req.Validate(s.loc)
	if err != nil {
		return rental.RentalResponse{}, err
	}
	r.ID = existing.ID
	r.CreatedAt = existing.CreatedAt
	r.RentalImage = existing.RentalImage

	if r.RentalCode == "" {
		r.RentalCode = existing.RentalCode
	} else if r.RentalCode != existing.RentalCode {
		if err := s.ensureCodeFree(ctx, r.RentalCode); err != nil {
			return rental.RentalResponse{}, err
		}
	}

	var uploaded *string
	if req.File != nil && req.FileHeader != nil {
		key, err := s.fileService.UploadRentalImage(ctx, r.RentalCode, req.File, req.FileHeader.Filename)
		if err != nil {
			return rental.RentalResponse{}, fmt.Errorf("failed to upload rental image: %w", err)
		}
		uploaded = &key
		r.RentalImage = &key
	}

	if err := s.RentalRepository.Update(ctx, r); err != nil {
		s.discard(ctx, uploaded)
		return rental.RentalResponse{}, err
	}
	if uploaded != nil {
		s.discard(ctx, existing.RentalImage)
	}
	return s.toResponse(r), nil
}

func (s *RentalServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireManager(ctx); err != nil {
		return err
	}

	r, err := s.RentalRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.RentalRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.discard(ctx, r.RentalImage)
	return nil
}

func (s *RentalServiceImpl) ensureCodeFree(ctx context.Context, code string) error {
	exists, err := s.RentalRepository.ExistsByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to check rental ID: %w", err)
	}
	if exists {
		return rental.ErrRentalCodeExists
	}
	return nil
}

func (s *RentalServiceImpl) discard(ctx context.Context, key *string) {
	if key == nil {
		return
	}
	if err := s.fileService.DeleteFile(ctx, *key); err != nil {
		slog.Warn("failed to delete rental image", "key", *key, "error", err)
	}
}

func requireManager(ctx context.Context) error {
	session, err := user.SessionFromContext(ctx)
	if err != nil {
		return err
	}
	if !session.Can(user.PermissionRentalManage) {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}
