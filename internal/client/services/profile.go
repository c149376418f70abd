package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/colisroute/colis/internal/client/api"
	"github.com/colisroute/colis/internal/client/models"
	"github.com/colisroute/colis/internal/client/profilecache"
	"github.com/colisroute/colis/internal/logging"
	"github.com/disintegration/imaging"
)

// Photos larger than this are downscaled (aspect preserved) before upload.
const (
	PhotoMaxSide     = 1024
	PhotoJPEGQuality = 85
)

type ProfileService interface {
	// User reads through the local profile cache.
	User(ctx context.Context, id int64) (models.User, error)
	// UpdatePhone drops every cached profile on success.
	UpdatePhone(ctx context.Context, id int64, phone string) (models.User, error)
	Transporter(ctx context.Context, id int64) (models.TransporterProfile, error)
	UpdateTransporter(ctx context.Context, id int64, req models.UpdateTransporterProfileRequest) (models.TransporterProfile, error)
	UploadPhoto(ctx context.Context, id int64, filename string, r io.Reader) (models.TransporterProfile, error)
}

type profileService struct {
	client api.Client
	cache  *profilecache.Cache
	log    logging.Logger
}

func NewProfileService(client api.Client, cache *profilecache.Cache, log logging.Logger) ProfileService {
	return &profileService{client: client, cache: cache, log: log.With("component", "profile")}
}

func (s *profileService) User(ctx context.Context, id int64) (models.User, error) {
	if u := s.cache.Get(ctx, id); u != nil {
		return *u, nil
	}

	u, err := s.client.GetUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	s.cache.Save(ctx, id, u)
	return u, nil
}

func (s *profileService) UpdatePhone(ctx context.Context, id int64, phone string) (models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return models.User{}, &FormError{Fields: []string{"phone"}, Message: "Please enter a phone number"}
	}

	u, err := s.client.UpdatePhone(ctx, id, phone)
	if err != nil {
		return models.User{}, err
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.log.Warn(ctx, "could not invalidate profile cache", "error", err)
	}
	return u, nil
}

func (s *profileService) Transporter(ctx context.Context, id int64) (models.TransporterProfile, error) {
	return s.client.GetTransporter(ctx, id)
}

func (s *profileService) UpdateTransporter(ctx context.Context, id int64, req models.UpdateTransporterProfileRequest) (models.TransporterProfile, error) {
	return s.client.UpdateTransporter(ctx, id, req)
}

// UploadPhoto decodes the image, fits it into PhotoMaxSide x PhotoMaxSide
// and sends it re-encoded as JPEG.
func (s *profileService) UploadPhoto(ctx context.Context, id int64, filename string, r io.Reader) (models.TransporterProfile, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return models.TransporterProfile{}, &FormError{Fields: []string{"photo"}, Message: fmt.Sprintf("Unsupported image: %v", err)}
	}

	data, err := encodePhoto(img)
	if err != nil {
		return models.TransporterProfile{}, err
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)) + ".jpg"
	s.log.Info(ctx, "uploading photo", "user_id", id, "bytes", len(data))
	return s.client.UploadTransporterPhoto(ctx, id, name, bytes.NewReader(data))
}

func encodePhoto(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() > PhotoMaxSide || b.Dy() > PhotoMaxSide {
		img = imaging.Fit(img, PhotoMaxSide, PhotoMaxSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(PhotoJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), nil
}
