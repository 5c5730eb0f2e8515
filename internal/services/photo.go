package services

import (
	"context"
	"fmt"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 5 * time.Minute

// PhotoService handles couple-scoped photos stored in S3.
type PhotoService struct {
	photos   PhotoStore
	accounts AccountStore
	s3Client *s3.Client
	s3Bucket string
	region   string
}

// NewPhotoService creates a new photo service
func NewPhotoService(
	photos PhotoStore,
	accounts AccountStore,
	awsRegion, s3Bucket, accessKey, secretKey, endpoint string,
) (*PhotoService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(awsRegion),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &PhotoService{
		photos:   photos,
		accounts: accounts,
		s3Client: s3Client,
		s3Bucket: s3Bucket,
		region:   awsRegion,
	}, nil
}

// UploadResponse carries a pre-signed PUT URL for the client.
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoID   string `json:"photo_id"`
	ExpiresIn int    `json:"expires_in"`
}

// PrepareUpload generates a pre-signed URL and records the pending photo.
func (s *PhotoService) PrepareUpload(ctx context.Context, accountID, filename, contentType string) (*UploadResponse, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}

	if filename == "" {
		return nil, apperrors.NewValidation("filename is required")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	photoID := uuid.New().String()
	s3Key := fmt.Sprintf("%s/%s.jpg", coupleID, photoID)

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(s3Key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpiry
	})
	if err != nil {
		return nil, apperrors.WrapInternal(err)
	}

	s3URL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Bucket, s.region, s3Key)
	photo := &models.Photo{
		ID:         photoID,
		CoupleID:   coupleID,
		UploaderID: accountID,
		S3URL:      s3URL,
		TakenAt:    time.Now(),
		CreatedAt:  time.Now(),
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, err
	}

	return &UploadResponse{
		UploadURL: request.URL,
		PhotoID:   photoID,
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}

// List retrieves the couple's photos with pagination.
func (s *PhotoService) List(ctx context.Context, accountID string, limit, offset int) ([]*models.Photo, int, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.photos.ListByCouple(ctx, coupleID, limit, offset)
}

// Delete removes a photo; a photo of another couple reads as not found.
func (s *PhotoService) Delete(ctx context.Context, accountID, photoID string) error {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return err
	}
	return s.photos.Delete(ctx, photoID, coupleID)
}
