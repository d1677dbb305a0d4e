package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	appconfig "kiraya_backend/pkg/config"
)

var (
	s3Client *s3.Client
	bucket   string
	region   string
)

func InitStorage(cfg appconfig.StorageConfig) error {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %v", err)
	}

	s3Client = s3.NewFromConfig(awsCfg)
	bucket = cfg.Bucket
	region = cfg.Region
	return nil
}

// processImage re-encodes the upload: jpeg/webp are compressed at quality
// 85, png is passed through. Returns the encoded bytes and content type.
func processImage(file *multipart.FileHeader) (*bytes.Buffer, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("could not open file: %v", err)
	}
	defer src.Close()

	img, format, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %v", err)
	}

	buf := new(bytes.Buffer)

	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(buf, img)
	case "webp":
		err = webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85})
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}

	if err != nil {
		return nil, "", fmt.Errorf("could not encode image: %v", err)
	}

	return buf, "image/" + format, nil
}

// UploadPropertyImage processes and stores one listing image, returning its
// public URL. Keys look like properties/42/lahore-model-town-house/<uuid>.
func UploadPropertyImage(ctx context.Context, file *multipart.FileHeader, ownerID uint, title string) (string, error) {
	buf, contentType, err := processImage(file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("properties/%d/%s/%s", ownerID, slug.Make(title), uuid.New().String())

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key), nil
}

// UploadUserPhoto stores a profile photo under users/<id>/<uuid>.
func UploadUserPhoto(ctx context.Context, file *multipart.FileHeader, userID uint) (string, error) {
	buf, contentType, err := processImage(file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("users/%d/%s", userID, uuid.New().String())

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key), nil
}

// DeleteImage removes a previously uploaded object by its public URL.
func DeleteImage(ctx context.Context, imageURL string) error {
	parts := strings.SplitN(imageURL, ".amazonaws.com/", 2)
	if len(parts) != 2 {
		return fmt.Errorf("unrecognized image URL: %s", imageURL)
	}

	_, err := s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(parts[1]),
	})

	return err
}
