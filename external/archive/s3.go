package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-backoffice/internal/platform/logging"
	"github.com/riskibarqy/club-backoffice/internal/usecase"
)

const csvContentType = "text/csv; charset=utf-8"

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	Prefix    string
	PathStyle bool
	Logger    *logging.Logger
}

// S3Archive keeps a copy of every signup export in an S3-compatible bucket.
type S3Archive struct {
	client objectPutter
	bucket string
	prefix string
	now    func() time.Time
	logger *logging.Logger
}

// NewS3Archive builds the client from the default AWS credential chain.
func NewS3Archive(ctx context.Context, cfg Config) (*S3Archive, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-west-2"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return newS3Archive(client, cfg), nil
}

func newS3Archive(client objectPutter, cfg Config) *S3Archive {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &S3Archive{
		client: client,
		bucket: strings.TrimSpace(cfg.Bucket),
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		now:    time.Now,
		logger: logger.Named("archive"),
	}
}

// ArchiveExport uploads the CSV and returns its object key.
func (a *S3Archive) ArchiveExport(ctx context.Context, export usecase.SignupExport) (string, error) {
	key := a.objectKey(export)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(export.Body),
		ContentType: aws.String(csvContentType),
		Metadata: map[string]string{
			"setting-id": export.SettingID,
			"rows":       fmt.Sprintf("%d", export.Rows),
		},
	})
	if err != nil {
		a.logger.WarnContext(ctx, "archive export failed", "bucket", a.bucket, "key", key, "error", err)
		return "", fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, crerr.Wrapf(err, "put s3://%s/%s", a.bucket, key))
	}

	a.logger.InfoContext(ctx, "signup export archived", "bucket", a.bucket, "key", key, "rows", export.Rows)
	return key, nil
}

// objectKey is <prefix>/<setting id>/<UTC timestamp>-<filename>.
func (a *S3Archive) objectKey(export usecase.SignupExport) string {
	settingID := export.SettingID
	if settingID == "" {
		settingID = "unassigned"
	}
	name := a.now().UTC().Format("20060102T150405Z") + "-" + strings.ReplaceAll(export.Filename, "/", "-")
	return path.Join(a.prefix, settingID, name)
}
