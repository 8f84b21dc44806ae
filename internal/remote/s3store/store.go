// Package s3store implements remote.Conn on top of an S3-compatible object
// store (AWS S3, MinIO). Records are stored one object per record under a
// configurable key prefix, with the record type carried in object metadata.
// The store keeps a single record type per prefix, so the type-scoped query
// degenerates to a prefix listing.
//
// Long-lived operations are realized as multipart uploads: enumerating and
// cancelling them maps to ListMultipartUploads / AbortMultipartUpload, which
// is what startup reconciliation uses to clean up after a crashed process.
package s3store

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/backupsync/internal/logging"
	"github.com/dmitrijs2005/backupsync/internal/remote"
)

// recordTypeMetadataKey is the object metadata key carrying the record type.
const recordTypeMetadataKey = "record-type"

// api is the subset of *s3.Client the store uses. Tests provide a fake.
type api interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListMultipartUploads(ctx context.Context, params *s3.ListMultipartUploadsInput, optFns ...func(*s3.Options)) (*s3.ListMultipartUploadsOutput, error)
	AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
}

// Test seams for the AWS SDK entry points.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Options configures the connection to the object store.
type Options struct {
	// Endpoint overrides the SDK endpoint, e.g. "http://127.0.0.1:9000"
	// for MinIO. Empty means the default AWS endpoint for Region.
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// KeyPrefix scopes all record objects under one key namespace.
	KeyPrefix string
}

type Store struct {
	client api
	bucket string
	prefix string
	log    logging.Logger
}

var _ remote.Conn = (*Store)(nil)

func New(ctx context.Context, opts Options, log logging.Logger) (*Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client: client,
		bucket: opts.Bucket,
		prefix: normalizePrefix(opts.KeyPrefix),
		log:    log,
	}, nil
}

func normalizePrefix(p string) string {
	if p == "" {
		return ""
	}
	return strings.TrimSuffix(p, "/") + "/"
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) name(key string) string {
	return strings.TrimPrefix(key, s.prefix)
}

// SaveRecord creates or overwrites one object. S3 writes are inherently
// non-atomic single-object operations, so opts.Atomic has nothing to relax
// here; the options still travel through so other Conn implementations can
// honor them.
func (s *Store) SaveRecord(ctx context.Context, name, recordType string, payload []byte, opts remote.SaveOptions) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/octet-stream"),
		Metadata:    map[string]string{recordTypeMetadataKey: recordType},
	})
	return translate("save "+name, err)
}

func (s *Store) DeleteRecords(ctx context.Context, names []string) error {
	ids := make([]types.ObjectIdentifier, 0, len(names))
	for _, n := range names {
		ids = append(ids, types.ObjectIdentifier{Key: aws.String(s.key(n))})
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{
			Objects: ids,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return translate("delete records", err)
	}
	for _, e := range out.Errors {
		return translateBatchError("delete records", e)
	}
	return nil
}

func (s *Store) FetchRecord(ctx context.Context, name string, proj remote.Projection) (*remote.Record, error) {
	if proj == remote.MetadataOnly {
		out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key(name)),
		})
		if err != nil {
			return nil, translate("fetch "+name, err)
		}
		return &remote.Record{
			Name: name,
			Type: out.Metadata[recordTypeMetadataKey],
			Size: aws.ToInt64(out.ContentLength),
		}, nil
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, translate("fetch "+name, err)
	}
	return &remote.Record{
		Name:    name,
		Type:    out.Metadata[recordTypeMetadataKey],
		Size:    aws.ToInt64(out.ContentLength),
		Payload: out.Body,
	}, nil
}

func (s *Store) QueryRecords(ctx context.Context, recordType string, cursor *remote.Cursor) (*remote.Page, error) {
	in := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	}
	if cursor != nil {
		in.ContinuationToken = aws.String(string(*cursor))
	}

	out, err := s.client.ListObjectsV2(ctx, in)
	if err != nil {
		return nil, translate("query "+recordType, err)
	}

	page := &remote.Page{Names: make([]string, 0, len(out.Contents))}
	for _, obj := range out.Contents {
		page.Names = append(page.Names, s.name(aws.ToString(obj.Key)))
	}
	if aws.ToBool(out.IsTruncated) && out.NextContinuationToken != nil {
		next := remote.Cursor(aws.ToString(out.NextContinuationToken))
		page.Cursor = &next
	}
	return page, nil
}

func (s *Store) AccountStatus(ctx context.Context) (remote.AccountStatus, error) {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return remote.StatusAvailable, nil
	}

	code, ok := remote.CodeOf(translate("account status", err))
	if !ok {
		return remote.StatusCouldNotDetermine, err
	}
	switch code {
	case remote.CodeUnknownItem:
		// bucket does not exist: nothing to back up into
		return remote.StatusNoAccount, nil
	case remote.CodePermissionFailure, remote.CodeNotAuthenticated:
		return remote.StatusRestricted, nil
	default:
		return remote.StatusCouldNotDetermine, err
	}
}

func (s *Store) LongLivedOperations(ctx context.Context) ([]remote.Operation, error) {
	out, err := s.client.ListMultipartUploads(ctx, &s3.ListMultipartUploadsInput{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	if err != nil {
		return nil, translate("list operations", err)
	}

	ops := make([]remote.Operation, 0, len(out.Uploads))
	for _, u := range out.Uploads {
		ops = append(ops, remote.Operation{
			ID:   aws.ToString(u.UploadId),
			Name: s.name(aws.ToString(u.Key)),
		})
	}
	return ops, nil
}

func (s *Store) CancelOperation(ctx context.Context, op remote.Operation) error {
	_, err := s.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(s.bucket),
		Key:      aws.String(s.key(op.Name)),
		UploadId: aws.String(op.ID),
	})
	return translate("cancel operation "+op.ID, err)
}
