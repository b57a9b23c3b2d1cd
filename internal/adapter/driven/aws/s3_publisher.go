package aws

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/commerce-analytics-go/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentUploads limita os PutObject em paralelo.
const maxConcurrentUploads = 4

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type identityGetter interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// S3PublisherImpl implementa o PublishRepository com cache de config por perfil.
type S3PublisherImpl struct {
	cfgCache map[string]aws.Config
	mu       sync.Mutex

	// substituíveis nos testes
	newS3  func(cfg aws.Config) objectPutter
	newSTS func(cfg aws.Config) identityGetter
}

// NewS3Publisher cria uma nova implementação do PublishRepository.
func NewS3Publisher() repository.PublishRepository {
	return &S3PublisherImpl{
		cfgCache: make(map[string]aws.Config),
		newS3:    func(cfg aws.Config) objectPutter { return s3.NewFromConfig(cfg) },
		newSTS:   func(cfg aws.Config) identityGetter { return sts.NewFromConfig(cfg) },
	}
}

func (r *S3PublisherImpl) getAWSConfig(ctx context.Context, target repository.PublishTarget) (aws.Config, error) {
	cacheKey := fmt.Sprintf("%s-%s", target.Profile, target.Region)

	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[cacheKey]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if target.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(target.Profile))
	}
	if target.Region != "" {
		opts = append(opts, config.WithRegion(target.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %s: %w", profileName(target.Profile), err)
	}

	r.cfgCache[cacheKey] = cfg
	return cfg, nil
}

// CallerIdentity devolve o ARN de quem vai publicar os artefatos.
func (r *S3PublisherImpl) CallerIdentity(ctx context.Context, target repository.PublishTarget) (string, error) {
	cfg, err := r.getAWSConfig(ctx, target)
	if err != nil {
		return "", err
	}

	result, err := r.newSTS(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity for profile %s: %w", profileName(target.Profile), err)
	}
	return aws.ToString(result.Arn), nil
}

// Publish envia cada arquivo para s3://bucket/prefix/<nome do arquivo>.
// Retorna as URIs na mesma ordem dos caminhos recebidos.
func (r *S3PublisherImpl) Publish(ctx context.Context, target repository.PublishTarget, paths []string) ([]string, error) {
	if target.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	cfg, err := r.getAWSConfig(ctx, target)
	if err != nil {
		return nil, err
	}
	client := r.newS3(cfg)

	uris := make([]string, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)

	for i, p := range paths {
		g.Go(func() error {
			key := objectKey(target.Prefix, p)
			if err := putFile(gctx, client, target.Bucket, key, p); err != nil {
				return err
			}
			uris[i] = fmt.Sprintf("s3://%s/%s", target.Bucket, key)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return uris, nil
}

func putFile(ctx context.Context, client objectPutter, bucket, key, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("error opening %s for upload: %w", filePath, err)
	}
	defer f.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(filepath.Ext(filePath)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("error uploading %s to s3://%s/%s: %w", filePath, bucket, key, err)
	}
	return nil
}

func objectKey(prefix, filePath string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return filepath.Base(filePath)
	}
	return path.Join(prefix, filepath.Base(filePath))
}

func profileName(profile string) string {
	if profile == "" {
		return "default"
	}
	return profile
}
