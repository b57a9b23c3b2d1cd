package repository

import "context"

// PublishTarget identifica o destino remoto dos artefatos.
type PublishTarget struct {
	Bucket  string
	Prefix  string
	Profile string
	Region  string
}

// PublishRepository uploads generated artifacts to remote storage.
type PublishRepository interface {
	CallerIdentity(ctx context.Context, target PublishTarget) (string, error)
	Publish(ctx context.Context, target PublishTarget, paths []string) ([]string, error)
}
