package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/troovstudio/troov-backend/internal/platform/logger"
)

type Config struct {
	Bucket          string `koanf:"bucket"`
	CDNDomain       string `koanf:"cdn_domain"`
	CredentialsFile string `koanf:"credentials_file"`
	CredentialsJSON string `koanf:"credentials_json"`
	EmulatorHost    string `koanf:"emulator_host"`
}

func (c Config) Configured() bool { return strings.TrimSpace(c.Bucket) != "" }

// AssetBucket stores uploaded project asset files.
type AssetBucket interface {
	Upload(ctx context.Context, key string, file io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type bucket struct {
	log       *logger.Logger
	client    *storage.Client
	name      string
	cdnDomain string
	emulator  string
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (AssetBucket, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("gcs: missing bucket name")
	}
	client, err := storage.NewClient(ctx, clientOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("gcs: create client: %w", err)
	}
	b := &bucket{
		log:       log.With("client", "AssetBucket"),
		client:    client,
		name:      strings.TrimSpace(cfg.Bucket),
		cdnDomain: strings.TrimSpace(cfg.CDNDomain),
		emulator:  strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/"),
	}
	b.log.Info("asset bucket initialized", "bucket", b.name, "emulator", b.emulator != "")
	return b, nil
}

func clientOptions(cfg Config) []option.ClientOption {
	if host := strings.TrimSpace(cfg.EmulatorHost); host != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", strings.TrimRight(host, "/"))
		return []option.ClientOption{option.WithoutAuthentication()}
	}
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return opts
}

func (b *bucket) Upload(ctx context.Context, key string, file io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := b.client.Bucket(b.name).Object(key).NewWriter(ctx)
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(key))); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: close writer %s: %w", key, err)
	}
	return b.PublicURL(key), nil
}

func (b *bucket) Delete(ctx context.Context, key string) error {
	err := b.client.Bucket(b.name).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (b *bucket) PublicURL(key string) string {
	return publicURL(b.name, b.cdnDomain, b.emulator, key)
}

func publicURL(bucketName, cdnDomain, emulator, key string) string {
	escaped := (&url.URL{Path: strings.TrimLeft(key, "/")}).EscapedPath()
	switch {
	case cdnDomain != "":
		return "https://" + strings.TrimRight(strings.TrimPrefix(cdnDomain, "https://"), "/") + "/" + escaped
	case emulator != "":
		return emulator + "/" + bucketName + "/" + escaped
	default:
		return "https://storage.googleapis.com/" + bucketName + "/" + escaped
	}
}
