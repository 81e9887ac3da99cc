package services

import (
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/troovstudio/troov-backend/internal/data/repos"
	"github.com/troovstudio/troov-backend/internal/platform/apierr"
	"github.com/troovstudio/troov-backend/internal/platform/dbctx"
	"github.com/troovstudio/troov-backend/internal/platform/gcs"
	"github.com/troovstudio/troov-backend/internal/platform/logger"
	"github.com/troovstudio/troov-backend/internal/summary"
)

const maxAssetBytes = 25 << 20

type AssetUpload struct {
	Filename string
	Category string
	Body     io.Reader
}

type AssetService interface {
	// Upload stores the file and returns the asset entry to add to the
	// project's assets section. The section itself is saved by the client.
	Upload(dbc dbctx.Context, projectID uuid.UUID, in AssetUpload) (summary.UploadedAsset, error)
	Delete(dbc dbctx.Context, projectID uuid.UUID, assetID string) error
}

type assetService struct {
	log      *logger.Logger
	projects repos.ProjectRepo
	bucket   gcs.AssetBucket
}

// NewAssetService accepts a nil bucket; uploads then answer 501.
func NewAssetService(log *logger.Logger, projects repos.ProjectRepo, bucket gcs.AssetBucket) AssetService {
	return &assetService{
		log:      log.With("service", "AssetService"),
		projects: projects,
		bucket:   bucket,
	}
}

func assetKey(projectID uuid.UUID, assetID string) string {
	return "projects/" + projectID.String() + "/assets/" + assetID
}

func (s *assetService) Upload(dbc dbctx.Context, projectID uuid.UUID, in AssetUpload) (summary.UploadedAsset, error) {
	if s.bucket == nil {
		return summary.UploadedAsset{}, apierr.NotImplemented("uploads_disabled", "Asset uploads are not configured")
	}
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return summary.UploadedAsset{}, err
	}
	name := strings.TrimSpace(path.Base(strings.ReplaceAll(in.Filename, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		return summary.UploadedAsset{}, apierr.BadRequest("invalid_file", "A file name is required")
	}
	if in.Body == nil {
		return summary.UploadedAsset{}, apierr.BadRequest("invalid_file", "A file is required")
	}
	ext := strings.ToLower(path.Ext(name))
	assetID := uuid.NewString() + ext

	url, err := s.bucket.Upload(dbc.Ctx, assetKey(projectID, assetID), io.LimitReader(in.Body, maxAssetBytes))
	if err != nil {
		s.log.Error("asset upload failed", "project_id", projectID, "error", err)
		return summary.UploadedAsset{}, apierr.Internal("upload_failed", err)
	}
	return summary.UploadedAsset{
		ID:       assetID,
		Name:     name,
		Data:     url,
		Label:    strings.TrimSuffix(name, path.Ext(name)),
		Category: strings.TrimSpace(in.Category),
	}, nil
}

func (s *assetService) Delete(dbc dbctx.Context, projectID uuid.UUID, assetID string) error {
	if s.bucket == nil {
		return apierr.NotImplemented("uploads_disabled", "Asset uploads are not configured")
	}
	if _, err := ownedProject(dbc, s.projects, projectID); err != nil {
		return err
	}
	assetID = strings.TrimSpace(assetID)
	if assetID == "" || strings.ContainsAny(assetID, "/\\") || strings.Contains(assetID, "..") {
		return apierr.BadRequest("invalid_asset", "Invalid asset id")
	}
	if err := s.bucket.Delete(dbc.Ctx, assetKey(projectID, assetID)); err != nil {
		return apierr.Internal("delete_failed", err)
	}
	return nil
}
